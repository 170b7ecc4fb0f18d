package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/salone-startups/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps documents as JSON text rows of the documents table.
type GormStore struct {
	db    *gorm.DB
	clock clockwork.Clock
}

func NewGormStore(db *gorm.DB, clock clockwork.Clock) *GormStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &GormStore{db: db, clock: clock}
}

// AutoMigrate creates or updates the documents table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Document{}); err != nil {
		return fmt.Errorf("failed to migrate documents: %w", err)
	}
	return nil
}

func (s *GormStore) ListAll(ctx context.Context, collection string) ([]Record, error) {
	var docs []models.Document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at ASC").
		Order("id ASC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, toRecord(doc))
	}
	return records, nil
}

func (s *GormStore) GetByID(ctx context.Context, collection, id string) (Record, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return toRecord(doc), nil
}

// QueryByEquality compares canonical JSON encodings, so 3 and 3.0 are equal
// and object key order does not matter. Collections are small enough to be
// filtered after loading.
func (s *GormStore) QueryByEquality(ctx context.Context, collection, field string, value any, limit int) ([]Record, error) {
	if field == "" {
		return nil, ErrInvalidField
	}
	probe, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query value: %w", err)
	}
	want, ok := canonicalJSON(probe)
	if !ok {
		return nil, fmt.Errorf("failed to encode query value: %q", probe)
	}

	all, err := s.ListAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	matches := make([]Record, 0)
	for _, rec := range all {
		raw, ok := decodeObject(rec.Data)[field]
		if !ok {
			continue
		}
		if got, ok := canonicalJSON(raw); ok && got == want {
			matches = append(matches, rec)
			if limit > 0 && len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

func (s *GormStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	data, err := encodeFields(fields)
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	doc := models.Document{
		Collection: collection,
		ID:         uuid.NewString(),
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return "", fmt.Errorf("failed to create %s document: %w", collection, err)
	}
	return doc.ID, nil
}

func (s *GormStore) Overwrite(ctx context.Context, collection, id string, fields map[string]any) error {
	data, err := encodeFields(fields)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	doc := models.Document{
		Collection: collection,
		ID:         id,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to overwrite %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *GormStore) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	err := s.update(ctx, collection, id, func(doc map[string]json.RawMessage) error {
		for key, value := range fields {
			raw, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to encode field %q: %w", key, err)
			}
			doc[key] = raw
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to merge %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *GormStore) AppendToArrayField(ctx context.Context, collection, id, field string, value any) error {
	if field == "" {
		return ErrInvalidField
	}
	elem, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode array element: %w", err)
	}
	elemKey, _ := canonicalJSON(elem)

	err = s.update(ctx, collection, id, func(doc map[string]json.RawMessage) error {
		var items []json.RawMessage
		if raw, ok := doc[field]; ok {
			if err := json.Unmarshal(raw, &items); err != nil {
				items = nil
			}
		}
		for _, item := range items {
			if key, ok := canonicalJSON(item); ok && key == elemKey {
				return nil
			}
		}
		items = append(items, elem)

		raw, err := json.Marshal(items)
		if err != nil {
			return err
		}
		doc[field] = raw
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append to %s/%s.%s: %w", collection, id, field, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	result := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&models.Document{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// update runs a read-modify-write of one document inside a transaction
// holding a row lock.
func (s *GormStore) update(ctx context.Context, collection, id string, fn func(map[string]json.RawMessage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, id).
			First(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		fields := decodeObject(json.RawMessage(doc.Data))
		if err := fn(fields); err != nil {
			return err
		}
		data, err := json.Marshal(fields)
		if err != nil {
			return err
		}

		return tx.Model(&models.Document{}).
			Where("collection = ? AND id = ?", collection, id).
			Updates(map[string]any{"data": string(data), "updated_at": s.clock.Now()}).Error
	})
}

func toRecord(doc models.Document) Record {
	return Record{
		ID:        doc.ID,
		Data:      json.RawMessage(doc.Data),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func encodeFields(fields map[string]any) (string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

// decodeObject never returns nil. A body that is not an object decodes as
// an empty document.
func decodeObject(data json.RawMessage) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return map[string]json.RawMessage{}
	}
	return fields
}

func canonicalJSON(raw []byte) (string, bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(out), true
}
