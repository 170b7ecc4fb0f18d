// Package docstore persists loosely typed JSON documents grouped into
// collections.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidField = errors.New("invalid field name")
)

// Record is one stored document. Data is always a JSON object.
type Record struct {
	ID        string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the read/write contract listings are kept behind.
type Store interface {
	// ListAll returns every document of collection ordered by creation time,
	// then id.
	ListAll(ctx context.Context, collection string) ([]Record, error)
	GetByID(ctx context.Context, collection, id string) (Record, error)
	// QueryByEquality returns up to limit documents whose top-level field
	// equals value. A limit <= 0 means no limit.
	QueryByEquality(ctx context.Context, collection, field string, value any, limit int) ([]Record, error)
	// Create stores fields under a generated id and returns it.
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Overwrite replaces the document at id, creating it when missing.
	Overwrite(ctx context.Context, collection, id string, fields map[string]any) error
	// Merge sets the given top-level fields on an existing document.
	Merge(ctx context.Context, collection, id string, fields map[string]any) error
	// AppendToArrayField adds value to the array at field unless an equal
	// element is already present. A missing or non-array field becomes a
	// one-element array.
	AppendToArrayField(ctx context.Context, collection, id, field string, value any) error
	Delete(ctx context.Context, collection, id string) error
}
