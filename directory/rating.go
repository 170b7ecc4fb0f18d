package directory

import (
	"math"

	"github.com/salone-startups/api-go/models"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// AggregateRating returns the display rating of a listing. A finite stored
// value wins; otherwise the review ratings are averaged and rounded to one
// decimal; with neither the rating is 0. The result is always in [0, 5].
func AggregateRating(stored *float64, reviews []models.Review) float64 {
	if stored != nil && isFinite(*stored) {
		return clampRating(*stored)
	}
	if len(reviews) == 0 {
		return 0
	}

	var sum float64
	for _, r := range reviews {
		sum += clampRating(float64(r.Rating))
	}
	return roundTenth(sum / float64(len(reviews)))
}

func clampRating(v float64) float64 {
	if !isFinite(v) || v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
