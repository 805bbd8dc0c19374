package models

import (
	"time"

	"github.com/google/uuid"
)

// Fallback values shown when an identification attempt fails for any
// reason (network error, bad status, unusable model output).
const (
	FallbackMovieName   = "Unknown"
	FallbackReleaseDate = "N/A"
	FallbackRationale   = "The identification service could not produce an answer for this plot. It may be temporarily unavailable, or the response was not usable."
)

// Result is the structured answer for a single plot description.
type Result struct {
	MovieName   string  `json:"movie_name"`
	ReleaseDate string  `json:"release_date"`
	Rationale   string  `json:"rationale"`
	Confidence  float64 `json:"confidence"`
}

// FallbackResult returns the deterministic placeholder used on any failure.
func FallbackResult() Result {
	return Result{
		MovieName:   FallbackMovieName,
		ReleaseDate: FallbackReleaseDate,
		Rationale:   FallbackRationale,
		Confidence:  0.0,
	}
}

// ClampConfidence forces Confidence into [0,1]. Backends are not trusted
// to stay in range.
func (r *Result) ClampConfidence() {
	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
}

// GaugeParts returns the two-part breakdown driving the circular
// confidence gauge: the filled portion and the remainder, in percent.
// The parts always sum to 100.
func (r Result) GaugeParts() (filled, remaining float64) {
	filled = r.Confidence * 100
	return filled, 100 - filled
}

// HistoryEntry is a Result together with the plot that produced it.
type HistoryEntry struct {
	ID        string
	Plot      string
	Result    Result
	CreatedAt time.Time
}

func NewHistoryEntry(plot string, result Result) *HistoryEntry {
	return &HistoryEntry{
		ID:        uuid.New().String(),
		Plot:      plot,
		Result:    result,
		CreatedAt: time.Now(),
	}
}
