package identification

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kdimtricp/plotshazam/internal/ai"
	"github.com/kdimtricp/plotshazam/internal/database"
	"github.com/kdimtricp/plotshazam/internal/models"
)

// Service answers plot descriptions using the configured LLM provider
// and records successful identifications in the history log.
type Service struct {
	provider ai.Provider
	history  *database.HistoryRepository
}

// NewService constructs the identification service. The history
// repository may be nil, in which case nothing is persisted.
func NewService(provider ai.Provider, history *database.HistoryRepository) *Service {
	return &Service{
		provider: provider,
		history:  history,
	}
}

// Identify asks the provider for the movie matching the plot. Errors from
// the provider and unusable model output are both returned as errors; the
// caller decides how to surface them (the HTTP handler maps them to a
// non-2xx status, which clients turn into the fallback result).
func (s *Service) Identify(ctx context.Context, plot string) (models.Result, error) {
	raw, err := s.provider.Identify(ctx, plot)
	if err != nil {
		return models.Result{}, fmt.Errorf("provider %s: %w", s.provider.Name(), err)
	}

	result, err := ParseResult(raw)
	if err != nil {
		return models.Result{}, fmt.Errorf("unusable model output: %w", err)
	}

	if s.history != nil {
		entry := models.NewHistoryEntry(plot, result)
		if err := s.history.Insert(ctx, entry); err != nil {
			// The answer is still good; losing a log row is not fatal.
			logrus.WithError(err).Warn("failed to record identification")
		}
	}

	logrus.WithFields(logrus.Fields{
		"provider":   s.provider.Name(),
		"movie":      result.MovieName,
		"confidence": result.Confidence,
	}).Info("identified movie")

	return result, nil
}
