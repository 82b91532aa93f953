package scoreboardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"
)

// DefaultTopLimit bounds ListTop when the caller passes no usable limit.
const DefaultTopLimit = 10

// GetBestScore returns the highest-scoring row for a name, or (nil, nil)
// when the name has no rows. Absence is a normal result, never an error.
func (s *ScoreLedger) GetBestScore(ctx context.Context, name string) (*scoredb.ScoreEntry, error) {
	entry, err := s.ScoreDB.BestByName(ctx, name)
	if err != nil {
		if errors.Is(err, scoredb.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("Failed to fetch best score",
			slog.String("name", name),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to get best score: %w", err)
	}
	return entry, nil
}

// ListTop returns a finite snapshot of entries ordered by score descending,
// truncated to limit (default 10).
func (s *ScoreLedger) ListTop(ctx context.Context, limit int) ([]scoredb.ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	entries, err := s.ScoreDB.ListTop(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to fetch top scores", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list top scores: %w", err)
	}
	return entries, nil
}
