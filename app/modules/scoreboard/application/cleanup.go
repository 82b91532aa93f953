package scoreboardservice

import (
	"context"
	"fmt"
	"log/slog"
)

// CleanupDuplicates collapses redundant rows for one name down to the best
// one. Zero or one rows is a no-op. The kept row is the highest score, ties
// broken by most recent insert.
func (s *ScoreLedger) CleanupDuplicates(ctx context.Context, name string) error {
	rows, err := s.ScoreDB.ListByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to list rows for cleanup: %w", err)
	}
	if len(rows) <= 1 {
		return nil
	}

	// ListByName orders score desc, created_at desc, id desc, so rows[0] is
	// the keeper under the policy tie-break.
	keep := rows[0]
	deleted, err := s.ScoreDB.DeleteOthers(ctx, name, keep.ID)
	if err != nil {
		return fmt.Errorf("failed to delete duplicates: %w", err)
	}

	s.logger.Info("Collapsed duplicate rows",
		slog.String("name", name),
		slog.Int64("kept_id", keep.ID),
		slog.Int64("deleted", deleted),
	)
	s.metrics.RecordCleanupDeletions(deleted)
	return nil
}
