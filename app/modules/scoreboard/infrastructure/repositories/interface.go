package scoredb

import "context"

// Repository defines the persistence operations the score ledger needs.
type Repository interface {
	// BestByName returns the highest-score row for name, ErrNotFound when none.
	BestByName(ctx context.Context, name string) (*ScoreEntry, error)
	// ListByName returns every row for name, score desc, newest first on ties.
	ListByName(ctx context.Context, name string) ([]ScoreEntry, error)
	// ListTop returns up to limit rows ordered by score desc.
	ListTop(ctx context.Context, limit int) ([]ScoreEntry, error)
	// Insert stores a fresh row and fills in the store-assigned id/created_at.
	Insert(ctx context.Context, entry *ScoreEntry) error
	// Replace removes every row for entry.Name and inserts entry in one
	// transaction, leaving exactly one row for the name.
	Replace(ctx context.Context, entry *ScoreEntry) error
	// DeleteOthers removes every row for name except keepID and reports how
	// many rows went away.
	DeleteOthers(ctx context.Context, name string, keepID int64) (int64, error)
}
