package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ScoreDBImpl handles database operations for score entries.
type ScoreDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*ScoreDBImpl)(nil)

// BestByName retrieves the highest-scoring row for a player name.
func (db *ScoreDBImpl) BestByName(ctx context.Context, name string) (*ScoreEntry, error) {
	entry := new(ScoreEntry)

	err := db.DB.NewSelect().
		Model(entry).
		Where("name = ?", name).
		OrderExpr("score DESC, created_at DESC, id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get best score for %q: %w", name, err)
	}
	return entry, nil
}

// ListByName retrieves every row for a player name, best first.
func (db *ScoreDBImpl) ListByName(ctx context.Context, name string) ([]ScoreEntry, error) {
	var entries []ScoreEntry

	err := db.DB.NewSelect().
		Model(&entries).
		Where("name = ?", name).
		OrderExpr("score DESC, created_at DESC, id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for %q: %w", name, err)
	}
	return entries, nil
}

// ListTop retrieves up to limit rows ordered by score descending.
func (db *ScoreDBImpl) ListTop(ctx context.Context, limit int) ([]ScoreEntry, error) {
	var entries []ScoreEntry

	err := db.DB.NewSelect().
		Model(&entries).
		OrderExpr("score DESC, created_at DESC, id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list top scores: %w", err)
	}
	return entries, nil
}

// Insert stores a fresh row; the store assigns id and created_at.
func (db *ScoreDBImpl) Insert(ctx context.Context, entry *ScoreEntry) error {
	_, err := db.DB.NewInsert().
		Model(entry).
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert score for %q: %w", entry.Name, err)
	}
	return nil
}

// Replace deletes every existing row for entry.Name and inserts entry inside
// one transaction, so the name ends up with exactly one row.
func (db *ScoreDBImpl) Replace(ctx context.Context, entry *ScoreEntry) error {
	err := db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*ScoreEntry)(nil)).
			Where("name = ?", entry.Name).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete existing rows for %q: %w", entry.Name, err)
		}

		if _, err := tx.NewInsert().
			Model(entry).
			Returning("id, created_at").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert replacement row for %q: %w", entry.Name, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace transaction failed: %w", err)
	}
	return nil
}

// DeleteOthers removes every row for name except keepID.
func (db *ScoreDBImpl) DeleteOthers(ctx context.Context, name string, keepID int64) (int64, error) {
	res, err := db.DB.NewDelete().
		Model((*ScoreEntry)(nil)).
		Where("name = ?", name).
		Where("id != ?", keepID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete duplicate rows for %q: %w", name, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		// Drivers without RowsAffected support still deleted the rows.
		return 0, nil
	}
	return affected, nil
}
