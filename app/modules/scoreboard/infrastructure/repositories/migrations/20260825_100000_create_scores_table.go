package scoremigrations

import (
	"context"
	"fmt"

	scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scores table...")

		if _, err := db.NewCreateTable().Model((*scoredb.ScoreEntry)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// Top-N reads sort on score; per-name lookups filter on name.
		_, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_scores_score ON scores (score DESC)").Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_scores_name ON scores (name)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Scores table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scores table...")

		if _, err := db.NewDropTable().Model((*scoredb.ScoreEntry)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Scores table dropped successfully!")
		return nil
	})
}
