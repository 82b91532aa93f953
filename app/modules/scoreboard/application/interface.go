package scoreboardservice

import (
	"context"

	scoreboarddomain "github.com/dappy-games/scoreboard/app/modules/scoreboard/domain"
	scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"
)

// Service is the score ledger surface consumed by transports.
type Service interface {
	SubmitScore(ctx context.Context, sub scoreboarddomain.Submission) scoreboarddomain.SubmitResult
	CleanupDuplicates(ctx context.Context, name string) error
	GetBestScore(ctx context.Context, name string) (*scoredb.ScoreEntry, error)
	ListTop(ctx context.Context, limit int) ([]scoredb.ScoreEntry, error)
	SubscribeTop(ctx context.Context, limit int, fn TopCallback) (*Subscription, error)
}
