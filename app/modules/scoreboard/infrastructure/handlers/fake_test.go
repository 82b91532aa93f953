package scoreboardhandlers

import (
	"context"

	scoreboardservice "github.com/dappy-games/scoreboard/app/modules/scoreboard/application"
	scoreboarddomain "github.com/dappy-games/scoreboard/app/modules/scoreboard/domain"
	scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"
)

type FakeService struct {
	SubmitScoreFunc  func(ctx context.Context, sub scoreboarddomain.Submission) scoreboarddomain.SubmitResult
	GetBestScoreFunc func(ctx context.Context, name string) (*scoredb.ScoreEntry, error)
	ListTopFunc      func(ctx context.Context, limit int) ([]scoredb.ScoreEntry, error)
}

func (f *FakeService) SubmitScore(ctx context.Context, sub scoreboarddomain.Submission) scoreboarddomain.SubmitResult {
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, sub)
	}
	return scoreboarddomain.SubmitResult{Outcome: scoreboarddomain.OutcomeCreated}
}

func (f *FakeService) CleanupDuplicates(ctx context.Context, name string) error { return nil }

func (f *FakeService) GetBestScore(ctx context.Context, name string) (*scoredb.ScoreEntry, error) {
	if f.GetBestScoreFunc != nil {
		return f.GetBestScoreFunc(ctx, name)
	}
	return nil, nil
}

func (f *FakeService) ListTop(ctx context.Context, limit int) ([]scoredb.ScoreEntry, error) {
	if f.ListTopFunc != nil {
		return f.ListTopFunc(ctx, limit)
	}
	return nil, nil
}

func (f *FakeService) SubscribeTop(ctx context.Context, limit int, fn scoreboardservice.TopCallback) (*scoreboardservice.Subscription, error) {
	return nil, nil
}

var _ scoreboardservice.Service = (*FakeService)(nil)
