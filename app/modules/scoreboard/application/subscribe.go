package scoreboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	scoreboardevents "github.com/dappy-games/scoreboard/app/modules/scoreboard/domain/events"
	scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"
)

// TopCallback receives a refreshed top-N snapshot on every table change.
type TopCallback func(entries []scoredb.ScoreEntry)

// Subscription is a cancelable registration for leaderboard refreshes.
type Subscription struct {
	ID string

	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// Cancel stops further callback invocations. An in-flight delivery may still
// complete after Cancel returns.
func (sub *Subscription) Cancel() {
	sub.stopOnce.Do(sub.cancel)
}

// Done is closed once the delivery loop has fully drained.
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

// SubscribeTop registers fn for leaderboard refreshes. The change feed
// carries no diff information, so every notification triggers a full ListTop
// re-read and fn receives the fresh snapshot. One initial snapshot is
// delivered right after subscribing so the caller starts consistent.
func (s *ScoreLedger) SubscribeTop(ctx context.Context, limit int, fn TopCallback) (*Subscription, error) {
	if s.EventBus == nil {
		return nil, fmt.Errorf("no event bus configured")
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	subCtx, cancel := context.WithCancel(ctx)
	messages, err := s.EventBus.Subscribe(subCtx, scoreboardevents.ScoreboardChangedSubject)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to subscribe to change feed: %w", err)
	}

	sub := &Subscription{
		ID:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.deliverTop(subCtx, limit, fn)

	go func() {
		defer close(sub.done)
		for msg := range messages {
			// Coalesced signal only; the payload is not inspected.
			msg.Ack()
			s.deliverTop(subCtx, limit, fn)
		}
		s.logger.Debug("Change feed drained", slog.String("subscription", sub.ID))
	}()

	s.logger.Info("Top-score subscription registered",
		slog.String("subscription", sub.ID),
		slog.Int("limit", limit),
	)
	return sub, nil
}

func (s *ScoreLedger) deliverTop(ctx context.Context, limit int, fn TopCallback) {
	if ctx.Err() != nil {
		return
	}

	entries, err := s.ListTop(ctx, limit)
	if err != nil {
		s.logger.Warn("Skipping delivery, top-score read failed", slog.Any("error", err))
		return
	}
	fn(entries)
	s.metrics.RecordTopDelivery()
}
