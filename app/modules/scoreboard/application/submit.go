package scoreboardservice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	scoreboarddomain "github.com/dappy-games/scoreboard/app/modules/scoreboard/domain"
	scoreboardevents "github.com/dappy-games/scoreboard/app/modules/scoreboard/domain/events"
	scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"
)

// SubmitScore runs the submit-if-better policy for one submission.
//
// Validation failures reject before any store access. A failed lookup is
// treated as "no existing entry" and the flow proceeds as a fresh insert;
// only a failed mutating write surfaces as OutcomeStoreError. Cleanup and
// change notification afterwards are best effort and never change the result.
func (s *ScoreLedger) SubmitScore(ctx context.Context, sub scoreboarddomain.Submission) scoreboarddomain.SubmitResult {
	sub = sub.Normalize()

	if err := scoreboarddomain.Validate(sub); err != nil {
		s.logger.Info("Submission rejected",
			slog.String("name", sub.Name),
			slog.String("reason", err.Error()),
		)
		s.metrics.RecordSubmission(string(scoreboarddomain.OutcomeRejected))
		return scoreboarddomain.SubmitResult{
			Outcome: scoreboarddomain.OutcomeRejected,
			Reason:  err.Error(),
		}
	}

	existing, err := s.ScoreDB.BestByName(ctx, sub.Name)
	if err != nil && !errors.Is(err, scoredb.ErrNotFound) {
		// Fail open: an unreadable ledger must not block a valid run. A
		// spurious duplicate row is collapsed by the next cleanup pass.
		s.logger.Warn("Best-score lookup failed, proceeding as fresh insert",
			slog.String("name", sub.Name),
			slog.Any("error", err),
		)
		existing = nil
	}

	entry := &scoredb.ScoreEntry{
		Name:    sub.Name,
		Score:   sub.Score,
		Dappies: sub.Dappies,
	}

	var outcome scoreboarddomain.Outcome
	switch {
	case existing == nil:
		if err := s.ScoreDB.Insert(ctx, entry); err != nil {
			return s.storeFailure(sub.Name, err)
		}
		outcome = scoreboarddomain.OutcomeCreated

	case sub.Score > existing.Score:
		if err := s.ScoreDB.Replace(ctx, entry); err != nil {
			return s.storeFailure(sub.Name, err)
		}
		outcome = scoreboarddomain.OutcomeUpdated

	default:
		s.logger.Debug("Submission not better than stored score",
			slog.String("name", sub.Name),
			slog.Int64("submitted", sub.Score),
			slog.Int64("stored", existing.Score),
		)
		s.metrics.RecordSubmission(string(scoreboarddomain.OutcomeNotBetter))
		return scoreboarddomain.SubmitResult{
			Outcome: scoreboarddomain.OutcomeNotBetter,
			Entry:   existing,
		}
	}

	// A concurrent submission may have raced us into a second row for this
	// name. Collapse best-effort; correctness self-heals on a later pass.
	if err := s.CleanupDuplicates(ctx, sub.Name); err != nil {
		s.logger.Warn("Duplicate cleanup failed",
			slog.String("name", sub.Name),
			slog.Any("error", err),
		)
	}

	s.publishChanged(ctx, entry, outcome)

	s.logger.Info("Score stored",
		slog.String("name", entry.Name),
		slog.Int64("score", entry.Score),
		slog.String("outcome", string(outcome)),
	)
	s.metrics.RecordSubmission(string(outcome))
	return scoreboarddomain.SubmitResult{
		Outcome: outcome,
		Entry:   entry,
	}
}

func (s *ScoreLedger) storeFailure(name string, err error) scoreboarddomain.SubmitResult {
	s.logger.Error("Store write failed",
		slog.String("name", name),
		slog.Any("error", err),
	)
	s.metrics.RecordSubmission(string(scoreboarddomain.OutcomeStoreError))
	return scoreboarddomain.SubmitResult{
		Outcome: scoreboarddomain.OutcomeStoreError,
		Reason:  err.Error(),
	}
}

// publishChanged notifies subscribers that the table changed. Publish errors
// are logged and swallowed; notification is hygiene, not correctness.
func (s *ScoreLedger) publishChanged(ctx context.Context, entry *scoredb.ScoreEntry, outcome scoreboarddomain.Outcome) {
	if s.EventBus == nil {
		return
	}

	payload, err := json.Marshal(scoreboardevents.ScoreboardChangedEvent{
		Name:       entry.Name,
		Score:      entry.Score,
		Outcome:    string(outcome),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Failed to marshal change event", slog.Any("error", err))
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.EventBus.Publish(ctx, scoreboardevents.ScoreboardChangedSubject, msg); err != nil {
		s.logger.Warn("Failed to publish change event",
			slog.String("name", entry.Name),
			slog.Any("error", err),
		)
	}
}
