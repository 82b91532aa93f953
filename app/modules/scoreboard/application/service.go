package scoreboardservice

import (
	"log/slog"

	scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"
	"github.com/dappy-games/scoreboard/eventbus"
	"github.com/dappy-games/scoreboard/internal/metrics"
)

// ScoreLedger owns the submit-if-better policy over the scores table.
type ScoreLedger struct {
	ScoreDB  scoredb.Repository
	EventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  *metrics.LedgerMetrics
}

var _ Service = (*ScoreLedger)(nil)

// NewScoreLedger creates a new ScoreLedger.
func NewScoreLedger(db scoredb.Repository, eventBus eventbus.EventBus, logger *slog.Logger, m *metrics.LedgerMetrics) *ScoreLedger {
	return &ScoreLedger{
		ScoreDB:  db,
		EventBus: eventBus,
		logger:   logger,
		metrics:  m,
	}
}
