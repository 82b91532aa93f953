package scoreboardevents

import "time"

// Stream names
const (
	ScoreboardStreamName = "scoreboard"
)

// Scoreboard-related events
const (
	// ScoreboardChangedSubject fires on every insert or replace that altered
	// the table. Notifications are coalesced signals; subscribers re-read the
	// leaderboard instead of applying diffs.
	ScoreboardChangedSubject = "scoreboard.changed"
)

// ScoreboardChangedEvent is published after a submission created or replaced
// a row.
type ScoreboardChangedEvent struct {
	Name       string    `json:"name"`
	Score      int64     `json:"score"`
	Outcome    string    `json:"outcome"`
	OccurredAt time.Time `json:"occurred_at"`
}
