package scoreboarddomain

import scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"

// Submission is a single score submission as received from a client.
type Submission struct {
	Name    string `json:"name"`
	Score   int64  `json:"score"` // milliseconds survived
	Dappies int    `json:"dappies"`
}

// Outcome classifies the result of a submit-if-better attempt. Every outcome
// is a value handed back to the caller; none of them is raised as a fault.
type Outcome string

const (
	OutcomeRejected   Outcome = "rejected"
	OutcomeCreated    Outcome = "created"
	OutcomeUpdated    Outcome = "updated"
	OutcomeNotBetter  Outcome = "not_better"
	OutcomeStoreError Outcome = "store_error"
)

// SubmitResult is the full outcome of a submission.
type SubmitResult struct {
	Outcome Outcome
	// Reason carries the validation failure for OutcomeRejected and the store
	// failure text for OutcomeStoreError; empty otherwise.
	Reason string
	// Entry is the row now persisted for the name. Set for Created and
	// Updated; for NotBetter it is the existing (untouched) row.
	Entry *scoredb.ScoreEntry
}
