package scoredb

import (
	"time"

	"github.com/uptrace/bun"
)

// ScoreEntry is one persisted run for a player name. The schema allows
// duplicate names; the ledger collapses them so that at rest a name holds
// exactly one row with its highest valid score.
type ScoreEntry struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Score     int64     `bun:"score,notnull" json:"score"` // milliseconds survived
	Dappies   int       `bun:"dappies,notnull,default:0" json:"dappies"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
