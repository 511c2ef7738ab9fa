package matchup

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// store handles all database operations for matchup records.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Lane is the position a matchup was played in.
type Lane string

const (
	LaneTop     Lane = "top"
	LaneJungle  Lane = "jungle"
	LaneMid     Lane = "mid"
	LaneBottom  Lane = "bottom"
	LaneSupport Lane = "support"
)

// ErrInvalidLane is returned when a lane is not part of the fixed enumeration.
var ErrInvalidLane = errors.New("invalid lane")

// ParseLane validates a raw lane string against the fixed enumeration.
func ParseLane(raw string) (Lane, error) {
	switch Lane(raw) {
	case LaneTop, LaneJungle, LaneMid, LaneBottom, LaneSupport:
		return Lane(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLane, raw)
}

// Outcome is the resolved result of a reconciliation attempt.
type Outcome string

const (
	OutcomeWin     Outcome = "WIN"
	OutcomeLoss    Outcome = "LOSS"
	OutcomePending Outcome = "PENDING"
	OutcomeUnknown Outcome = "UNKNOWN"
)

// Key identifies a single matchup aggregate. At most one record exists per key.
type Key struct {
	UserID     int64 `json:"user_id"`
	ChampionID int   `json:"champion_id"`
	OpponentID int   `json:"opponent_id"`
	Lane       Lane  `json:"lane"`
}

// Record is the persisted matchup aggregate for one (user, champion, opponent, lane) key.
type Record struct {
	ID                 string    `json:"id"`
	UserID             int64     `json:"user_id"`
	ChampionID         int       `json:"champion_id"`
	OpponentID         int       `json:"opponent_id"`
	Lane               Lane      `json:"lane"`
	GamesPlayed        int       `json:"games_played"`
	GamesWon           int       `json:"games_won"`
	GamesLost          int       `json:"games_lost"`
	LastGameID         string    `json:"last_game_id,omitempty"`
	LastResolvedGameID string    `json:"last_resolved_game_id,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PendingGames is the number of ingested games whose outcome has not been scored yet.
func (r *Record) PendingGames() int {
	return r.GamesPlayed - (r.GamesWon + r.GamesLost)
}

// ReconciliationResult describes what reconciliation discovered for the most
// recent pending game. It is never persisted.
type ReconciliationResult struct {
	Matched bool    `json:"matched"`
	Outcome Outcome `json:"outcome"`
}

// Summary holds the per-user aggregate counts used by the info card.
type Summary struct {
	Matchups    int `json:"matchups"`
	GamesPlayed int `json:"games_played"`
}
