package matchup

// Store defines the persistence contract for matchup records. All mutations
// are transactional at single-record granularity.
type Store interface {
	// FindByKey returns the record for the composite key, or nil when none exists.
	FindByKey(key Key) (*Record, error)
	// FindMostRecentByUser returns the most recently updated record for the
	// user, or nil when the user has no matchups yet.
	FindMostRecentByUser(userID int64) (*Record, error)
	// Get returns a record by its id, or nil when it does not exist.
	Get(recordID string) (*Record, error)
	// UpsertIngest creates the record with games_played=1 or increments
	// games_played by exactly one, setting last_game_id, as a single atomic
	// write. It returns the resulting record.
	UpsertIngest(key Key, gameID string) (*Record, error)
	// ApplyOutcomeOnce increments games_won or games_lost exactly once per
	// gameID. It reports false without mutating when the game was already
	// scored or when every played game is already accounted for.
	ApplyOutcomeOnce(recordID, gameID string, outcome Outcome) (bool, error)
	// ListByChampion returns the user's matchups on a given champion.
	ListByChampion(userID int64, championID int) ([]*Record, error)
	// Summary returns record and game counts for the user.
	Summary(userID int64) (*Summary, error)
}
