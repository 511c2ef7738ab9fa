package matchup

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new matchup Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

const recordColumns = `id, user_id, champion_id, opponent_id, lane, games_played, games_won, games_lost, last_game_id, last_resolved_game_id, updated_at`

// UpsertIngest records one played game for the key. The increment happens
// inside the statement itself, so concurrent ingests for the same key cannot
// read a stale count.
func (s *store) UpsertIngest(key Key, gameID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin ingest transaction: %w", err)
	}

	now := time.Now().Unix()
	_, err = tx.Exec(`
		INSERT INTO matchups (id, user_id, champion_id, opponent_id, lane, games_played, games_won, games_lost, last_game_id, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, 0, 0, ?, ?)
		ON CONFLICT(user_id, champion_id, opponent_id, lane) DO UPDATE SET
			games_played = games_played + 1,
			last_game_id = excluded.last_game_id,
			updated_at = excluded.updated_at;
	`, uuid.New().String(), key.UserID, key.ChampionID, key.OpponentID, key.Lane, gameID, now)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to upsert matchup: %w", err)
	}

	row := tx.QueryRow(`
		SELECT `+recordColumns+`
		FROM matchups
		WHERE user_id = ? AND champion_id = ? AND opponent_id = ? AND lane = ?
	`, key.UserID, key.ChampionID, key.OpponentID, key.Lane)
	record, err := scanRecord(row)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to read back matchup: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ingest: %w", err)
	}
	log.Debug("Ingested game into matchup", "recordID", record.ID, "gameID", gameID, "gamesPlayed", record.GamesPlayed)
	return record, nil
}

// ApplyOutcomeOnce scores a finished game with a compare-and-set write. The
// WHERE clause rejects a game id that was already applied and refuses to let
// won+lost exceed played.
func (s *store) ApplyOutcomeOnce(recordID, gameID string, outcome Outcome) (bool, error) {
	var column string
	switch outcome {
	case OutcomeWin:
		column = "games_won"
	case OutcomeLoss:
		column = "games_lost"
	default:
		return false, fmt.Errorf("outcome %q cannot be applied to a record", outcome)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE matchups
		SET `+column+` = `+column+` + 1,
			last_resolved_game_id = ?,
			updated_at = ?
		WHERE id = ?
			AND (last_resolved_game_id IS NULL OR last_resolved_game_id != ?)
			AND games_won + games_lost < games_played
	`, gameID, time.Now().Unix(), recordID, gameID)
	if err != nil {
		return false, fmt.Errorf("failed to apply outcome: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		log.Debug("Outcome already applied, skipping", "recordID", recordID, "gameID", gameID)
		return false, nil
	}
	log.Info("Applied game outcome", "recordID", recordID, "gameID", gameID, "outcome", outcome)
	return true, nil
}

func (s *store) FindByKey(key Key) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT `+recordColumns+`
		FROM matchups
		WHERE user_id = ? AND champion_id = ? AND opponent_id = ? AND lane = ?
	`, key.UserID, key.ChampionID, key.OpponentID, key.Lane)
	return noRowsAsNil(scanRecord(row))
}

// FindMostRecentByUser returns nil (not an error) when the user has no
// matchups. An account with no recorded matchups is a valid, expected state.
func (s *store) FindMostRecentByUser(userID int64) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT `+recordColumns+`
		FROM matchups
		WHERE user_id = ?
		ORDER BY updated_at DESC
		LIMIT 1
	`, userID)
	return noRowsAsNil(scanRecord(row))
}

func (s *store) Get(recordID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+recordColumns+` FROM matchups WHERE id = ?`, recordID)
	return noRowsAsNil(scanRecord(row))
}

func (s *store) ListByChampion(userID int64, championID int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT `+recordColumns+`
		FROM matchups
		WHERE user_id = ? AND champion_id = ?
		ORDER BY updated_at DESC
	`, userID, championID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchups: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			log.Error("Failed to scan matchup row", "error", err)
			continue
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *store) Summary(userID int64) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary Summary
	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(games_played), 0)
		FROM matchups
		WHERE user_id = ?
	`, userID).Scan(&summary.Matchups, &summary.GamesPlayed)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}
	return &summary, nil
}

// scanRecord scans a single matchup row.
func scanRecord(scanner interface{ Scan(...any) error }) (*Record, error) {
	var record Record
	var lastGameID, lastResolvedGameID sql.NullString
	var updatedAt int64

	err := scanner.Scan(
		&record.ID, &record.UserID, &record.ChampionID, &record.OpponentID, &record.Lane,
		&record.GamesPlayed, &record.GamesWon, &record.GamesLost,
		&lastGameID, &lastResolvedGameID, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.LastGameID = lastGameID.String
	record.LastResolvedGameID = lastResolvedGameID.String
	record.UpdatedAt = time.Unix(updatedAt, 0)
	return &record, nil
}

func noRowsAsNil(record *Record, err error) (*Record, error) {
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}
