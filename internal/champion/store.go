package champion

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new champion Catalog backed by the given database.
func New(db *sql.DB) Catalog {
	return &store{
		db: db,
	}
}

func (s *store) Lookup(id int) (*Champion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var champion Champion
	err := s.db.QueryRow(`SELECT id, name, image FROM champions WHERE id = ?`, id).
		Scan(&champion.ID, &champion.Name, &champion.Image)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to look up champion: %w", err)
	}
	return &champion, nil
}

func (s *store) All() ([]Champion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, image FROM champions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query champions: %w", err)
	}
	defer rows.Close()

	var champions []Champion
	for rows.Next() {
		var champion Champion
		if err := rows.Scan(&champion.ID, &champion.Name, &champion.Image); err != nil {
			log.Error("Failed to scan champion row", "error", err)
			continue
		}
		champions = append(champions, champion)
	}
	return champions, rows.Err()
}

// PlayedByUser lists the full catalog with played champions first, mirroring
// the dex view: every champion appears whether or not the user has faced
// anything on it.
func (s *store) PlayedByUser(userID int64) ([]PlayedChampion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT DISTINCT
			c.id,
			c.name,
			c.image,
			CASE WHEN m.opponent_id IS NOT NULL THEN 1 ELSE 0 END AS has_matchups
		FROM champions c
		LEFT JOIN matchups m ON m.champion_id = c.id AND m.user_id = ?
		ORDER BY has_matchups DESC, c.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query played champions: %w", err)
	}
	defer rows.Close()

	var champions []PlayedChampion
	for rows.Next() {
		var champion PlayedChampion
		if err := rows.Scan(&champion.ID, &champion.Name, &champion.Image, &champion.HasMatchups); err != nil {
			log.Error("Failed to scan played champion row", "error", err)
			continue
		}
		champions = append(champions, champion)
	}
	return champions, rows.Err()
}

func (s *store) Upsert(champions []Champion) error {
	if len(champions) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin champion upsert: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO champions (id, name, image)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			image = excluded.image;
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare champion upsert: %w", err)
	}
	defer stmt.Close()

	for _, champion := range champions {
		if _, err := stmt.Exec(champion.ID, champion.Name, champion.Image); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert champion %d: %w", champion.ID, err)
		}
	}

	return tx.Commit()
}
