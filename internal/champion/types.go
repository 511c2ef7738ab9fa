package champion

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for the champion catalog.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ErrNotFound is returned when a champion id is not in the catalog.
var ErrNotFound = errors.New("champion not found")

// Champion is one catalog entry.
type Champion struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// PlayedChampion is a catalog entry flagged with whether the user has any
// matchups recorded on it.
type PlayedChampion struct {
	Champion
	HasMatchups bool `json:"has_matchups"`
}
