package champion

// Catalog defines the read/refresh contract for the champion catalog.
type Catalog interface {
	// Lookup returns the champion with the given id or ErrNotFound.
	Lookup(id int) (*Champion, error)
	// All returns every champion in the catalog, sorted by name.
	All() ([]Champion, error)
	// PlayedByUser returns every champion flagged with whether the user has
	// matchups on it, played champions first.
	PlayedByUser(userID int64) ([]PlayedChampion, error)
	// Upsert inserts or updates catalog entries.
	Upsert(champions []Champion) error
}
