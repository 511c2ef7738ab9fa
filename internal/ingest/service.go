package ingest

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lanedex/lanedex/internal/champion"
	"github.com/lanedex/lanedex/internal/matchup"
	"github.com/lanedex/lanedex/internal/metrics"
)

var (
	// ErrInvalidChampion is returned when either champion id is unknown to the
	// catalog, or when both sides of the matchup are the same champion.
	ErrInvalidChampion = errors.New("invalid champion")
	// ErrEmptyGameID is returned when the game id is missing.
	ErrEmptyGameID = errors.New("game id must not be empty")
)

// Service records observed games into matchup aggregates. It holds no state
// of its own.
type Service struct {
	store   matchup.Store
	catalog champion.Catalog
	metrics metrics.Metrics
}

// Params carries one observed game.
type Params struct {
	UserID     int64  `json:"user_id"`
	ChampionID int    `json:"champion_id"`
	OpponentID int    `json:"opponent_id"`
	Lane       string `json:"lane"`
	GameID     string `json:"game_id"`
}

// New creates a new ingestion Service.
func New(store matchup.Store, catalog champion.Catalog, metrics metrics.Metrics) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		metrics: metrics,
	}
}

// IngestGame validates the pairing and increments its play counter in a
// single atomic upsert. It returns the matchup record id. Repeated calls with
// the same game id each count as a played game; outcome scoring downstream is
// what carries the at-most-once guarantee.
func (s *Service) IngestGame(p Params) (string, error) {
	lane, err := matchup.ParseLane(p.Lane)
	if err != nil {
		return "", err
	}
	if p.GameID == "" {
		return "", ErrEmptyGameID
	}
	if p.ChampionID == p.OpponentID {
		return "", fmt.Errorf("%w: champion and opponent must differ", ErrInvalidChampion)
	}

	for _, id := range []int{p.ChampionID, p.OpponentID} {
		if _, err := s.catalog.Lookup(id); err != nil {
			if errors.Is(err, champion.ErrNotFound) {
				return "", fmt.Errorf("%w: id %d", ErrInvalidChampion, id)
			}
			return "", fmt.Errorf("failed to validate champion %d: %w", id, err)
		}
	}

	record, err := s.store.UpsertIngest(matchup.Key{
		UserID:     p.UserID,
		ChampionID: p.ChampionID,
		OpponentID: p.OpponentID,
		Lane:       lane,
	}, p.GameID)
	if err != nil {
		return "", fmt.Errorf("failed to record game: %w", err)
	}

	s.metrics.IncGamesIngested()
	log.Info("Recorded game", "recordID", record.ID, "userID", p.UserID, "champion", p.ChampionID, "opponent", p.OpponentID, "lane", lane, "gameID", p.GameID)
	return record.ID, nil
}
