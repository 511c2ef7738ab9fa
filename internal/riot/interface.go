package riot

import "context"

// Client defines the interface for interacting with the Riot API.
// This allows for mock implementations to be used in tests.
type Client interface {
	// CurrentGame returns the summoner's in-progress game or ErrNotFound.
	CurrentGame(ctx context.Context, summonerID, region string) (*CurrentGameInfo, error)
	// FinishedGame returns the final data for a concluded game, ErrNotFound
	// when the provider has no record of it yet, or ErrInProgress when it has
	// not concluded.
	FinishedGame(ctx context.Context, gameID, region string) (*FinishedGame, error)
}
