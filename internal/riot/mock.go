package riot

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	CurrentGameFunc  func(ctx context.Context, summonerID, region string) (*CurrentGameInfo, error)
	FinishedGameFunc func(ctx context.Context, gameID, region string) (*FinishedGame, error)

	// Call records
	CurrentGameCalls  []CurrentGameCall
	FinishedGameCalls []FinishedGameCall
}

// CurrentGameCall holds the arguments for a call to CurrentGame.
type CurrentGameCall struct {
	SummonerID string
	Region     string
}

// FinishedGameCall holds the arguments for a call to FinishedGame.
type FinishedGameCall struct {
	GameID string
	Region string
}

// NewMock creates a new mock instance.
func NewMock() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CurrentGameCalls = nil
	m.FinishedGameCalls = nil
}

func (m *MockClient) CurrentGame(ctx context.Context, summonerID, region string) (*CurrentGameInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CurrentGameCalls = append(m.CurrentGameCalls, CurrentGameCall{SummonerID: summonerID, Region: region})
	if m.CurrentGameFunc != nil {
		return m.CurrentGameFunc(ctx, summonerID, region)
	}
	return nil, ErrNotFound
}

func (m *MockClient) FinishedGame(ctx context.Context, gameID, region string) (*FinishedGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinishedGameCalls = append(m.FinishedGameCalls, FinishedGameCall{GameID: gameID, Region: region})
	if m.FinishedGameFunc != nil {
		return m.FinishedGameFunc(ctx, gameID, region)
	}
	return nil, ErrNotFound
}
