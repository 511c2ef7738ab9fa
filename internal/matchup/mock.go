package matchup

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	FindByKeyFunc            func(key Key) (*Record, error)
	FindMostRecentByUserFunc func(userID int64) (*Record, error)
	GetFunc                  func(recordID string) (*Record, error)
	UpsertIngestFunc         func(key Key, gameID string) (*Record, error)
	ApplyOutcomeOnceFunc     func(recordID, gameID string, outcome Outcome) (bool, error)
	ListByChampionFunc       func(userID int64, championID int) ([]*Record, error)
	SummaryFunc              func(userID int64) (*Summary, error)

	// Call records
	FindByKeyCalls            []Key
	FindMostRecentByUserCalls []int64
	GetCalls                  []string
	UpsertIngestCalls         []UpsertIngestCall
	ApplyOutcomeOnceCalls     []ApplyOutcomeOnceCall
	ListByChampionCalls       []ListByChampionCall
	SummaryCalls              []int64
}

// UpsertIngestCall holds the arguments for a call to UpsertIngest.
type UpsertIngestCall struct {
	Key    Key
	GameID string
}

// ApplyOutcomeOnceCall holds the arguments for a call to ApplyOutcomeOnce.
type ApplyOutcomeOnceCall struct {
	RecordID string
	GameID   string
	Outcome  Outcome
}

// ListByChampionCall holds the arguments for a call to ListByChampion.
type ListByChampionCall struct {
	UserID     int64
	ChampionID int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindByKeyCalls = nil
	m.FindMostRecentByUserCalls = nil
	m.GetCalls = nil
	m.UpsertIngestCalls = nil
	m.ApplyOutcomeOnceCalls = nil
	m.ListByChampionCalls = nil
	m.SummaryCalls = nil
}

func (m *MockStore) FindByKey(key Key) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindByKeyCalls = append(m.FindByKeyCalls, key)
	if m.FindByKeyFunc != nil {
		return m.FindByKeyFunc(key)
	}
	return nil, nil
}

func (m *MockStore) FindMostRecentByUser(userID int64) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindMostRecentByUserCalls = append(m.FindMostRecentByUserCalls, userID)
	if m.FindMostRecentByUserFunc != nil {
		return m.FindMostRecentByUserFunc(userID)
	}
	return nil, nil
}

func (m *MockStore) Get(recordID string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, recordID)
	if m.GetFunc != nil {
		return m.GetFunc(recordID)
	}
	return nil, nil
}

func (m *MockStore) UpsertIngest(key Key, gameID string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertIngestCalls = append(m.UpsertIngestCalls, UpsertIngestCall{Key: key, GameID: gameID})
	if m.UpsertIngestFunc != nil {
		return m.UpsertIngestFunc(key, gameID)
	}
	return &Record{}, nil
}

func (m *MockStore) ApplyOutcomeOnce(recordID, gameID string, outcome Outcome) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyOutcomeOnceCalls = append(m.ApplyOutcomeOnceCalls, ApplyOutcomeOnceCall{RecordID: recordID, GameID: gameID, Outcome: outcome})
	if m.ApplyOutcomeOnceFunc != nil {
		return m.ApplyOutcomeOnceFunc(recordID, gameID, outcome)
	}
	return true, nil
}

func (m *MockStore) ListByChampion(userID int64, championID int) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListByChampionCalls = append(m.ListByChampionCalls, ListByChampionCall{UserID: userID, ChampionID: championID})
	if m.ListByChampionFunc != nil {
		return m.ListByChampionFunc(userID, championID)
	}
	return nil, nil
}

func (m *MockStore) Summary(userID int64) (*Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummaryCalls = append(m.SummaryCalls, userID)
	if m.SummaryFunc != nil {
		return m.SummaryFunc(userID)
	}
	return &Summary{}, nil
}
