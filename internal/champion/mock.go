package champion

import "sync"

// MockCatalog is a mock implementation of the Catalog interface for testing.
// It is safe for concurrent use.
type MockCatalog struct {
	mu sync.Mutex

	// Spies for method calls
	LookupFunc       func(id int) (*Champion, error)
	AllFunc          func() ([]Champion, error)
	PlayedByUserFunc func(userID int64) ([]PlayedChampion, error)
	UpsertFunc       func(champions []Champion) error

	// Call records
	LookupCalls       []int
	AllCalls          int
	PlayedByUserCalls []int64
	UpsertCalls       [][]Champion
}

// NewMock creates a new mock instance.
func NewMock() *MockCatalog {
	return &MockCatalog{}
}

// Reset clears all call records.
func (m *MockCatalog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LookupCalls = nil
	m.AllCalls = 0
	m.PlayedByUserCalls = nil
	m.UpsertCalls = nil
}

func (m *MockCatalog) Lookup(id int) (*Champion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LookupCalls = append(m.LookupCalls, id)
	if m.LookupFunc != nil {
		return m.LookupFunc(id)
	}
	return &Champion{ID: id}, nil
}

func (m *MockCatalog) All() ([]Champion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AllCalls++
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return nil, nil
}

func (m *MockCatalog) PlayedByUser(userID int64) ([]PlayedChampion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayedByUserCalls = append(m.PlayedByUserCalls, userID)
	if m.PlayedByUserFunc != nil {
		return m.PlayedByUserFunc(userID)
	}
	return nil, nil
}

func (m *MockCatalog) Upsert(champions []Champion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls = append(m.UpsertCalls, champions)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(champions)
	}
	return nil
}
