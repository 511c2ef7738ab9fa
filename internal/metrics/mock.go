package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	gamesIngested      int
	reconcileRuns      int
	outcomesApplied    map[string]int
	providerErrors     int
	reconcileDurations []float64
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		outcomesApplied: make(map[string]int),
	}
}

func (m *Mock) IncGamesIngested() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesIngested++
}

func (m *Mock) IncReconcileRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconcileRuns++
}

func (m *Mock) IncOutcomesApplied(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomesApplied[outcome]++
}

func (m *Mock) IncProviderErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providerErrors++
}

func (m *Mock) ObserveReconcileDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconcileDurations = append(m.reconcileDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// GamesIngested returns the recorded ingest count.
func (m *Mock) GamesIngested() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesIngested
}

// ReconcileRuns returns the recorded reconcile count.
func (m *Mock) ReconcileRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reconcileRuns
}

// OutcomesApplied returns the recorded apply count for an outcome label.
func (m *Mock) OutcomesApplied(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomesApplied[outcome]
}

// ProviderErrors returns the recorded provider error count.
func (m *Mock) ProviderErrors() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.providerErrors
}
