package metrics

import "sync"

// Mock is a thread-safe mock implementation of the Metrics interface.
type Mock struct {
	mu sync.Mutex

	StandingsComputedCount  int
	AnalyticsSnapshotsCount int
	SnapshotDurations       []float64
	DelayRequestedCount     int
	DelayAcceptedCount      int
	DelayRejectedCount      int
	DelayCancelledCount     int
	DelayInvalidCount       int
	NotifSentCount          int
	NotifFailedCount        int
	StartupTime             float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock metrics instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncStandingsComputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StandingsComputedCount++
}

func (m *Mock) IncAnalyticsSnapshots() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalyticsSnapshotsCount++
}

func (m *Mock) ObserveSnapshotDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotDurations = append(m.SnapshotDurations, duration)
}

func (m *Mock) IncDelayRequested() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DelayRequestedCount++
}

func (m *Mock) IncDelayAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DelayAcceptedCount++
}

func (m *Mock) IncDelayRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DelayRejectedCount++
}

func (m *Mock) IncDelayCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DelayCancelledCount++
}

func (m *Mock) IncDelayInvalid() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DelayInvalidCount++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifSentCount++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifFailedCount++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}

// MockStore is an in-memory MetricsStore for testing.
type MockStore struct {
	mu       sync.Mutex
	Counters map[string]int
}

var _ MetricsStore = (*MockStore)(nil)

// NewMockStore creates a new mock metrics store.
func NewMockStore() *MockStore {
	return &MockStore{Counters: make(map[string]int)}
}

func (m *MockStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counters[key]++
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.Counters))
	for k, v := range m.Counters {
		out[k] = v
	}
	return out, nil
}
