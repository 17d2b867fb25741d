package league

import "sync"

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayersFunc          func(players []PlayerRecord) error
	UpsertSeasonsFunc          func(seasons []SeasonRecord) error
	UpsertMatchFunc            func(match *MatchRecord) error
	UpsertMatchesFunc          func(matches []*MatchRecord) error
	GetPlayersFunc             func(boxID string) ([]PlayerRecord, error)
	GetPlayerFunc              func(playerID string) (*PlayerRecord, error)
	GetSeasonsFunc             func() ([]SeasonRecord, error)
	GetMatchFunc               func(matchID string) (*MatchRecord, error)
	GetMatchesFunc             func(q MatchQuery) ([]*MatchRecord, error)
	UpdateDelayNegotiationFunc func(match *MatchRecord) error
	IsKnownPlayerFunc          func(playerID string) bool
	ClearFunc                  func()

	// Call records
	UpsertPlayersCalls          [][]PlayerRecord
	UpsertSeasonsCalls          [][]SeasonRecord
	UpsertMatchCalls            []*MatchRecord
	UpsertMatchesCalls          [][]*MatchRecord
	GetPlayersCalls             []string
	GetMatchCalls               []string
	GetMatchesCalls             []MatchQuery
	UpdateDelayNegotiationCalls []*MatchRecord
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = nil
	m.UpsertSeasonsCalls = nil
	m.UpsertMatchCalls = nil
	m.UpsertMatchesCalls = nil
	m.GetPlayersCalls = nil
	m.GetMatchCalls = nil
	m.GetMatchesCalls = nil
	m.UpdateDelayNegotiationCalls = nil
}

func (m *MockStore) UpsertPlayers(players []PlayerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) UpsertSeasons(seasons []SeasonRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertSeasonsCalls = append(m.UpsertSeasonsCalls, seasons)
	if m.UpsertSeasonsFunc != nil {
		return m.UpsertSeasonsFunc(seasons)
	}
	return nil
}

func (m *MockStore) UpsertMatch(match *MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMatchCalls = append(m.UpsertMatchCalls, match)
	if m.UpsertMatchFunc != nil {
		return m.UpsertMatchFunc(match)
	}
	return nil
}

func (m *MockStore) UpsertMatches(matches []*MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMatchesCalls = append(m.UpsertMatchesCalls, matches)
	if m.UpsertMatchesFunc != nil {
		return m.UpsertMatchesFunc(matches)
	}
	return nil
}

func (m *MockStore) GetPlayers(boxID string) ([]PlayerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, boxID)
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(boxID)
	}
	return nil, nil
}

func (m *MockStore) GetPlayer(playerID string) (*PlayerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) GetSeasons() ([]SeasonRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSeasonsFunc != nil {
		return m.GetSeasonsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetMatch(matchID string) (*MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchCalls = append(m.GetMatchCalls, matchID)
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) GetMatches(q MatchQuery) ([]*MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchesCalls = append(m.GetMatchesCalls, q)
	if m.GetMatchesFunc != nil {
		return m.GetMatchesFunc(q)
	}
	return nil, nil
}

func (m *MockStore) UpdateDelayNegotiation(match *MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateDelayNegotiationCalls = append(m.UpdateDelayNegotiationCalls, match)
	if m.UpdateDelayNegotiationFunc != nil {
		return m.UpdateDelayNegotiationFunc(match)
	}
	return nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
