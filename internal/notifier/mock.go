package notifier

import (
	"sync"

	"github.com/tibaulingg/boxleague/internal/analytics"
	"github.com/tibaulingg/boxleague/internal/delay"
	"github.com/tibaulingg/boxleague/internal/league"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendDelayRequestedCalls []struct {
		Match       *league.MatchRecord
		RequesterID string
	}
	SendDelayResolvedCalls []struct {
		Match *league.MatchRecord
		State delay.State
	}
	SendStandingsCalls []struct {
		BoxName   string
		Standings []league.BoxStanding
	}
	SendPlayerSnapshotCalls []struct {
		Player   *league.PlayerRecord
		Snapshot *analytics.Snapshot
	}
	SendPlayerNotFoundCalls []string

	// Spies for format functions
	FormatStandingsResponseFunc      func(boxName string, standings []league.BoxStanding, roster []league.PlayerRecord) (any, error)
	FormatPlayerSnapshotResponseFunc func(player *league.PlayerRecord, snapshot *analytics.Snapshot) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Error to return from all Send methods
	SendErr error
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDelayRequestedCalls = nil
	m.SendDelayResolvedCalls = nil
	m.SendStandingsCalls = nil
	m.SendPlayerSnapshotCalls = nil
	m.SendPlayerNotFoundCalls = nil
}

func (m *Mock) SendDelayRequested(match *league.MatchRecord, requesterID string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDelayRequestedCalls = append(m.SendDelayRequestedCalls, struct {
		Match       *league.MatchRecord
		RequesterID string
	}{match, requesterID})
	return m.SendErr
}

func (m *Mock) SendDelayResolved(match *league.MatchRecord, state delay.State, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDelayResolvedCalls = append(m.SendDelayResolvedCalls, struct {
		Match *league.MatchRecord
		State delay.State
	}{match, state})
	return m.SendErr
}

func (m *Mock) SendStandings(boxName string, standings []league.BoxStanding, roster []league.PlayerRecord, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, struct {
		BoxName   string
		Standings []league.BoxStanding
	}{boxName, standings})
	return m.SendErr
}

func (m *Mock) SendPlayerSnapshot(player *league.PlayerRecord, snapshot *analytics.Snapshot, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerSnapshotCalls = append(m.SendPlayerSnapshotCalls, struct {
		Player   *league.PlayerRecord
		Snapshot *analytics.Snapshot
	}{player, snapshot})
	return m.SendErr
}

func (m *Mock) SendPlayerNotFound(query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerNotFoundCalls = append(m.SendPlayerNotFoundCalls, query)
	return m.SendErr
}

func (m *Mock) FormatStandingsResponse(boxName string, standings []league.BoxStanding, roster []league.PlayerRecord) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(boxName, standings, roster)
	}
	return "formatted_standings", nil
}

func (m *Mock) FormatPlayerSnapshotResponse(player *league.PlayerRecord, snapshot *analytics.Snapshot) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerSnapshotResponseFunc != nil {
		return m.FormatPlayerSnapshotResponseFunc(player, snapshot)
	}
	return "formatted_player_snapshot", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return "formatted_player_not_found", nil
}
