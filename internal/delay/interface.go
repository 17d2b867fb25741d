package delay

import "github.com/tibaulingg/boxleague/internal/league"

// Store defines the persistence operations required by the delay service.
type Store interface {
	GetMatch(matchID string) (*league.MatchRecord, error)
	UpdateDelayNegotiation(match *league.MatchRecord) error
}

// Notifier defines the notification operations required by the delay service.
// This keeps the delay package decoupled from the main notifier interface.
type Notifier interface {
	SendDelayRequested(match *league.MatchRecord, requesterID string, dryRun bool) error
	SendDelayResolved(match *league.MatchRecord, state State, dryRun bool) error
}
