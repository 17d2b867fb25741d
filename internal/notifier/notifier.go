package notifier

import (
	"github.com/tibaulingg/boxleague/internal/analytics"
	"github.com/tibaulingg/boxleague/internal/delay"
	"github.com/tibaulingg/boxleague/internal/league"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For delay negotiations
	SendDelayRequested(match *league.MatchRecord, requesterID string, dryRun bool) error
	SendDelayResolved(match *league.MatchRecord, state delay.State, dryRun bool) error

	// For box tables and player cards
	SendStandings(boxName string, standings []league.BoxStanding, roster []league.PlayerRecord, dryRun bool) error
	SendPlayerSnapshot(player *league.PlayerRecord, snapshot *analytics.Snapshot, dryRun bool) error
	SendPlayerNotFound(query string, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(boxName string, standings []league.BoxStanding, roster []league.PlayerRecord) (any, error)
	FormatPlayerSnapshotResponse(player *league.PlayerRecord, snapshot *analytics.Snapshot) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
