package league

import (
	"database/sql"
	"strings"
	"sync"
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// DelayStatus is the resolution status of a reschedule request attached to a match.
type DelayStatus string

const (
	DelayStatusNone      DelayStatus = ""
	DelayStatusPending   DelayStatus = "pending"
	DelayStatusAccepted  DelayStatus = "accepted"
	DelayStatusRejected  DelayStatus = "rejected"
	DelayStatusCancelled DelayStatus = "cancelled"
)

// NextBoxStatus is a player's stated intent for the next season.
type NextBoxStatus string

const (
	NextBoxUndecided NextBoxStatus = ""
	NextBoxContinue  NextBoxStatus = "continue"
	NextBoxStop      NextBoxStatus = "stop"
)

// SeasonStatus defines the lifecycle state of a season.
type SeasonStatus string

const (
	SeasonStatusUpcoming SeasonStatus = "upcoming"
	SeasonStatusRunning  SeasonStatus = "running"
	SeasonStatusFinished SeasonStatus = "finished"
)

// MatchRecord is one box-league fixture between two players. Optional fields
// are pointers; absence means the upstream system has no value for them.
// At most one of {valid score, no-show, retired, delayed-resolved} marks the
// match as finished; that exclusivity is guaranteed upstream, not enforced here.
type MatchRecord struct {
	ID        string `json:"id"`
	BoxID     string `json:"box_id"`
	SeasonID  string `json:"season_id"`
	PlayerAID string `json:"player_a_id"`
	PlayerBID string `json:"player_b_id"`

	ScoreA *int `json:"score_a,omitempty"`
	ScoreB *int `json:"score_b,omitempty"`

	ScheduledAt *int64 `json:"scheduled_at,omitempty"` // Unix timestamp
	PlayedAt    *int64 `json:"played_at,omitempty"`    // Unix timestamp

	NoShowPlayerID  *string `json:"no_show_player_id,omitempty"`
	RetiredPlayerID *string `json:"retired_player_id,omitempty"`
	DelayedPlayerID *string `json:"delayed_player_id,omitempty"`

	DelayedRequestedBy *string     `json:"delayed_requested_by,omitempty"`
	DelayedStatus      DelayStatus `json:"delayed_status,omitempty"`
	DelayedRequestedAt *int64      `json:"delayed_requested_at,omitempty"`
	DelayedResolvedAt  *int64      `json:"delayed_resolved_at,omitempty"`
}

// HasPlayer reports whether the given player is one of the two participants.
func (m *MatchRecord) HasPlayer(playerID string) bool {
	return playerID != "" && (playerID == m.PlayerAID || playerID == m.PlayerBID)
}

// OpponentOf returns the other participant's id.
func (m *MatchRecord) OpponentOf(playerID string) (string, bool) {
	switch playerID {
	case m.PlayerAID:
		return m.PlayerBID, true
	case m.PlayerBID:
		return m.PlayerAID, true
	}
	return "", false
}

// EffectiveTime returns the timestamp a match is ordered by: the played time
// when present, otherwise the scheduled time.
func (m *MatchRecord) EffectiveTime() (int64, bool) {
	if m.PlayedAt != nil {
		return *m.PlayedAt, true
	}
	if m.ScheduledAt != nil {
		return *m.ScheduledAt, true
	}
	return 0, false
}

// BoxMembership is a player's assignment to a box for a season.
type BoxMembership struct {
	BoxID         string        `json:"box_id"`
	BoxName       string        `json:"box_name"`
	SeasonID      string        `json:"season_id"`
	NextBoxStatus NextBoxStatus `json:"next_box_status,omitempty"`
}

// PlayerRecord is a club member as known to the league.
type PlayerRecord struct {
	ID         string         `json:"id"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	Membership *BoxMembership `json:"membership,omitempty"`
}

// FullName joins first and last name, tolerating either being empty.
func (p PlayerRecord) FullName() string {
	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.LastName)
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}

// SeasonRecord is a time-bounded competition period containing multiple boxes.
type SeasonRecord struct {
	ID        string       `json:"id"`
	StartDate int64        `json:"start_date"` // Unix timestamp
	EndDate   int64        `json:"end_date"`   // Unix timestamp
	Status    SeasonStatus `json:"status"`
}

// Contains reports whether the given timestamp falls inside the season.
func (s SeasonRecord) Contains(ts int64) bool {
	return ts >= s.StartDate && ts <= s.EndDate
}

// BoxStanding is one row of a box's ranked table.
type BoxStanding struct {
	PlayerID      string `json:"player_id"`
	Points        int    `json:"points"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	MatchesPlayed int    `json:"matches_played"`
	Position      int    `json:"position"` // 1-based, assigned after sort
}

// MatchQuery filters matches by season, box and/or player. Empty fields match everything.
type MatchQuery struct {
	SeasonID string
	BoxID    string
	PlayerID string
}
