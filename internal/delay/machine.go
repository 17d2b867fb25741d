package delay

import (
	"fmt"
	"time"

	"github.com/tibaulingg/boxleague/internal/league"
	"github.com/tibaulingg/boxleague/internal/outcome"
)

// StateOf derives the negotiation state from a match record. A record with no
// explicit status but a requested-at timestamp and no resolved-at timestamp is
// a legacy shape that still means pending and must be supported.
func StateOf(m league.MatchRecord) State {
	switch m.DelayedStatus {
	case league.DelayStatusPending:
		return StatePending
	case league.DelayStatusAccepted:
		return StateAccepted
	case league.DelayStatusRejected:
		return StateRejected
	case league.DelayStatusCancelled:
		return StateCancelled
	}
	if m.DelayedRequestedAt != nil && m.DelayedResolvedAt == nil {
		return StatePending
	}
	return StateNone
}

// IsPending reports whether a request is open for display purposes, including
// the legacy record shape.
func IsPending(m league.MatchRecord) bool {
	return StateOf(m) == StatePending
}

// Request opens a reschedule request on a not-yet-played match. Legal from
// none, rejected or cancelled; a request by a non-participant, or on a match
// that already has a valid score, fails. Returns an updated copy of the record.
func Request(m league.MatchRecord, by string, now time.Time) (league.MatchRecord, error) {
	if !m.HasPlayer(by) {
		return m, fmt.Errorf("%w: player %s is not a participant of match %s", ErrInvalidTransition, by, m.ID)
	}
	if outcome.IsPlayed(m) {
		return m, fmt.Errorf("%w: match %s is already played", ErrInvalidTransition, m.ID)
	}
	switch state := StateOf(m); state {
	case StateNone, StateRejected, StateCancelled:
	default:
		return m, fmt.Errorf("%w: cannot request from state %s", ErrInvalidTransition, state)
	}

	requestedAt := now.Unix()
	m.DelayedRequestedBy = &by
	m.DelayedStatus = league.DelayStatusPending
	m.DelayedRequestedAt = &requestedAt
	m.DelayedResolvedAt = nil
	return m, nil
}

// Accept resolves a pending request. Only the player who did not request the
// delay may accept. The downstream rescheduling (fresh scheduledAt, closing the
// original slot via delayedPlayerId) happens outside the engine.
func Accept(m league.MatchRecord, by string, now time.Time) (league.MatchRecord, error) {
	return resolve(m, by, now, league.DelayStatusAccepted, false)
}

// Reject resolves a pending request negatively. Only the non-requester may reject.
func Reject(m league.MatchRecord, by string, now time.Time) (league.MatchRecord, error) {
	return resolve(m, by, now, league.DelayStatusRejected, false)
}

// Cancel withdraws a pending request. Only the original requester may cancel.
func Cancel(m league.MatchRecord, by string, now time.Time) (league.MatchRecord, error) {
	return resolve(m, by, now, league.DelayStatusCancelled, true)
}

func resolve(m league.MatchRecord, by string, now time.Time, status league.DelayStatus, byRequester bool) (league.MatchRecord, error) {
	if state := StateOf(m); state != StatePending {
		return m, fmt.Errorf("%w: cannot %s from state %s", ErrInvalidTransition, status, state)
	}
	if m.DelayedRequestedBy == nil || !m.HasPlayer(by) {
		return m, fmt.Errorf("%w: player %s may not %s the request on match %s", ErrInvalidTransition, by, status, m.ID)
	}
	isRequester := by == *m.DelayedRequestedBy
	if isRequester != byRequester {
		return m, fmt.Errorf("%w: player %s may not %s the request on match %s", ErrInvalidTransition, by, status, m.ID)
	}

	resolvedAt := now.Unix()
	m.DelayedStatus = status
	m.DelayedResolvedAt = &resolvedAt
	return m, nil
}
