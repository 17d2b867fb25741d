package delay

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/tibaulingg/boxleague/internal/league"
	"github.com/tibaulingg/boxleague/internal/metrics"
	"github.com/tibaulingg/boxleague/internal/pubsub"
)

// Service drives reschedule negotiations end to end: the pure state machine
// decides legality, the store persists the accepted outcome, and the notifier
// tells the box channel. Persistence failures propagate unchanged; an invalid
// transition surfaces as ErrInvalidTransition with nothing written.
type Service struct {
	store    Store
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	now      func() time.Time
}

// New creates a new delay negotiation Service.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
		now:      time.Now,
	}
}

// Request opens a reschedule request on behalf of a player.
func (s *Service) Request(matchID, playerID string, dryRun bool) (*league.MatchRecord, error) {
	return s.transition(matchID, playerID, ActionRequest, dryRun, func(m league.MatchRecord, now time.Time) (league.MatchRecord, error) {
		return Request(m, playerID, now)
	})
}

// Accept resolves a pending request positively on behalf of the opponent.
func (s *Service) Accept(matchID, playerID string, dryRun bool) (*league.MatchRecord, error) {
	return s.transition(matchID, playerID, ActionAccept, dryRun, func(m league.MatchRecord, now time.Time) (league.MatchRecord, error) {
		return Accept(m, playerID, now)
	})
}

// Reject resolves a pending request negatively on behalf of the opponent.
func (s *Service) Reject(matchID, playerID string, dryRun bool) (*league.MatchRecord, error) {
	return s.transition(matchID, playerID, ActionReject, dryRun, func(m league.MatchRecord, now time.Time) (league.MatchRecord, error) {
		return Reject(m, playerID, now)
	})
}

// Cancel withdraws a pending request on behalf of the requester.
func (s *Service) Cancel(matchID, playerID string, dryRun bool) (*league.MatchRecord, error) {
	return s.transition(matchID, playerID, ActionCancel, dryRun, func(m league.MatchRecord, now time.Time) (league.MatchRecord, error) {
		return Cancel(m, playerID, now)
	})
}

func (s *Service) transition(matchID, playerID string, action Action, dryRun bool, apply func(league.MatchRecord, time.Time) (league.MatchRecord, error)) (*league.MatchRecord, error) {
	match, err := s.store.GetMatch(matchID)
	if err != nil {
		log.Error("Failed to load match for delay transition", "error", err, "matchID", matchID, "action", action)
		return nil, err
	}

	updated, err := apply(*match, s.now())
	if err != nil {
		s.metrics.IncDelayInvalid()
		log.Warn("Rejected delay transition", "error", err, "matchID", matchID, "action", action, "player", playerID)
		return nil, err
	}

	if dryRun {
		log.Info("[Dry Run] Would persist delay transition", "matchID", matchID, "action", action, "status", updated.DelayedStatus)
		return &updated, nil
	}

	if err := s.store.UpdateDelayNegotiation(&updated); err != nil {
		log.Error("Failed to persist delay transition", "error", err, "matchID", matchID, "action", action)
		return nil, err
	}
	s.recordMetric(action)

	state := StateOf(updated)
	switch action {
	case ActionRequest:
		if err := s.notifier.SendDelayRequested(&updated, playerID, dryRun); err != nil {
			log.Error("Failed to send delay request notification", "error", err, "matchID", matchID)
		}
	default:
		if err := s.notifier.SendDelayResolved(&updated, state, dryRun); err != nil {
			log.Error("Failed to send delay resolution notification", "error", err, "matchID", matchID)
		}
	}

	// Accepted requests kick off external rescheduling of the slot.
	if state == StateAccepted {
		if err := s.pubsub.SendMessage(string(pubsub.EventDelayAccepted), &updated); err != nil {
			log.Error("Failed to publish delay-accepted event", "error", err, "matchID", matchID)
		}
	}

	log.Info("Applied delay transition", "matchID", matchID, "action", action, "state", state)
	return &updated, nil
}

func (s *Service) recordMetric(action Action) {
	switch action {
	case ActionRequest:
		s.metrics.IncDelayRequested()
	case ActionAccept:
		s.metrics.IncDelayAccepted()
	case ActionReject:
		s.metrics.IncDelayRejected()
	case ActionCancel:
		s.metrics.IncDelayCancelled()
	}
}
