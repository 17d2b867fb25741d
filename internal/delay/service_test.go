package delay_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tibaulingg/boxleague/internal/delay"
	"github.com/tibaulingg/boxleague/internal/league"
	"github.com/tibaulingg/boxleague/internal/metrics"
	"github.com/tibaulingg/boxleague/internal/pubsub"
)

// mockNotifier records delay notifications.
type mockNotifier struct {
	requestedCalls []string
	resolvedCalls  []delay.State
	err            error
}

func (n *mockNotifier) SendDelayRequested(match *league.MatchRecord, requesterID string, dryRun bool) error {
	n.requestedCalls = append(n.requestedCalls, requesterID)
	return n.err
}

func (n *mockNotifier) SendDelayResolved(match *league.MatchRecord, state delay.State, dryRun bool) error {
	n.resolvedCalls = append(n.resolvedCalls, state)
	return n.err
}

type serviceFixture struct {
	store    *league.MockStore
	notifier *mockNotifier
	metrics  *metrics.Mock
	pubsub   *pubsub.MockPubSubClient
	service  *delay.Service
}

func newServiceFixture(match league.MatchRecord) *serviceFixture {
	f := &serviceFixture{
		store:    league.NewMock(),
		notifier: &mockNotifier{},
		metrics:  metrics.NewMock(),
		pubsub:   pubsub.NewMock("test-project"),
	}
	f.store.GetMatchFunc = func(matchID string) (*league.MatchRecord, error) {
		m := match
		return &m, nil
	}
	f.service = delay.New(f.store, f.notifier, f.metrics, f.pubsub)
	return f
}

func TestServiceRequest(t *testing.T) {
	t.Run("persists, notifies and counts", func(t *testing.T) {
		f := newServiceFixture(scheduledMatch())

		updated, err := f.service.Request("match-1", "alice", false)
		require.NoError(t, err)
		assert.Equal(t, league.DelayStatusPending, updated.DelayedStatus)

		require.Len(t, f.store.UpdateDelayNegotiationCalls, 1)
		assert.Equal(t, league.DelayStatusPending, f.store.UpdateDelayNegotiationCalls[0].DelayedStatus)
		assert.Equal(t, []string{"alice"}, f.notifier.requestedCalls)
		assert.Equal(t, 1, f.metrics.DelayRequestedCount)
		assert.Empty(t, f.pubsub.SendMessageCalls)
	})

	t.Run("invalid transition writes nothing", func(t *testing.T) {
		f := newServiceFixture(scheduledMatch())

		_, err := f.service.Request("match-1", "mallory", false)
		assert.ErrorIs(t, err, delay.ErrInvalidTransition)
		assert.Empty(t, f.store.UpdateDelayNegotiationCalls)
		assert.Empty(t, f.notifier.requestedCalls)
		assert.Equal(t, 0, f.metrics.DelayRequestedCount)
		assert.Equal(t, 1, f.metrics.DelayInvalidCount)
	})

	t.Run("dry run skips persistence and notification", func(t *testing.T) {
		f := newServiceFixture(scheduledMatch())

		updated, err := f.service.Request("match-1", "alice", true)
		require.NoError(t, err)
		assert.Equal(t, league.DelayStatusPending, updated.DelayedStatus)
		assert.Empty(t, f.store.UpdateDelayNegotiationCalls)
		assert.Empty(t, f.notifier.requestedCalls)
	})
}

func TestServiceAccept(t *testing.T) {
	t.Run("publishes the accepted event", func(t *testing.T) {
		f := newServiceFixture(pendingMatch("alice"))

		updated, err := f.service.Accept("match-1", "bob", false)
		require.NoError(t, err)
		assert.Equal(t, league.DelayStatusAccepted, updated.DelayedStatus)

		assert.Equal(t, []delay.State{delay.StateAccepted}, f.notifier.resolvedCalls)
		assert.Equal(t, 1, f.metrics.DelayAcceptedCount)
		require.Len(t, f.pubsub.SendMessageCalls, 1)
		assert.Equal(t, string(pubsub.EventDelayAccepted), f.pubsub.SendMessageCalls[0].Topic)
	})

	t.Run("notification failure does not fail the transition", func(t *testing.T) {
		f := newServiceFixture(pendingMatch("alice"))
		f.notifier.err = errors.New("slack down")

		_, err := f.service.Accept("match-1", "bob", false)
		require.NoError(t, err)
		require.Len(t, f.store.UpdateDelayNegotiationCalls, 1)
	})
}

func TestServiceRejectAndCancel(t *testing.T) {
	t.Run("reject", func(t *testing.T) {
		f := newServiceFixture(pendingMatch("alice"))

		updated, err := f.service.Reject("match-1", "bob", false)
		require.NoError(t, err)
		assert.Equal(t, league.DelayStatusRejected, updated.DelayedStatus)
		assert.Equal(t, []delay.State{delay.StateRejected}, f.notifier.resolvedCalls)
		assert.Equal(t, 1, f.metrics.DelayRejectedCount)
		assert.Empty(t, f.pubsub.SendMessageCalls)
	})

	t.Run("cancel", func(t *testing.T) {
		f := newServiceFixture(pendingMatch("alice"))

		updated, err := f.service.Cancel("match-1", "alice", false)
		require.NoError(t, err)
		assert.Equal(t, league.DelayStatusCancelled, updated.DelayedStatus)
		assert.Equal(t, 1, f.metrics.DelayCancelledCount)
	})
}

func TestServiceErrors(t *testing.T) {
	t.Run("store load failure propagates", func(t *testing.T) {
		f := newServiceFixture(scheduledMatch())
		loadErr := errors.New("db closed")
		f.store.GetMatchFunc = func(matchID string) (*league.MatchRecord, error) {
			return nil, loadErr
		}

		_, err := f.service.Request("match-1", "alice", false)
		assert.ErrorIs(t, err, loadErr)
	})

	t.Run("store write failure propagates", func(t *testing.T) {
		f := newServiceFixture(scheduledMatch())
		writeErr := errors.New("disk full")
		f.store.UpdateDelayNegotiationFunc = func(match *league.MatchRecord) error {
			return writeErr
		}

		_, err := f.service.Request("match-1", "alice", false)
		assert.ErrorIs(t, err, writeErr)
		assert.Equal(t, 0, f.metrics.DelayRequestedCount)
		assert.Empty(t, f.notifier.requestedCalls)
	})
}
