package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tibaulingg/boxleague/internal/analytics"
	"github.com/tibaulingg/boxleague/internal/league"
)

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

func commandRoster() []league.PlayerRecord {
	return []league.PlayerRecord{
		{ID: "p1", FirstName: "Ada", LastName: "Lovelace", Membership: &league.BoxMembership{BoxID: "box-1", BoxName: "Box One"}},
		{ID: "p2", FirstName: "Grace", LastName: "Hopper", Membership: &league.BoxMembership{BoxID: "box-1", BoxName: "Box One"}},
	}
}

func TestStandingsCommandHandler(t *testing.T) {
	t.Run("responds with the formatted table", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetPlayersFunc = func(boxID string) ([]league.PlayerRecord, error) {
			return commandRoster(), nil
		}
		ts.store.GetMatchesFunc = func(q league.MatchQuery) ([]*league.MatchRecord, error) {
			return []*league.MatchRecord{playedMatch("m1", "p1", "p2", 3, 1)}, nil
		}

		var gotBox string
		var gotRows int
		ts.notifier.FormatStandingsResponseFunc = func(boxName string, standings []league.BoxStanding, roster []league.PlayerRecord) (any, error) {
			gotBox = boxName
			gotRows = len(standings)
			return slack.NewBlockMessage(), nil
		}

		rec := ts.postForm(t, "/slack/commands/standings", url.Values{"text": {"Box One"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "Box One", gotBox)
		assert.Equal(t, 2, gotRows)
		assert.Equal(t, 1, ts.metrics.StandingsComputedCount)
	})

	t.Run("matches a box by id", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetPlayersFunc = func(boxID string) ([]league.PlayerRecord, error) {
			return commandRoster(), nil
		}
		ts.store.GetMatchesFunc = func(q league.MatchQuery) ([]*league.MatchRecord, error) {
			assert.Equal(t, "box-1", q.BoxID)
			return nil, nil
		}
		ts.notifier.FormatStandingsResponseFunc = func(boxName string, standings []league.BoxStanding, roster []league.PlayerRecord) (any, error) {
			return slack.NewBlockMessage(), nil
		}

		rec := ts.postForm(t, "/slack/commands/standings", url.Values{"text": {"box-1"}})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown box is a bad request", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetPlayersFunc = func(boxID string) ([]league.PlayerRecord, error) {
			return commandRoster(), nil
		}

		rec := ts.postForm(t, "/slack/commands/standings", url.Values{"text": {"box-99"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPlayerCardCommandHandler(t *testing.T) {
	t.Run("responds with the formatted card", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetPlayersFunc = func(boxID string) ([]league.PlayerRecord, error) {
			return commandRoster(), nil
		}
		ts.store.GetMatchesFunc = func(q league.MatchQuery) ([]*league.MatchRecord, error) {
			return []*league.MatchRecord{playedMatch("m1", "p1", "p2", 3, 1)}, nil
		}

		var gotPlayerID string
		ts.notifier.FormatPlayerSnapshotResponseFunc = func(player *league.PlayerRecord, snapshot *analytics.Snapshot) (any, error) {
			gotPlayerID = player.ID
			return slack.NewBlockMessage(), nil
		}

		rec := ts.postForm(t, "/slack/commands/player", url.Values{"text": {"ada lovelace"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "p1", gotPlayerID)
		assert.Equal(t, 1, ts.metrics.AnalyticsSnapshotsCount)
	})

	t.Run("unknown player gets a not-found card", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetPlayersFunc = func(boxID string) ([]league.PlayerRecord, error) {
			return commandRoster(), nil
		}

		var gotQuery string
		ts.notifier.FormatPlayerNotFoundResponseFunc = func(query string) (any, error) {
			gotQuery = query
			return slack.NewBlockMessage(), nil
		}

		rec := ts.postForm(t, "/slack/commands/player", url.Values{"text": {"Alan Kay"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Alan Kay", gotQuery)
	})

	t.Run("requires a player name", func(t *testing.T) {
		ts := newTestServer()
		rec := ts.postForm(t, "/slack/commands/player", url.Values{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
