package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tibaulingg/boxleague/internal/analytics"
	"github.com/tibaulingg/boxleague/internal/config"
	"github.com/tibaulingg/boxleague/internal/delay"
	"github.com/tibaulingg/boxleague/internal/league"
	"github.com/tibaulingg/boxleague/internal/metrics"
	"github.com/tibaulingg/boxleague/internal/notifier"
	"github.com/tibaulingg/boxleague/internal/pubsub"
	"github.com/tibaulingg/boxleague/internal/refcache"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

type testServer struct {
	server   *Server
	store    *league.MockStore
	metrics  *metrics.Mock
	counters *metrics.MockStore
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
}

func newTestServer() *testServer {
	store := league.NewMock()
	metricsSvc := metrics.NewMock()
	counters := metrics.NewMockStore()
	notifierMock := notifier.NewMock()
	pubsubMock := pubsub.NewMock("test-project")
	cache := refcache.New(store)
	delaySvc := delay.New(store, notifierMock, metricsSvc, pubsubMock)

	server := NewServer(store, cache, delaySvc, metricsSvc, http.NotFoundHandler(), counters, config.Config{}, notifierMock, pubsubMock)
	return &testServer{
		server:   server,
		store:    store,
		metrics:  metricsSvc,
		counters: counters,
		notifier: notifierMock,
		pubsub:   pubsubMock,
	}
}

func (ts *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

func playedMatch(id, playerA, playerB string, scoreA, scoreB int) *league.MatchRecord {
	playedAt := time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC).Unix()
	return &league.MatchRecord{
		ID:        id,
		BoxID:     "box-1",
		SeasonID:  "s1",
		PlayerAID: playerA,
		PlayerBID: playerB,
		ScoreA:    intPtr(scoreA),
		ScoreB:    intPtr(scoreB),
		PlayedAt:  &playedAt,
	}
}

func TestHealthCheckHandler(t *testing.T) {
	ts := newTestServer()
	rec := ts.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK!", rec.Body.String())
}

func TestListMembersHandler(t *testing.T) {
	ts := newTestServer()
	ts.store.GetPlayersFunc = func(boxID string) ([]league.PlayerRecord, error) {
		return []league.PlayerRecord{{ID: "p1", FirstName: "Ada", LastName: "Lovelace"}}, nil
	}

	rec := ts.get(t, "/members?boxID=box-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var players []league.PlayerRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "p1", players[0].ID)
	assert.Equal(t, []string{"box-1"}, ts.store.GetPlayersCalls)
}

func TestListMatchesHandler(t *testing.T) {
	ts := newTestServer()
	ts.store.GetMatchesFunc = func(q league.MatchQuery) ([]*league.MatchRecord, error) {
		return []*league.MatchRecord{playedMatch("m1", "p1", "p2", 3, 1)}, nil
	}

	rec := ts.get(t, "/matches?seasonID=s1&playerID=p1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, ts.store.GetMatchesCalls, 1)
	assert.Equal(t, league.MatchQuery{SeasonID: "s1", PlayerID: "p1"}, ts.store.GetMatchesCalls[0])
}

func TestIngestMatchesHandler(t *testing.T) {
	post := func(ts *testServer, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		ts.server.ServeHTTP(rec, req)
		return rec
	}

	matchJSON := `[{"id":"m1","box_id":"box-1","season_id":"s1","player_a_id":"p1","player_b_id":"p2","score_a":3,"score_b":1}]`

	t.Run("upserts and announces the change", func(t *testing.T) {
		ts := newTestServer()
		rec := post(ts, "/ingest", matchJSON)
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, ts.store.UpsertMatchesCalls, 1)
		require.Len(t, ts.pubsub.SendMessageCalls, 1)
		assert.Equal(t, string(pubsub.EventStandingsChanged), ts.pubsub.SendMessageCalls[0].Topic)
	})

	t.Run("rejects GET", func(t *testing.T) {
		ts := newTestServer()
		rec := ts.get(t, "/ingest")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		ts := newTestServer()
		rec := post(ts, "/ingest", `[]`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		ts := newTestServer()
		rec := post(ts, "/ingest?dry_run=true", matchJSON)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, ts.store.UpsertMatchesCalls)
		assert.Empty(t, ts.pubsub.SendMessageCalls)
	})
}

func TestStandingsHandler(t *testing.T) {
	t.Run("requires boxID", func(t *testing.T) {
		ts := newTestServer()
		rec := ts.get(t, "/standings")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("computes the table", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetMatchesFunc = func(q league.MatchQuery) ([]*league.MatchRecord, error) {
			return []*league.MatchRecord{
				playedMatch("m1", "p1", "p2", 3, 1),
				playedMatch("m2", "p1", "p2", 3, 0),
			}, nil
		}

		rec := ts.get(t, "/standings?boxID=box-1")
		require.Equal(t, http.StatusOK, rec.Code)

		var table []league.BoxStanding
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
		require.Len(t, table, 2)
		assert.Equal(t, "p1", table[0].PlayerID)
		assert.Equal(t, 1, table[0].Position)
		assert.Equal(t, 2, table[0].Wins)
		assert.Equal(t, 1, ts.metrics.StandingsComputedCount)
	})

	t.Run("limit truncates the table", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetMatchesFunc = func(q league.MatchQuery) ([]*league.MatchRecord, error) {
			return []*league.MatchRecord{playedMatch("m1", "p1", "p2", 3, 1)}, nil
		}

		rec := ts.get(t, "/standings?boxID=box-1&limit=1")
		require.Equal(t, http.StatusOK, rec.Code)

		var table []league.BoxStanding
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
		assert.Len(t, table, 1)
	})

	t.Run("notify sends the table to the box channel", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetMatchesFunc = func(q league.MatchQuery) ([]*league.MatchRecord, error) {
			return []*league.MatchRecord{playedMatch("m1", "p1", "p2", 3, 1)}, nil
		}

		rec := ts.get(t, "/standings?boxID=box-1&notify=true")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, ts.notifier.SendStandingsCalls, 1)
		assert.Len(t, ts.notifier.SendStandingsCalls[0].Standings, 2)
	})
}

func TestPlayerAnalyticsHandler(t *testing.T) {
	t.Run("requires playerID", func(t *testing.T) {
		ts := newTestServer()
		rec := ts.get(t, "/player-analytics")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown player is a 404", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetPlayerFunc = func(playerID string) (*league.PlayerRecord, error) {
			return nil, fmt.Errorf("player %s not found", playerID)
		}

		rec := ts.get(t, "/player-analytics?playerID=ghost")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("builds a snapshot and records metrics", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetPlayerFunc = func(playerID string) (*league.PlayerRecord, error) {
			return &league.PlayerRecord{ID: playerID}, nil
		}
		ts.store.GetPlayersFunc = func(boxID string) ([]league.PlayerRecord, error) {
			return []league.PlayerRecord{{ID: "p1"}, {ID: "p2"}}, nil
		}
		ts.store.GetMatchesFunc = func(q league.MatchQuery) ([]*league.MatchRecord, error) {
			return []*league.MatchRecord{
				playedMatch("m1", "p1", "p2", 3, 1),
				playedMatch("m2", "p1", "p2", 3, 0),
			}, nil
		}

		rec := ts.get(t, "/player-analytics?playerID=p1")
		require.Equal(t, http.StatusOK, rec.Code)

		var snapshot analytics.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
		assert.Equal(t, "p1", snapshot.PlayerID)
		assert.Equal(t, analytics.ResultWin, snapshot.CurrentStreak.Type)
		assert.Equal(t, 2, snapshot.CurrentStreak.Count)
		assert.Equal(t, 1, ts.metrics.AnalyticsSnapshotsCount)
		assert.Len(t, ts.metrics.SnapshotDurations, 1)
	})

	t.Run("ranking sees matches the player was not part of", func(t *testing.T) {
		ts := newTestServer()
		year := time.Now().UTC().Year()
		season := league.SeasonRecord{
			ID:        "s1",
			StartDate: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Unix(),
			EndDate:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).Unix(),
			Status:    league.SeasonStatusRunning,
		}
		played := func(id, playerA, playerB string, day int) *league.MatchRecord {
			m := playedMatch(id, playerA, playerB, 3, 1)
			playedAt := time.Date(year, time.March, day, 19, 0, 0, 0, time.UTC).Unix()
			m.PlayedAt = &playedAt
			return m
		}
		// p1 has one win (3 pts); p3 has two wins over p4 (6 pts) that p1 never
		// played in. p1 must still rank second.
		all := []*league.MatchRecord{
			played("m1", "p1", "p2", 10),
			played("m2", "p3", "p4", 11),
			played("m3", "p3", "p4", 12),
		}

		ts.store.GetPlayerFunc = func(playerID string) (*league.PlayerRecord, error) {
			return &league.PlayerRecord{ID: playerID}, nil
		}
		ts.store.GetPlayersFunc = func(boxID string) ([]league.PlayerRecord, error) {
			return []league.PlayerRecord{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}, {ID: "p4"}}, nil
		}
		ts.store.GetSeasonsFunc = func() ([]league.SeasonRecord, error) {
			return []league.SeasonRecord{season}, nil
		}
		// Filter like the real store so a player-scoped query would hide m2/m3.
		ts.store.GetMatchesFunc = func(q league.MatchQuery) ([]*league.MatchRecord, error) {
			var out []*league.MatchRecord
			for _, m := range all {
				if q.PlayerID != "" && !m.HasPlayer(q.PlayerID) {
					continue
				}
				out = append(out, m)
			}
			return out, nil
		}

		rec := ts.get(t, "/player-analytics?playerID=p1")
		require.Equal(t, http.StatusOK, rec.Code)

		var snapshot analytics.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
		assert.Equal(t, 3, snapshot.TotalPointsThisYear)
		assert.Equal(t, 2, snapshot.GlobalRankingPosition)
	})

	t.Run("notify on unknown player sends a not-found message", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetPlayerFunc = func(playerID string) (*league.PlayerRecord, error) {
			return nil, fmt.Errorf("player %s not found", playerID)
		}

		rec := ts.get(t, "/player-analytics?playerID=ghost&notify=true")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, []string{"ghost"}, ts.notifier.SendPlayerNotFoundCalls)
	})
}

func TestDelayTransitionHandler(t *testing.T) {
	scheduled := func() *league.MatchRecord {
		scheduledAt := time.Date(2025, time.March, 20, 19, 0, 0, 0, time.UTC).Unix()
		return &league.MatchRecord{
			ID: "m1", BoxID: "box-1", SeasonID: "s1",
			PlayerAID: "p1", PlayerBID: "p2",
			ScheduledAt: &scheduledAt,
		}
	}

	t.Run("requires matchID and playerID", func(t *testing.T) {
		ts := newTestServer()
		rec := ts.get(t, "/delay/request?matchID=m1")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("request persists and returns the updated match", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetMatchFunc = func(matchID string) (*league.MatchRecord, error) {
			return scheduled(), nil
		}

		rec := ts.get(t, "/delay/request?matchID=m1&playerID=p1")
		require.Equal(t, http.StatusOK, rec.Code)

		var updated league.MatchRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, league.DelayStatusPending, updated.DelayedStatus)
		require.Len(t, ts.store.UpdateDelayNegotiationCalls, 1)
	})

	t.Run("illegal transition is a conflict", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetMatchFunc = func(matchID string) (*league.MatchRecord, error) {
			return scheduled(), nil
		}

		// Accepting with no pending request is illegal.
		rec := ts.get(t, "/delay/accept?matchID=m1&playerID=p2")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Empty(t, ts.store.UpdateDelayNegotiationCalls)
	})

	t.Run("missing match is a 404", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetMatchFunc = func(matchID string) (*league.MatchRecord, error) {
			return nil, fmt.Errorf("match %s not found", matchID)
		}

		rec := ts.get(t, "/delay/request?matchID=m404&playerID=p1")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("dry run skips persistence", func(t *testing.T) {
		ts := newTestServer()
		ts.store.GetMatchFunc = func(matchID string) (*league.MatchRecord, error) {
			return scheduled(), nil
		}

		rec := ts.get(t, "/delay/request?matchID=m1&playerID=p1&dry_run=true")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, ts.store.UpdateDelayNegotiationCalls)
	})
}

func TestCountersHandler(t *testing.T) {
	ts := newTestServer()

	ts.get(t, "/members")
	ts.get(t, "/members")
	rec := ts.get(t, "/counters")
	require.Equal(t, http.StatusOK, rec.Code)

	var counters map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counters))
	assert.Equal(t, 2, counters["endpoint:/members"])
}

func TestClearStoreHandler(t *testing.T) {
	ts := newTestServer()
	cleared := false
	ts.store.ClearFunc = func() { cleared = true }

	rec := ts.get(t, "/clear")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, cleared)
}
