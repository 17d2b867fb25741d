package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tibaulingg/boxleague/internal/analytics"
	"github.com/tibaulingg/boxleague/internal/delay"
	"github.com/tibaulingg/boxleague/internal/league"
	"github.com/tibaulingg/boxleague/internal/pubsub"
	"github.com/tibaulingg/boxleague/internal/standings"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		s.Cache.Invalidate()
		// Downstream caches of derived data are stale now too.
		if err := s.PubSub.SendMessage(string(pubsub.EventRefreshAnalytics), nil); err != nil {
			log.Error("Failed to publish refresh-analytics event", "error", err)
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

// CountersHandler exposes the persistent per-endpoint hit counters.
func (s *Server) CountersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			log.Error("Failed to load endpoint counters", "error", err)
			http.Error(w, "Failed to load counters", http.StatusInternalServerError)
			return
		}
		writeJSON(w, counters)
	}
}

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boxID := r.URL.Query().Get("boxID")
		forceRefresh := r.URL.Query().Get("force_refresh") == "true"

		players, err := s.Cache.Players(forceRefresh, boxID)
		if err != nil {
			log.Error("Failed to list members", "error", err, "boxID", boxID)
			http.Error(w, "Failed to list members", http.StatusInternalServerError)
			return
		}
		writeJSON(w, players)
	}
}

func (s *Server) ListSeasonsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forceRefresh := r.URL.Query().Get("force_refresh") == "true"

		seasons, err := s.Cache.Seasons(forceRefresh)
		if err != nil {
			log.Error("Failed to list seasons", "error", err)
			http.Error(w, "Failed to list seasons", http.StatusInternalServerError)
			return
		}
		writeJSON(w, seasons)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := league.MatchQuery{
			SeasonID: r.URL.Query().Get("seasonID"),
			BoxID:    r.URL.Query().Get("boxID"),
			PlayerID: r.URL.Query().Get("playerID"),
		}

		matches, err := s.Cache.Matches(q)
		if err != nil {
			log.Error("Failed to list matches", "error", err)
			http.Error(w, "Failed to list matches", http.StatusInternalServerError)
			return
		}
		writeJSON(w, matches)
	}
}

// IngestMatchesHandler upserts a batch of match records, typically posted by
// the upstream booking sync. Successful writes invalidate the reference cache
// and announce the change for downstream recomputation.
func (s *Server) IngestMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var matches []*league.MatchRecord
		if err := json.NewDecoder(r.Body).Decode(&matches); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if len(matches) == 0 {
			http.Error(w, "No matches in request body", http.StatusBadRequest)
			return
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would upsert matches", "count", len(matches))
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Would ingest %d matches.", len(matches))
			return
		}

		if err := s.Store.UpsertMatches(matches); err != nil {
			log.Error("Failed to upsert ingested matches", "error", err)
			http.Error(w, "Failed to save matches", http.StatusInternalServerError)
			return
		}
		s.Cache.Invalidate()

		if err := s.PubSub.SendMessage(string(pubsub.EventStandingsChanged), matches); err != nil {
			log.Error("Failed to publish standings-changed event", "error", err)
		}

		log.Info("Ingested matches", "count", len(matches))
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Ingested %d matches.", len(matches))
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boxID := r.URL.Query().Get("boxID")
		if boxID == "" {
			http.Error(w, "Missing 'boxID' parameter", http.StatusBadRequest)
			return
		}
		seasonID := r.URL.Query().Get("seasonID")

		matches, err := s.Cache.Matches(league.MatchQuery{SeasonID: seasonID, BoxID: boxID})
		if err != nil {
			log.Error("Failed to load matches for standings", "error", err, "boxID", boxID)
			http.Error(w, "Failed to compute standings", http.StatusInternalServerError)
			return
		}

		table := standings.Compute(derefMatches(matches))
		s.Metrics.IncStandingsComputed()

		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 0 {
				http.Error(w, "Invalid 'limit' parameter", http.StatusBadRequest)
				return
			}
			if limit < len(table) {
				table = table[:limit]
			}
		}

		if r.URL.Query().Get("notify") == "true" {
			roster, err := s.Cache.Players(false, boxID)
			if err != nil {
				log.Error("Failed to load roster for standings notification", "error", err, "boxID", boxID)
			} else if err := s.Notifier.SendStandings(boxName(roster, boxID), table, roster, isDryRunFromContext(r)); err != nil {
				log.Error("Failed to send standings notification", "error", err, "boxID", boxID)
			}
		}

		writeJSON(w, table)
	}
}

func (s *Server) PlayerAnalyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "Missing 'playerID' parameter", http.StatusBadRequest)
			return
		}
		forceRefresh := r.URL.Query().Get("force_refresh") == "true"

		player, err := s.Store.GetPlayer(playerID)
		if err != nil {
			log.Warn("Player not found for analytics", "error", err, "playerID", playerID)
			if r.URL.Query().Get("notify") == "true" {
				if err := s.Notifier.SendPlayerNotFound(playerID, isDryRunFromContext(r)); err != nil {
					log.Error("Failed to send player not found notification", "error", err, "playerID", playerID)
				}
			}
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}

		roster, err := s.Cache.Players(forceRefresh, "")
		if err != nil {
			http.Error(w, "Failed to load players", http.StatusInternalServerError)
			return
		}
		seasons, err := s.Cache.Seasons(forceRefresh)
		if err != nil {
			http.Error(w, "Failed to load seasons", http.StatusInternalServerError)
			return
		}
		// The aggregator needs the full league match set: the global ranking
		// scores every roster player, not just the target.
		matches, err := s.Cache.Matches(league.MatchQuery{})
		if err != nil {
			http.Error(w, "Failed to load matches", http.StatusInternalServerError)
			return
		}

		start := time.Now()
		snapshot := analytics.BuildSnapshot(playerID, matches, roster, seasons, time.Now())
		s.Metrics.IncAnalyticsSnapshots()
		s.Metrics.ObserveSnapshotDuration(time.Since(start).Seconds())

		if r.URL.Query().Get("notify") == "true" {
			if err := s.Notifier.SendPlayerSnapshot(player, &snapshot, isDryRunFromContext(r)); err != nil {
				log.Error("Failed to send player snapshot notification", "error", err, "playerID", playerID)
			}
		}

		writeJSON(w, snapshot)
	}
}

// DelayTransitionHandler serves all four delay negotiation endpoints; the
// action decides which service method runs.
func (s *Server) DelayTransitionHandler(action delay.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		playerID := r.URL.Query().Get("playerID")
		if matchID == "" || playerID == "" {
			http.Error(w, "Missing 'matchID' or 'playerID' parameter", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		var updated *league.MatchRecord
		var err error
		switch action {
		case delay.ActionRequest:
			updated, err = s.Delay.Request(matchID, playerID, isDryRun)
		case delay.ActionAccept:
			updated, err = s.Delay.Accept(matchID, playerID, isDryRun)
		case delay.ActionReject:
			updated, err = s.Delay.Reject(matchID, playerID, isDryRun)
		case delay.ActionCancel:
			updated, err = s.Delay.Cancel(matchID, playerID, isDryRun)
		default:
			http.Error(w, "Unknown delay action", http.StatusInternalServerError)
			return
		}

		if err != nil {
			switch {
			case errors.Is(err, delay.ErrInvalidTransition):
				http.Error(w, err.Error(), http.StatusConflict)
			case strings.Contains(err.Error(), "not found"):
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				http.Error(w, "Failed to apply delay transition", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, updated)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func derefMatches(matches []*league.MatchRecord) []league.MatchRecord {
	out := make([]league.MatchRecord, 0, len(matches))
	for _, m := range matches {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// boxName finds the display name of a box from any member's membership record.
func boxName(roster []league.PlayerRecord, boxID string) string {
	for _, p := range roster {
		if p.Membership != nil && p.Membership.BoxID == boxID {
			return p.Membership.BoxName
		}
	}
	return boxID
}
