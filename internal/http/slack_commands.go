package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
	"github.com/tibaulingg/boxleague/internal/analytics"
	"github.com/tibaulingg/boxleague/internal/league"
	"github.com/tibaulingg/boxleague/internal/standings"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler serves the /standings slash command. The text field
// carries the box name or id; with no text the first box found in the roster
// is used.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		log.Info("Received standings command", "box", query)

		roster, err := s.Cache.Players(false, "")
		if err != nil {
			http.Error(w, "Failed to load players", http.StatusInternalServerError)
			log.Error("Failed to load players for standings command", "error", err)
			return
		}

		boxID, name := resolveBox(roster, query)
		if boxID == "" {
			http.Error(w, "Unknown box", http.StatusBadRequest)
			return
		}
		if name == "" {
			name = boxID
		}

		matches, err := s.Cache.Matches(league.MatchQuery{BoxID: boxID})
		if err != nil {
			http.Error(w, "Failed to load matches", http.StatusInternalServerError)
			log.Error("Failed to load matches for standings command", "error", err, "boxID", boxID)
			return
		}
		table := standings.Compute(derefMatches(matches))
		s.Metrics.IncStandingsComputed()

		msg, err := s.Notifier.FormatStandingsResponse(name, table, roster)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// PlayerCardCommandHandler serves the /player slash command. The text field
// carries the player name; an unknown name gets a not-found card rather than
// an error so the response still renders in the channel.
func (s *Server) PlayerCardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(r.FormValue("text"))
		if name == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}
		log.Info("Received player card command", "player", name)

		roster, err := s.Cache.Players(false, "")
		if err != nil {
			http.Error(w, "Failed to load players", http.StatusInternalServerError)
			log.Error("Failed to load players for player card command", "error", err)
			return
		}

		var msg any
		player := findPlayerByName(roster, name)
		if player == nil {
			log.Warn("Could not find player for card", "player", name)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(name)
		} else {
			matches, merr := s.Cache.Matches(league.MatchQuery{})
			if merr != nil {
				http.Error(w, "Failed to load matches", http.StatusInternalServerError)
				log.Error("Failed to load matches for player card command", "error", merr)
				return
			}
			seasons, serr := s.Cache.Seasons(false)
			if serr != nil {
				http.Error(w, "Failed to load seasons", http.StatusInternalServerError)
				log.Error("Failed to load seasons for player card command", "error", serr)
				return
			}
			snapshot := analytics.BuildSnapshot(player.ID, matches, roster, seasons, time.Now())
			s.Metrics.IncAnalyticsSnapshots()
			msg, err = s.Notifier.FormatPlayerSnapshotResponse(player, &snapshot)
		}

		if err != nil {
			http.Error(w, "Failed to format player card", http.StatusInternalServerError)
			log.Error("Failed to format player card", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// resolveBox matches the command text to a box by id or display name; empty
// text picks the first box found. Returns the box id and display name.
func resolveBox(roster []league.PlayerRecord, query string) (string, string) {
	for _, p := range roster {
		if p.Membership == nil {
			continue
		}
		if query == "" ||
			strings.EqualFold(p.Membership.BoxID, query) ||
			strings.EqualFold(p.Membership.BoxName, query) {
			return p.Membership.BoxID, p.Membership.BoxName
		}
	}
	return "", ""
}

func findPlayerByName(roster []league.PlayerRecord, name string) *league.PlayerRecord {
	for i := range roster {
		if strings.EqualFold(roster[i].FullName(), name) {
			return &roster[i]
		}
	}
	return nil
}
