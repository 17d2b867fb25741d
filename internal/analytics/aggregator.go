package analytics

import (
	"sort"
	"time"

	"github.com/tibaulingg/boxleague/internal/league"
	"github.com/tibaulingg/boxleague/internal/outcome"
)

// recentFormLength bounds the form list shown on a player card.
const recentFormLength = 5

// BuildSnapshot computes a player's statistical profile from a point-in-time
// snapshot of the full league: every statistic except the global ranking uses
// only the player's own matches; the ranking needs everyone's. Inputs are
// borrowed read-only; the returned snapshot is freshly allocated.
func BuildSnapshot(playerID string, matches []*league.MatchRecord, roster []league.PlayerRecord, seasons []league.SeasonRecord, now time.Time) Snapshot {
	clean := cleanMatchesFor(playerID, matches)

	snapshot := Snapshot{
		PlayerID:   playerID,
		RecentForm: recentForm(playerID, clean),
	}
	snapshot.CurrentStreak = currentStreak(playerID, clean)
	snapshot.BestWinStreak, snapshot.WorstLossStreak = bestRuns(playerID, clean)
	snapshot.Rival, snapshot.BestOpponent, snapshot.WorstOpponent = opponentHighlights(playerID, clean, roster)
	snapshot.TotalPointsThisYear = seasonPoints(playerID, clean, seasons, now)
	snapshot.GlobalRankingPosition = rankingPosition(playerID, matches, roster, seasons, now)
	return snapshot
}

// cleanMatchesFor filters to the player's clean matches (valid nonzero score,
// no special-case marker) sorted oldest first by played time, falling back to
// scheduled time. Matches with no timestamp at all sort first.
func cleanMatchesFor(playerID string, matches []*league.MatchRecord) []league.MatchRecord {
	var clean []league.MatchRecord
	for _, m := range matches {
		if m == nil || !m.HasPlayer(playerID) {
			continue
		}
		if !outcome.IsClean(*m) {
			continue
		}
		clean = append(clean, *m)
	}
	sort.SliceStable(clean, func(i, j int) bool {
		ti, _ := clean[i].EffectiveTime()
		tj, _ := clean[j].EffectiveTime()
		return ti < tj
	})
	return clean
}

// resultOf maps a clean match to the player's result. The second return is
// false for a drawn score, which is not a win/loss result.
func resultOf(m league.MatchRecord, playerID string) (Result, bool) {
	out := outcome.Resolve(m, playerID)
	if !out.HasWinner {
		return "", false
	}
	if out.Won {
		return ResultWin, true
	}
	return ResultLoss, true
}

// recentForm returns the results of the most recent clean matches, newest first.
func recentForm(playerID string, clean []league.MatchRecord) []Result {
	form := make([]Result, 0, recentFormLength)
	for i := len(clean) - 1; i >= 0 && len(form) < recentFormLength; i-- {
		if result, ok := resultOf(clean[i], playerID); ok {
			form = append(form, result)
		}
	}
	return form
}
