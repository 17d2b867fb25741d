package standings

import (
	"sort"

	"github.com/tibaulingg/boxleague/internal/league"
	"github.com/tibaulingg/boxleague/internal/outcome"
)

// Compute aggregates all matches of one box into a ranked table. Only matches
// with a valid nonzero score contribute points; special cases and pending
// matches do not. Every participant of a box match gets a row, so a player who
// only lost (or has only unplayed fixtures) still appears. Each player earns
// two points per set won. The full table is returned; callers truncate for
// top-N views.
func Compute(matches []league.MatchRecord) []league.BoxStanding {
	index := make(map[string]*league.BoxStanding)
	var order []string

	row := func(playerID string) *league.BoxStanding {
		if playerID == "" {
			return nil
		}
		if entry, ok := index[playerID]; ok {
			return entry
		}
		entry := &league.BoxStanding{PlayerID: playerID}
		index[playerID] = entry
		order = append(order, playerID)
		return entry
	}

	for _, m := range matches {
		rowA := row(m.PlayerAID)
		rowB := row(m.PlayerBID)
		if rowA == nil || rowB == nil {
			continue
		}

		if !outcome.IsPlayed(m) {
			continue
		}
		scoreA, scoreB := *m.ScoreA, *m.ScoreB

		rowA.MatchesPlayed++
		rowB.MatchesPlayed++
		rowA.Points += 2 * scoreA
		rowB.Points += 2 * scoreB

		// Equal scores cannot happen with integer set scores and the 0-0
		// exclusion; if one slips through it simply has no winner.
		switch {
		case scoreA > scoreB:
			rowA.Wins++
			rowB.Losses++
		case scoreB > scoreA:
			rowB.Wins++
			rowA.Losses++
		}
	}

	table := make([]league.BoxStanding, 0, len(order))
	for _, playerID := range order {
		table = append(table, *index[playerID])
	}
	// Stable sort keeps input order for equal points; no tie-break is invented.
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Points > table[j].Points
	})
	for i := range table {
		table[i].Position = i + 1
	}
	return table
}
