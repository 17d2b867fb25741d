package analytics

import (
	"sort"
	"time"

	"github.com/tibaulingg/boxleague/internal/league"
)

// Season points: three for a win, one for a drawn clean match. Draws are not
// expected with integer set scores but are tolerated.
const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// seasonPoints sums the player's points over clean matches that fall inside a
// season whose calendar year is the current one.
func seasonPoints(playerID string, clean []league.MatchRecord, seasons []league.SeasonRecord, now time.Time) int {
	current := currentYearSeasons(seasons, now)
	if len(current) == 0 {
		return 0
	}

	points := 0
	for _, m := range clean {
		ts, ok := m.EffectiveTime()
		if !ok || !inAnySeason(ts, current) {
			continue
		}
		result, hasResult := resultOf(m, playerID)
		switch {
		case hasResult && result == ResultWin:
			points += pointsPerWin
		case !hasResult:
			points += pointsPerDraw
		}
	}
	return points
}

// rankingPosition computes the club-wide "golden ranking": the same season
// points for every roster player over the full match snapshot, sorted
// descending with stable order for equal totals. Returns 1-based position, or
// 0 when the player has no points or is not in the roster.
func rankingPosition(playerID string, matches []*league.MatchRecord, roster []league.PlayerRecord, seasons []league.SeasonRecord, now time.Time) int {
	type total struct {
		playerID string
		points   int
	}

	totals := make([]total, 0, len(roster))
	for _, p := range roster {
		clean := cleanMatchesFor(p.ID, matches)
		totals = append(totals, total{
			playerID: p.ID,
			points:   seasonPoints(p.ID, clean, seasons, now),
		})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].points > totals[j].points
	})

	for i, entry := range totals {
		if entry.playerID == playerID {
			if entry.points == 0 {
				return 0
			}
			return i + 1
		}
	}
	return 0
}

func currentYearSeasons(seasons []league.SeasonRecord, now time.Time) []league.SeasonRecord {
	var current []league.SeasonRecord
	for _, season := range seasons {
		if time.Unix(season.StartDate, 0).UTC().Year() == now.UTC().Year() {
			current = append(current, season)
		}
	}
	return current
}

func inAnySeason(ts int64, seasons []league.SeasonRecord) bool {
	for _, season := range seasons {
		if season.Contains(ts) {
			return true
		}
	}
	return false
}
