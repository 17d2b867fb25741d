package analytics

import "github.com/tibaulingg/boxleague/internal/league"

// currentStreak walks the player's clean matches most-recent-first: the streak
// type is the latest result, extended while consecutive results match it.
func currentStreak(playerID string, clean []league.MatchRecord) Streak {
	var streak Streak
	for i := len(clean) - 1; i >= 0; i-- {
		result, ok := resultOf(clean[i], playerID)
		if !ok {
			continue
		}
		if streak.Count == 0 {
			streak.Type = result
		} else if result != streak.Type {
			break
		}
		streak.Count++
	}
	return streak
}

// bestRuns walks the history oldest-to-newest maintaining two running counters,
// each reset when the other result occurs, and records the longest win run and
// the longest loss run with their contributing matches.
func bestRuns(playerID string, clean []league.MatchRecord) (bestWin StreakRun, worstLoss StreakRun) {
	var winRun, lossRun StreakRun

	for _, m := range clean {
		result, ok := resultOf(m, playerID)
		if !ok {
			continue
		}
		switch result {
		case ResultWin:
			winRun.Count++
			winRun.MatchIDs = append(winRun.MatchIDs, m.ID)
			lossRun = StreakRun{}
			if winRun.Count > bestWin.Count {
				bestWin = StreakRun{Count: winRun.Count, MatchIDs: append([]string(nil), winRun.MatchIDs...)}
			}
		case ResultLoss:
			lossRun.Count++
			lossRun.MatchIDs = append(lossRun.MatchIDs, m.ID)
			winRun = StreakRun{}
			if lossRun.Count > worstLoss.Count {
				worstLoss = StreakRun{Count: lossRun.Count, MatchIDs: append([]string(nil), lossRun.MatchIDs...)}
			}
		}
	}
	return bestWin, worstLoss
}
