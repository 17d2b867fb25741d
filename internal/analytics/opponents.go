package analytics

import "github.com/tibaulingg/boxleague/internal/league"

// opponentQualifyingMatches is how many clean matches it takes before an
// opponent can be a best or worst opponent.
const opponentQualifyingMatches = 2

// opponentHighlights groups the player's clean matches by opponent and picks
// the rival, best opponent and worst opponent. Opponents missing from the
// roster are skipped: that is a data-integrity gap upstream, not an error here.
func opponentHighlights(playerID string, clean []league.MatchRecord, roster []league.PlayerRecord) (rival, best, worst *OpponentRecord) {
	known := make(map[string]bool, len(roster))
	for _, p := range roster {
		known[p.ID] = true
	}

	// First-encountered order keeps tie-breaking deterministic.
	records := make(map[string]*OpponentRecord)
	var order []string

	for _, m := range clean {
		opponentID, ok := m.OpponentOf(playerID)
		if !ok || !known[opponentID] {
			continue
		}
		record, seen := records[opponentID]
		if !seen {
			record = &OpponentRecord{OpponentID: opponentID}
			records[opponentID] = record
			order = append(order, opponentID)
		}
		record.MatchIDs = append(record.MatchIDs, m.ID)
		result, hasResult := resultOf(m, playerID)
		if !hasResult {
			continue
		}
		if result == ResultWin {
			record.Wins++
		} else {
			record.Losses++
		}
	}

	for _, opponentID := range order {
		record := records[opponentID]

		// Rival: most total matches, qualification irrelevant.
		if rival == nil || len(record.MatchIDs) > len(rival.MatchIDs) {
			rival = record
		}

		if len(record.MatchIDs) < opponentQualifyingMatches {
			continue
		}

		// Best: highest win rate; the first qualifier found keeps ties.
		if best == nil || record.WinRate() > best.WinRate() {
			best = record
		}

		// Worst: most losses, then lowest win rate, then most total matches.
		if worst == nil || worseThan(record, worst) {
			worst = record
		}
	}
	return rival, best, worst
}

func worseThan(candidate, current *OpponentRecord) bool {
	if candidate.Losses != current.Losses {
		return candidate.Losses > current.Losses
	}
	if candidate.WinRate() != current.WinRate() {
		return candidate.WinRate() < current.WinRate()
	}
	return len(candidate.MatchIDs) > len(current.MatchIDs)
}
