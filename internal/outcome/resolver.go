package outcome

import "github.com/tibaulingg/boxleague/internal/league"

// Resolve classifies one match record from the perspective of the given player.
// Precedence: played, special case, scheduled pending, indeterminate. The
// perspective player is assumed to be player A unless the id matches player B,
// mirroring how the UI always renders a match from a participant's side.
func Resolve(m league.MatchRecord, playerID string) Outcome {
	if IsPlayed(m) {
		scoreFor, scoreAgainst := *m.ScoreA, *m.ScoreB
		if playerID == m.PlayerBID {
			scoreFor, scoreAgainst = scoreAgainst, scoreFor
		}
		return Outcome{
			Category:     CategoryPlayed,
			ScoreFor:     scoreFor,
			ScoreAgainst: scoreAgainst,
			Won:          scoreFor > scoreAgainst,
			HasWinner:    scoreFor != scoreAgainst,
		}
	}

	if subtype, faultingID, ok := specialCase(m); ok {
		out := Outcome{
			Category: CategorySpecialCase,
			Subtype:  subtype,
		}
		// The non-faulting player is awarded the win. An accepted reschedule
		// closed the original slot without a result, so it has no winner.
		if subtype != SubtypeDelayedResolved {
			out.HasWinner = true
			out.Won = faultingID != perspectiveID(m, playerID)
		}
		return out
	}

	if m.ScheduledAt != nil {
		return Outcome{
			Category:    CategoryScheduledPending,
			ScheduledAt: *m.ScheduledAt,
		}
	}

	return Outcome{Category: CategoryIndeterminate}
}

// IsPlayed reports whether the match has a valid result: both scores present
// and not simultaneously zero. A 0-0 record is a placeholder the upstream
// system writes for unplayed fixtures.
func IsPlayed(m league.MatchRecord) bool {
	if m.ScoreA == nil || m.ScoreB == nil {
		return false
	}
	return *m.ScoreA != 0 || *m.ScoreB != 0
}

// CountsAsCompleted separates "to play" from "history": a match counts as
// completed when it was played or resolved as a special case. Every aggregation
// in the engine uses this one predicate.
func CountsAsCompleted(m league.MatchRecord) bool {
	if IsPlayed(m) {
		return true
	}
	_, _, special := specialCase(m)
	return special
}

// IsClean reports whether the match is a "clean" played match: a valid nonzero
// score and no special-case marker. Only clean matches feed streaks, opponent
// records, form and points.
func IsClean(m league.MatchRecord) bool {
	if !IsPlayed(m) {
		return false
	}
	_, _, special := specialCase(m)
	return !special
}

// specialCase returns the subtype and the faulting player for a special-case
// marker, checked in no-show, retired, delayed order.
func specialCase(m league.MatchRecord) (Subtype, string, bool) {
	switch {
	case m.NoShowPlayerID != nil:
		return SubtypeNoShow, *m.NoShowPlayerID, true
	case m.RetiredPlayerID != nil:
		return SubtypeRetired, *m.RetiredPlayerID, true
	case m.DelayedPlayerID != nil:
		return SubtypeDelayedResolved, *m.DelayedPlayerID, true
	}
	return SubtypeNone, "", false
}

// perspectiveID normalises the viewer id: anything that is not player B is
// treated as player A's side.
func perspectiveID(m league.MatchRecord, playerID string) string {
	if playerID == m.PlayerBID {
		return m.PlayerBID
	}
	return m.PlayerAID
}
