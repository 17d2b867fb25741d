package outcome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tibaulingg/boxleague/internal/league"
	"github.com/tibaulingg/boxleague/internal/outcome"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func baseMatch() league.MatchRecord {
	return league.MatchRecord{
		ID:        "m1",
		BoxID:     "box1",
		SeasonID:  "s1",
		PlayerAID: "pA",
		PlayerBID: "pB",
	}
}

func TestResolvePlayed(t *testing.T) {
	m := baseMatch()
	m.ScoreA = intPtr(3)
	m.ScoreB = intPtr(1)

	t.Run("winner perspective", func(t *testing.T) {
		out := outcome.Resolve(m, "pA")
		assert.Equal(t, outcome.CategoryPlayed, out.Category)
		assert.Equal(t, 3, out.ScoreFor)
		assert.Equal(t, 1, out.ScoreAgainst)
		assert.True(t, out.HasWinner)
		assert.True(t, out.Won)
	})

	t.Run("loser perspective", func(t *testing.T) {
		out := outcome.Resolve(m, "pB")
		assert.Equal(t, outcome.CategoryPlayed, out.Category)
		assert.Equal(t, 1, out.ScoreFor)
		assert.Equal(t, 3, out.ScoreAgainst)
		assert.False(t, out.Won)
	})
}

func TestResolveZeroZeroIsNotPlayed(t *testing.T) {
	m := baseMatch()
	m.ScoreA = intPtr(0)
	m.ScoreB = intPtr(0)
	m.ScheduledAt = int64Ptr(1714586400) // 2024-05-01T18:00

	out := outcome.Resolve(m, "pA")
	assert.Equal(t, outcome.CategoryScheduledPending, out.Category)
	assert.Equal(t, int64(1714586400), out.ScheduledAt)
	assert.False(t, outcome.IsPlayed(m))
	assert.False(t, outcome.CountsAsCompleted(m))
}

func TestResolveSpecialCases(t *testing.T) {
	t.Run("no show awards the other player", func(t *testing.T) {
		m := baseMatch()
		m.NoShowPlayerID = strPtr("pB")

		out := outcome.Resolve(m, "pA")
		assert.Equal(t, outcome.CategorySpecialCase, out.Category)
		assert.Equal(t, outcome.SubtypeNoShow, out.Subtype)
		assert.True(t, out.HasWinner)
		assert.True(t, out.Won)
		assert.True(t, outcome.CountsAsCompleted(m))

		fromB := outcome.Resolve(m, "pB")
		assert.False(t, fromB.Won)
	})

	t.Run("retirement awards the other player", func(t *testing.T) {
		m := baseMatch()
		m.RetiredPlayerID = strPtr("pA")

		out := outcome.Resolve(m, "pA")
		assert.Equal(t, outcome.SubtypeRetired, out.Subtype)
		assert.False(t, out.Won)
	})

	t.Run("delayed-resolved has no winner", func(t *testing.T) {
		m := baseMatch()
		m.DelayedPlayerID = strPtr("pA")

		out := outcome.Resolve(m, "pA")
		assert.Equal(t, outcome.SubtypeDelayedResolved, out.Subtype)
		assert.False(t, out.HasWinner)
		assert.False(t, out.Won)
		assert.True(t, outcome.CountsAsCompleted(m))
		assert.False(t, outcome.IsClean(m))
	})

	t.Run("valid score wins over special marker", func(t *testing.T) {
		m := baseMatch()
		m.ScoreA = intPtr(3)
		m.ScoreB = intPtr(2)
		m.NoShowPlayerID = strPtr("pB")

		out := outcome.Resolve(m, "pA")
		assert.Equal(t, outcome.CategoryPlayed, out.Category)
		// Still dirty: the special marker excludes it from analytics.
		assert.False(t, outcome.IsClean(m))
	})
}

func TestResolveIndeterminate(t *testing.T) {
	m := baseMatch()
	out := outcome.Resolve(m, "pA")
	assert.Equal(t, outcome.CategoryIndeterminate, out.Category)
	assert.False(t, outcome.CountsAsCompleted(m))
}

func TestResolveTotalityAndDeterminism(t *testing.T) {
	// Every combination of optional fields must land in exactly one category,
	// and resolving twice must give identical output.
	var records []league.MatchRecord
	for _, score := range []struct{ a, b *int }{{nil, nil}, {intPtr(0), intPtr(0)}, {intPtr(3), intPtr(1)}} {
		for _, noShow := range []*string{nil, strPtr("pA")} {
			for _, retired := range []*string{nil, strPtr("pB")} {
				for _, delayed := range []*string{nil, strPtr("pA")} {
					for _, sched := range []*int64{nil, int64Ptr(1700000000)} {
						m := baseMatch()
						m.ScoreA, m.ScoreB = score.a, score.b
						m.NoShowPlayerID = noShow
						m.RetiredPlayerID = retired
						m.DelayedPlayerID = delayed
						m.ScheduledAt = sched
						records = append(records, m)
					}
				}
			}
		}
	}

	valid := map[outcome.Category]bool{
		outcome.CategoryPlayed:           true,
		outcome.CategorySpecialCase:      true,
		outcome.CategoryScheduledPending: true,
		outcome.CategoryIndeterminate:    true,
	}
	for _, m := range records {
		first := outcome.Resolve(m, "pA")
		second := outcome.Resolve(m, "pA")
		require.True(t, valid[first.Category], "unknown category %q", first.Category)
		assert.Equal(t, first, second)
	}
}
