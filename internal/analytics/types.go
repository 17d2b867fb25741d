package analytics

// Result is the outcome of one clean match from the subject player's side.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
)

// Streak is the player's current run of identical results.
type Streak struct {
	Type  Result `json:"type,omitempty"`
	Count int    `json:"count"`
}

// StreakRun is the longest run of one result over the full history, with the
// contributing matches in chronological order.
type StreakRun struct {
	Count    int      `json:"count"`
	MatchIDs []string `json:"match_ids,omitempty"`
}

// OpponentRecord is the head-to-head record against one opponent, with the
// contributing matches in chronological order.
type OpponentRecord struct {
	OpponentID string   `json:"opponent_id"`
	Wins       int      `json:"wins"`
	Losses     int      `json:"losses"`
	MatchIDs   []string `json:"match_ids,omitempty"`
}

// Total returns the number of clean matches against this opponent.
func (o OpponentRecord) Total() int {
	return o.Wins + o.Losses
}

// WinRate returns wins/(wins+losses), 0 for an empty record.
func (o OpponentRecord) WinRate() float64 {
	total := o.Total()
	if total == 0 {
		return 0
	}
	return float64(o.Wins) / float64(total)
}

// Snapshot is a player's full statistical profile, recomputed on demand from a
// point-in-time set of match records. It is derived data and never persisted.
type Snapshot struct {
	PlayerID string `json:"player_id"`

	CurrentStreak   Streak    `json:"current_streak"`
	BestWinStreak   StreakRun `json:"best_win_streak"`
	WorstLossStreak StreakRun `json:"worst_loss_streak"`

	Rival         *OpponentRecord `json:"rival,omitempty"`
	BestOpponent  *OpponentRecord `json:"best_opponent,omitempty"`
	WorstOpponent *OpponentRecord `json:"worst_opponent,omitempty"`

	RecentForm []Result `json:"recent_form"`

	TotalPointsThisYear   int `json:"total_points_this_year"`
	GlobalRankingPosition int `json:"global_ranking_position"`
}
