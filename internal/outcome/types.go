package outcome

// Category classifies what a match record means for display and aggregation.
// Exactly one category is assigned to every record.
type Category string

const (
	CategoryPlayed           Category = "played"
	CategorySpecialCase      Category = "special_case"
	CategoryScheduledPending Category = "scheduled_pending"
	CategoryIndeterminate    Category = "indeterminate"
)

// Subtype narrows a special_case outcome.
type Subtype string

const (
	SubtypeNone            Subtype = ""
	SubtypeNoShow          Subtype = "no_show"
	SubtypeRetired         Subtype = "retired"
	SubtypeDelayedResolved Subtype = "delayed_resolved"
)

// Outcome is the resolved display state of one match from one player's perspective.
type Outcome struct {
	Category Category `json:"category"`
	Subtype  Subtype  `json:"subtype,omitempty"`

	// Set when Category is played.
	ScoreFor     int `json:"score_for,omitempty"`
	ScoreAgainst int `json:"score_against,omitempty"`

	// Won is meaningful only when HasWinner is true. A delayed-resolved match
	// carries no winner and is excluded from win/loss tallies.
	Won       bool `json:"won"`
	HasWinner bool `json:"has_winner"`

	// Set when Category is scheduled_pending.
	ScheduledAt int64 `json:"scheduled_at,omitempty"`
}
