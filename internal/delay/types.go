package delay

import "errors"

// State is the negotiation state of the reschedule request attached to a match.
type State string

const (
	StateNone      State = "none"
	StatePending   State = "pending"
	StateAccepted  State = "accepted"
	StateRejected  State = "rejected"
	StateCancelled State = "cancelled"
)

// ErrInvalidTransition is returned when a transition is attempted outside its
// legality constraints. The match record is never mutated in that case.
var ErrInvalidTransition = errors.New("invalid delay transition")

// Action names a transition, used for logging and metrics.
type Action string

const (
	ActionRequest Action = "request"
	ActionAccept  Action = "accept"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
)
