package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// InitialStatus is the status every new booking starts in.
func InitialStatus() Status {
	return StatusPending
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(s Status) bool {
	switch s {
	case StatusCancelled, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Occupies reports whether a booking in this status blocks its time slot.
// Pending requests hold the slot until the teacher answers; only
// cancelled/rejected free it up.
func Occupies(s Status) bool {
	return s != StatusCancelled && s != StatusRejected
}

// ===============================
// Transition Guards
// ===============================

// valid edges of the status state machine
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled, StatusCompleted},
}

// CanTransition validates a status change against the state machine.
// Any attempt to leave a terminal state fails.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return InvalidTransitionError{From: from, To: to}
}

// CanApprove checks whether a booking may be approved.
func CanApprove(current Status) error {
	return CanTransition(current, StatusApproved)
}

// CanReject checks whether a booking may be rejected.
func CanReject(current Status) error {
	return CanTransition(current, StatusRejected)
}

// CanCancel checks whether a booking may be cancelled by its requester.
func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

// CanComplete checks whether a booking may be marked as completed.
func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}
