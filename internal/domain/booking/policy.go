package booking

// Status is a booking's lifecycle state. StatusUnknown covers malformed
// stored data; it renders distinctly and permits nothing.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusUnknown   Status = "unknown"
)

// Action is an operation a host or guest may attempt on a booking.
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)

// ParseStatus maps stored strings onto the lifecycle, collapsing anything
// unrecognized to StatusUnknown rather than failing.
func ParseStatus(raw string) Status {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(raw)
	default:
		return StatusUnknown
	}
}

// AllowedActions is the pure transition-gate lookup UI callers use to enable
// controls. Cancelled is terminal; unknown permits nothing.
func AllowedActions(status Status) []Action {
	switch status {
	case StatusPending:
		return []Action{ActionConfirm, ActionCancel}
	case StatusConfirmed:
		return []Action{ActionCancel}
	default:
		return nil
	}
}

// CanApply reports whether an action is legal in the given state.
func CanApply(status Status, action Action) bool {
	for _, allowed := range AllowedActions(status) {
		if allowed == action {
			return true
		}
	}
	return false
}
