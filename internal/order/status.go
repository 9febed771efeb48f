package order

import "time"

// NextStatus returns the next step in the kitchen progression:
// pending advances to preparing, preparing to completed. Every other
// status maps to itself; cancelled and delivered are reached through
// explicit admin actions, never through this progression.
func NextStatus(current Status) Status {
	switch current {
	case StatusPending:
		return StatusPreparing
	case StatusPreparing:
		return StatusCompleted
	default:
		return current
	}
}

// Advance moves o one step along the progression and stamps the
// completion time on the transition into completed. An order that is
// already terminal is left untouched, including its completion time.
// A zero status is treated as pending, matching how legacy records
// were stored without one.
func Advance(o *Order, now time.Time) {
	current := o.Status
	if current == "" {
		current = StatusPending
	}

	next := NextStatus(current)
	o.Status = next
	if next == StatusCompleted && o.CompletionTime == nil {
		t := now
		o.CompletionTime = &t
	}
}
