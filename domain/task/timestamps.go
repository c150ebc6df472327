package task

import "time"

// Stamps names the lifecycle timestamps to overwrite when a transition is
// applied. Nil fields are left untouched; repeat transitions overwrite the
// previous value.
type Stamps struct {
	StartedAt   *time.Time
	CompletedAt *time.Time
	ReopenedAt  *time.Time
}

// IsZero reports whether no timestamp field is to be stamped.
func (s Stamps) IsZero() bool {
	return s.StartedAt == nil && s.CompletedAt == nil && s.ReopenedAt == nil
}

// StampsFor returns the timestamps to set when a task moves from current to
// next at time now. Only the three workflow edges stamp anything; every other
// pair returns the zero Stamps. Callers validate the transition first;
// StampsFor does not re-check it.
func StampsFor(current, next Status, now time.Time) Stamps {
	var s Stamps
	switch {
	case current == StatusPending && next == StatusInProgress:
		s.StartedAt = &now
	case current == StatusInProgress && next == StatusCompleted:
		s.CompletedAt = &now
	case current == StatusCompleted && next == StatusInProgress:
		s.ReopenedAt = &now
	}
	return s
}
