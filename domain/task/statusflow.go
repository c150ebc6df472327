package task

// statusTransitions is the fixed adjacency table for the task status graph:
// three states, three directed edges. Completed -> In Progress is the reopen
// edge, the only backward move allowed.
var statusTransitions = map[Status]map[Status]bool{
	StatusPending:    {StatusInProgress: true},
	StatusInProgress: {StatusCompleted: true},
	StatusCompleted:  {StatusInProgress: true},
}

// IsValidTransition reports whether a task may move from current to next.
// Any pair outside the adjacency table is rejected, including self-loops and
// unknown statuses. Fail-closed: a status not in the table allows nothing.
func IsValidTransition(current, next Status) bool {
	return statusTransitions[current][next]
}
