package task

import "testing"

func TestIsValidTransition_AllowedEdges(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		next    Status
	}{
		{"start work", StatusPending, StatusInProgress},
		{"complete", StatusInProgress, StatusCompleted},
		{"reopen", StatusCompleted, StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsValidTransition(tt.current, tt.next) {
				t.Errorf("IsValidTransition(%q, %q) = false, want true", tt.current, tt.next)
			}
		})
	}
}

func TestIsValidTransition_RejectsEverythingElse(t *testing.T) {
	statuses := []Status{StatusPending, StatusInProgress, StatusCompleted}

	allowed := map[[2]Status]bool{
		{StatusPending, StatusInProgress}:   true,
		{StatusInProgress, StatusCompleted}: true,
		{StatusCompleted, StatusInProgress}: true,
	}

	// Exhaustive sweep over all 9 pairs: everything outside the 3 edges,
	// including all self-loops, must be rejected.
	for _, current := range statuses {
		for _, next := range statuses {
			if allowed[[2]Status{current, next}] {
				continue
			}
			if IsValidTransition(current, next) {
				t.Errorf("IsValidTransition(%q, %q) = true, want false", current, next)
			}
		}
	}
}

func TestIsValidTransition_UnknownStatusFailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		next    Status
	}{
		{"unknown current", Status("Archived"), StatusInProgress},
		{"unknown next", StatusPending, Status("Archived")},
		{"both unknown", Status("Draft"), Status("Archived")},
		{"empty current", Status(""), StatusInProgress},
		{"empty next", StatusCompleted, Status("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsValidTransition(tt.current, tt.next) {
				t.Errorf("IsValidTransition(%q, %q) = true, want false", tt.current, tt.next)
			}
		})
	}
}
