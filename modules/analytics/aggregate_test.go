package analytics

import (
	"testing"
	"time"

	domain "github.com/example/task-manager/domain/task"
)

func TestZeroFilledStatusSummary(t *testing.T) {
	tests := []struct {
		name   string
		counts map[domain.Status]int64
		want   map[string]int64
	}{
		{
			"empty input zero-fills all buckets",
			nil,
			map[string]int64{"Pending": 0, "In Progress": 0, "Completed": 0},
		},
		{
			"partial input keeps missing buckets at zero",
			map[domain.Status]int64{domain.StatusCompleted: 4},
			map[string]int64{"Pending": 0, "In Progress": 0, "Completed": 4},
		},
		{
			"full input",
			map[domain.Status]int64{
				domain.StatusPending:    2,
				domain.StatusInProgress: 3,
				domain.StatusCompleted:  5,
			},
			map[string]int64{"Pending": 2, "In Progress": 3, "Completed": 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ZeroFilledStatusSummary(tt.counts)
			if len(got) != 3 {
				t.Fatalf("got %d buckets, want 3", len(got))
			}
			var sum, wantSum int64
			for status, count := range tt.want {
				if got[status] != count {
					t.Errorf("bucket %q = %d, want %d", status, got[status], count)
				}
				sum += got[status]
				wantSum += count
			}
			if sum != wantSum {
				t.Errorf("bucket sum = %d, want %d", sum, wantSum)
			}
		})
	}
}

func TestAverageCompletionMinutes(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	pair := func(minutes float64) CompletionPair {
		return CompletionPair{
			StartedAt:   base,
			CompletedAt: base.Add(time.Duration(minutes * float64(time.Minute))),
		}
	}

	tests := []struct {
		name  string
		pairs []CompletionPair
		want  *int
	}{
		{"no pairs yields nil", nil, nil},
		{"single pair", []CompletionPair{pair(90)}, intPtr(90)},
		{"mean of several", []CompletionPair{pair(30), pair(60), pair(90)}, intPtr(60)},
		{"rounds to nearest minute", []CompletionPair{pair(10), pair(11)}, intPtr(11)},
		{"rounds half up", []CompletionPair{pair(10.5)}, intPtr(11)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageCompletionMinutes(tt.pairs)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("got %d, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("got nil, want %d", *tt.want)
			}
			if *got != *tt.want {
				t.Errorf("got %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestReopenRatePercent(t *testing.T) {
	tests := []struct {
		name     string
		reopened int64
		total    int64
		want     string
	}{
		{"zero total avoids division", 0, 0, "0.00"},
		{"zero reopened", 0, 8, "0.00"},
		{"one third", 1, 3, "33.33"},
		{"all reopened", 5, 5, "100.00"},
		{"two decimals", 1, 8, "12.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReopenRatePercent(tt.reopened, tt.total); got != tt.want {
				t.Errorf("ReopenRatePercent(%d, %d) = %q, want %q", tt.reopened, tt.total, got, tt.want)
			}
		})
	}
}

func intPtr(v int) *int {
	return &v
}
