package analytics

import (
	"fmt"
	"math"
	"time"

	domain "github.com/example/task-manager/domain/task"
)

// CompletionPair is one task's started/completed timestamps. Only tasks with
// both set contribute to the completion-time average.
type CompletionPair struct {
	StartedAt   time.Time
	CompletedAt time.Time
}

// ZeroFilledStatusSummary maps every workflow status to its count. Buckets
// with no tasks are present with a zero so the summary always sums to the
// task total.
func ZeroFilledStatusSummary(counts map[domain.Status]int64) map[string]int64 {
	summary := map[string]int64{
		string(domain.StatusPending):    0,
		string(domain.StatusInProgress): 0,
		string(domain.StatusCompleted):  0,
	}
	for status, count := range counts {
		summary[string(status)] = count
	}
	return summary
}

// AverageCompletionMinutes returns the mean completion time in whole minutes,
// rounded to the nearest integer, or nil when no pair exists.
func AverageCompletionMinutes(pairs []CompletionPair) *int {
	if len(pairs) == 0 {
		return nil
	}
	var total float64
	for _, p := range pairs {
		total += p.CompletedAt.Sub(p.StartedAt).Minutes()
	}
	avg := int(math.Round(total / float64(len(pairs))))
	return &avg
}

// ReopenRatePercent formats reopened/total as a percentage with two decimals.
// A zero total yields "0.00" rather than a division error.
func ReopenRatePercent(reopened, total int64) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(reopened)/float64(total)*100)
}
