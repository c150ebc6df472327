package analytics

import (
	"context"
	"log"

	domain "github.com/example/task-manager/domain/task"
	"golang.org/x/sync/singleflight"
)

// AnalyticsService computes per-user task aggregates with a cache-aside
// Redis layer. Cache failures degrade to direct computation.
type AnalyticsService struct {
	repo    *Repository
	cache   *Cache
	sfGroup singleflight.Group
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(repo *Repository, cache *Cache) *AnalyticsService {
	return &AnalyticsService{repo: repo, cache: cache}
}

// Summary returns the user's analytics summary, cached per user.
func (s *AnalyticsService) Summary(ctx context.Context, userID string) (*SummaryResponse, error) {
	cacheKey := "summary:" + userID

	var cached SummaryResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Printf("[analytics] Cache error for %s: %v", cacheKey, err)
	}
	if found {
		return &cached, nil
	}

	val, err, _ := s.sfGroup.Do(cacheKey, func() (any, error) {
		return s.computeSummary(userID)
	})
	if err != nil {
		return nil, err
	}
	summary := val.(*SummaryResponse)

	if err := s.cache.Set(ctx, cacheKey, summary); err != nil {
		log.Printf("[analytics] Warning: failed to cache %s: %v", cacheKey, err)
	}
	return summary, nil
}

// Dashboard returns the chart-shaped variant of the summary, cached per user.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID string) (*DashboardResponse, error) {
	cacheKey := "dashboard:" + userID

	var cached DashboardResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Printf("[analytics] Cache error for %s: %v", cacheKey, err)
	}
	if found {
		return &cached, nil
	}

	val, err, _ := s.sfGroup.Do(cacheKey, func() (any, error) {
		return s.computeDashboard(userID)
	})
	if err != nil {
		return nil, err
	}
	dashboard := val.(*DashboardResponse)

	if err := s.cache.Set(ctx, cacheKey, dashboard); err != nil {
		log.Printf("[analytics] Warning: failed to cache %s: %v", cacheKey, err)
	}
	return dashboard, nil
}

// Invalidate drops the user's cached aggregates after a task mutation.
func (s *AnalyticsService) Invalidate(ctx context.Context, userID string) {
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		log.Printf("[analytics] Warning: failed to invalidate cache for user %s: %v", userID, err)
	}
}

func (s *AnalyticsService) computeSummary(userID string) (*SummaryResponse, error) {
	total, err := s.repo.CountTasks(userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.StatusCounts(userID)
	if err != nil {
		return nil, err
	}
	pairs, err := s.repo.CompletionPairs(userID)
	if err != nil {
		return nil, err
	}
	reopened, err := s.repo.CountReopened(userID)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		TotalTasks:               total,
		StatusSummary:            ZeroFilledStatusSummary(counts),
		AvgCompletionTimeMinutes: AverageCompletionMinutes(pairs),
		ReopenedTasks:            reopened,
		ReopenRatePercent:        ReopenRatePercent(reopened, total),
	}, nil
}

func (s *AnalyticsService) computeDashboard(userID string) (*DashboardResponse, error) {
	summary, err := s.computeSummary(userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.StatusCounts(userID)
	if err != nil {
		return nil, err
	}

	// Status chart carries only the statuses that actually occur; the
	// zero-filled view lives in the summary.
	var statusChart ChartData
	for _, status := range []domain.Status{domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted} {
		if count, ok := counts[status]; ok && count > 0 {
			statusChart.Labels = append(statusChart.Labels, string(status))
			statusChart.Values = append(statusChart.Values, count)
		}
	}

	// The cards and the completion chart count tasks completed at least
	// once, not tasks currently in Completed: a completed-then-reopened
	// task shows up as both completed and reopened.
	completed, err := s.repo.CountEverCompleted(userID)
	if err != nil {
		return nil, err
	}
	return &DashboardResponse{
		Cards: DashboardCards{
			TotalTasks:               summary.TotalTasks,
			CompletedTasks:           completed,
			ReopenedTasks:            summary.ReopenedTasks,
			AvgCompletionTimeMinutes: summary.AvgCompletionTimeMinutes,
		},
		Charts: DashboardCharts{
			StatusChart: statusChart,
			CompletionReopenChart: ChartData{
				Labels: []string{"Completed", "Reopened"},
				Values: []int64{completed, summary.ReopenedTasks},
			},
		},
	}, nil
}
