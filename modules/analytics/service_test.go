package analytics

import (
	"context"
	"testing"
	"time"

	domain "github.com/example/task-manager/domain/task"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAnalytics(t *testing.T) (*AnalyticsService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// nil client: computation path only
	return NewAnalyticsService(NewRepository(db), NewCache(nil)), db
}

func seedTask(t *testing.T, db *gorm.DB, owner string, status domain.Status, started, completed, reopened *time.Time, deleted bool) {
	t.Helper()
	task := domain.Task{
		ID:          uuid.New().String(),
		OwnerID:     owner,
		Title:       "seed",
		Priority:    domain.PriorityMedium,
		Status:      status,
		StartedAt:   started,
		CompletedAt: completed,
		ReopenedAt:  reopened,
		IsDeleted:   deleted,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
}

func TestSummary(t *testing.T) {
	svc, db := setupAnalytics(t)
	ctx := context.Background()

	t.Run("empty user", func(t *testing.T) {
		resp, err := svc.Summary(ctx, "nobody")
		if err != nil {
			t.Fatalf("Summary() error = %v", err)
		}
		if resp.TotalTasks != 0 {
			t.Errorf("TotalTasks = %d, want 0", resp.TotalTasks)
		}
		if resp.ReopenRatePercent != "0.00" {
			t.Errorf("ReopenRatePercent = %q, want 0.00", resp.ReopenRatePercent)
		}
		if resp.AvgCompletionTimeMinutes != nil {
			t.Errorf("AvgCompletionTimeMinutes = %v, want nil", *resp.AvgCompletionTimeMinutes)
		}
		if len(resp.StatusSummary) != 3 {
			t.Errorf("StatusSummary has %d buckets, want 3", len(resp.StatusSummary))
		}
	})

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	done := base.Add(30 * time.Minute)
	reopenedAt := base.Add(time.Hour)

	seedTask(t, db, "alice", domain.StatusPending, nil, nil, nil, false)
	seedTask(t, db, "alice", domain.StatusInProgress, &base, nil, nil, false)
	seedTask(t, db, "alice", domain.StatusCompleted, &base, &done, nil, false)
	seedTask(t, db, "alice", domain.StatusInProgress, &base, &done, &reopenedAt, false)
	// Invisible: soft-deleted and foreign tasks.
	seedTask(t, db, "alice", domain.StatusCompleted, &base, &done, nil, true)
	seedTask(t, db, "bob", domain.StatusPending, nil, nil, nil, false)

	resp, err := svc.Summary(ctx, "alice")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if resp.TotalTasks != 4 {
		t.Errorf("TotalTasks = %d, want 4", resp.TotalTasks)
	}

	var sum int64
	for _, count := range resp.StatusSummary {
		sum += count
	}
	if sum != resp.TotalTasks {
		t.Errorf("status buckets sum to %d, want %d", sum, resp.TotalTasks)
	}
	if resp.StatusSummary["In Progress"] != 2 {
		t.Errorf("In Progress bucket = %d, want 2", resp.StatusSummary["In Progress"])
	}

	if resp.AvgCompletionTimeMinutes == nil || *resp.AvgCompletionTimeMinutes != 30 {
		t.Errorf("AvgCompletionTimeMinutes = %v, want 30", resp.AvgCompletionTimeMinutes)
	}
	if resp.ReopenedTasks != 1 {
		t.Errorf("ReopenedTasks = %d, want 1", resp.ReopenedTasks)
	}
	if resp.ReopenRatePercent != "25.00" {
		t.Errorf("ReopenRatePercent = %q, want 25.00", resp.ReopenRatePercent)
	}
}

func TestDashboard(t *testing.T) {
	svc, db := setupAnalytics(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	done := base.Add(time.Hour)

	seedTask(t, db, "alice", domain.StatusPending, nil, nil, nil, false)
	seedTask(t, db, "alice", domain.StatusCompleted, &base, &done, nil, false)

	resp, err := svc.Dashboard(ctx, "alice")
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if resp.Cards.TotalTasks != 2 {
		t.Errorf("Cards.TotalTasks = %d, want 2", resp.Cards.TotalTasks)
	}
	if resp.Cards.CompletedTasks != 1 {
		t.Errorf("Cards.CompletedTasks = %d, want 1", resp.Cards.CompletedTasks)
	}

	// Only occurring statuses chart; In Progress is absent.
	if len(resp.Charts.StatusChart.Labels) != 2 {
		t.Fatalf("StatusChart has %d labels, want 2: %v", len(resp.Charts.StatusChart.Labels), resp.Charts.StatusChart.Labels)
	}
	for _, label := range resp.Charts.StatusChart.Labels {
		if label == "In Progress" {
			t.Error("StatusChart includes empty In Progress bucket")
		}
	}

	want := ChartData{Labels: []string{"Completed", "Reopened"}, Values: []int64{1, 0}}
	got := resp.Charts.CompletionReopenChart
	if len(got.Labels) != 2 || got.Labels[0] != want.Labels[0] || got.Labels[1] != want.Labels[1] {
		t.Errorf("CompletionReopenChart labels = %v, want %v", got.Labels, want.Labels)
	}
	if len(got.Values) != 2 || got.Values[0] != 1 || got.Values[1] != 0 {
		t.Errorf("CompletionReopenChart values = %v, want %v", got.Values, want.Values)
	}
}

func TestDashboard_ReopenedTaskStillCountsAsCompleted(t *testing.T) {
	svc, db := setupAnalytics(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	done := base.Add(time.Hour)
	reopenedAt := base.Add(2 * time.Hour)

	// Completed once, then reopened: current status is In Progress but
	// completed_at survives the reopen.
	seedTask(t, db, "carol", domain.StatusInProgress, &base, &done, &reopenedAt, false)

	resp, err := svc.Dashboard(ctx, "carol")
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if resp.Cards.CompletedTasks != 1 {
		t.Errorf("Cards.CompletedTasks = %d, want 1", resp.Cards.CompletedTasks)
	}
	if resp.Cards.ReopenedTasks != 1 {
		t.Errorf("Cards.ReopenedTasks = %d, want 1", resp.Cards.ReopenedTasks)
	}

	got := resp.Charts.CompletionReopenChart
	if len(got.Values) != 2 || got.Values[0] != 1 || got.Values[1] != 1 {
		t.Errorf("CompletionReopenChart values = %v, want [1 1]", got.Values)
	}

	// The status breakdown still reflects the current status only.
	if len(resp.Charts.StatusChart.Labels) != 1 || resp.Charts.StatusChart.Labels[0] != "In Progress" {
		t.Errorf("StatusChart labels = %v, want [In Progress]", resp.Charts.StatusChart.Labels)
	}
}

// TestCacheRoundTrip requires Redis on localhost:6379 and is skipped otherwise.
func TestCacheRoundTrip(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	cache := NewCache(client)
	key := "summary:test-" + uuid.New().String()

	in := SummaryResponse{TotalTasks: 7, ReopenRatePercent: "14.29"}
	if err := cache.Set(ctx, key, &in); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out SummaryResponse
	found, err := cache.Get(ctx, key, &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if out.TotalTasks != 7 || out.ReopenRatePercent != "14.29" {
		t.Errorf("got %+v, want %+v", out, in)
	}

	userID := key[len("summary:"):]
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		t.Fatalf("InvalidateUser() error = %v", err)
	}
	found, err = cache.Get(ctx, key, &out)
	if err != nil {
		t.Fatalf("Get() after invalidate error = %v", err)
	}
	if found {
		t.Error("expected cache miss after invalidation")
	}
}
