package analytics

// SummaryRequest is the request for a user's task summary.
type SummaryRequest struct {
	UserID string `json:"user_id"`
}

// SummaryResponse is the per-user analytics summary.
type SummaryResponse struct {
	TotalTasks               int64            `json:"totalTasks"`
	StatusSummary            map[string]int64 `json:"statusSummary"`
	AvgCompletionTimeMinutes *int             `json:"avgCompletionTimeMinutes"`
	ReopenedTasks            int64            `json:"reopenedTasks"`
	ReopenRatePercent        string           `json:"reopenRatePercent"`
}

// DashboardRequest is the request for a user's dashboard.
type DashboardRequest struct {
	UserID string `json:"user_id"`
}

// DashboardCards carries the headline numbers.
type DashboardCards struct {
	TotalTasks               int64 `json:"totalTasks"`
	CompletedTasks           int64 `json:"completedTasks"`
	ReopenedTasks            int64 `json:"reopenedTasks"`
	AvgCompletionTimeMinutes *int  `json:"avgCompletionTimeMinutes"`
}

// ChartData is a label/value series for charting.
type ChartData struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

// DashboardCharts carries the chart series.
type DashboardCharts struct {
	StatusChart           ChartData `json:"statusChart"`
	CompletionReopenChart ChartData `json:"completionReopenChart"`
}

// DashboardResponse is the dashboard variant of the summary: same underlying
// aggregates, chart-friendly shape.
type DashboardResponse struct {
	Cards  DashboardCards  `json:"cards"`
	Charts DashboardCharts `json:"charts"`
}
