package audit

import "time"

// RecordRequest is the request for appending an audit entry.
type RecordRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
	Action string `json:"action"`
}

// RecordResponse is the response for appending an audit entry.
type RecordResponse struct {
	ID string `json:"id"`
}

// QueryRequest is the request for reading a user's audit log.
type QueryRequest struct {
	UserID string `json:"user_id"`
	Action string `json:"action,omitempty"`
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// EntryResponse is a single audit entry in a query result.
type EntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TaskID    string    `json:"task_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// QueryResponse is the paginated response for reading the audit log.
type QueryResponse struct {
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalLogs  int64           `json:"total_logs"`
	TotalPages int             `json:"total_pages"`
	Logs       []EntryResponse `json:"logs"`
}
