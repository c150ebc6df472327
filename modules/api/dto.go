package api

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// RegisterBody is the register request body.
type RegisterBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginBody is the login request body.
type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshBody is the token refresh request body.
type RefreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

// InviteBody is the friend invite request body.
type InviteBody struct {
	Email string `json:"email"`
}

// AcceptInviteBody is the invite acceptance request body.
type AcceptInviteBody struct {
	Token string `json:"token"`
}

// AssignWorkerBody is the worker assignment request body.
type AssignWorkerBody struct {
	WorkerID string `json:"worker_id"`
}
