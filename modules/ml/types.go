package ml

// GenerateRequest is the request for generating subtasks from a description.
type GenerateRequest struct {
	Description string `json:"description"`
}

// GenerateResponse is the response carrying ordered subtask titles.
type GenerateResponse struct {
	Count    int      `json:"count"`
	Subtasks []string `json:"subtasks"`
}
