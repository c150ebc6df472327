package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Client is an HTTP client for the external subtask-generation service.
// The service is treated as unreliable: every call is bounded by the client
// timeout and callers are expected to tolerate failure.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new Client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Description string `json:"description"`
}

type generateResponse struct {
	Count    int      `json:"count"`
	Subtasks []string `json:"subtasks"`
}

// GenerateSubtasks posts a free-text description to the service and returns
// the ordered list of subtask titles. The list may be empty.
func (c *Client) GenerateSubtasks(ctx context.Context, description string) ([]string, error) {
	body, err := json.Marshal(generateRequest{Description: description})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-subtasks", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subtask generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("subtask generation service returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	titles := make([]string, 0, len(out.Subtasks))
	for _, s := range out.Subtasks {
		if t := CleanTitle(s); t != "" {
			titles = append(titles, t)
		}
	}
	return titles, nil
}

// listItemPrefix matches leading numbering like "1.", "2)", "3 -".
var listItemPrefix = regexp.MustCompile(`^\d+[\).\s-]*`)

// CleanTitle strips list numbering and surrounding whitespace from a
// generated subtask line. Some model backends return numbered-list strings
// rather than bare titles.
func CleanTitle(line string) string {
	return strings.TrimSpace(listItemPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
}
