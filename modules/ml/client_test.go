package ml

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestClient_GenerateSubtasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate-subtasks" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %q", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":3,"subtasks":["1. Design schema","2) Build API","Write tests"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	got, err := c.GenerateSubtasks(context.Background(), "build a backend")
	if err != nil {
		t.Fatalf("GenerateSubtasks() error = %v", err)
	}

	want := []string{"Design schema", "Build API", "Write tests"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenerateSubtasks() = %v, want %v", got, want)
	}
}

func TestClient_GenerateSubtasks_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.GenerateSubtasks(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for 500 response, got nil")
	}
}

func TestClient_GenerateSubtasks_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"count":0,"subtasks":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond)
	if _, err := c.GenerateSubtasks(context.Background(), "slow"); err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "dot numbering", line: "1. First step", want: "First step"},
		{name: "paren numbering", line: "2) Plan", want: "Plan"},
		{name: "dash numbering", line: "3 - Execute", want: "Execute"},
		{name: "plain title", line: "Collect requirements", want: "Collect requirements"},
		{name: "surrounding whitespace", line: "  4.  Review  ", want: "Review"},
		{name: "blank line", line: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.line); got != tt.want {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}
