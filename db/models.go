package db

import (
	"database/sql"
	"time"
)

// Job represents a queued transcript cleanup job
type Job struct {
	ID               string   `json:"id"`
	Status           string   `json:"status"`
	Passes           []string `json:"passes"`
	Pass             *string  `json:"pass,omitempty"`
	Input            string   `json:"-"`
	Result           *string  `json:"text,omitempty"`
	HTML             *string  `json:"html,omitempty"`
	Changes          []string `json:"changes,omitempty"`
	Error            *string  `json:"error,omitempty"`
	Attempts         int      `json:"attempts"`
	PromptTokens     int      `json:"promptTokens"`
	CompletionTokens int      `json:"completionTokens"`
	TotalTokens      int      `json:"totalTokens"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

// Job status constants
const (
	JobStatusTodo      = "todo"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Transcript represents a completed cleanup stored in the archive
type Transcript struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Raw         string `json:"raw,omitempty"`
	Cleaned     string `json:"cleaned"`
	HTML        string `json:"html,omitempty"`
	TotalTokens int    `json:"totalTokens"`
	CreatedAt   string `json:"createdAt"`
}

// NowUTC returns the current time in UTC as an RFC3339 string
func NowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// StringPtr converts a sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
