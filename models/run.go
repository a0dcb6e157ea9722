package models

import (
	"encoding/json"
	"time"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// CrawlRun is one batch execution, recorded in the operational store.
type CrawlRun struct {
	ID          int64      `json:"id" db:"id"`
	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	FinishedAt  *time.Time `json:"finished_at" db:"finished_at"`
	Status      RunStatus  `json:"status" db:"status"`
	CasesTotal  int        `json:"cases_total" db:"cases_total"`
	CasesSaved  int        `json:"cases_saved" db:"cases_saved"`
	CasesFailed int        `json:"cases_failed" db:"cases_failed"`
}

type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// CrawlLog is one log line tied to a run.
type CrawlLog struct {
	ID        int64     `json:"id" db:"id"`
	RunID     *int64    `json:"run_id" db:"run_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Level     LogLevel  `json:"level" db:"level"`
	Message   string    `json:"message" db:"message"`
	CaseNo    string    `json:"case_no" db:"case_no"`
}

type CommandType string

const (
	CmdCrawlNow  CommandType = "crawl_now"
	CmdCrawlCase CommandType = "crawl_case"
	CmdPause     CommandType = "pause"
	CmdResume    CommandType = "resume"
	CmdStatus    CommandType = "status"
)

// Command is an operator request queued through the operational store.
type Command struct {
	ID          int64           `json:"id" db:"id"`
	Command     CommandType     `json:"command" db:"command"`
	Params      json.RawMessage `json:"params" db:"params"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at" db:"processed_at"`
}

type CommandParams struct {
	CourtCode string `json:"court_code,omitempty"`
	CaseNo    string `json:"case_no,omitempty"`
}
