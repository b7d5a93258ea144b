package tui

import "time"

// TaskID identifies a task in the TUI progress display.
type TaskID int

const (
	TaskAuth     TaskID = iota // Authenticating with GitHub
	TaskCounts                 // Fetching repository aggregate counts
	TaskCollect                // Collecting stargazers, watchers, and forkers in parallel
	TaskClassify               // Classifying the engaged user set
)

// TaskStatus represents the current status of a task.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusRunning
	StatusComplete
	StatusError
	StatusSkipped
)

// Event is the interface for all TUI events.
type Event interface {
	isEvent()
}

// TaskEvent represents an update to a task's status.
type TaskEvent struct {
	Task     TaskID
	Status   TaskStatus
	Message  string  // Optional message (e.g., "120/300" for progress)
	Count    int     // Count of items (e.g., engaged users collected)
	Progress float64 // Progress from 0.0 to 1.0
	Error    error   // Error if status is StatusError
}

func (TaskEvent) isEvent() {}

// RateLimitEvent signals that the API quota ran out mid-run.
type RateLimitEvent struct {
	Limited bool
	ResetAt time.Time
}

func (RateLimitEvent) isEvent() {}

// DoneEvent signals that all work is complete.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}
