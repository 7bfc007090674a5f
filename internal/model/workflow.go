package model

import "time"

// StateType is the coarse bucket a workflow state belongs to.
type StateType string

const (
	StateTypeBacklog   StateType = "backlog"
	StateTypeUnstarted StateType = "unstarted"
	StateTypeStarted   StateType = "started"
	StateTypeCompleted StateType = "completed"
	StateTypeCanceled  StateType = "canceled"
)

// WorkflowState is a named status bucket an issue occupies ("Todo", "Done").
type WorkflowState struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type StateType `json:"type"`
}

// Cycle is a time-boxed iteration a team works issues within.
type Cycle struct {
	ID       string    `json:"id"`
	Number   int       `json:"number"`
	Name     string    `json:"name,omitempty"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

// Comment is a note attached to an issue. The tracker delivers comments
// newest first.
type Comment struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
