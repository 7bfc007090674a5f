package model

import "time"

// Issue is a trackable unit of work as returned by the tracker. Relation
// fields are pointers: the tracker omits them when the issue has no state,
// assignee, team or cycle attached.
type Issue struct {
	ID          string         `json:"id"`
	Identifier  string         `json:"identifier"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Priority    *int           `json:"priority,omitempty"`
	State       *WorkflowState `json:"state,omitempty"`
	Assignee    *User          `json:"assignee,omitempty"`
	Team        *Team          `json:"team,omitempty"`
	Cycle       *Cycle         `json:"cycle,omitempty"`
	Parent      *IssueRef      `json:"parent,omitempty"`
	URL         string         `json:"url"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// IssueRef is a lightweight handle to another issue (parent or child)
// without its relations resolved.
type IssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

// IssueCreate is the input for creating an issue. TeamID and Title are
// required; everything else is optional.
type IssueCreate struct {
	TeamID      string  `json:"teamId"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
	AssigneeID  *string `json:"assigneeId,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
}
