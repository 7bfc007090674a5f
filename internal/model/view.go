package model

import "time"

// IssueView is the flattened projection of an issue used for output.
// Constructed once per request by the enricher and never mutated after.
// Relation fields that could not be resolved are left nil; the formatter
// substitutes placeholders.
type IssueView struct {
	ID          string
	Identifier  string
	Title       string
	Description string
	Priority    *int
	StateName   string
	Assignee    *User
	TeamName    string
	CycleName   string
	Parent      *IssueRef
	Children    []ChildSummary
	URL         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChildSummary is the one-line projection of a sub-issue rendered inside
// its parent's view.
type ChildSummary struct {
	Identifier string
	Title      string
	StateName  string
	Assignee   *User
	Priority   *int
}
