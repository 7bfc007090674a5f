package model

// IssueFilter is the native search predicate handed to the tracker.
// Every field is a resolved internal id; human-readable names (team keys,
// status names) must be resolved before constructing one. Constraints
// compose with logical AND.
type IssueFilter struct {
	// TeamID scopes the search to one team.
	TeamID string
	// StateID restricts to a single workflow state.
	StateID string
	// CycleID restricts to issues in a specific cycle.
	CycleID string
	// Unassigned is a tri-state assignment constraint: nil means no
	// constraint, true means assignee is null, false means assignee is set.
	Unassigned *bool
	// StateTypes restricts by coarse state type (used by the viewer's
	// issue listing, not by search).
	StateTypes []StateType
	// Limit is the page size, already clamped by the caller.
	Limit int
}
