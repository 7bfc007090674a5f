package tools

// Parameter structs for the tool surface. JSON tags name the wire
// arguments; jsonschema tags carry the constraints clients see.
// Fields without omitempty are required in the generated schema.

type getTicketParams struct {
	TicketID string `json:"ticket_id" jsonschema:"description=Issue identifier such as ENG-123 or the issue UUID"`
}

type getMyIssuesParams struct {
	State string `json:"state,omitempty" jsonschema:"enum=active,enum=backlog,enum=completed,enum=canceled,enum=all,default=active,description=Which coarse state bucket to list. active covers started and unstarted issues"`
}

type addCommentParams struct {
	TicketID string `json:"ticket_id" jsonschema:"description=Issue identifier such as ENG-123 or the issue UUID"`
	Body     string `json:"body" jsonschema:"description=Comment body in Markdown"`
}

type createIssueParams struct {
	TeamID        string `json:"team_id" jsonschema:"description=Internal id of the team that will own the issue. Use get_teams to look ids up"`
	Title         string `json:"title" jsonschema:"description=Issue title"`
	Description   string `json:"description,omitempty" jsonschema:"description=Issue description in Markdown"`
	Priority      *int   `json:"priority,omitempty" jsonschema:"minimum=0,maximum=4,description=Priority from 0 (none) to 4 (low). 1 is urgent"`
	AssigneeID    string `json:"assignee_id,omitempty" jsonschema:"description=Internal id of the user to assign"`
	ParentIssueID string `json:"parent_issue_id,omitempty" jsonschema:"description=Internal id of the parent issue to nest under"`
}

type getTeamsParams struct{}

type searchIssuesParams struct {
	IsUnassigned   *bool  `json:"is_unassigned,omitempty" jsonschema:"description=true returns only unassigned issues. false returns only assigned ones"`
	TeamIdentifier string `json:"team_identifier,omitempty" jsonschema:"description=Team short code such as ENG. Matched case-insensitively"`
	Status         string `json:"status,omitempty" jsonschema:"description=Exact workflow state name such as In Progress. Matched case-insensitively"`
	IsCurrentCycle bool   `json:"is_current_cycle,omitempty" jsonschema:"description=Restrict to the team's currently active cycle"`
	Limit          int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100,default=20,description=Maximum number of issues to return"`
}
