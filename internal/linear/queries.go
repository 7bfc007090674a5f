package linear

import (
	"context"
	"fmt"

	"forgeboard.app/linear-mcp/internal/model"
)

// issueFields is the full issue selection used where one issue's relations
// matter (single fetch, creation result).
const issueFields = `
	id
	identifier
	title
	description
	priority
	url
	createdAt
	updatedAt
	state { id name type }
	assignee { id name displayName email }
	team { id name key }
	cycle { id number name startsAt endsAt }
	parent { id identifier title }`

// listFields is the slimmer selection used for list queries; parent and
// cycle are resolved per issue by the enrichment fan-out.
const listFields = `
	id
	identifier
	title
	description
	priority
	url
	createdAt
	updatedAt
	state { id name type }
	assignee { id name displayName }
	team { id name key }`

const defaultPageSize = 50

func (c *GraphQLClient) Issue(ctx context.Context, id string) (*model.Issue, error) {
	query := fmt.Sprintf(`query($id: String!) { issue(id: $id) {%s} }`, issueFields)

	var data struct {
		Issue *model.Issue `json:"issue"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id}, &data); err != nil {
		return nil, fmt.Errorf("fetching issue %s: %w", id, err)
	}
	if data.Issue == nil {
		return nil, fmt.Errorf("issue %s: %w", id, ErrNotFound)
	}
	return data.Issue, nil
}

func (c *GraphQLClient) IssueChildren(ctx context.Context, id string) ([]model.Issue, error) {
	query := fmt.Sprintf(`query($id: String!) { issue(id: $id) { children(first: %d) { nodes {%s} } } }`,
		defaultPageSize, listFields)

	var data struct {
		Issue *struct {
			Children struct {
				Nodes []model.Issue `json:"nodes"`
			} `json:"children"`
		} `json:"issue"`
	}
	if err := c.do(ctx, query, map[string]any{"id": id}, &data); err != nil {
		return nil, fmt.Errorf("fetching children of %s: %w", id, err)
	}
	if data.Issue == nil {
		return nil, fmt.Errorf("issue %s: %w", id, ErrNotFound)
	}
	return data.Issue.Children.Nodes, nil
}

func (c *GraphQLClient) Issues(ctx context.Context, filter model.IssueFilter) ([]model.Issue, error) {
	query := fmt.Sprintf(`query($filter: IssueFilter, $first: Int!) { issues(filter: $filter, first: $first) { nodes {%s} } }`, listFields)

	first := filter.Limit
	if first <= 0 {
		first = defaultPageSize
	}

	var data struct {
		Issues struct {
			Nodes []model.Issue `json:"nodes"`
		} `json:"issues"`
	}
	vars := map[string]any{"filter": buildIssueFilter(filter), "first": first}
	if err := c.do(ctx, query, vars, &data); err != nil {
		return nil, fmt.Errorf("searching issues: %w", err)
	}
	return data.Issues.Nodes, nil
}

func (c *GraphQLClient) Viewer(ctx context.Context) (*model.User, error) {
	const query = `query { viewer { id name displayName email } }`

	var data struct {
		Viewer *model.User `json:"viewer"`
	}
	if err := c.do(ctx, query, nil, &data); err != nil {
		return nil, fmt.Errorf("fetching viewer: %w", err)
	}
	if data.Viewer == nil {
		return nil, fmt.Errorf("viewer: %w", ErrNotFound)
	}
	return data.Viewer, nil
}

func (c *GraphQLClient) ViewerIssues(ctx context.Context, stateTypes []model.StateType) ([]model.Issue, error) {
	query := fmt.Sprintf(`query($filter: IssueFilter, $first: Int!) { viewer { assignedIssues(filter: $filter, first: $first) { nodes {%s} } } }`, listFields)

	filter := buildIssueFilter(model.IssueFilter{StateTypes: stateTypes})
	var data struct {
		Viewer struct {
			AssignedIssues struct {
				Nodes []model.Issue `json:"nodes"`
			} `json:"assignedIssues"`
		} `json:"viewer"`
	}
	vars := map[string]any{"filter": filter, "first": defaultPageSize}
	if err := c.do(ctx, query, vars, &data); err != nil {
		return nil, fmt.Errorf("fetching viewer issues: %w", err)
	}
	return data.Viewer.AssignedIssues.Nodes, nil
}

func (c *GraphQLClient) Comments(ctx context.Context, issueID string) ([]model.Comment, error) {
	query := fmt.Sprintf(`query($id: String!) { issue(id: $id) { comments(first: %d) { nodes { id body createdAt user { id name displayName } } } } }`, defaultPageSize)

	var data struct {
		Issue *struct {
			Comments struct {
				Nodes []model.Comment `json:"nodes"`
			} `json:"comments"`
		} `json:"issue"`
	}
	if err := c.do(ctx, query, map[string]any{"id": issueID}, &data); err != nil {
		return nil, fmt.Errorf("fetching comments of %s: %w", issueID, err)
	}
	if data.Issue == nil {
		return nil, fmt.Errorf("issue %s: %w", issueID, ErrNotFound)
	}
	return data.Issue.Comments.Nodes, nil
}

func (c *GraphQLClient) CreateComment(ctx context.Context, issueID, body string) (*model.Comment, error) {
	const query = `mutation($input: CommentCreateInput!) {
		commentCreate(input: $input) {
			success
			comment { id body createdAt user { id name displayName } }
		}
	}`

	var data struct {
		CommentCreate struct {
			Success bool           `json:"success"`
			Comment *model.Comment `json:"comment"`
		} `json:"commentCreate"`
	}
	vars := map[string]any{"input": map[string]any{"issueId": issueID, "body": body}}
	if err := c.do(ctx, query, vars, &data); err != nil {
		return nil, fmt.Errorf("creating comment on %s: %w", issueID, err)
	}
	if !data.CommentCreate.Success || data.CommentCreate.Comment == nil {
		return nil, fmt.Errorf("creating comment on %s: tracker reported failure", issueID)
	}
	return data.CommentCreate.Comment, nil
}

func (c *GraphQLClient) CreateIssue(ctx context.Context, in model.IssueCreate) (*model.Issue, error) {
	query := fmt.Sprintf(`mutation($input: IssueCreateInput!) {
		issueCreate(input: $input) {
			success
			issue {%s}
		}
	}`, issueFields)

	input := map[string]any{
		"teamId": in.TeamID,
		"title":  in.Title,
	}
	if in.Description != "" {
		input["description"] = in.Description
	}
	if in.Priority != nil {
		input["priority"] = *in.Priority
	}
	if in.AssigneeID != nil {
		input["assigneeId"] = *in.AssigneeID
	}
	if in.ParentID != nil {
		input["parentId"] = *in.ParentID
	}

	var data struct {
		IssueCreate struct {
			Success bool         `json:"success"`
			Issue   *model.Issue `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := c.do(ctx, query, map[string]any{"input": input}, &data); err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}
	if !data.IssueCreate.Success || data.IssueCreate.Issue == nil {
		return nil, fmt.Errorf("creating issue: tracker reported failure")
	}
	return data.IssueCreate.Issue, nil
}

func (c *GraphQLClient) Teams(ctx context.Context) ([]model.Team, error) {
	const query = `query { teams(first: 100) { nodes { id name key } } }`

	var data struct {
		Teams struct {
			Nodes []model.Team `json:"nodes"`
		} `json:"teams"`
	}
	if err := c.do(ctx, query, nil, &data); err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	return data.Teams.Nodes, nil
}

func (c *GraphQLClient) WorkflowStates(ctx context.Context, teamID string) ([]model.WorkflowState, error) {
	const query = `query($filter: WorkflowStateFilter) { workflowStates(filter: $filter, first: 100) { nodes { id name type } } }`

	var filter map[string]any
	if teamID != "" {
		filter = map[string]any{"team": map[string]any{"id": map[string]any{"eq": teamID}}}
	}

	var data struct {
		WorkflowStates struct {
			Nodes []model.WorkflowState `json:"nodes"`
		} `json:"workflowStates"`
	}
	if err := c.do(ctx, query, map[string]any{"filter": filter}, &data); err != nil {
		return nil, fmt.Errorf("fetching workflow states: %w", err)
	}
	return data.WorkflowStates.Nodes, nil
}

func (c *GraphQLClient) ActiveCycles(ctx context.Context, teamID string) ([]model.Cycle, error) {
	const query = `query($filter: CycleFilter) { cycles(filter: $filter, first: 50) { nodes { id number name startsAt endsAt } } }`

	filter := map[string]any{"isActive": map[string]any{"eq": true}}
	if teamID != "" {
		filter["team"] = map[string]any{"id": map[string]any{"eq": teamID}}
	}

	var data struct {
		Cycles struct {
			Nodes []model.Cycle `json:"nodes"`
		} `json:"cycles"`
	}
	if err := c.do(ctx, query, map[string]any{"filter": filter}, &data); err != nil {
		return nil, fmt.Errorf("fetching active cycles: %w", err)
	}
	return data.Cycles.Nodes, nil
}

// buildIssueFilter translates the resolved predicate into the tracker's
// native filter shape. Only resolved ids ever appear here.
func buildIssueFilter(f model.IssueFilter) map[string]any {
	filter := map[string]any{}

	state := map[string]any{}
	if f.StateID != "" {
		state["id"] = map[string]any{"eq": f.StateID}
	}
	if len(f.StateTypes) > 0 {
		types := make([]string, len(f.StateTypes))
		for i, t := range f.StateTypes {
			types[i] = string(t)
		}
		state["type"] = map[string]any{"in": types}
	}
	if len(state) > 0 {
		filter["state"] = state
	}

	if f.TeamID != "" {
		filter["team"] = map[string]any{"id": map[string]any{"eq": f.TeamID}}
	}
	if f.CycleID != "" {
		filter["cycle"] = map[string]any{"id": map[string]any{"eq": f.CycleID}}
	}
	if f.Unassigned != nil {
		filter["assignee"] = map[string]any{"null": *f.Unassigned}
	}
	return filter
}
