package enrich_test

import (
	"context"

	"forgeboard.app/linear-mcp/internal/linear"
	"forgeboard.app/linear-mcp/internal/model"
)

// mockClient implements linear.Client with per-method overrides. Methods
// without an override return zero values.
type mockClient struct {
	issueFn              func(ctx context.Context, id string) (*model.Issue, error)
	issueChildrenFn      func(ctx context.Context, id string) ([]model.Issue, error)
	issuesFn             func(ctx context.Context, filter model.IssueFilter) ([]model.Issue, error)
	viewerFn             func(ctx context.Context) (*model.User, error)
	viewerIssuesFn       func(ctx context.Context, stateTypes []model.StateType) ([]model.Issue, error)
	commentsFn           func(ctx context.Context, issueID string) ([]model.Comment, error)
	createCommentFn      func(ctx context.Context, issueID, body string) (*model.Comment, error)
	createIssueFn        func(ctx context.Context, in model.IssueCreate) (*model.Issue, error)
	teamsFn              func(ctx context.Context) ([]model.Team, error)
	workflowStatesFn     func(ctx context.Context, teamID string) ([]model.WorkflowState, error)
	activeCyclesFn       func(ctx context.Context, teamID string) ([]model.Cycle, error)
	downloadAttachmentFn func(ctx context.Context, url string) ([]byte, error)

	issuesCalls int
}

func (m *mockClient) Issue(ctx context.Context, id string) (*model.Issue, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, id)
	}
	// The real client never returns (nil, nil): a missing issue is
	// reported as ErrNotFound, which callers degrade on.
	return nil, linear.ErrNotFound
}

func (m *mockClient) IssueChildren(ctx context.Context, id string) ([]model.Issue, error) {
	if m.issueChildrenFn != nil {
		return m.issueChildrenFn(ctx, id)
	}
	return nil, nil
}

func (m *mockClient) Issues(ctx context.Context, filter model.IssueFilter) ([]model.Issue, error) {
	m.issuesCalls++
	if m.issuesFn != nil {
		return m.issuesFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockClient) Viewer(ctx context.Context) (*model.User, error) {
	if m.viewerFn != nil {
		return m.viewerFn(ctx)
	}
	return nil, nil
}

func (m *mockClient) ViewerIssues(ctx context.Context, stateTypes []model.StateType) ([]model.Issue, error) {
	if m.viewerIssuesFn != nil {
		return m.viewerIssuesFn(ctx, stateTypes)
	}
	return nil, nil
}

func (m *mockClient) Comments(ctx context.Context, issueID string) ([]model.Comment, error) {
	if m.commentsFn != nil {
		return m.commentsFn(ctx, issueID)
	}
	return nil, nil
}

func (m *mockClient) CreateComment(ctx context.Context, issueID, body string) (*model.Comment, error) {
	if m.createCommentFn != nil {
		return m.createCommentFn(ctx, issueID, body)
	}
	return nil, nil
}

func (m *mockClient) CreateIssue(ctx context.Context, in model.IssueCreate) (*model.Issue, error) {
	if m.createIssueFn != nil {
		return m.createIssueFn(ctx, in)
	}
	return nil, nil
}

func (m *mockClient) Teams(ctx context.Context) ([]model.Team, error) {
	if m.teamsFn != nil {
		return m.teamsFn(ctx)
	}
	return nil, nil
}

func (m *mockClient) WorkflowStates(ctx context.Context, teamID string) ([]model.WorkflowState, error) {
	if m.workflowStatesFn != nil {
		return m.workflowStatesFn(ctx, teamID)
	}
	return nil, nil
}

func (m *mockClient) ActiveCycles(ctx context.Context, teamID string) ([]model.Cycle, error) {
	if m.activeCyclesFn != nil {
		return m.activeCyclesFn(ctx, teamID)
	}
	return nil, nil
}

func (m *mockClient) DownloadAttachment(ctx context.Context, url string) ([]byte, error) {
	if m.downloadAttachmentFn != nil {
		return m.downloadAttachmentFn(ctx, url)
	}
	return nil, nil
}
