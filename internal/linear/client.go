// Package linear implements the issue-tracker client: a thin GraphQL
// facade over the Linear API plus authenticated attachment downloads.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"forgeboard.app/linear-mcp/internal/model"
)

const defaultEndpoint = "https://api.linear.app/graphql"

// ErrNotFound is returned when a requested entity does not exist in the
// tracker. Callers distinguish it from transport failures with errors.Is.
var ErrNotFound = errors.New("not found")

// Client is the tracker surface the pipelines depend on. Production uses
// *GraphQLClient; tests substitute a mock.
type Client interface {
	// Issue fetches one issue with its relations (state, assignee, team,
	// cycle, parent ref) resolved. id may be a UUID or an identifier
	// such as "ENG-123".
	Issue(ctx context.Context, id string) (*model.Issue, error)
	// IssueChildren lists the direct sub-issues of an issue.
	IssueChildren(ctx context.Context, id string) ([]model.Issue, error)
	// Issues runs a filtered search. The filter must carry resolved
	// internal ids only.
	Issues(ctx context.Context, filter model.IssueFilter) ([]model.Issue, error)
	// Viewer resolves the user owning the API key.
	Viewer(ctx context.Context) (*model.User, error)
	// ViewerIssues lists issues assigned to the viewer, optionally
	// restricted to the given coarse state types.
	ViewerIssues(ctx context.Context, stateTypes []model.StateType) ([]model.Issue, error)
	// Comments lists an issue's comments in tracker order (newest first).
	Comments(ctx context.Context, issueID string) ([]model.Comment, error)
	CreateComment(ctx context.Context, issueID, body string) (*model.Comment, error)
	CreateIssue(ctx context.Context, in model.IssueCreate) (*model.Issue, error)
	Teams(ctx context.Context) ([]model.Team, error)
	// WorkflowStates lists workflow states, scoped to a team when teamID
	// is non-empty.
	WorkflowStates(ctx context.Context, teamID string) ([]model.WorkflowState, error)
	// ActiveCycles lists currently running cycles, scoped to a team when
	// teamID is non-empty.
	ActiveCycles(ctx context.Context, teamID string) ([]model.Cycle, error)
	// DownloadAttachment performs an authenticated GET of an attachment
	// URL and returns the raw body.
	DownloadAttachment(ctx context.Context, url string) ([]byte, error)
}

// GraphQLClient talks to the Linear GraphQL API over HTTP.
type GraphQLClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type Option func(*GraphQLClient)

// WithEndpoint overrides the GraphQL endpoint. Used by tests to point at
// an httptest server.
func WithEndpoint(url string) Option {
	return func(c *GraphQLClient) {
		if url != "" {
			c.endpoint = strings.TrimSuffix(url, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *GraphQLClient) { c.httpClient = hc }
}

func NewClient(apiKey string, opts ...Option) *GraphQLClient {
	c := &GraphQLClient{
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Type string `json:"type"`
	} `json:"extensions"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// do executes one GraphQL request and decodes the data payload into out.
// GraphQL-level errors surface as Go errors; the tracker's entity-missing
// errors map to ErrNotFound.
func (c *GraphQLClient) do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting query: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tracker returned status %d: %s", resp.StatusCode, slogSafe(raw))
	}

	var gql graphQLResponse
	if err := json.Unmarshal(raw, &gql); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(gql.Errors) > 0 {
		first := gql.Errors[0]
		if isNotFound(first) {
			return fmt.Errorf("%s: %w", first.Message, ErrNotFound)
		}
		return fmt.Errorf("tracker error: %s", first.Message)
	}
	if out != nil {
		if err := json.Unmarshal(gql.Data, out); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
	}
	return nil
}

func isNotFound(e graphQLError) bool {
	if strings.EqualFold(e.Extensions.Type, "invalid input") && strings.Contains(strings.ToLower(e.Message), "could not find") {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "entity not found")
}

// slogSafe trims a response body for inclusion in an error message.
func slogSafe(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// DownloadAttachment fetches an uploads URL with the API key attached.
// Linear serves issue attachments from an authenticated uploads host.
func (c *GraphQLClient) DownloadAttachment(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("attachment fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading attachment body: %w", err)
	}
	slog.DebugContext(ctx, "attachment downloaded", "url", url, "bytes", len(data))
	return data, nil
}
