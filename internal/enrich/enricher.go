// Package enrich resolves the related entities of issue batches into
// flattened views under bounded concurrency.
package enrich

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"forgeboard.app/linear-mcp/common/conc"
	"forgeboard.app/linear-mcp/internal/linear"
	"forgeboard.app/linear-mcp/internal/model"
)

// Concurrency caps for the two batch shapes. The viewer listing is small
// and latency-tolerant; search pages are larger.
const (
	MyIssuesConcurrency = 3
	SearchConcurrency   = 5
)

type Enricher struct {
	client linear.Client
}

func NewEnricher(client linear.Client) *Enricher {
	return &Enricher{client: client}
}

// Options controls what a batch enrichment resolves per issue.
type Options struct {
	// IncludeCycle keeps the cycle name on the view when the full fetch
	// carries one.
	IncludeCycle bool
	// Concurrency caps how many issues are enriched at once. Zero runs
	// unbounded, which callers should not do for tracker batches.
	Concurrency int
}

// Views enriches a batch of issues into output views, preserving input
// order regardless of completion order. Per-issue auxiliary failures
// (full fetch, children) degrade that view's fields to placeholders
// instead of failing the batch; only context cancellation aborts.
func (e *Enricher) Views(ctx context.Context, issues []model.Issue, opts Options) ([]model.IssueView, error) {
	return conc.Map(ctx, issues, opts.Concurrency, func(ctx context.Context, issue model.Issue) (model.IssueView, error) {
		if err := ctx.Err(); err != nil {
			return model.IssueView{}, err
		}
		return e.view(ctx, issue, opts.IncludeCycle), nil
	})
}

// View enriches a single, already fully fetched issue (children only).
func (e *Enricher) View(ctx context.Context, issue *model.Issue) model.IssueView {
	children, err := e.client.IssueChildren(ctx, issue.ID)
	if err != nil {
		slog.WarnContext(ctx, "children lookup failed", "issue", issue.Identifier, "error", err)
		children = nil
	}
	return buildView(*issue, children, true)
}

// view resolves one batch element: the full issue (for parent and cycle)
// and its children, started together and awaited together.
func (e *Enricher) view(ctx context.Context, issue model.Issue, includeCycle bool) model.IssueView {
	var (
		wg       sync.WaitGroup
		full     *model.Issue
		fullErr  error
		children []model.Issue
		childErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		full, fullErr = e.client.Issue(ctx, issue.ID)
	}()
	go func() {
		defer wg.Done()
		children, childErr = e.client.IssueChildren(ctx, issue.ID)
	}()
	wg.Wait()

	if fullErr != nil {
		slog.WarnContext(ctx, "full issue lookup failed, using listing data", "issue", issue.Identifier, "error", fullErr)
	} else {
		issue = *full
	}
	if childErr != nil {
		slog.WarnContext(ctx, "children lookup failed", "issue", issue.Identifier, "error", childErr)
		children = nil
	}

	return buildView(issue, children, includeCycle)
}

func buildView(issue model.Issue, children []model.Issue, includeCycle bool) model.IssueView {
	view := model.IssueView{
		ID:          issue.ID,
		Identifier:  issue.Identifier,
		Title:       issue.Title,
		Description: issue.Description,
		Priority:    issue.Priority,
		Assignee:    issue.Assignee,
		Parent:      issue.Parent,
		URL:         issue.URL,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
	if issue.State != nil {
		view.StateName = issue.State.Name
	}
	if issue.Team != nil {
		view.TeamName = issue.Team.Name
	}
	if includeCycle && issue.Cycle != nil {
		view.CycleName = cycleName(issue.Cycle)
	}
	for _, child := range children {
		summary := model.ChildSummary{
			Identifier: child.Identifier,
			Title:      child.Title,
			Assignee:   child.Assignee,
			Priority:   child.Priority,
		}
		if child.State != nil {
			summary.StateName = child.State.Name
		}
		view.Children = append(view.Children, summary)
	}
	return view
}

func cycleName(c *model.Cycle) string {
	if c.Name != "" {
		return c.Name
	}
	return "Cycle " + strconv.Itoa(c.Number)
}
