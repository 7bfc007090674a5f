package tools

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"forgeboard.app/linear-mcp/common/logger"
	"forgeboard.app/linear-mcp/internal/enrich"
	"forgeboard.app/linear-mcp/internal/format"
	"forgeboard.app/linear-mcp/internal/linear"
	"forgeboard.app/linear-mcp/internal/media"
	"forgeboard.app/linear-mcp/internal/model"
	"forgeboard.app/linear-mcp/internal/search"
)

// handler carries the shared collaborators every tool needs. Constructed
// once at startup, read-only afterwards.
type handler struct {
	client   linear.Client
	enricher *enrich.Enricher
	media    *media.Resolver
}

func newHandler(client linear.Client, resolver *media.Resolver) *handler {
	return &handler{
		client:   client,
		enricher: enrich.NewEnricher(client),
		media:    resolver,
	}
}

func (h *handler) getTicket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p getTicketParams
	if err := request.BindArguments(&p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Tool:     logger.Ptr("get_ticket"),
		TicketID: logger.Ptr(p.TicketID),
	})

	issue, err := h.client.Issue(ctx, p.TicketID)
	if err != nil {
		if errors.Is(err, linear.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("ticket %q not found", p.TicketID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fetching ticket %q: %v", p.TicketID, err)), nil
	}

	view := h.enricher.View(ctx, issue)

	comments, err := h.client.Comments(ctx, issue.ID)
	if err != nil {
		// Auxiliary lookup: degrade to an empty comment section.
		slog.WarnContext(ctx, "fetching comments failed", "error", err)
		comments = nil
	}

	resolved := h.media.Resolve(ctx, format.Ticket(view, comments))

	content := []mcp.Content{mcp.TextContent{Type: "text", Text: resolved.Text}}
	for _, img := range resolved.Images {
		data, err := os.ReadFile(img.Path)
		if err != nil {
			slog.WarnContext(ctx, "reading cached image failed", "path", img.Path, "error", err)
			continue
		}
		content = append(content, mcp.ImageContent{
			Type:     "image",
			Data:     base64.StdEncoding.EncodeToString(data),
			MIMEType: http.DetectContentType(data),
		})
	}

	return &mcp.CallToolResult{Content: content}, nil
}

func (h *handler) getMyIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p getMyIssuesParams
	if err := request.BindArguments(&p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{Tool: logger.Ptr("get_my_issues")})

	stateTypes, err := stateTypesFor(p.State)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	issues, err := h.client.ViewerIssues(ctx, stateTypes)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching assigned issues: %v", err)), nil
	}

	views, err := h.enricher.Views(ctx, issues, enrich.Options{
		Concurrency: enrich.MyIssuesConcurrency,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("enriching issues: %v", err)), nil
	}

	return mcp.NewToolResultText(format.IssueList(views)), nil
}

// stateTypesFor maps the tool-level state bucket onto coarse workflow
// state types. An empty bucket defaults to active; "all" means no
// constraint at all.
func stateTypesFor(state string) ([]model.StateType, error) {
	switch state {
	case "", "active":
		return []model.StateType{model.StateTypeStarted, model.StateTypeUnstarted}, nil
	case "backlog":
		return []model.StateType{model.StateTypeBacklog}, nil
	case "completed":
		return []model.StateType{model.StateTypeCompleted}, nil
	case "canceled":
		return []model.StateType{model.StateTypeCanceled}, nil
	case "all":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown state %q: expected active, backlog, completed, canceled or all", state)
	}
}

func (h *handler) addComment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p addCommentParams
	if err := request.BindArguments(&p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Tool:     logger.Ptr("add_comment"),
		TicketID: logger.Ptr(p.TicketID),
	})

	comment, err := h.client.CreateComment(ctx, p.TicketID, p.Body)
	if err != nil {
		if errors.Is(err, linear.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("ticket %q not found", p.TicketID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("adding comment to %q: %v", p.TicketID, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Added comment %s to %s.", comment.ID, p.TicketID)), nil
}

func (h *handler) createIssue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p createIssueParams
	if err := request.BindArguments(&p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{Tool: logger.Ptr("create_issue")})

	if p.Priority != nil && (*p.Priority < 0 || *p.Priority > 4) {
		return mcp.NewToolResultError(fmt.Sprintf("priority %d out of range: expected 0 to 4", *p.Priority)), nil
	}

	in := model.IssueCreate{
		TeamID:      p.TeamID,
		Title:       p.Title,
		Description: p.Description,
		Priority:    p.Priority,
	}
	if p.AssigneeID != "" {
		in.AssigneeID = &p.AssigneeID
	}
	if p.ParentIssueID != "" {
		in.ParentID = &p.ParentIssueID
	}

	issue, err := h.client.CreateIssue(ctx, in)
	if err != nil {
		if errors.Is(err, linear.ErrNotFound) && p.ParentIssueID != "" {
			return mcp.NewToolResultError(fmt.Sprintf("parent issue %q not found", p.ParentIssueID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("creating issue: %v", err)), nil
	}

	return mcp.NewToolResultText(format.CreatedIssue(issue)), nil
}

func (h *handler) getTeams(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Tool: logger.Ptr("get_teams")})

	teams, err := h.client.Teams(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching teams: %v", err)), nil
	}

	return mcp.NewToolResultText(format.Teams(teams)), nil
}

func (h *handler) searchIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p searchIssuesParams
	if err := request.BindArguments(&p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fields := logger.LogFields{Tool: logger.Ptr("search_issues")}
	if p.TeamIdentifier != "" {
		fields.TeamKey = logger.Ptr(p.TeamIdentifier)
	}
	ctx = logger.WithLogFields(ctx, fields)

	spec, err := search.BuildFilter(ctx, h.client, search.Params{
		Unassigned:       p.IsUnassigned,
		TeamKey:          p.TeamIdentifier,
		StatusName:       p.Status,
		CurrentCycleOnly: p.IsCurrentCycle,
		Limit:            p.Limit,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if spec.NoActiveCycle {
		return mcp.NewToolResultText("No cycle is currently active, so there are no current-cycle issues to show."), nil
	}

	issues, err := h.client.Issues(ctx, spec.Filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("searching issues: %v", err)), nil
	}

	views, err := h.enricher.Views(ctx, issues, enrich.Options{
		IncludeCycle: true,
		Concurrency:  enrich.SearchConcurrency,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("enriching issues: %v", err)), nil
	}

	return mcp.NewToolResultText(format.SearchResults(views)), nil
}
