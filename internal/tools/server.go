// Package tools exposes the issue tracker over the Model Context
// Protocol: six tools covering single-ticket reads with inline images,
// the viewer's assigned issues, comment and issue creation, team
// listing and filtered search.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"forgeboard.app/linear-mcp/internal/linear"
	"forgeboard.app/linear-mcp/internal/media"
)

const serverName = "linear-mcp"

// NewServer wires the tool surface onto an MCP server. The recovery
// middleware converts handler panics into error results so one bad
// invocation never takes the process down.
func NewServer(client linear.Client, resolver *media.Resolver, version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	h := newHandler(client, resolver)

	s.AddTool(mcp.NewToolWithRawSchema(
		"get_ticket",
		"Fetch one ticket with its state, priority, assignee, team, parent, sub-issues and comments. Images referenced in the ticket are returned inline.",
		rawSchema(getTicketParams{}),
	), h.getTicket)

	s.AddTool(mcp.NewToolWithRawSchema(
		"get_my_issues",
		"List the issues assigned to the authenticated user, optionally restricted to a coarse state bucket.",
		rawSchema(getMyIssuesParams{}),
	), h.getMyIssues)

	s.AddTool(mcp.NewToolWithRawSchema(
		"add_comment",
		"Add a Markdown comment to a ticket.",
		rawSchema(addCommentParams{}),
	), h.addComment)

	s.AddTool(mcp.NewToolWithRawSchema(
		"create_issue",
		"Create a new issue in a team, optionally with description, priority, assignee and parent issue.",
		rawSchema(createIssueParams{}),
	), h.createIssue)

	s.AddTool(mcp.NewToolWithRawSchema(
		"get_teams",
		"List the workspace's teams with their short codes and internal ids.",
		rawSchema(getTeamsParams{}),
	), h.getTeams)

	s.AddTool(mcp.NewToolWithRawSchema(
		"search_issues",
		"Search issues by assignment, team, workflow state and active cycle. Filters combine with AND.",
		rawSchema(searchIssuesParams{}),
	), h.searchIssues)

	return s
}
