// Package format renders issue projections as human-readable text.
// Everything here is pure and deterministic given its inputs.
package format

import (
	"fmt"
	"strings"
	"time"

	"forgeboard.app/linear-mcp/internal/model"
)

// Placeholders substituted for unresolved relations.
const (
	unknownState  = "Unknown"
	noAssignee    = "Unassigned"
	noTeam        = "None"
	noDescription = "No description provided."
	noComments    = "No comments on this ticket."
)

// timeLayout is a fixed timestamp format. Go does not consult the process
// locale, so this deviates deliberately from locale-dependent rendering.
const timeLayout = "Jan 2, 2006 3:04 PM"

// PriorityLabel maps a tracker priority to its display label. Total over
// all inputs: nil is "None", unknown numbers render as "Priority {n}".
func PriorityLabel(priority *int) string {
	if priority == nil {
		return "None"
	}
	switch *priority {
	case 0:
		return "No priority"
	case 1:
		return "Urgent"
	case 2:
		return "High"
	case 3:
		return "Medium"
	case 4:
		return "Low"
	default:
		return fmt.Sprintf("Priority %d", *priority)
	}
}

// Timestamp renders a time in the fixed display layout.
func Timestamp(t time.Time) string {
	return t.Format(timeLayout)
}

func assigneeName(u *model.User) string {
	if u == nil {
		return noAssignee
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Name
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// Ticket renders the full single-ticket view: metadata, description,
// sub-issues and comments. Comments arrive in tracker order (newest
// first) and are rendered oldest first.
func Ticket(view model.IssueView, comments []model.Comment) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s: %s\n\n", view.Identifier, view.Title)
	fmt.Fprintf(&sb, "State: %s\n", orPlaceholder(view.StateName, unknownState))
	fmt.Fprintf(&sb, "Priority: %s\n", PriorityLabel(view.Priority))
	fmt.Fprintf(&sb, "Assignee: %s\n", assigneeName(view.Assignee))
	fmt.Fprintf(&sb, "Team: %s\n", orPlaceholder(view.TeamName, noTeam))
	if view.CycleName != "" {
		fmt.Fprintf(&sb, "Cycle: %s\n", view.CycleName)
	}
	if view.Parent != nil {
		fmt.Fprintf(&sb, "Parent: %s: %s\n", view.Parent.Identifier, view.Parent.Title)
	}
	fmt.Fprintf(&sb, "Created: %s\n", Timestamp(view.CreatedAt))
	fmt.Fprintf(&sb, "Updated: %s\n", Timestamp(view.UpdatedAt))
	if view.URL != "" {
		fmt.Fprintf(&sb, "URL: %s\n", view.URL)
	}

	sb.WriteString("\n## Description\n\n")
	sb.WriteString(orPlaceholder(strings.TrimSpace(view.Description), noDescription))
	sb.WriteString("\n")

	if len(view.Children) > 0 {
		fmt.Fprintf(&sb, "\n## Sub-issues (%d)\n\n", len(view.Children))
		for _, child := range view.Children {
			sb.WriteString(childLine(child))
		}
	}

	sb.WriteString("\n## Comments\n\n")
	if len(comments) == 0 {
		sb.WriteString(noComments)
		sb.WriteString("\n")
	} else {
		for i := len(comments) - 1; i >= 0; i-- {
			c := comments[i]
			fmt.Fprintf(&sb, "### %s — %s\n\n%s\n\n", assigneeName(c.User), Timestamp(c.CreatedAt), strings.TrimSpace(c.Body))
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func childLine(child model.ChildSummary) string {
	return fmt.Sprintf("- %s: %s [%s, %s, %s]\n",
		child.Identifier,
		child.Title,
		orPlaceholder(child.StateName, unknownState),
		assigneeName(child.Assignee),
		PriorityLabel(child.Priority),
	)
}

// issueLine is the one-line rendering shared by listings and search
// results, with parent and sub-issue annotations when present.
func issueLine(view model.IssueView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- [%s] %s: %s (%s, %s)\n",
		orPlaceholder(view.StateName, unknownState),
		view.Identifier,
		view.Title,
		assigneeName(view.Assignee),
		PriorityLabel(view.Priority),
	)
	if view.Parent != nil {
		fmt.Fprintf(&sb, "  Sub-issue of %s: %s\n", view.Parent.Identifier, view.Parent.Title)
	}
	for _, child := range view.Children {
		sb.WriteString("  ")
		sb.WriteString(childLine(child))
	}
	return sb.String()
}

// IssueList renders the viewer's issues.
func IssueList(views []model.IssueView) string {
	if len(views) == 0 {
		return "No issues found.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d issues:\n\n", len(views))
	for _, view := range views {
		sb.WriteString(issueLine(view))
	}
	return sb.String()
}

// SearchResults renders a search page.
func SearchResults(views []model.IssueView) string {
	if len(views) == 0 {
		return "No issues matched the search.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d matching issues:\n\n", len(views))
	for _, view := range views {
		sb.WriteString(issueLine(view))
	}
	return sb.String()
}

// Teams renders the team roster as a bullet list.
func Teams(teams []model.Team) string {
	if len(teams) == 0 {
		return "No teams found in this workspace.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d teams:\n\n", len(teams))
	for _, team := range teams {
		fmt.Fprintf(&sb, "- %s (%s) — id %s\n", team.Name, team.Key, team.ID)
	}
	return sb.String()
}

// CreatedIssue renders the confirmation summary for a freshly created
// issue.
func CreatedIssue(issue *model.Issue) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Created issue %s: %s\n", issue.Identifier, issue.Title)
	if issue.State != nil {
		fmt.Fprintf(&sb, "State: %s\n", issue.State.Name)
	}
	fmt.Fprintf(&sb, "Priority: %s\n", PriorityLabel(issue.Priority))
	fmt.Fprintf(&sb, "Assignee: %s\n", assigneeName(issue.Assignee))
	if issue.Parent != nil {
		fmt.Fprintf(&sb, "Parent: %s\n", issue.Parent.Identifier)
	}
	if issue.URL != "" {
		fmt.Fprintf(&sb, "URL: %s\n", issue.URL)
	}
	return sb.String()
}
