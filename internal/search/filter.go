// Package search translates semantic search parameters into the
// tracker's native issue predicate, resolving human-readable names to
// internal ids along the way.
package search

import (
	"context"
	"fmt"
	"strings"

	"forgeboard.app/linear-mcp/internal/linear"
	"forgeboard.app/linear-mcp/internal/model"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params are the caller-facing search knobs. Names here are human
// readable; BuildFilter resolves them before anything reaches the
// tracker.
type Params struct {
	// Unassigned filters by assignment: true for unassigned issues only,
	// false for assigned only, nil for no constraint.
	Unassigned *bool
	// TeamKey is the team's short code ("ENG"), matched case-insensitively.
	TeamKey string
	// StatusName is an exact workflow state name, matched case-insensitively,
	// scoped to the team when TeamKey is also set.
	StatusName string
	// CurrentCycleOnly restricts to the team's active cycle.
	CurrentCycleOnly bool
	// Limit is the requested page size, clamped to [1, MaxLimit] with
	// DefaultLimit for zero.
	Limit int
}

// Spec is the fully resolved search: the native filter plus the one
// outcome that is informational rather than a filter (no cycle running).
type Spec struct {
	Filter model.IssueFilter
	// NoActiveCycle reports that CurrentCycleOnly was requested but no
	// cycle is active. The caller must answer with an informational
	// message and skip the issue query entirely.
	NoActiveCycle bool
}

// TeamNotFoundError reports a team key that matched nothing.
type TeamNotFoundError struct {
	Key string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("no team found matching key %q", e.Key)
}

// StatusNotFoundError reports a status name that matched nothing.
type StatusNotFoundError struct {
	Name string
}

func (e *StatusNotFoundError) Error() string {
	return fmt.Sprintf("no workflow state found matching %q", e.Name)
}

// BuildFilter resolves params into a Spec. Each resolution step is
// independently fallible; constraints compose with logical AND.
func BuildFilter(ctx context.Context, client linear.Client, p Params) (Spec, error) {
	spec := Spec{
		Filter: model.IssueFilter{
			Unassigned: p.Unassigned,
			Limit:      clampLimit(p.Limit),
		},
	}

	if p.TeamKey != "" {
		teams, err := client.Teams(ctx)
		if err != nil {
			return Spec{}, fmt.Errorf("resolving team key: %w", err)
		}
		team := matchTeam(teams, p.TeamKey)
		if team == nil {
			return Spec{}, &TeamNotFoundError{Key: p.TeamKey}
		}
		spec.Filter.TeamID = team.ID
	}

	if p.StatusName != "" {
		states, err := client.WorkflowStates(ctx, spec.Filter.TeamID)
		if err != nil {
			return Spec{}, fmt.Errorf("resolving status name: %w", err)
		}
		state := matchState(states, p.StatusName)
		if state == nil {
			return Spec{}, &StatusNotFoundError{Name: p.StatusName}
		}
		spec.Filter.StateID = state.ID
	}

	if p.CurrentCycleOnly {
		cycles, err := client.ActiveCycles(ctx, spec.Filter.TeamID)
		if err != nil {
			return Spec{}, fmt.Errorf("resolving active cycle: %w", err)
		}
		if len(cycles) == 0 {
			spec.NoActiveCycle = true
			return spec, nil
		}
		spec.Filter.CycleID = cycles[0].ID
	}

	return spec, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func matchTeam(teams []model.Team, key string) *model.Team {
	for i := range teams {
		if strings.EqualFold(teams[i].Key, key) {
			return &teams[i]
		}
	}
	return nil
}

func matchState(states []model.WorkflowState, name string) *model.WorkflowState {
	for i := range states {
		if strings.EqualFold(states[i].Name, name) {
			return &states[i]
		}
	}
	return nil
}
