// Package goals applies the goal tailoring table to a finished report.
package goals

import (
	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/rules"
)

type Tailor struct {
	rules *rules.Rules
}

func New(r *rules.Rules) *Tailor {
	return &Tailor{rules: r}
}

// Apply returns a copy of rep whose growth suggestions are the fixed set for
// goal. Unknown or empty goals use the default goal. Degraded reports are
// returned unchanged.
func (t *Tailor) Apply(rep models.Report, goal string) models.Report {
	if rep.Failed() {
		return rep
	}
	name, g := t.rules.ResolveGoal(goal)
	rep.Goal = name
	rep.GoalContext = g.Context
	rep.GrowthSuggestions = g.Suggestions
	return rep
}

// Suggestions returns the growth suggestions for goal.
func (t *Tailor) Suggestions(goal string) []models.Suggestion {
	_, g := t.rules.ResolveGoal(goal)
	return g.Suggestions
}
