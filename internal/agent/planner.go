package agent

import (
	"context"
	"fmt"
	"strings"
)

// Planner decomposes a goal into an ordered list of step descriptions.
type Planner struct {
	Oracle  Oracle
	Prompts *PromptManager
}

// Build asks the oracle for a 2-5 step plan and parses it defensively:
// first a JSON array embedded in the response, then non-blank lines, and
// as a last resort the goal itself as a single degenerate step. Build
// never returns an empty plan on a successful oracle call.
func (p *Planner) Build(ctx context.Context, goal string) ([]string, error) {
	prompt := fmt.Sprintf("User Goal: %s\n\nCreate a plan to achieve this goal.", goal)
	response, err := p.Oracle.Complete(ctx, p.Prompts.PlannerPrompt(), prompt)
	if err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}

	if steps, ok := ExtractArray(response); ok {
		return steps, nil
	}

	var steps []string
	for _, line := range strings.Split(response, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	if len(steps) == 0 {
		steps = []string{goal}
	}
	return steps, nil
}
