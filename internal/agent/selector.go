package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rahul/drishti/internal/tools"
)

// Selector asks the oracle to pick an operation plus parameters for one
// step. The response is raw text; it is never executed directly and must
// pass through the repair layer first.
type Selector struct {
	Oracle   Oracle
	Registry *tools.Registry
	Prompts  *PromptManager
}

// Select returns the oracle's raw tool selection for the current step.
// Only the count of prior invocations is passed along, not the full
// history, to keep the prompt bounded.
func (s *Selector) Select(ctx context.Context, goal, step string, priorCalls int) (string, error) {
	prompt := fmt.Sprintf(`Current Task: %s

Previous Results Summary: %d tool calls completed

User's Original Goal: %s

Select the appropriate tool and parameters for this task.`, step, priorCalls, goal)

	return s.Oracle.Complete(ctx, s.Prompts.SelectorPrompt(s.catalog()), prompt)
}

// catalog renders the capability table for the selector prompt.
func (s *Selector) catalog() string {
	var b strings.Builder
	for i, t := range s.Registry.All() {
		schema, err := json.MarshalIndent(t.Parameters(), "", "  ")
		if err != nil {
			schema = []byte("{}")
		}
		fmt.Fprintf(&b, "%d) %s - %s\nParameters schema:\n%s\n\n", i+1, t.Name(), t.Description(), schema)
	}
	return strings.TrimSpace(b.String())
}
