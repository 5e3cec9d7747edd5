package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// FallbackAnswer is returned when synthesis itself fails; the run always
// ends with a non-empty answer.
const FallbackAnswer = "Unable to generate a response. Please try again."

// maxResultChars bounds each history entry fed to the oracle.
const maxResultChars = 3000

// Synthesizer turns the accumulated results into the final user-facing
// answer with a single oracle call.
type Synthesizer struct {
	Oracle  Oracle
	Prompts *PromptManager
}

// Synthesize formats every non-error invocation into a short block and
// asks the oracle for the final answer. Always returns a non-empty
// string.
func (s *Synthesizer) Synthesize(ctx context.Context, goal string, history []InvocationRecord) string {
	var blocks []string
	for _, rec := range history {
		if rec.Failed() || rec.Result == nil {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("**Step %d: %s**\n%s", rec.Step, rec.Tool, formatResult(rec)))
	}

	prompt := fmt.Sprintf(`User's Original Goal: %s

Research Results:
%s

Synthesize these findings into a clear, actionable response for the user.`, goal, strings.Join(blocks, "\n\n"))

	answer, err := s.Oracle.Complete(ctx, s.Prompts.SynthesizerPrompt(), prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		return FallbackAnswer
	}
	return answer
}

// formatResult prefers the pre-computed summary and falls back to a
// truncated JSON rendering.
func formatResult(rec InvocationRecord) string {
	if rec.Result.Summary != "" {
		return truncate(rec.Result.Summary)
	}
	data, err := json.Marshal(rec.Result)
	if err != nil {
		return "No result"
	}
	return truncate(string(data))
}

func truncate(s string) string {
	if len(s) <= maxResultChars {
		return s
	}
	return s[:maxResultChars] + "\n...(truncated)"
}
