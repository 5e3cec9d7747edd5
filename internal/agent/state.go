package agent

import (
	"github.com/google/uuid"

	"github.com/rahul/drishti/internal/tools"
)

// InvocationRecord is one attempted operation invocation. Records are
// append-only: once in the history they are never mutated.
type InvocationRecord struct {
	Step   int            `json:"step"`
	Tool   string         `json:"tool,omitempty"`
	Params map[string]any `json:"parameters,omitempty"`
	Result *tools.Result  `json:"result,omitempty"`
	Err    string         `json:"error,omitempty"`
	Reused bool           `json:"reused,omitempty"`
}

// Failed reports whether the invocation produced an error instead of a
// result.
func (r InvocationRecord) Failed() bool {
	return r.Err != ""
}

// RunState carries everything a single run accumulates. One run, one
// goroutine; no locking needed.
type RunState struct {
	ID          string
	Goal        string
	Plan        []string
	StepIndex   int
	History     []InvocationRecord
	Iterations  int
	NeedsMore   bool
	FinalAnswer string
}

func newRunState(goal string) *RunState {
	return &RunState{
		ID:        uuid.NewString(),
		Goal:      goal,
		NeedsMore: true,
	}
}

func (s *RunState) append(rec InvocationRecord) {
	s.History = append(s.History, rec)
}

func (s *RunState) last() *InvocationRecord {
	if len(s.History) == 0 {
		return nil
	}
	return &s.History[len(s.History)-1]
}

// lastSearch returns the most recent invocation of the named search
// operation, or nil.
func lastSearch(history []InvocationRecord, searchTool string) *InvocationRecord {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Tool == searchTool {
			return &history[i]
		}
	}
	return nil
}
