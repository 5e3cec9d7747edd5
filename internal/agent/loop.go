package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/rahul/drishti/internal/governance"
	"github.com/rahul/drishti/internal/observability"
	"github.com/rahul/drishti/internal/tools"
)

// Phase names of the control loop state machine.
type Phase string

const (
	PhasePlanning      Phase = "PLANNING"
	PhaseSelecting     Phase = "SELECTING"
	PhaseRepairing     Phase = "REPAIRING"
	PhaseDedupHit      Phase = "DEDUP_HIT"
	PhaseExecuting     Phase = "EXECUTING"
	PhaseProgressCheck Phase = "PROGRESS_CHECK"
	PhaseSynthesizing  Phase = "SYNTHESIZING"
	PhaseDone          Phase = "DONE"
)

// DefaultMaxIterations bounds loop cycles when no ceiling is configured.
const DefaultMaxIterations = 10

// RunArchive persists completed runs. Optional; the loop works without
// one.
type RunArchive interface {
	SaveRun(st *RunState) error
}

// Options tune a Controller.
type Options struct {
	MaxIterations     int
	HaltOnEmptySubset bool
	Verbose           bool
}

// Controller drives one run end to end: plan, then select/repair/execute
// cycles until a termination condition, then synthesis. All state lives
// in the RunState it returns; the Controller itself is reusable across
// runs.
type Controller struct {
	registry *tools.Registry
	planner  *Planner
	selector *Selector
	repairer *Repairer
	synth    *Synthesizer
	policy   governance.PolicyEngine
	archive  RunArchive
	logger   *observability.Logger
	opts     Options
}

func NewController(oracle Oracle, registry *tools.Registry, prompts *PromptManager, policy governance.PolicyEngine, archive RunArchive, logger *observability.Logger, opts Options) *Controller {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if logger == nil {
		logger = observability.NewLogger()
	}
	return &Controller{
		registry: registry,
		planner:  &Planner{Oracle: oracle, Prompts: prompts},
		selector: &Selector{Oracle: oracle, Registry: registry, Prompts: prompts},
		repairer: &Repairer{Registry: registry, HaltOnEmptySubset: opts.HaltOnEmptySubset},
		synth:    &Synthesizer{Oracle: oracle, Prompts: prompts},
		policy:   policy,
		archive:  archive,
		logger:   logger,
		opts:     opts,
	}
}

// Answer runs a single query and returns only the final answer text.
func (c *Controller) Answer(ctx context.Context, goal string) (string, error) {
	st, err := c.Run(ctx, goal)
	if err != nil {
		return "", err
	}
	return st.FinalAnswer, nil
}

// Run executes the control loop for one goal. History is append-only and
// the returned state is complete even when the run degraded: every fatal
// condition leaves a visible record and the loop still synthesizes a
// best-effort answer from whatever history exists.
func (c *Controller) Run(ctx context.Context, goal string) (*RunState, error) {
	st := newRunState(goal)
	c.logger.LogRun(st.ID, goal)

	c.setPhase(PhasePlanning, "")
	plan, err := c.planner.Build(ctx, goal)
	if err != nil {
		return st, err
	}
	st.Plan = plan
	st.StepIndex = 0
	c.logger.LogPlan(st.ID, plan)
	if c.opts.Verbose {
		log.Printf("Plan created with %d step(s)", len(plan))
		for i, step := range plan {
			log.Printf("  %d. %s", i+1, step)
		}
	}

	for {
		if ctx.Err() != nil {
			// Interrupted between calls; partial history stays intact.
			break
		}
		if st.StepIndex >= len(st.Plan) {
			st.NeedsMore = false
			break
		}

		step := st.Plan[st.StepIndex]
		c.setPhase(PhaseSelecting, step)
		c.logger.LogStep(st.ID, st.StepIndex+1, step)

		raw, err := c.selector.Select(ctx, goal, step, len(st.History))
		if err != nil {
			st.append(InvocationRecord{
				Step: st.StepIndex + 1,
				Err:  fmt.Sprintf("Tool selection failed: %v", err),
			})
		} else {
			c.setPhase(PhaseRepairing, step)
			c.cycle(ctx, st, goal, step, raw)
		}

		c.setPhase(PhaseProgressCheck, step)
		st.Iterations++
		if st.Iterations >= c.opts.MaxIterations {
			log.Printf("Max iterations (%d) reached. Synthesizing available results.", c.opts.MaxIterations)
			break
		}
		if last := st.last(); last != nil && last.Failed() {
			if c.opts.Verbose {
				log.Printf("Halting after error: %s", last.Err)
			}
			st.NeedsMore = false
			break
		}
		if st.StepIndex >= len(st.Plan) {
			st.NeedsMore = false
			break
		}
	}

	c.setPhase(PhaseSynthesizing, "")
	st.FinalAnswer = c.synth.Synthesize(ctx, goal, st.History)
	c.setPhase(PhaseDone, "")

	if c.archive != nil {
		if err := c.archive.SaveRun(st); err != nil {
			log.Printf("Warning: failed to archive run %s: %v", st.ID, err)
		}
	}
	return st, nil
}

// cycle covers REPAIRING through EXECUTING for one selector response.
func (c *Controller) cycle(ctx context.Context, st *RunState, goal, step, raw string) {
	inv, fatal := c.repairer.Resolve(raw, goal, step, st.History)
	if fatal != "" {
		st.append(InvocationRecord{Step: st.StepIndex + 1, Err: fatal})
		return
	}

	args := CanonicalParams(inv.Params)
	if c.policy != nil {
		res, err := c.policy.Evaluate(ctx, governance.Request{
			Tool:      inv.Tool,
			Arguments: args,
			RunID:     st.ID,
		})
		if err == nil {
			c.logger.LogPolicyCheck(st.ID, inv.Tool, string(res.Effect), res.Reason)
		}
		if err == nil && res.Effect == governance.EffectDeny {
			st.append(InvocationRecord{
				Step:   st.StepIndex + 1,
				Tool:   inv.Tool,
				Params: inv.Params,
				Err:    fmt.Sprintf("Blocked by policy: %s", res.Reason),
			})
			return
		}
	}

	if prior := findReusable(st.History, inv.Tool, inv.Params); prior != nil {
		c.setPhase(PhaseDedupHit, step)
		st.append(InvocationRecord{
			Step:   st.StepIndex + 1,
			Tool:   inv.Tool,
			Params: inv.Params,
			Result: prior.Result,
			Reused: true,
		})
		st.StepIndex++
		c.logger.LogToolResult(st.ID, st.StepIndex, inv.Tool, preview(prior.Result.Summary), true)
		return
	}

	c.setPhase(PhaseExecuting, step)
	c.logger.LogToolCall(st.ID, st.StepIndex+1, inv.Tool, args)

	rec := InvocationRecord{Step: st.StepIndex + 1, Tool: inv.Tool, Params: inv.Params}
	result, err := c.registry.Get(inv.Tool).Execute(ctx, inv.Params)
	if err != nil {
		rec.Err = err.Error()
	} else {
		rec.Result = result
	}
	st.append(rec)
	st.StepIndex++

	if rec.Failed() {
		c.logger.LogToolResult(st.ID, st.StepIndex, inv.Tool, "error: "+rec.Err, false)
	} else {
		c.logger.LogToolResult(st.ID, st.StepIndex, inv.Tool, preview(result.Summary), false)
		if c.opts.Verbose {
			log.Printf("Tool %s: %s", inv.Tool, preview(result.Summary))
		}
	}
}

func (c *Controller) setPhase(p Phase, step string) {
	observability.SetPhase(string(p), step)
}

// preview shortens a summary for event logging without splitting a
// multi-byte rune (summaries carry currency symbols).
func preview(s string) string {
	const n = 200
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
