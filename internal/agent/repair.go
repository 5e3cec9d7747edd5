package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rahul/drishti/internal/tools"
)

// Operation names the repair rules are keyed on.
const (
	toolSearch  = "search_products"
	toolAnalyze = "analyze_reviews"
	toolStats   = "calculate_statistics"
)

// Invocation is a repaired, executable operation call.
type Invocation struct {
	Tool   string
	Params map[string]any
}

// Repairer turns raw selector output into an executable invocation. The
// oracle upstream is unreliable: it omits fields, picks the wrong tool,
// and dumps whole questions into filter fields. Every rule here is
// deterministic and applied in a fixed order.
type Repairer struct {
	Registry *tools.Registry
	// HaltOnEmptySubset treats a prior search that matched nothing as a
	// pipeline violation instead of passing the empty subset downstream.
	HaltOnEmptySubset bool
}

// toolOverrides force the operation from lexical signals in the step
// text, overriding whatever the oracle picked. Evaluated in order; first
// match wins.
var toolOverrides = []struct {
	pattern *regexp.Regexp
	tool    string
}{
	{regexp.MustCompile(`(?i)analy[sz]e\s+(?:the\s+)?review|review analysis|complain|praise|sentiment|feedback|what customers`), toolAnalyze},
	{regexp.MustCompile(`(?i)statistic|\bcompar|\brank|\baverage\b|correlat`), toolStats},
}

// analysisKinds map step-text cues to an analysis_type. Evaluated in
// order; first match wins.
var analysisKinds = []struct {
	pattern *regexp.Regexp
	kind    string
}{
	{regexp.MustCompile(`(?i)success|praise|\blove|positive|strength`), "praise"},
	{regexp.MustCompile(`(?i)theme|pattern|topic`), "themes"},
	{regexp.MustCompile(`(?i)complain|issue|problem|avoid|negative|improve`), "complaints"},
}

// categoryHints extract a short comma-joined category hint from step or
// goal text. Evaluated in order; first match wins.
var categoryHints = []struct {
	pattern *regexp.Regexp
	expand  func(m []string) string
}{
	// "in the X and Y categories"
	{
		regexp.MustCompile(`(?i)\bin the ([\w&' ]+?) and ([\w&' ]+?) categor(?:y|ies)`),
		func(m []string) string { return m[1] + ", " + m[2] },
	},
	// "X and Y categories"
	{
		regexp.MustCompile(`(?i)\b([\w&']+) and ([\w&']+) categor(?:y|ies)`),
		func(m []string) string { return m[1] + ", " + m[2] },
	},
	// "the X category" / "X categories"
	{
		regexp.MustCompile(`(?i)\b([\w&']+) categor(?:y|ies)`),
		func(m []string) string { return m[1] },
	},
	// "complaints for X products"
	{
		regexp.MustCompile(`\bfor ([A-Z][\w&']*) products`),
		func(m []string) string { return m[1] },
	},
}

var (
	upperBound = regexp.MustCompile(`(?i)(?:below|under|less than)\s*₹?\s*([0-9]+(?:\.[0-9]+)?)`)
	lowerBound = regexp.MustCompile(`(?i)(?:above|over|greater than)\s*₹?\s*([0-9]+(?:\.[0-9]+)?)`)
	topNPhrase = regexp.MustCompile(`(?i)\btop\s+([0-9]+)\b|\b([0-9]+)\s+(?:products|items)\b`)
)

// A bound of 5 or less reads as a rating (ratings run 1.0-5.0); anything
// larger reads as a price.
const maxRatingValue = 5.0

// Resolve applies the repair pipeline. It returns either an executable
// invocation or a fatal message to be recorded in history; it never
// guesses past an unparseable selection.
func (r *Repairer) Resolve(raw, goal, step string, history []InvocationRecord) (*Invocation, string) {
	obj, ok := ExtractObject(raw)
	if !ok {
		return nil, "Failed to parse tool selection"
	}

	name, _ := obj["tool"].(string)
	params, _ := obj["parameters"].(map[string]any)
	if params == nil {
		params = make(map[string]any)
	}

	// The oracle sometimes names the tool in prose instead of the JSON.
	if name == "" {
		lowered := strings.ToLower(raw)
		for _, candidate := range r.Registry.Names() {
			if strings.Contains(lowered, candidate) {
				name = candidate
				break
			}
		}
	}

	// Lexical signals in the step text outrank the oracle's choice.
	for _, o := range toolOverrides {
		if o.pattern.MatchString(step) {
			name = o.tool
			break
		}
	}

	switch name {
	case toolSearch:
		r.repairSearch(params, goal, step)
	case toolStats:
		r.repairStats(params, goal)
	case toolAnalyze:
		repairAnalysisKind(params, step)
	}

	if name != toolSearch && r.Registry.Get(name) != nil {
		if fatal := r.enforcePipeline(name, params, history); fatal != "" {
			return nil, fatal
		}
	}

	if name == "" {
		return nil, "Tool selection missing tool name"
	}
	if r.Registry.Get(name) == nil {
		return nil, fmt.Sprintf("Unknown tool: %s", name)
	}

	return &Invocation{Tool: name, Params: params}, ""
}

// repairSearch fills in missing search filters from the step and goal
// text.
func (r *Repairer) repairSearch(params map[string]any, goal, step string) {
	_, hasCategory := nonEmptyString(params, "category")
	_, hasSub := nonEmptyString(params, "sub_category")
	_, hasKeyword := nonEmptyString(params, "keyword")

	if !hasCategory && !hasSub && !hasKeyword {
		hint := deriveCategoryHint(step)
		if hint == "" {
			hint = deriveCategoryHint(goal)
		}
		// A hint this long that mirrors the whole question means the
		// oracle dumped the goal into the field; drop it.
		if len(hint) > 40 && hint == goal {
			hint = ""
		}
		if hint != "" {
			params["category"] = hint
		}
	}

	for _, m := range upperBound.FindAllStringSubmatch(goal, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if v <= maxRatingValue {
			setIfAbsent(params, "max_rating", v)
		} else {
			setIfAbsent(params, "max_price", v)
		}
	}
	for _, m := range lowerBound.FindAllStringSubmatch(goal, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if v <= maxRatingValue {
			setIfAbsent(params, "min_rating", v)
		} else {
			setIfAbsent(params, "min_price", v)
		}
	}

	if n, ok := deriveTopN(goal); ok {
		setIfAbsent(params, "limit", n)
	}
}

// repairStats defaults the operation and propagates an explicit top N.
func (r *Repairer) repairStats(params map[string]any, goal string) {
	operation, ok := nonEmptyString(params, "operation")
	if !ok {
		params["operation"] = "summary"
		operation = "summary"
	}
	if operation == "rating_ranking" {
		if n, found := deriveTopN(goal); found {
			setIfAbsent(params, "top_n", n)
		}
	}
}

func repairAnalysisKind(params map[string]any, step string) {
	if _, ok := nonEmptyString(params, "analysis_type"); ok {
		return
	}
	for _, k := range analysisKinds {
		if k.pattern.MatchString(step) {
			params["analysis_type"] = k.kind
			return
		}
	}
}

// enforcePipeline restricts downstream operations to the subset produced
// by the most recent search, unless the selector explicitly scoped the
// call itself. A search that never produced a structured subset is fatal:
// silently analyzing the whole dataset is exactly the failure this layer
// exists to prevent.
func (r *Repairer) enforcePipeline(name string, params map[string]any, history []InvocationRecord) string {
	if hasExplicitScope(name, params) {
		return ""
	}

	last := lastSearch(history, toolSearch)
	if last == nil {
		// Nothing upstream to inherit; the operation runs dataset-wide.
		return ""
	}
	if last.Failed() || last.Result == nil || last.Result.Products == nil {
		detail := last.Err
		if detail == "" && last.Result != nil {
			detail = last.Result.Summary
		}
		return fmt.Sprintf("Search did not produce a product subset: %s", detail)
	}

	names := last.Result.ProductNames()
	if len(names) == 0 && r.HaltOnEmptySubset {
		return "Search matched no products; halting instead of analyzing an empty subset"
	}
	// An empty list is still an explicit (empty) filter, never a silent
	// fallback to the whole dataset.
	params["product_names"] = names
	return ""
}

func hasExplicitScope(name string, params map[string]any) bool {
	if _, ok := params["product_names"]; ok {
		return true
	}
	switch name {
	case toolAnalyze:
		_, ok := nonEmptyString(params, "product_name")
		return ok
	case toolStats:
		if v, ok := params["categories"]; ok {
			if list, isList := v.([]any); isList && len(list) > 0 {
				return true
			}
			if list, isList := v.([]string); isList && len(list) > 0 {
				return true
			}
		}
	}
	return false
}

func deriveCategoryHint(text string) string {
	for _, h := range categoryHints {
		if m := h.pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(h.expand(m))
		}
	}
	return ""
}

func deriveTopN(text string) (int, bool) {
	m := topNPhrase.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func nonEmptyString(params map[string]any, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func setIfAbsent(params map[string]any, key string, value any) {
	if _, ok := params[key]; !ok {
		params[key] = value
	}
}
