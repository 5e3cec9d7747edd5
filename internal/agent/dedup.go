package agent

import (
	"encoding/json"
	"fmt"
	"sort"
)

// CanonicalParams renders a parameter mapping in an order-independent
// canonical form: map keys sorted, list values sorted by their own
// canonical rendering, numbers normalized. Two semantically identical
// calls compare equal as strings regardless of key or list ordering.
func CanonicalParams(params map[string]any) string {
	data, err := json.Marshal(canonicalize(params))
	if err != nil {
		// Parameter maps come from JSON or from the repair layer; both
		// are marshalable. Fall back to an unstable rendering anyway.
		return fmt.Sprintf("%v", params)
	}
	return string(data)
}

func canonicalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = canonicalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = canonicalize(item)
		}
		sort.Slice(out, func(i, j int) bool {
			a, _ := json.Marshal(out[i])
			b, _ := json.Marshal(out[j])
			return string(a) < string(b)
		})
		return out
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return canonicalize(out)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

// findReusable returns a prior successful invocation of the same
// operation with canonically equal parameters, or nil. Error records are
// never reused.
func findReusable(history []InvocationRecord, tool string, params map[string]any) *InvocationRecord {
	key := CanonicalParams(params)
	for i := range history {
		rec := &history[i]
		if rec.Tool != tool || rec.Failed() || rec.Result == nil {
			continue
		}
		if CanonicalParams(rec.Params) == key {
			return rec
		}
	}
	return nil
}
