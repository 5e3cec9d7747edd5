package agent

import (
	"testing"

	"github.com/rahul/drishti/internal/tools"
)

func TestCanonicalParamsKeyOrder(t *testing.T) {
	a := CanonicalParams(map[string]any{"category": "Electronics", "limit": 5})
	b := CanonicalParams(map[string]any{"limit": 5, "category": "Electronics"})
	if a != b {
		t.Errorf("key order must not matter: %q vs %q", a, b)
	}
}

func TestCanonicalParamsNumericTypes(t *testing.T) {
	a := CanonicalParams(map[string]any{"limit": 5})
	b := CanonicalParams(map[string]any{"limit": 5.0})
	if a != b {
		t.Errorf("int and float renderings must match: %q vs %q", a, b)
	}
}

func TestCanonicalParamsListOrder(t *testing.T) {
	a := CanonicalParams(map[string]any{"product_names": []any{"B", "A"}})
	b := CanonicalParams(map[string]any{"product_names": []string{"A", "B"}})
	if a != b {
		t.Errorf("list order and element type must not matter: %q vs %q", a, b)
	}
}

func TestCanonicalParamsDistinguishesValues(t *testing.T) {
	a := CanonicalParams(map[string]any{"category": "Electronics"})
	b := CanonicalParams(map[string]any{"category": "Clothing"})
	if a == b {
		t.Error("different values must not collide")
	}
}

func TestFindReusable(t *testing.T) {
	params := map[string]any{"category": "Electronics", "limit": 5}
	history := []InvocationRecord{
		{Step: 1, Tool: "search_products", Params: params, Result: &tools.Result{Summary: "found"}},
		{Step: 2, Tool: "analyze_reviews", Params: map[string]any{}, Err: "boom"},
	}

	// Same call with reordered keys and a float limit.
	hit := findReusable(history, "search_products", map[string]any{"limit": 5.0, "category": "Electronics"})
	if hit == nil {
		t.Fatal("expected a reusable record")
	}
	if hit.Result.Summary != "found" {
		t.Errorf("wrong record reused: %+v", hit)
	}
}

func TestFindReusableSkipsFailures(t *testing.T) {
	history := []InvocationRecord{
		{Step: 1, Tool: "search_products", Params: map[string]any{"category": "X"}, Err: "timeout"},
	}
	if hit := findReusable(history, "search_products", map[string]any{"category": "X"}); hit != nil {
		t.Error("failed invocations must never be reused")
	}
}

func TestFindReusableDifferentTool(t *testing.T) {
	history := []InvocationRecord{
		{Step: 1, Tool: "search_products", Params: map[string]any{}, Result: &tools.Result{}},
	}
	if hit := findReusable(history, "analyze_reviews", map[string]any{}); hit != nil {
		t.Error("tool name is part of the identity")
	}
}
