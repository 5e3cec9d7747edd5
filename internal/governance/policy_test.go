package governance

import (
	"context"
	"strings"
	"testing"
)

func TestEvaluateAllowsByDefault(t *testing.T) {
	engine := NewDefaultPolicyEngine()

	res, err := engine.Evaluate(context.Background(), Request{
		Tool:      "search_products",
		Arguments: `{"category":"Electronics"}`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Effect != EffectAllow {
		t.Errorf("expected allow, got %s (%s)", res.Effect, res.Reason)
	}
}

func TestEvaluateDeniedTool(t *testing.T) {
	engine := NewDefaultPolicyEngine()
	engine.DenyTool("analyze_reviews")

	res, err := engine.Evaluate(context.Background(), Request{Tool: "analyze_reviews"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Effect != EffectDeny {
		t.Error("denied tool should be blocked")
	}
	if !strings.Contains(res.Reason, "analyze_reviews") {
		t.Errorf("reason should name the tool: %q", res.Reason)
	}

	res, err = engine.Evaluate(context.Background(), Request{Tool: "search_products"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Effect != EffectAllow {
		t.Error("other tools stay allowed")
	}
}

func TestEvaluateDeniedArguments(t *testing.T) {
	engine := NewDefaultPolicyEngine()
	if err := engine.DenyArguments(`"category":"Adult`); err != nil {
		t.Fatal(err)
	}

	res, err := engine.Evaluate(context.Background(), Request{
		Tool:      "search_products",
		Arguments: `{"category":"AdultProducts"}`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Effect != EffectDeny {
		t.Error("matching arguments should be blocked")
	}
}

func TestDenyArgumentsRejectsBadPattern(t *testing.T) {
	engine := NewDefaultPolicyEngine()
	if err := engine.DenyArguments(`([`); err == nil {
		t.Error("invalid regex must be rejected")
	}
}
