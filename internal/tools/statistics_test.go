package tools

import (
	"context"
	"strings"
	"testing"
)

func TestStatsSummary(t *testing.T) {
	tool := NewStatsTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"operation": "summary",
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Total Products: 4",
		"Total Reviews: 5",
		"Categories: 3",
	} {
		if !strings.Contains(res.Summary, want) {
			t.Errorf("summary missing %q:\n%s", want, res.Summary)
		}
	}
}

func TestStatsCategoryComparison(t *testing.T) {
	tool := NewStatsTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"operation":  "category_comparison",
		"categories": []any{"Electronics", "Home&Kitchen"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "**Electronics**") {
		t.Errorf("comparison missing Electronics group:\n%s", res.Summary)
	}
	if !strings.Contains(res.Summary, "**Home&Kitchen**") {
		t.Errorf("comparison missing Home&Kitchen group:\n%s", res.Summary)
	}
	if strings.Contains(res.Summary, "Computers&Accessories") {
		t.Errorf("unlisted category leaked into comparison:\n%s", res.Summary)
	}
	if !strings.Contains(res.Summary, "Highest rated category: Electronics") {
		t.Errorf("Electronics should win on rating:\n%s", res.Summary)
	}
}

func TestStatsRatingRanking(t *testing.T) {
	tool := NewStatsTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"operation": "rating_ranking",
		"top_n":     2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "Top 2 Products by Rating") {
		t.Errorf("top_n not honored:\n%s", res.Summary)
	}
	if !strings.Contains(res.Summary, "1. Samsung Crystal TV") {
		t.Errorf("highest rated product should rank first:\n%s", res.Summary)
	}
	if !strings.Contains(res.Summary, "1. Milton Steel Bottle") {
		t.Errorf("lowest rated product should lead the bottom list:\n%s", res.Summary)
	}
}

func TestStatsProductNamesRestriction(t *testing.T) {
	tool := NewStatsTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"operation":     "summary",
		"product_names": []any{"Milton Steel Bottle"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "Total Products: 1") {
		t.Errorf("restriction not applied:\n%s", res.Summary)
	}
}

func TestStatsEmptyProductNames(t *testing.T) {
	tool := NewStatsTool(testStore())

	// Key presence activates the filter even for an empty list.
	res, err := tool.Execute(context.Background(), map[string]any{
		"operation":     "summary",
		"product_names": []any{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "No products available") {
		t.Errorf("empty subset should produce the empty report:\n%s", res.Summary)
	}
}

func TestStatsUnknownOperation(t *testing.T) {
	tool := NewStatsTool(testStore())

	_, err := tool.Execute(context.Background(), map[string]any{
		"operation": "median_everything",
	})
	if err == nil {
		t.Fatal("expected error for unknown operation")
	}
	if !strings.Contains(err.Error(), "Available operations") {
		t.Errorf("error should list the valid operations: %v", err)
	}
}

func TestStatsDiscountEffectiveness(t *testing.T) {
	tool := NewStatsTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"operation": "discount_effectiveness",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "Discount Effectiveness Analysis") {
		t.Errorf("unexpected report:\n%s", res.Summary)
	}
	if !strings.Contains(res.Summary, "correlation") {
		t.Errorf("report should state a correlation insight:\n%s", res.Summary)
	}
}

func TestPearson(t *testing.T) {
	perfect := pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
	if perfect < 0.999 {
		t.Errorf("perfect correlation: got %v", perfect)
	}
	inverse := pearson([]float64{1, 2, 3}, []float64{6, 4, 2})
	if inverse > -0.999 {
		t.Errorf("perfect inverse correlation: got %v", inverse)
	}
	if flat := pearson([]float64{1, 2, 3}, []float64{5, 5, 5}); flat != 0 {
		t.Errorf("zero variance should give 0, got %v", flat)
	}
}

func TestCategoryMatch(t *testing.T) {
	path := "Computers&Accessories|Cables|USBCables"
	if !categoryMatch(path, "computers") {
		t.Error("partial case-insensitive match should succeed")
	}
	if !categoryMatch(path, "Electronics, Cables") {
		t.Error("any comma-joined hint should match")
	}
	if categoryMatch(path, "Clothing") {
		t.Error("unrelated filter should not match")
	}
}
