package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/rahul/drishti/internal/dataset"
)

func TestAnalyzeComplaintsDefault(t *testing.T) {
	tool := NewAnalyzeTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"category": "Computers&Accessories",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "Analysis Type: Complaints") {
		t.Errorf("analysis_type should default to complaints:\n%s", res.Summary)
	}
	if !strings.Contains(res.Summary, "Quality Issues") {
		t.Errorf("broken-cable review should surface a quality issue:\n%s", res.Summary)
	}
	if res.Products != nil {
		t.Error("analysis results carry no product subset")
	}
}

func TestAnalyzePraise(t *testing.T) {
	tool := NewAnalyzeTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"product_name":  "Samsung",
		"analysis_type": "praise",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "Positive Feedback Highlights") {
		t.Errorf("expected praise report:\n%s", res.Summary)
	}
	if !strings.Contains(res.Summary, "1 reviews with positive sentiment") {
		t.Errorf("expected one positive review:\n%s", res.Summary)
	}
}

func TestAnalyzeThemes(t *testing.T) {
	tool := NewAnalyzeTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"analysis_type": "themes",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "Common Themes in Reviews") {
		t.Errorf("expected theme report:\n%s", res.Summary)
	}
	if !strings.Contains(res.Summary, "Battery") {
		t.Errorf("battery theme should be counted:\n%s", res.Summary)
	}
}

func TestAnalyzeProductNamesFilter(t *testing.T) {
	tool := NewAnalyzeTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"product_names": []any{"boAt Type-C Cable"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "Products Analyzed: 1") {
		t.Errorf("expected exactly one product:\n%s", res.Summary)
	}
	if !strings.Contains(res.Summary, "Total Reviews: 2") {
		t.Errorf("both cable reviews should be included:\n%s", res.Summary)
	}
}

func TestAnalyzeEmptyProductNamesMatchesNothing(t *testing.T) {
	tool := NewAnalyzeTool(testStore())

	// An empty list is an explicit empty filter, never a fallback to the
	// whole dataset.
	res, err := tool.Execute(context.Background(), map[string]any{
		"product_names": []any{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "No reviews found") {
		t.Errorf("empty subset must yield zero reviews:\n%s", res.Summary)
	}
}

func TestAnalyzeRatingBounds(t *testing.T) {
	tool := NewAnalyzeTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"max_rating":    3.9,
		"analysis_type": "complaints",
	})
	if err != nil {
		t.Fatal(err)
	}
	// Only the bottle is rated at or below 3.9.
	if !strings.Contains(res.Summary, "Products Analyzed: 1") {
		t.Errorf("expected only the low-rated bottle:\n%s", res.Summary)
	}
}

func TestAnalyzeAllWithoutReviewText(t *testing.T) {
	// Rows can match the filter while carrying no review text; the
	// comprehensive report must degrade instead of dividing by zero.
	tool := NewAnalyzeTool(dataset.New([]dataset.Product{
		{
			ProductName: "Blank Slate Charger",
			Category:    "Electronics|Chargers",
			SubCategory: "Chargers",
			Rating:      4.1,
		},
	}))

	res, err := tool.Execute(context.Background(), map[string]any{
		"analysis_type": "all",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Summary, "No review text available") {
		t.Errorf("expected the no-text report:\n%s", res.Summary)
	}
	if !strings.Contains(res.Summary, "Total Reviews: 0") {
		t.Errorf("review count should be zero:\n%s", res.Summary)
	}
}

func TestSentiment(t *testing.T) {
	cases := map[string]string{
		"This is excellent, love it, great quality": "positive",
		"Terrible product, broke immediately":       "negative",
		"It arrived on Tuesday":                     "mixed",
	}
	for review, want := range cases {
		if got := sentiment(review); got != want {
			t.Errorf("sentiment(%q) = %q, want %q", review, got, want)
		}
	}
}
