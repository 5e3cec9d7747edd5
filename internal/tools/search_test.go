package tools

import (
	"context"
	"strings"
	"testing"
)

func TestSearchByCategory(t *testing.T) {
	tool := NewSearchTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"category": "Electronics",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(res.Products))
	}
	names := res.ProductNames()
	if names[0] != "Noise Buds Earbuds" || names[1] != "Samsung Crystal TV" {
		t.Errorf("unexpected products: %v", names)
	}
}

func TestSearchCommaJoinedCategories(t *testing.T) {
	tool := NewSearchTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"category": "Electronics, Home&Kitchen",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Products) != 3 {
		t.Fatalf("expected 3 products across both categories, got %d", len(res.Products))
	}
}

func TestSearchDeduplicatesReviews(t *testing.T) {
	tool := NewSearchTool(testStore())

	// The cable has two review rows but must appear once.
	res, err := tool.Execute(context.Background(), map[string]any{
		"category": "Computers&Accessories",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Products) != 1 {
		t.Fatalf("expected 1 unique product, got %d", len(res.Products))
	}
}

func TestSearchPriceAndRatingBounds(t *testing.T) {
	tool := NewSearchTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"max_price":  2000.0,
		"min_rating": 4.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range res.Products {
		if p.DiscountedPrice > 2000 || p.Rating < 4.0 {
			t.Errorf("product %q violates bounds: price %v rating %v", p.ProductName, p.DiscountedPrice, p.Rating)
		}
	}
	if len(res.Products) != 2 {
		t.Fatalf("expected cable and earbuds, got %v", res.ProductNames())
	}
}

func TestSearchKeyword(t *testing.T) {
	tool := NewSearchTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"keyword": "bluetooth",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Products) != 1 || res.Products[0].ProductName != "Noise Buds Earbuds" {
		t.Errorf("keyword match failed: %v", res.ProductNames())
	}
}

func TestSearchLimit(t *testing.T) {
	tool := NewSearchTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"limit": 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Products) != 1 {
		t.Errorf("limit not applied: got %d products", len(res.Products))
	}
}

func TestSearchNoMatches(t *testing.T) {
	tool := NewSearchTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"category": "Garden",
	})
	if err != nil {
		t.Fatal(err)
	}
	// A miss is still a structured result: a non-nil empty subset, so
	// downstream operations see an explicit empty filter.
	if res.Products == nil {
		t.Fatal("empty search must return a non-nil product slice")
	}
	if len(res.Products) != 0 {
		t.Errorf("expected no products, got %v", res.ProductNames())
	}
	if !strings.Contains(res.Summary, "No products found") {
		t.Errorf("unexpected summary: %q", res.Summary)
	}
}

func TestSearchSummaryFormat(t *testing.T) {
	tool := NewSearchTool(testStore())

	res, err := tool.Execute(context.Background(), map[string]any{
		"sub_category": "Televisions",
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Samsung Crystal TV", "₹35000", "Rating: 4.5"} {
		if !strings.Contains(res.Summary, want) {
			t.Errorf("summary missing %q:\n%s", want, res.Summary)
		}
	}
}
