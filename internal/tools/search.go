package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/rahul/drishti/internal/dataset"
)

const defaultSearchLimit = 10

// SearchTool finds products by category, price range, rating or keyword.
type SearchTool struct {
	data *dataset.Store
}

func NewSearchTool(data *dataset.Store) *SearchTool {
	return &SearchTool{data: data}
}

func (s *SearchTool) Name() string {
	return "search_products"
}

func (s *SearchTool) Description() string {
	return "Find products in the sales dataset by category, price range, rating, or keyword."
}

func (s *SearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]any{
				"type":        "string",
				"description": "Product category to filter by, partial match, case-insensitive. Multiple categories may be comma-joined.",
			},
			"sub_category": map[string]any{
				"type":        "string",
				"description": "Sub-category to filter by (e.g. 'Headphones', 'USBCables').",
			},
			"min_price": map[string]any{
				"type":        "number",
				"description": "Minimum discounted price.",
			},
			"max_price": map[string]any{
				"type":        "number",
				"description": "Maximum discounted price.",
			},
			"min_rating": map[string]any{
				"type":        "number",
				"description": "Minimum rating, 1.0 to 5.0.",
			},
			"max_rating": map[string]any{
				"type":        "number",
				"description": "Maximum rating, 1.0 to 5.0.",
			},
			"keyword": map[string]any{
				"type":        "string",
				"description": "Keyword to search in product name or description.",
			},
			"limit": map[string]any{
				"type":        "integer",
				"description": "Maximum number of products to return. Default 10.",
			},
		},
	}
}

func (s *SearchTool) Execute(ctx context.Context, params map[string]any) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	category, hasCategory := stringParam(params, "category")
	subCategory, hasSub := stringParam(params, "sub_category")
	keyword, hasKeyword := stringParam(params, "keyword")
	minPrice, hasMinPrice := floatParam(params, "min_price")
	maxPrice, hasMaxPrice := floatParam(params, "max_price")
	minRating, hasMinRating := floatParam(params, "min_rating")
	maxRating, hasMaxRating := floatParam(params, "max_rating")
	limit, hasLimit := intParam(params, "limit")
	if !hasLimit || limit <= 0 {
		limit = defaultSearchLimit
	}

	matched := make([]dataset.Product, 0, limit)
	seen := make(map[string]bool)
	for _, p := range s.data.Rows() {
		if hasCategory && !categoryMatch(p.Category, category) {
			continue
		}
		if hasSub && !strings.Contains(strings.ToLower(p.SubCategory), strings.ToLower(subCategory)) {
			continue
		}
		if hasMinPrice && p.DiscountedPrice < minPrice {
			continue
		}
		if hasMaxPrice && p.DiscountedPrice > maxPrice {
			continue
		}
		if hasMinRating && p.Rating < minRating {
			continue
		}
		if hasMaxRating && p.Rating > maxRating {
			continue
		}
		if hasKeyword {
			kw := strings.ToLower(keyword)
			if !strings.Contains(strings.ToLower(p.ProductName), kw) &&
				!strings.Contains(strings.ToLower(p.About), kw) {
				continue
			}
		}
		// Reviews duplicate products; keep the first row per product.
		if seen[p.ProductName] {
			continue
		}
		seen[p.ProductName] = true
		matched = append(matched, p)
		if len(matched) >= limit {
			break
		}
	}

	if len(matched) == 0 {
		return &Result{
			Summary:  "No products found matching the specified criteria.",
			Products: []dataset.Product{},
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d product(s) matching your criteria:\n", len(matched))
	for _, p := range matched {
		fmt.Fprintf(&b, "\n**%s**\n", p.ProductName)
		fmt.Fprintf(&b, "- Category: %s > %s\n", p.TopCategory(), p.SubCategory)
		fmt.Fprintf(&b, "- Original Price: ₹%.0f\n", p.ActualPrice)
		fmt.Fprintf(&b, "- Discounted Price: ₹%.0f\n", p.DiscountedPrice)
		fmt.Fprintf(&b, "- Discount: %.0f%%\n", p.DiscountPct)
		fmt.Fprintf(&b, "- Rating: %.1f (%d reviews)\n", p.Rating, p.RatingCount)
		if p.About != "" {
			fmt.Fprintf(&b, "- Description: %s\n", truncateText(p.About, 150))
		}
	}

	return &Result{Summary: b.String(), Products: matched}, nil
}

func truncateText(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
