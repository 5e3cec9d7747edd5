package tools

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rahul/drishti/internal/dataset"
)

const defaultTopN = 5

// StatsTool computes statistics, comparisons and rankings over the
// product set.
type StatsTool struct {
	data *dataset.Store
}

func NewStatsTool(data *dataset.Store) *StatsTool {
	return &StatsTool{data: data}
}

func (s *StatsTool) Name() string {
	return "calculate_statistics"
}

func (s *StatsTool) Description() string {
	return "Calculate statistics, comparisons, and rankings over the sales dataset."
}

func (s *StatsTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operation": map[string]any{
				"type":        "string",
				"enum":        []string{"category_comparison", "price_analysis", "rating_ranking", "discount_effectiveness", "summary"},
				"description": "The statistical operation to run.",
			},
			"categories": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Categories to compare, for category_comparison.",
			},
			"product_names": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Restrict all calculations to this exact list of product names.",
			},
			"top_n": map[string]any{
				"type":        "integer",
				"description": "Number of top results for rankings. Default 5.",
			},
			"group_by": map[string]any{
				"type":        "string",
				"enum":        []string{"category", "sub_category"},
				"description": "Field to group results by.",
			},
		},
		"required": []string{"operation"},
	}
}

func (s *StatsTool) Execute(ctx context.Context, params map[string]any) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	operation, _ := stringParam(params, "operation")
	topN, hasTopN := intParam(params, "top_n")
	if !hasTopN || topN <= 0 {
		topN = defaultTopN
	}
	groupBy, _ := stringParam(params, "group_by")

	products := s.selectProducts(params)

	switch operation {
	case "category_comparison":
		return s.categoryComparison(products, params)
	case "price_analysis":
		return s.priceAnalysis(products, groupBy)
	case "rating_ranking":
		return s.ratingRanking(products, groupBy, topN)
	case "discount_effectiveness":
		return s.discountEffectiveness(products)
	case "summary":
		return s.summary(products)
	default:
		return nil, fmt.Errorf("unknown operation: %s. Available operations: category_comparison, price_analysis, rating_ranking, discount_effectiveness, summary", operation)
	}
}

// selectProducts applies the product_names restriction against the unique
// product set. Key presence alone activates the filter.
func (s *StatsTool) selectProducts(params map[string]any) []dataset.Product {
	products := s.data.Products()
	names, hasNames := stringListParam(params, "product_names")
	if !hasNames {
		return products
	}
	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[n] = true
	}
	var out []dataset.Product
	for _, p := range products {
		if nameSet[p.ProductName] {
			out = append(out, p)
		}
	}
	return out
}

type categoryStats struct {
	Name         string
	Count        int
	Ratings      []float64
	Prices       []float64
	Discounts    []float64
	TotalReviews int
}

func groupProducts(products []dataset.Product, bySubCategory bool) []*categoryStats {
	byName := make(map[string]*categoryStats)
	var order []string
	for _, p := range products {
		key := p.TopCategory()
		if bySubCategory {
			key = p.SubCategory
		}
		g, ok := byName[key]
		if !ok {
			g = &categoryStats{Name: key}
			byName[key] = g
			order = append(order, key)
		}
		g.Count++
		g.Ratings = append(g.Ratings, p.Rating)
		g.Prices = append(g.Prices, p.DiscountedPrice)
		g.Discounts = append(g.Discounts, p.DiscountPct)
		g.TotalReviews += p.RatingCount
	}
	sort.Strings(order)
	out := make([]*categoryStats, 0, len(order))
	for _, key := range order {
		out = append(out, byName[key])
	}
	return out
}

func (s *StatsTool) categoryComparison(products []dataset.Product, params map[string]any) (*Result, error) {
	if categories, ok := stringListParam(params, "categories"); ok && len(categories) > 0 {
		filter := strings.Join(categories, ",")
		var filtered []dataset.Product
		for _, p := range products {
			if categoryMatch(p.Category, filter) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	groups := groupProducts(products, false)
	if len(groups) == 0 {
		return &Result{Summary: "No products available for category comparison."}, nil
	}

	var b strings.Builder
	b.WriteString("**Category Comparison Analysis**\n\n")
	for _, g := range groups {
		lo, hi := minMax(g.Ratings)
		fmt.Fprintf(&b, "**%s**\n", g.Name)
		fmt.Fprintf(&b, "Products: %d\n", g.Count)
		fmt.Fprintf(&b, "Avg Rating: %.2f (Range: %.1f - %.1f)\n", mean(g.Ratings), lo, hi)
		fmt.Fprintf(&b, "Avg Price: ₹%.0f\n", mean(g.Prices))
		fmt.Fprintf(&b, "Avg Discount: %.1f%%\n", mean(g.Discounts))
		fmt.Fprintf(&b, "Total Reviews: %d\n\n", g.TotalReviews)
	}

	bestRated := groups[0]
	mostDiscounted := groups[0]
	mostReviewed := groups[0]
	for _, g := range groups[1:] {
		if mean(g.Ratings) > mean(bestRated.Ratings) {
			bestRated = g
		}
		if mean(g.Discounts) > mean(mostDiscounted.Discounts) {
			mostDiscounted = g
		}
		if g.TotalReviews > mostReviewed.TotalReviews {
			mostReviewed = g
		}
	}
	b.WriteString("**Key Insights:**\n")
	fmt.Fprintf(&b, "- Highest rated category: %s\n", bestRated.Name)
	fmt.Fprintf(&b, "- Highest discounts: %s\n", mostDiscounted.Name)
	fmt.Fprintf(&b, "- Most reviewed: %s\n", mostReviewed.Name)

	return &Result{Summary: b.String()}, nil
}

func (s *StatsTool) priceAnalysis(products []dataset.Product, groupBy string) (*Result, error) {
	if len(products) == 0 {
		return &Result{Summary: "No products available for price analysis."}, nil
	}

	var b strings.Builder
	b.WriteString("**Price Analysis Report**\n\n")

	if groupBy == "category" || groupBy == "sub_category" {
		for _, g := range groupProducts(products, groupBy == "sub_category") {
			fmt.Fprintf(&b, "**%s**\n", g.Name)
			lo, hi := minMax(g.Prices)
			fmt.Fprintf(&b, "Discounted: ₹%.0f - ₹%.0f (Avg: ₹%.0f)\n", lo, hi, mean(g.Prices))
			fmt.Fprintf(&b, "Avg Discount: %.1f%%\n\n", mean(g.Discounts))
		}
		return &Result{Summary: b.String()}, nil
	}

	var prices, discounts, savings []float64
	for _, p := range products {
		prices = append(prices, p.DiscountedPrice)
		discounts = append(discounts, p.DiscountPct)
		savings = append(savings, p.ActualPrice-p.DiscountedPrice)
	}
	lo, hi := minMax(prices)
	dlo, dhi := minMax(discounts)
	b.WriteString("**Overall Price Statistics:**\n")
	fmt.Fprintf(&b, "Price Range: ₹%.0f - ₹%.0f\n", lo, hi)
	fmt.Fprintf(&b, "Average Price: ₹%.0f\n", mean(prices))
	fmt.Fprintf(&b, "Discount Range: %.0f%% - %.0f%%\n", dlo, dhi)
	fmt.Fprintf(&b, "Average Discount: %.1f%%\n", mean(discounts))
	fmt.Fprintf(&b, "Total Savings: ₹%.0f\n", sum(savings))

	return &Result{Summary: b.String()}, nil
}

func (s *StatsTool) ratingRanking(products []dataset.Product, groupBy string, topN int) (*Result, error) {
	if len(products) == 0 {
		return &Result{Summary: "No products available for rating ranking."}, nil
	}

	var b strings.Builder
	b.WriteString("**Rating Rankings**\n\n")

	if groupBy == "category" || groupBy == "sub_category" {
		groups := groupProducts(products, groupBy == "sub_category")
		sort.SliceStable(groups, func(i, j int) bool {
			return mean(groups[i].Ratings) > mean(groups[j].Ratings)
		})
		if groupBy == "category" {
			b.WriteString("**Categories Ranked by Average Rating:**\n")
		} else {
			b.WriteString("**Sub-categories Ranked by Average Rating:**\n")
		}
		for i, g := range groups {
			if i >= topN {
				break
			}
			fmt.Fprintf(&b, "%d. %s: %.2f\n", i+1, g.Name, mean(g.Ratings))
		}
		return &Result{Summary: b.String()}, nil
	}

	ranked := append([]dataset.Product(nil), products...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rating > ranked[j].Rating })

	fmt.Fprintf(&b, "**Top %d Products by Rating:**\n", topN)
	for i := 0; i < topN && i < len(ranked); i++ {
		p := ranked[i]
		fmt.Fprintf(&b, "%d. %s\n", i+1, truncateText(p.ProductName, 40))
		fmt.Fprintf(&b, "   Rating: %.1f | Price: ₹%.0f\n", p.Rating, p.DiscountedPrice)
	}

	fmt.Fprintf(&b, "\n**Bottom %d Products by Rating:**\n", topN)
	for i := 0; i < topN && i < len(ranked); i++ {
		p := ranked[len(ranked)-1-i]
		fmt.Fprintf(&b, "%d. %s\n", i+1, truncateText(p.ProductName, 40))
		fmt.Fprintf(&b, "   Rating: %.1f | Price: ₹%.0f\n", p.Rating, p.DiscountedPrice)
	}

	return &Result{Summary: b.String()}, nil
}

func (s *StatsTool) discountEffectiveness(products []dataset.Product) (*Result, error) {
	if len(products) == 0 {
		return &Result{Summary: "No products available for discount analysis."}, nil
	}

	bins := []struct {
		Label    string
		Min, Max float64
	}{
		{"Low (<=35%)", 0, 35},
		{"Medium (35-45%)", 35, 45},
		{"High (>45%)", 45, 100},
	}

	var b strings.Builder
	b.WriteString("**Discount Effectiveness Analysis**\n\n")
	b.WriteString("**Impact of Discount Level on Performance:**\n\n")

	var discounts, ratings []float64
	for _, p := range products {
		discounts = append(discounts, p.DiscountPct)
		ratings = append(ratings, p.Rating)
	}

	for _, bin := range bins {
		var binRatings []float64
		var reviewCounts []float64
		for _, p := range products {
			if p.DiscountPct > bin.Min && p.DiscountPct <= bin.Max {
				binRatings = append(binRatings, p.Rating)
				reviewCounts = append(reviewCounts, float64(p.RatingCount))
			}
		}
		if len(binRatings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "**%s**\n", bin.Label)
		fmt.Fprintf(&b, "Products: %d\n", len(binRatings))
		fmt.Fprintf(&b, "Avg Rating: %.2f\n", mean(binRatings))
		fmt.Fprintf(&b, "Avg Review Count: %.0f\n\n", mean(reviewCounts))
	}

	correlation := pearson(discounts, ratings)
	b.WriteString("**Insights:**\n")
	switch {
	case correlation > 0.1:
		fmt.Fprintf(&b, "- Higher discounts show positive correlation with ratings (%.2f)\n", correlation)
	case correlation < -0.1:
		fmt.Fprintf(&b, "- Higher discounts show negative correlation with ratings (%.2f)\n", correlation)
		b.WriteString("- Customers may perceive heavily discounted items as lower quality\n")
	default:
		fmt.Fprintf(&b, "- Discount level has minimal correlation with ratings (%.2f)\n", correlation)
	}

	return &Result{Summary: b.String()}, nil
}

func (s *StatsTool) summary(products []dataset.Product) (*Result, error) {
	if len(products) == 0 {
		return &Result{Summary: "No products available for summary statistics."}, nil
	}

	var ratings, prices, discounts, reviewCounts []float64
	categories := make(map[string]int)
	subCategories := make(map[string]bool)
	for _, p := range products {
		ratings = append(ratings, p.Rating)
		prices = append(prices, p.DiscountedPrice)
		discounts = append(discounts, p.DiscountPct)
		reviewCounts = append(reviewCounts, float64(p.RatingCount))
		categories[p.TopCategory()]++
		subCategories[p.SubCategory] = true
	}

	var b strings.Builder
	b.WriteString("**Dataset Summary Statistics**\n\n")
	b.WriteString("**Overview:**\n")
	fmt.Fprintf(&b, "Total Products: %d\n", len(products))
	fmt.Fprintf(&b, "Total Reviews: %d\n", len(s.data.Rows()))
	fmt.Fprintf(&b, "Categories: %d\n", len(categories))
	fmt.Fprintf(&b, "Sub-categories: %d\n\n", len(subCategories))

	lo, hi := minMax(ratings)
	b.WriteString("**Rating Statistics:**\n")
	fmt.Fprintf(&b, "Average Rating: %.2f\n", mean(ratings))
	fmt.Fprintf(&b, "Rating Range: %.1f - %.1f\n", lo, hi)
	fmt.Fprintf(&b, "Avg Reviews per Product: %.0f\n\n", mean(reviewCounts))

	plo, phi := minMax(prices)
	b.WriteString("**Price Statistics:**\n")
	fmt.Fprintf(&b, "Price Range: ₹%.0f - ₹%.0f\n", plo, phi)
	fmt.Fprintf(&b, "Average Price: ₹%.0f\n", mean(prices))
	fmt.Fprintf(&b, "Average Discount: %.1f%%\n\n", mean(discounts))

	b.WriteString("**Categories Available:**\n")
	var names []string
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %d products\n", name, categories[name])
	}

	return &Result{Summary: b.String()}, nil
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sum(xs) / float64(len(xs))
}

func minMax(xs []float64) (lo, hi float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

// pearson is the sample correlation coefficient; 0 when undefined.
func pearson(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var cov, vx, vy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}
