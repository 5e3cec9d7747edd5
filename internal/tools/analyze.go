package tools

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rahul/drishti/internal/dataset"
)

// AnalyzeTool mines customer reviews for complaints, praise or themes.
type AnalyzeTool struct {
	data *dataset.Store
}

func NewAnalyzeTool(data *dataset.Store) *AnalyzeTool {
	return &AnalyzeTool{data: data}
}

var complaintPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(bad|poor|terrible|awful|worst|disappointed|disappointing|frustrat\w+)\b`),
	regexp.MustCompile(`\b(broke|broken|defective|faulty|damaged|doesnt work|not working)\b`),
	regexp.MustCompile(`\b(waste|scam|fake|misleading|false|wrong)\b`),
	regexp.MustCompile(`\b(return\w*|refund|exchange)\b`),
	regexp.MustCompile(`\b(issue|problem|complaint|bug|error|fail\w*)\b`),
	regexp.MustCompile(`\b(expensive|overpriced|not worth)\b`),
	regexp.MustCompile(`\b(slow|lag\w*|delay\w*|late)\b`),
	regexp.MustCompile(`\b(uncomfortable|hurts?|pain)\b`),
	regexp.MustCompile(`\b(leak\w*|spill\w*|break\w*|crack\w*|tear\w*)\b`),
	regexp.MustCompile(`\b(hot|heat\w*|overheat\w*)\b`),
}

var praisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(excellent|amazing|awesome|fantastic|perfect|great|good|love|loved)\b`),
	regexp.MustCompile(`\b(recommend\w*|best|worth|value|satisfied)\b`),
	regexp.MustCompile(`\b(quality|durable|sturdy|reliable|comfortable)\b`),
	regexp.MustCompile(`\b(fast|quick|easy|simple|smooth)\b`),
	regexp.MustCompile(`\b(beautiful|gorgeous|stylish|elegant)\b`),
}

// issueCategories is an ordered keyword table; fixed order keeps reports
// stable across runs.
var issueCategories = []struct {
	Name     string
	Keywords []string
}{
	{"Quality Issues", []string{"broke", "broken", "defective", "faulty", "damaged", "peel", "tear", "crack"}},
	{"Performance Problems", []string{"slow", "lag", "crash", "freeze", "bug", "error", "not working", "doesnt work"}},
	{"Comfort/Fit Issues", []string{"uncomfortable", "hurt", "pain", "tight", "loose", "shrink"}},
	{"Battery/Power Issues", []string{"battery", "drain", "charge", "charging", "power", "dies"}},
	{"Connectivity Issues", []string{"disconnect", "connection", "wifi", "bluetooth", "pair", "sync"}},
	{"Value Concerns", []string{"expensive", "overpriced", "not worth", "waste", "return"}},
	{"Durability Issues", []string{"dent", "scratch", "wear", "fade", "rust"}},
	{"Misleading Description", []string{"misleading", "false", "fake", "advertised"}},
	{"Heat Issues", []string{"hot", "heat", "overheat"}},
	{"Usability Issues", []string{"confusing", "difficult", "complicated", "hard to use", "assembly"}},
}

var praiseThemes = []struct {
	Name     string
	Keywords []string
}{
	{"Quality & Build", []string{"quality", "durable", "sturdy", "premium", "solid"}},
	{"Value for Money", []string{"worth", "value", "price", "affordable", "great deal"}},
	{"Performance", []string{"fast", "quick", "efficient", "works great", "perfect"}},
	{"Comfort & Usability", []string{"comfortable", "easy", "simple", "convenient"}},
	{"Design & Aesthetics", []string{"beautiful", "stylish", "looks great", "design"}},
}

var themeKeywords = []string{
	"battery", "quality", "price", "comfortable", "sound", "fit", "durable",
	"fast", "easy", "value", "recommend", "size", "design", "performance",
	"customer service", "delivery",
}

func (a *AnalyzeTool) Name() string {
	return "analyze_reviews"
}

func (a *AnalyzeTool) Description() string {
	return "Analyze customer reviews to identify complaints, praise, or common themes."
}

func (a *AnalyzeTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]any{
				"type":        "string",
				"description": "Filter reviews by product category, partial match.",
			},
			"product_name": map[string]any{
				"type":        "string",
				"description": "Filter reviews for a specific product name, partial match.",
			},
			"product_names": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Filter reviews for an exact list of product names.",
			},
			"analysis_type": map[string]any{
				"type":        "string",
				"enum":        []string{"complaints", "praise", "themes", "all"},
				"description": "Type of analysis to run. Default is 'complaints'.",
			},
			"min_rating": map[string]any{
				"type":        "number",
				"description": "Only products rated at or above this value.",
			},
			"max_rating": map[string]any{
				"type":        "number",
				"description": "Only products rated at or below this value.",
			},
		},
	}
}

func (a *AnalyzeTool) Execute(ctx context.Context, params map[string]any) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := a.filterRows(params)
	if len(rows) == 0 {
		return &Result{Summary: "No reviews found matching the specified criteria."}, nil
	}

	var reviews, titles []string
	seenProducts := make(map[string]bool)
	for _, r := range rows {
		if r.ReviewContent != "" {
			reviews = append(reviews, r.ReviewContent)
		}
		if r.ReviewTitle != "" {
			titles = append(titles, r.ReviewTitle)
		}
		seenProducts[r.ProductName] = true
	}

	kind, _ := stringParam(params, "analysis_type")
	if kind == "" {
		kind = "complaints"
	}

	var b strings.Builder
	b.WriteString("**Review Analysis Report**\n")
	fmt.Fprintf(&b, "Products Analyzed: %d\n", len(seenProducts))
	fmt.Fprintf(&b, "Total Reviews: %d\n", len(reviews))
	fmt.Fprintf(&b, "Analysis Type: %s\n\n", title(kind))

	switch kind {
	case "praise":
		a.writePraise(&b, reviews)
	case "themes":
		a.writeThemes(&b, append(append([]string{}, reviews...), titles...))
	case "all":
		a.writeComprehensive(&b, reviews)
	default:
		a.writeComplaints(&b, reviews)
	}

	return &Result{Summary: b.String()}, nil
}

func (a *AnalyzeTool) filterRows(params map[string]any) []dataset.Product {
	category, hasCategory := stringParam(params, "category")
	productName, hasProductName := stringParam(params, "product_name")
	productNames, hasProductNames := stringListParam(params, "product_names")
	minRating, hasMinRating := floatParam(params, "min_rating")
	maxRating, hasMaxRating := floatParam(params, "max_rating")

	nameSet := make(map[string]bool, len(productNames))
	for _, n := range productNames {
		nameSet[n] = true
	}

	var out []dataset.Product
	for _, r := range a.data.Rows() {
		if hasCategory && !categoryMatch(r.Category, category) {
			continue
		}
		if hasProductNames {
			// Presence of the key is the filter, even when the list is
			// empty: an empty subset must yield zero reviews, not the
			// whole dataset.
			if !nameSet[r.ProductName] {
				continue
			}
		} else if hasProductName &&
			!strings.Contains(strings.ToLower(r.ProductName), strings.ToLower(productName)) {
			continue
		}
		if hasMinRating && r.Rating < minRating {
			continue
		}
		if hasMaxRating && r.Rating > maxRating {
			continue
		}
		out = append(out, r)
	}
	return out
}

// sentiment classifies a review as positive, negative or mixed by
// counting pattern hits on both sides.
func sentiment(review string) string {
	lower := strings.ToLower(review)
	var complaints, praises int
	for _, re := range complaintPatterns {
		if re.MatchString(lower) {
			complaints++
		}
	}
	for _, re := range praisePatterns {
		if re.MatchString(lower) {
			praises++
		}
	}
	switch {
	case complaints > praises:
		return "negative"
	case praises > complaints:
		return "positive"
	default:
		return "mixed"
	}
}

type issueHits struct {
	Name     string
	Examples []string
}

// extractIssues collects per-category example sentences from reviews.
func extractIssues(reviews []string) []issueHits {
	hits := make([]issueHits, len(issueCategories))
	for i, cat := range issueCategories {
		hits[i].Name = cat.Name
	}

	for _, review := range reviews {
		lower := strings.ToLower(review)
		for i, cat := range issueCategories {
			for _, kw := range cat.Keywords {
				if !strings.Contains(lower, kw) {
					continue
				}
				for _, sentence := range strings.Split(review, ".") {
					if strings.Contains(strings.ToLower(sentence), kw) {
						hits[i].Examples = append(hits[i].Examples, strings.TrimSpace(sentence))
						break
					}
				}
				break
			}
		}
	}

	var found []issueHits
	for _, h := range hits {
		if len(h.Examples) > 0 {
			found = append(found, h)
		}
	}
	return found
}

func (a *AnalyzeTool) writeComplaints(b *strings.Builder, reviews []string) {
	var negative int
	for _, r := range reviews {
		if sentiment(r) == "negative" {
			negative++
		}
	}

	issues := extractIssues(reviews)
	sort.SliceStable(issues, func(i, j int) bool {
		return len(issues[i].Examples) > len(issues[j].Examples)
	})

	b.WriteString("**Top Complaints Identified:**\n\n")
	if len(issues) == 0 {
		b.WriteString("No significant complaints found.\n")
	}
	for _, issue := range issues {
		fmt.Fprintf(b, "**%s** (%d mentions)\n", issue.Name, len(issue.Examples))
		for i, example := range issue.Examples {
			if i >= 2 {
				break
			}
			fmt.Fprintf(b, "  - %q\n", example)
		}
		b.WriteString("\n")
	}

	b.WriteString("**Complaint Summary:**\n")
	fmt.Fprintf(b, "- %d reviews with negative sentiment\n", negative)
	fmt.Fprintf(b, "- %d distinct issue categories identified\n", len(issues))
}

func (a *AnalyzeTool) writePraise(b *strings.Builder, reviews []string) {
	var positive []string
	for _, r := range reviews {
		if sentiment(r) == "positive" {
			positive = append(positive, r)
		}
	}

	b.WriteString("**Positive Feedback Highlights:**\n\n")
	for _, theme := range praiseThemes {
		var matching []string
		for _, review := range positive {
			lower := strings.ToLower(review)
			for _, kw := range theme.Keywords {
				if strings.Contains(lower, kw) {
					matching = append(matching, review)
					break
				}
			}
		}
		if len(matching) == 0 {
			continue
		}
		fmt.Fprintf(b, "**%s** (%d mentions)\n", theme.Name, len(matching))
		fmt.Fprintf(b, "  - %q\n\n", truncateText(matching[0], 100))
	}

	b.WriteString("**Positive Summary:**\n")
	fmt.Fprintf(b, "- %d reviews with positive sentiment\n", len(positive))
}

func (a *AnalyzeTool) writeThemes(b *strings.Builder, texts []string) {
	all := strings.ToLower(strings.Join(texts, " "))

	type themeCount struct {
		Keyword string
		Count   int
	}
	var counts []themeCount
	for _, kw := range themeKeywords {
		if c := strings.Count(all, kw); c > 0 {
			counts = append(counts, themeCount{kw, c})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })

	b.WriteString("**Common Themes in Reviews:**\n\n")
	for i, tc := range counts {
		if i >= 10 {
			break
		}
		fmt.Fprintf(b, "- %s: %d mentions\n", title(tc.Keyword), tc.Count)
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (a *AnalyzeTool) writeComprehensive(b *strings.Builder, reviews []string) {
	// Matched rows can still carry no review text at all.
	if len(reviews) == 0 {
		b.WriteString("No review text available for sentiment analysis.\n")
		return
	}

	var positive, negative, mixed []string
	for _, r := range reviews {
		switch sentiment(r) {
		case "positive":
			positive = append(positive, r)
		case "negative":
			negative = append(negative, r)
		default:
			mixed = append(mixed, r)
		}
	}

	total := len(reviews)
	b.WriteString("**Sentiment Distribution:**\n")
	fmt.Fprintf(b, "Positive: %d (%d%%)\n", len(positive), len(positive)*100/total)
	fmt.Fprintf(b, "Negative: %d (%d%%)\n", len(negative), len(negative)*100/total)
	fmt.Fprintf(b, "Mixed: %d (%d%%)\n\n", len(mixed), len(mixed)*100/total)

	if issues := extractIssues(reviews); len(issues) > 0 {
		b.WriteString("**Key Issues:**\n")
		for i, issue := range issues {
			if i >= 3 {
				break
			}
			fmt.Fprintf(b, "- %s\n", issue.Name)
		}
		b.WriteString("\n")
	}

	if len(positive) > 0 {
		b.WriteString("**Sample Positive Feedback:**\n")
		fmt.Fprintf(b, "%q\n", truncateText(positive[0], 150))
	}
}
