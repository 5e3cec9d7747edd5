package dataset

import (
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Product is one review-grain row of the sales dataset. The same product
// appears once per review; Store.Products deduplicates by name.
type Product struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Category        string  `json:"category"`
	SubCategory     string  `json:"sub_category"`
	DiscountedPrice float64 `json:"discounted_price"`
	ActualPrice     float64 `json:"actual_price"`
	DiscountPct     float64 `json:"discount_percentage"`
	Rating          float64 `json:"rating"`
	RatingCount     int     `json:"rating_count"`
	About           string  `json:"about_product,omitempty"`
	ReviewTitle     string  `json:"review_title,omitempty"`
	ReviewContent   string  `json:"review_content,omitempty"`
}

// TopCategory returns the first segment of the category path
// ("Computers&Accessories|Cables|USBCables" -> "Computers&Accessories").
func (p Product) TopCategory() string {
	if i := strings.Index(p.Category, "|"); i >= 0 {
		return p.Category[:i]
	}
	return p.Category
}

// Store holds the cleaned dataset for a run. Read-only after construction.
type Store struct {
	rows []Product
}

// New builds a Store from already-cleaned rows. Used by tests and callers
// that assemble data in memory.
func New(rows []Product) *Store {
	return &Store{rows: rows}
}

// Rows returns every review-grain row.
func (s *Store) Rows() []Product {
	return s.rows
}

// Products returns unique products, first occurrence wins.
func (s *Store) Products() []Product {
	seen := make(map[string]bool, len(s.rows))
	var out []Product
	for _, r := range s.rows {
		if seen[r.ProductName] {
			continue
		}
		seen[r.ProductName] = true
		out = append(out, r)
	}
	return out
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// parseNumber strips currency symbols, thousands separators and percent
// signs before parsing. Returns 0 for values that cannot be salvaged.
func parseNumber(raw string) float64 {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// sanitizer strips stray markup that appears in review text.
var sanitizer = bluemonday.StrictPolicy()

func cleanText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(raw)))
}

// Load reads and cleans the sales dataset CSV.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset not found at %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the dataset from an already-open CSV stream.
func Parse(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"product_name", "category"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("dataset missing required column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []Product
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}

		p := Product{
			ProductID:       field(rec, "product_id"),
			ProductName:     cleanText(field(rec, "product_name")),
			Category:        strings.TrimSpace(field(rec, "category")),
			SubCategory:     strings.TrimSpace(field(rec, "sub_category")),
			DiscountedPrice: parseNumber(field(rec, "discounted_price")),
			ActualPrice:     parseNumber(field(rec, "actual_price")),
			DiscountPct:     parseNumber(field(rec, "discount_percentage")),
			Rating:          parseNumber(field(rec, "rating")),
			RatingCount:     int(parseNumber(field(rec, "rating_count"))),
			About:           cleanText(field(rec, "about_product")),
			ReviewTitle:     cleanText(field(rec, "review_title")),
			ReviewContent:   cleanText(field(rec, "review_content")),
		}
		if p.ProductName == "" {
			continue
		}
		// The source data encodes sub-categories as the tail of the
		// category path when no dedicated column exists.
		if p.SubCategory == "" && strings.Contains(p.Category, "|") {
			parts := strings.Split(p.Category, "|")
			p.SubCategory = parts[len(parts)-1]
		}
		rows = append(rows, p)
	}

	return &Store{rows: rows}, nil
}
