package tools

import (
	"fmt"
	"strconv"
	"strings"
)

// Parameter mappings arrive from JSON decoding, so values are float64,
// string, []any and friends. The helpers below tolerate the common
// variants without being lenient about shape.

func stringParam(params map[string]any, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func floatParam(params map[string]any, key string) (float64, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func intParam(params map[string]any, key string) (int, bool) {
	f, ok := floatParam(params, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// stringListParam reports presence separately from content: an empty list
// is a real (empty) filter, not an absent one.
func stringListParam(params map[string]any, key string) ([]string, bool) {
	v, ok := params[key]
	if !ok {
		return nil, false
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out, true
	}
	return nil, false
}

// categoryMatch reports whether a product's category path matches a
// filter. Repaired filters may be comma-joined hints ("Electronics,
// Clothing"); any one hint matching counts.
func categoryMatch(categoryPath, filter string) bool {
	path := strings.ToLower(categoryPath)
	for _, hint := range strings.Split(filter, ",") {
		hint = strings.ToLower(strings.TrimSpace(hint))
		if hint != "" && strings.Contains(path, hint) {
			return true
		}
	}
	return false
}
