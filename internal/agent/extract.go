package agent

import (
	"encoding/json"
	"strings"
)

// The oracle's contract is free text that may embed JSON. Both helpers
// scan for the first balanced candidate via bracket matching instead of
// trusting the whole response to be well-formed.

// ExtractObject returns the first balanced JSON object found in raw.
func ExtractObject(raw string) (map[string]any, bool) {
	for start := 0; start < len(raw); {
		open := strings.IndexByte(raw[start:], '{')
		if open < 0 {
			return nil, false
		}
		open += start
		candidate, end := balancedSlice(raw, open, '{', '}')
		if candidate == "" {
			return nil, false
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
			return obj, true
		}
		start = end
	}
	return nil, false
}

// ExtractArray returns the first balanced JSON array of strings found in
// raw. Non-string elements are skipped.
func ExtractArray(raw string) ([]string, bool) {
	for start := 0; start < len(raw); {
		open := strings.IndexByte(raw[start:], '[')
		if open < 0 {
			return nil, false
		}
		open += start
		candidate, end := balancedSlice(raw, open, '[', ']')
		if candidate == "" {
			return nil, false
		}
		var items []any
		if err := json.Unmarshal([]byte(candidate), &items); err == nil {
			var out []string
			for _, item := range items {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
			if len(out) > 0 {
				return out, true
			}
		}
		start = end
	}
	return nil, false
}

// balancedSlice returns raw[open:end] where end closes the bracket opened
// at open, honoring JSON string literals and escapes. Returns "" when the
// bracket never closes.
func balancedSlice(raw string, open int, openCh, closeCh byte) (string, int) {
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == openCh:
			depth++
		case c == closeCh:
			depth--
			if depth == 0 {
				return raw[open : i+1], i + 1
			}
		}
	}
	return "", len(raw)
}
