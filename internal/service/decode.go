package service

import (
	"fmt"
	"strings"
	"unicode"
)

// decodeRoute parses the classifier reply into a Route. The model is asked
// for exactly one label; a reply containing neither label, or both, is a
// decode failure and the caller falls back to the knowledge-base route.
func decodeRoute(reply string) (Route, error) {
	cleaned := strings.ToLower(strings.TrimSpace(reply))
	cleaned = strings.Trim(cleaned, "\"'`.")
	switch cleaned {
	case string(RouteDB):
		return RouteDB, nil
	case string(RouteKB):
		return RouteKB, nil
	}

	// Tolerate a short sentence around the label, but never an ambiguous one.
	hasDB := containsWord(cleaned, string(RouteDB))
	hasKB := containsWord(cleaned, string(RouteKB))
	switch {
	case hasDB && !hasKB:
		return RouteDB, nil
	case hasKB && !hasDB:
		return RouteKB, nil
	}
	return "", fmt.Errorf("unparseable route %q", strings.TrimSpace(reply))
}

func containsWord(s, word string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, f := range fields {
		if f == word {
			return true
		}
	}
	return false
}

var sqlKeywords = []string{"select", "insert", "update", "delete", "with", "create", "alter", "drop"}

// extractSQL pulls a SQL statement from model output using three strategies
// in order: a ```sql fenced block, any fenced block starting with a SQL
// keyword, or the raw reply when it already begins with one. Returns "" when
// nothing parseable is found.
func extractSQL(text string) string {
	lower := strings.ToLower(text)
	if idx := strings.Index(lower, "```sql"); idx != -1 {
		body := text[idx+len("```sql"):]
		if len(body) > 0 && body[0] == '\n' {
			body = body[1:]
		}
		if end := strings.Index(body, "```"); end != -1 {
			if sql := strings.TrimSpace(body[:end]); sql != "" {
				return strings.TrimSuffix(sql, ";")
			}
		}
	}

	parts := strings.Split(text, "```")
	for i := 1; i < len(parts); i += 2 {
		candidate := strings.TrimSpace(parts[i])
		// strip a language tag line if present (e.g. "postgresql\nSELECT ...")
		if nl := strings.Index(candidate, "\n"); nl != -1 && !startsWithSQLKeyword(candidate[:nl]) {
			candidate = strings.TrimSpace(candidate[nl:])
		}
		if startsWithSQLKeyword(candidate) {
			return strings.TrimSuffix(candidate, ";")
		}
	}

	if trimmed := strings.TrimSpace(text); startsWithSQLKeyword(trimmed) {
		return strings.TrimSuffix(trimmed, ";")
	}
	return ""
}

func startsWithSQLKeyword(s string) bool {
	first := strings.ToLower(strings.TrimSpace(s))
	for _, kw := range sqlKeywords {
		if first == kw || strings.HasPrefix(first, kw+" ") || strings.HasPrefix(first, kw+"\n") {
			return true
		}
	}
	return false
}
