package engine

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// fieldMatcher returns the value of field in text, or "" when its dialect
// does not match.
type fieldMatcher func(text, field string) string

// fieldMatchers are tried in order; the first non-empty value wins.
var fieldMatchers = []fieldMatcher{
	matchTableRow,
	matchHeading,
	matchInline,
}

// ExtractField returns the value of field from a free-form markdown
// document. It understands three dialects, tried in order:
//
//	| **Severity** | High |
//	## Severity: High   (or **Severity**: High)
//	Severity: High
//
// Matching is case-insensitive. An empty string means the field is absent.
func ExtractField(text, field string) string {
	if text == "" || field == "" {
		return ""
	}
	for _, match := range fieldMatchers {
		if value := match(text, field); value != "" {
			return value
		}
	}
	return ""
}

func matchTableRow(text, field string) string {
	re := fieldPattern("table", field, `(?i)\|\s*\*?\*?%s\*?\*?\s*\|\s*([^|]+)\s*\|`)
	return firstGroup(re, text)
}

func matchHeading(text, field string) string {
	re := fieldPattern("heading", field, `(?im)(?:##\s*%[1]s|^\*\*%[1]s\*?\*?:?)\s*[:\-]?\s*(.+?)(?:\n|$)`)
	return firstGroup(re, text)
}

func matchInline(text, field string) string {
	re := fieldPattern("inline", field, `(?i)%s\s*:\s*(.+?)(?:\n|$)`)
	return firstGroup(re, text)
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// patterns caches compiled matchers keyed by dialect and field name, since
// the same handful of fields is looked up in every document.
var patterns sync.Map

func fieldPattern(kind, field, format string) *regexp.Regexp {
	key := kind + "\x00" + strings.ToLower(field)
	if cached, ok := patterns.Load(key); ok {
		return cached.(*regexp.Regexp)
	}
	re := regexp.MustCompile(fmt.Sprintf(format, regexp.QuoteMeta(field)))
	actual, _ := patterns.LoadOrStore(key, re)
	return actual.(*regexp.Regexp)
}
