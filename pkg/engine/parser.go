package engine

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// DefaultTitle is used when a finding document has no title field.
	DefaultTitle = "Untitled Finding"
	// DefaultPhase is used when a finding document has no phase field.
	DefaultPhase = "Unknown"

	maxDescriptionLen = 500
)

var descriptionHeading = regexp.MustCompile(`(?i)##\s*Description\s*\n`)

// ParseFinding builds a Finding from a finding document. Missing fields take
// their defaults; present but unrecognized values are kept lower-cased. It
// returns false only when text is empty.
func ParseFinding(text, fallbackID string) (Finding, bool) {
	if text == "" {
		return Finding{}, false
	}

	f := Finding{
		ID:             ExtractField(text, "id"),
		Title:          ExtractField(text, "title"),
		Severity:       parseSeverity(ExtractField(text, "severity")),
		Phase:          ExtractField(text, "phase"),
		Status:         Status(strings.ToLower(ExtractField(text, "status"))),
		OWASP:          ExtractField(text, "owasp"),
		CWE:            ExtractField(text, "cwe"),
		Description:    extractDescription(text),
		Impact:         ExtractField(text, "impact"),
		Recommendation: ExtractField(text, "recommendation"),
	}
	if f.ID == "" {
		f.ID = fallbackID
	}
	if f.Title == "" {
		f.Title = DefaultTitle
	}
	if f.Phase == "" {
		f.Phase = DefaultPhase
	}
	if f.Status == "" {
		f.Status = StatusOpen
	}
	return f, true
}

// ParseFindingFile reads and parses one finding document. The file's base
// name without extension is the fallback id. Unreadable files yield false.
func ParseFindingFile(path string) (Finding, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Finding{}, false
	}
	base := filepath.Base(path)
	f, ok := ParseFinding(string(data), strings.TrimSuffix(base, filepath.Ext(base)))
	if !ok {
		return Finding{}, false
	}
	f.File = base
	return f, true
}

func parseSeverity(raw string) Severity {
	switch s := strings.ToLower(raw); s {
	case "":
		return SeverityMedium
	case "informational":
		return SeverityInfo
	default:
		return Severity(s)
	}
}

// extractDescription returns the body of the "## Description" section up to
// the next "##" heading, trimmed and capped at maxDescriptionLen runes.
func extractDescription(text string) string {
	loc := descriptionHeading.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	body := text[loc[1]:]
	if end := strings.Index(body, "\n##"); end >= 0 {
		body = body[:end]
	}
	return truncate(strings.TrimSpace(body), maxDescriptionLen)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
