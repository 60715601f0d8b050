package engine

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Severity is the qualitative risk level of a finding. Values outside the
// known set are kept verbatim (lower-cased) so the validator can report them.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// severityOrder lists the known severities from most to least severe.
var severityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}

// Severities returns the known severity levels from critical to info.
func Severities() []Severity {
	out := make([]Severity, len(severityOrder))
	copy(out, severityOrder)
	return out
}

// Rank returns the sort ordinal: critical=0 through info=4, anything else 5.
func (s Severity) Rank() int {
	for i, known := range severityOrder {
		if s == known {
			return i
		}
	}
	return len(severityOrder)
}

// IsValid reports whether s is one of the known severity levels.
func (s Severity) IsValid() bool {
	return s.Rank() < len(severityOrder)
}

func (s Severity) String() string {
	return string(s)
}

// Emoji returns the marker used in markdown tables and headings.
func (s Severity) Emoji() string {
	switch s {
	case SeverityCritical:
		return "🔴"
	case SeverityHigh:
		return "🟠"
	case SeverityMedium:
		return "🟡"
	case SeverityLow:
		return "🔵"
	default:
		return "⚪"
	}
}

// Title returns the severity in title case, e.g. "Critical".
func (s Severity) Title() string {
	return titleCase(string(s))
}

// Status is the lifecycle state of a finding, lower-cased as written.
type Status string

const (
	StatusOpen         Status = "open"
	StatusInProgress   Status = "in progress"
	StatusResolved     Status = "resolved"
	StatusFixed        Status = "fixed"
	StatusAcceptedRisk Status = "accepted risk"
	StatusWontFix      Status = "wont fix"
)

func (s Status) String() string {
	return string(s)
}

// Title returns the status in title case, e.g. "In Progress".
func (s Status) Title() string {
	return titleCase(string(s))
}

// Normalized folds hyphenated spellings onto the space-separated form.
func (s Status) Normalized() Status {
	return Status(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(s))), "-", " "))
}

// IsResolved reports whether the finding no longer needs remediation work.
func (s Status) IsResolved() bool {
	switch s.Normalized() {
	case StatusResolved, StatusFixed:
		return true
	}
	return false
}

// Finding is one parsed security observation. It is never mutated after
// parsing; aggregation derives new structures from it.
type Finding struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Severity       Severity `json:"severity"`
	Phase          string   `json:"phase"`
	Status         Status   `json:"status"`
	OWASP          string   `json:"owasp"`
	CWE            string   `json:"cwe"`
	Description    string   `json:"description"`
	Impact         string   `json:"impact"`
	Recommendation string   `json:"recommendation"`
	File           string   `json:"file"`
}

var phaseNumber = regexp.MustCompile(`\d+`)

// phaseDigits returns the first digit run of the phase text without
// leading zeros ("0" for a run of zeros), or "" when there is none.
func (f Finding) phaseDigits() string {
	digits := phaseNumber.FindString(f.Phase)
	if digits == "" {
		return ""
	}
	if trimmed := strings.TrimLeft(digits, "0"); trimmed != "" {
		return trimmed
	}
	return "0"
}

// comparePhaseDigits orders digit strings numerically at any length.
func comparePhaseDigits(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

// DisplayPhase is the grouping label: "Phase N" when the phase text embeds
// a number, otherwise the raw text.
func (f Finding) DisplayPhase() string {
	if digits := phaseNumber.FindString(f.Phase); digits != "" {
		return "Phase " + digits
	}
	return f.Phase
}

// Field returns the value of the named attribute, or "" for unknown names.
func (f Finding) Field(name string) string {
	switch strings.ToLower(name) {
	case "id":
		return f.ID
	case "title":
		return f.Title
	case "severity":
		return string(f.Severity)
	case "phase":
		return f.Phase
	case "status":
		return string(f.Status)
	case "owasp":
		return f.OWASP
	case "cwe":
		return f.CWE
	case "description":
		return f.Description
	case "impact":
		return f.Impact
	case "recommendation":
		return f.Recommendation
	case "file":
		return f.File
	}
	return ""
}

// AuditContext is the session metadata read from audit-context.md.
type AuditContext struct {
	ProjectName  string `json:"project_name"`
	AuditStarted string `json:"audit_started"`
	LastUpdated  string `json:"last_updated"`
	AuditStatus  string `json:"audit_status"`
}

// ProjectLabel returns the project name, or "Unknown Project" when unset.
func (c AuditContext) ProjectLabel() string {
	if c.ProjectName == "" {
		return "Unknown Project"
	}
	return c.ProjectName
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
