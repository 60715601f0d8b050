// Package validate checks a single finding document for the fields and
// formats the reporting pipeline relies on.
package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/user/codeaudit/pkg/engine"
)

var (
	validSeverities = []string{"critical", "high", "medium", "low", "info", "informational"}
	validStatuses   = []string{"open", "in progress", "in-progress", "resolved", "fixed", "accepted risk", "accepted-risk", "wont fix", "wont-fix"}

	requiredFields    = []string{"severity", "phase"}
	recommendedFields = []string{"id", "title", "cwe", "owasp", "description", "impact", "recommendation"}

	// fields echoed back in Result.Fields
	reportedFields = []string{"severity", "status", "phase", "owasp", "cwe", "id"}

	owaspPattern = regexp.MustCompile(`A0[1-9]|A10`)
	cwePattern   = regexp.MustCompile(`CWE-\d+`)
	phasePattern = regexp.MustCompile(`\d+`)
)

const (
	minPhase = 0
	maxPhase = 12
)

// Result is the outcome of validating one document.
type Result struct {
	Valid    bool              `json:"valid"`
	Errors   []string          `json:"errors"`
	Warnings []string          `json:"warnings"`
	Fields   map[string]string `json:"fields"`
}

func (r *Result) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func failed(msg string) *Result {
	return &Result{
		Valid:    false,
		Errors:   []string{msg},
		Warnings: []string{},
		Fields:   map[string]string{},
	}
}

// Validate checks content. Missing or malformed required fields are
// errors; missing recommended fields and loose references are warnings.
func Validate(content string) *Result {
	r := &Result{
		Errors:   []string{},
		Warnings: []string{},
		Fields:   make(map[string]string, len(reportedFields)),
	}

	for _, field := range requiredFields {
		if engine.ExtractField(content, field) == "" {
			r.errorf("Required field missing: %s", field)
		}
	}
	for _, field := range recommendedFields {
		if engine.ExtractField(content, field) == "" {
			r.warnf("Recommended field missing: %s", field)
		}
	}

	if err := ValidateSeverity(engine.ExtractField(content, "severity")); err != nil {
		r.Errors = append(r.Errors, err.Error())
	}
	if err := ValidateStatus(engine.ExtractField(content, "status")); err != nil {
		r.Errors = append(r.Errors, err.Error())
	}
	if err := ValidateOWASP(engine.ExtractField(content, "owasp")); err != nil {
		r.Warnings = append(r.Warnings, err.Error())
	}
	if err := ValidateCWE(engine.ExtractField(content, "cwe")); err != nil {
		r.Warnings = append(r.Warnings, err.Error())
	}
	if err := ValidatePhase(engine.ExtractField(content, "phase")); err != nil {
		r.Errors = append(r.Errors, err.Error())
	}

	lower := strings.ToLower(content)
	if !containsAny(lower, "evidence", "proof", "poc") {
		r.warnf("No evidence/proof section found")
	}
	if !containsAny(lower, "remediation", "recommendation", "fix") {
		r.warnf("No remediation/recommendation section found")
	}

	for _, field := range reportedFields {
		r.Fields[field] = engine.ExtractField(content, field)
	}
	r.Valid = len(r.Errors) == 0
	return r
}

// ValidateFile reads and validates the document at path. A missing, empty
// or unreadable file yields an invalid result with a single error.
func ValidateFile(path string) *Result {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return failed("File does not exist: " + path)
	}
	if err != nil || len(data) == 0 {
		return failed("File is empty or could not be read")
	}
	return Validate(string(data))
}

// ValidateSeverity requires one of the known severity names, in any case.
func ValidateSeverity(severity string) error {
	if severity == "" {
		return errors.New("Severity is missing")
	}
	if !contains(validSeverities, strings.ToLower(strings.TrimSpace(severity))) {
		return fmt.Errorf("Invalid severity '%s'. Must be one of: %s", severity, strings.Join(validSeverities, ", "))
	}
	return nil
}

// ValidateStatus accepts an empty status or one of the known names.
func ValidateStatus(status string) error {
	if status == "" {
		return nil
	}
	if !contains(validStatuses, strings.ToLower(strings.TrimSpace(status))) {
		return fmt.Errorf("Invalid status '%s'. Must be one of: %s", status, strings.Join(validStatuses, ", "))
	}
	return nil
}

// ValidateOWASP accepts an empty reference or one naming A01 to A10.
func ValidateOWASP(owasp string) error {
	if owasp == "" || owaspPattern.MatchString(owasp) {
		return nil
	}
	return fmt.Errorf("Invalid OWASP reference '%s'. Should reference A01-A10 (e.g., A01:2021)", owasp)
}

// ValidateCWE accepts an empty reference or one containing CWE-<digits>.
func ValidateCWE(cwe string) error {
	if cwe == "" || cwePattern.MatchString(cwe) {
		return nil
	}
	return fmt.Errorf("Invalid CWE reference '%s'. Should be format CWE-XXX (e.g., CWE-89)", cwe)
}

// ValidatePhase requires the phase text to embed a number from 0 to 12.
func ValidatePhase(phase string) error {
	if phase == "" {
		return errors.New("Phase is missing")
	}
	digits := phasePattern.FindString(phase)
	if digits == "" {
		return fmt.Errorf("Invalid phase '%s'. Should include phase number (%d-%d)", phase, minPhase, maxPhase)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < minPhase || n > maxPhase {
		return fmt.Errorf("Invalid phase number %s. Must be between %d and %d", digits, minPhase, maxPhase)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
