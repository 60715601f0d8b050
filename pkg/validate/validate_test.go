package validate

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/codeaudit/pkg/jsonutil"
)

const sampleFinding = "# Sample Finding\n\n" +
	"| Field | Value |\n" +
	"|-------|-------|\n" +
	"| **ID** | TEST-001 |\n" +
	"| **Severity** | High |\n" +
	"| **Phase** | 3 |\n" +
	"| **Status** | Open |\n" +
	"| **OWASP** | A01:2021 |\n" +
	"| **CWE** | CWE-79 |\n\n" +
	"## Description\nCross-site scripting vulnerability in user input.\n\n" +
	"## Impact\nAttacker can execute arbitrary JavaScript.\n\n" +
	"## Evidence\n```javascript\n// PoC code here\n```\n\n" +
	"## Recommendation\nImplement proper output encoding.\n"

func hasEntry(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), sub) {
			return true
		}
	}
	return false
}

func TestValidateSeverity(t *testing.T) {
	for _, s := range []string{"critical", "high", "medium", "low", "info", "informational", "CRITICAL", " High "} {
		assert.NoError(t, ValidateSeverity(s), s)
	}

	err := ValidateSeverity("severe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid severity")

	err = ValidateSeverity("")
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "missing")
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []string{"open", "In Progress", "in-progress", "resolved", "fixed", "accepted risk", "accepted-risk", "wont fix", "wont-fix", ""} {
		assert.NoError(t, ValidateStatus(s), s)
	}
	err := ValidateStatus("pending")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid status")
}

func TestValidateOWASP(t *testing.T) {
	for _, s := range []string{"A01:2021", "A03:2021 - Injection", "A10", ""} {
		assert.NoError(t, ValidateOWASP(s), s)
	}
	assert.Error(t, ValidateOWASP("A11:2021"))
	assert.Error(t, ValidateOWASP("Injection"))
}

func TestValidateCWE(t *testing.T) {
	for _, s := range []string{"CWE-89", "CWE-79: XSS", ""} {
		assert.NoError(t, ValidateCWE(s), s)
	}
	assert.Error(t, ValidateCWE("89"))
	assert.Error(t, ValidateCWE("CWE-"))
}

func TestValidatePhase(t *testing.T) {
	for i := 0; i <= 12; i++ {
		assert.NoError(t, ValidatePhase(strconv.Itoa(i)))
	}
	assert.NoError(t, ValidatePhase("Phase 5 - Injection"))

	err := ValidatePhase("")
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "missing")

	err = ValidatePhase("15")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and 12")

	assert.Error(t, ValidatePhase("recon"))
}

func TestValidateCompleteFinding(t *testing.T) {
	r := Validate(sampleFinding)

	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
	assert.Equal(t, "High", r.Fields["severity"])
	assert.Equal(t, "3", r.Fields["phase"])
	assert.Equal(t, "TEST-001", r.Fields["id"])
	assert.Contains(t, r.Fields["cwe"], "CWE-79")
	assert.False(t, hasEntry(r.Warnings, "evidence"))
}

func TestValidateMissingRequired(t *testing.T) {
	r := Validate("# Finding\n\n| **Phase** | 3 |\n")
	assert.False(t, r.Valid)
	assert.True(t, hasEntry(r.Errors, "severity"))

	r = Validate("# Finding\n\n| **Severity** | High |\n")
	assert.False(t, r.Valid)
	assert.True(t, hasEntry(r.Errors, "phase"))
}

func TestValidateWarnings(t *testing.T) {
	r := Validate("| **Severity** | High |\n| **Phase** | 3 |\n| **OWASP** | Injection |\n| **CWE** | 79 |\n")

	assert.True(t, r.Valid)
	assert.True(t, hasEntry(r.Warnings, "recommended field missing: id"))
	assert.True(t, hasEntry(r.Warnings, "owasp"))
	assert.True(t, hasEntry(r.Warnings, "cwe"))
	assert.True(t, hasEntry(r.Warnings, "evidence"))
	assert.True(t, hasEntry(r.Warnings, "remediation"))
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	r := ValidateFile(filepath.Join(dir, "missing.md"))
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "does not exist")

	empty := filepath.Join(dir, "empty.md")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	r = ValidateFile(empty)
	assert.False(t, r.Valid)
	assert.Equal(t, []string{"File is empty or could not be read"}, r.Errors)

	good := filepath.Join(dir, "good.md")
	require.NoError(t, os.WriteFile(good, []byte(sampleFinding), 0644))
	assert.True(t, ValidateFile(good).Valid)
}

func TestResultJSONShape(t *testing.T) {
	data, err := jsonutil.Marshal(ValidateFile(filepath.Join(t.TempDir(), "missing.md")))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, jsonutil.Unmarshal(data, &out))
	assert.Equal(t, false, out["valid"])
	assert.Equal(t, []any{}, out["warnings"])
	assert.Equal(t, map[string]any{}, out["fields"])
}
