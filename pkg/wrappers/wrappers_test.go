package wrappers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/codeaudit/pkg/adk"
	"github.com/user/codeaudit/pkg/engine"
	"github.com/user/codeaudit/pkg/jsonutil"
	"github.com/user/codeaudit/pkg/validate"
)

const sqliFinding = `# SQL Injection in Login

| Field | Value |
|-------|-------|
| **ID** | VULN-001 |
| **Severity** | Critical |
| **Phase** | 5 |
| **Status** | Open |
| **OWASP** | A03:2021 |
| **CWE** | CWE-89 |

## Description
SQL injection vulnerability in the login form.

## Impact
Full database access possible.

## Recommendation
Use parameterized queries.
`

const httpsFinding = `# Missing HTTPS

| Field | Value |
|-------|-------|
| **ID** | VULN-003 |
| **Severity** | High |
| **Phase** | 3 |
| **Status** | Resolved |
| **OWASP** | A02:2021 |
| **CWE** | CWE-319 |

## Description
Traffic is served over plain HTTP.

## Recommendation
Enable TLS.
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newAudit(t *testing.T, findings map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "audit-context.md"), "**Project Name**: Demo\n**Audit Started**: 2024-01-15\n")
	for name, content := range findings {
		writeFile(t, filepath.Join(dir, "findings", name), content)
	}
	return dir
}

func run(t *testing.T, tool adk.Tool, args map[string]interface{}) string {
	t.Helper()
	out, err := tool.Execute(context.Background(), args, func(string) {})
	require.NoError(t, err)
	return out
}

func TestAllToolsHaveObjectSchemas(t *testing.T) {
	seen := map[string]bool{}
	for _, tool := range All(nil) {
		assert.False(t, seen[tool.Name()], "duplicate tool %s", tool.Name())
		seen[tool.Name()] = true
		assert.NotEmpty(t, tool.Description())
		assert.Equal(t, "object", tool.Schema()["type"], tool.Name())
	}
	for _, name := range []string{"GenerateReport", "ValidateFinding", "DetectStack", "InitAudit", "SaveSnapshot", "CompareWithBaseline"} {
		assert.True(t, seen[name], name)
	}
}

func TestReportWrapper(t *testing.T) {
	dir := newAudit(t, map[string]string{"VULN-001.md": sqliFinding})
	tool := &ReportWrapper{}

	out := run(t, tool, map[string]interface{}{"audit_dir": dir})
	assert.True(t, strings.HasPrefix(out, "Report generated: "+filepath.Join(dir, "final-report.md")))
	assert.Contains(t, out, "# Security Audit Report")
	assert.FileExists(t, filepath.Join(dir, "final-report.md"))

	out = run(t, tool, map[string]interface{}{"audit_dir": dir, "format": "json"})
	var report engine.StructuredReport
	require.NoError(t, jsonutil.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Summary.TotalFindings)
	assert.Equal(t, "Demo", report.Metadata.ProjectName)
}

func TestReportWrapperErrors(t *testing.T) {
	tool := &ReportWrapper{}

	out := run(t, tool, map[string]interface{}{"audit_dir": filepath.Join(t.TempDir(), "missing")})
	assert.True(t, adk.IsErrorText(out), out)
	assert.Contains(t, out, "audit directory does not exist")

	out = run(t, tool, map[string]interface{}{"audit_dir": t.TempDir(), "format": "pdf"})
	assert.True(t, adk.IsErrorText(out), out)

	out = run(t, tool, map[string]interface{}{})
	assert.Equal(t, "Error: audit_dir is required", out)
}

func TestValidateWrapper(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.md")
	writeFile(t, good, sqliFinding)

	var res validate.Result
	out := run(t, &ValidateWrapper{}, map[string]interface{}{"path": good})
	require.NoError(t, jsonutil.Unmarshal([]byte(out), &res))
	assert.True(t, res.Valid)
	assert.Equal(t, "Critical", res.Fields["severity"])

	out = run(t, &ValidateWrapper{}, map[string]interface{}{"path": filepath.Join(dir, "nope.md")})
	require.NoError(t, jsonutil.Unmarshal([]byte(out), &res))
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"File does not exist: " + filepath.Join(dir, "nope.md")}, res.Errors)
}

func TestDetectWrapper(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"dependencies": {"express": "^4.0.0"}}`)

	out := run(t, &DetectWrapper{}, map[string]interface{}{"target": dir})
	assert.Contains(t, out, `"express"`)
	assert.Contains(t, out, `"recommended_phases"`)

	out = run(t, &DetectWrapper{}, map[string]interface{}{"target": filepath.Join(dir, "missing")})
	assert.True(t, adk.IsErrorText(out), out)
}

func TestInitWrapper(t *testing.T) {
	dir := t.TempDir()
	tool := &InitWrapper{}

	out := run(t, tool, map[string]interface{}{"target": dir})
	assert.Equal(t, "Audit initialized: "+filepath.Join(dir, ".audit", "audit-context.md"), out)

	out = run(t, tool, map[string]interface{}{"target": dir})
	assert.True(t, strings.HasPrefix(out, "Audit context already exists"), out)
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := newAudit(t, map[string]string{"VULN-001.md": sqliFinding})

	out := run(t, &SaveSnapshotWrapper{}, map[string]interface{}{"audit_dir": dir})
	assert.Contains(t, out, "Successfully saved 1 findings")
	assert.FileExists(t, filepath.Join(dir, "reports", "snapshot.json"))

	writeFile(t, filepath.Join(dir, "findings", "VULN-003.md"), httpsFinding)
	require.NoError(t, os.Remove(filepath.Join(dir, "findings", "VULN-001.md")))

	out = run(t, &DiffSnapshotWrapper{}, map[string]interface{}{"audit_dir": dir})
	assert.Contains(t, out, "NEW: 1\n  [+] VULN-003")
	assert.Contains(t, out, "FIXED: 1\n  [-] VULN-001")
	assert.Contains(t, out, "UNCHANGED: 0")
}

func TestDiffWithoutBaseline(t *testing.T) {
	dir := newAudit(t, nil)
	out := run(t, &DiffSnapshotWrapper{}, map[string]interface{}{"audit_dir": dir, "filename": "old.json"})
	assert.True(t, adk.IsErrorText(out), out)
	assert.Contains(t, out, filepath.Join(dir, "old.json"))
}

func TestFormatDiffCapsUnchanged(t *testing.T) {
	var diff engine.SnapshotDiff
	for i := 0; i < 12; i++ {
		diff.Unchanged = append(diff.Unchanged, engine.Finding{ID: "V", Severity: engine.SeverityLow})
	}
	out := FormatDiff("base.json", diff)
	assert.Equal(t, 10, strings.Count(out, "[=]"))
	assert.Contains(t, out, "... and 2 more.")
}

func TestRemediationWrapper(t *testing.T) {
	dir := newAudit(t, map[string]string{"VULN-001.md": sqliFinding, "VULN-003.md": httpsFinding})

	var plan engine.Roadmap
	out := run(t, &RemediationWrapper{}, map[string]interface{}{"audit_dir": dir})
	require.NoError(t, jsonutil.Unmarshal([]byte(out), &plan))
	require.Len(t, plan.Immediate, 1)
	assert.Equal(t, "VULN-001", plan.Immediate[0].ID)
	assert.Empty(t, plan.ShortTerm)
}

func TestComplianceWrapper(t *testing.T) {
	dir := newAudit(t, map[string]string{"VULN-001.md": sqliFinding, "VULN-003.md": httpsFinding})

	var m engine.ComplianceMap
	out := run(t, &ComplianceWrapper{}, map[string]interface{}{"audit_dir": dir})
	require.NoError(t, jsonutil.Unmarshal([]byte(out), &m))
	assert.Equal(t, []string{"VULN-001"}, m.OWASP["A03:2021"])
	assert.Equal(t, []string{"VULN-003"}, m.CWE["CWE-319"])
}
