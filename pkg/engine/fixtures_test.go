package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

const findingSQLi = `# SQL Injection in Login

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

const findingPassword = `# Weak Password Policy

| Field | Value |
|-------|-------|
| **ID** | VULN-002 |
| **Severity** | Medium |
| **Phase** | 1 |
| **Status** | Open |
| **CWE** | CWE-521 |

## Description
Password policy allows weak passwords.

## Recommendation
Implement stronger password requirements.
`

const findingHTTPS = `# Missing HTTPS Redirect

| Field | Value |
|-------|-------|
| **ID** | VULN-003 |
| **Severity** | Low |
| **Phase** | 7 |
| **Status** | Resolved |

## Description
Application does not redirect HTTP to HTTPS.
`

const auditContextDoc = `# Audit Context

| Field | Value |
|-------|-------|
| **Project Name** | Test Application |
| **Audit Started** | 2024-01-15 |
| **Audit Status** | In Progress |
`

// writeFile creates path with content, making parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// newSampleAudit builds an audit directory with three findings
// (critical/open, medium/open, low/resolved) and a context file.
func newSampleAudit(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), ".audit")
	writeFile(t, filepath.Join(root, "findings", "VULN-001.md"), findingSQLi)
	writeFile(t, filepath.Join(root, "findings", "VULN-002.md"), findingPassword)
	writeFile(t, filepath.Join(root, "findings", "VULN-003.md"), findingHTTPS)
	writeFile(t, filepath.Join(root, "audit-context.md"), auditContextDoc)
	return root
}

func finding(id string, sev Severity, status Status) Finding {
	return Finding{ID: id, Title: "Finding " + id, Severity: sev, Phase: "3", Status: status}
}

func fixedGenerator() *Generator {
	return &Generator{Framework: DefaultFramework, Now: func() time.Time { return fixedNow }}
}
