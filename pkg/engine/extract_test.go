package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractField(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field string
		want  string
	}{
		{"table bold", "| **ID** | VULN-001 |", "ID", "VULN-001"},
		{"table plain", "| severity | High |", "Severity", "High"},
		{"table trims cell", "| **CWE** |   CWE-89   |", "cwe", "CWE-89"},
		{"heading with colon", "## Severity: Critical", "Severity", "Critical"},
		{"heading next line", "## Impact\nFull database access possible.\n", "Impact", "Full database access possible."},
		{"bold label", "**Status**: In Progress\nmore", "Status", "In Progress"},
		{"bold label dash", "**Phase** - 4\n", "Phase", "4"},
		{"inline", "Some text\nowasp: A01:2021\n", "OWASP", "A01:2021"},
		{"inline end of text", "Severity: low", "severity", "low"},
		{"absent", "nothing to see", "Severity", ""},
		{"empty text", "", "Severity", ""},
		{"regex metacharacters", "| **C++ (lang)** | yes |", "C++ (lang)", "yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractField(tt.text, tt.field))
		})
	}
}

func TestExtractFieldPrefersTableOverInline(t *testing.T) {
	text := "Severity: low\n\n| **Severity** | Critical |\n"
	assert.Equal(t, "Critical", ExtractField(text, "Severity"))
}

func TestExtractFieldCachesPatterns(t *testing.T) {
	text := "| **Severity** | High |"
	first := ExtractField(text, "Severity")
	second := ExtractField(text, "SEVERITY")
	assert.Equal(t, first, second)

	_, ok := patterns.Load("table\x00severity")
	assert.True(t, ok)
}
