package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountsSumToTotal(t *testing.T) {
	findings := []Finding{
		finding("1", SeverityCritical, StatusOpen),
		finding("2", SeverityHigh, StatusResolved),
		finding("3", SeverityHigh, Status("in-progress")),
		finding("4", Severity("weird"), StatusOpen),
		finding("5", SeverityInfo, StatusFixed),
	}

	sum := 0
	for _, n := range CountBySeverity(findings) {
		sum += n
	}
	assert.Equal(t, len(findings), sum)

	sum = 0
	for _, n := range CountByStatus(findings) {
		sum += n
	}
	assert.Equal(t, len(findings), sum)
	assert.Equal(t, 1, CountBySeverity(findings)[Severity("weird")])
}

func TestCountByPhase(t *testing.T) {
	findings := []Finding{
		{ID: "a", Phase: "5"},
		{ID: "b", Phase: "Phase 5: Injection"},
		{ID: "c", Phase: "Recon"},
		{ID: "d", Phase: "recon"},
		{ID: "e", Phase: DefaultPhase},
	}

	assert.Equal(t, map[string]int{
		"Phase 5": 2,
		"Recon":   1,
		"recon":   1,
		"Unknown": 1,
	}, CountByPhase(findings))
}

func TestCountByStatusKeepsRawKeys(t *testing.T) {
	findings := []Finding{
		finding("1", SeverityLow, StatusInProgress),
		finding("2", SeverityLow, Status("in-progress")),
	}
	counts := CountByStatus(findings)
	assert.Equal(t, 1, counts[StatusInProgress])
	assert.Equal(t, 1, counts[Status("in-progress")])
}

func TestGroupByField(t *testing.T) {
	findings := []Finding{
		{ID: "A", OWASP: "A01:2021"},
		{ID: "B", OWASP: "A01:2021", CWE: "CWE-79"},
		{ID: "C", OWASP: "A03:2021"},
		{ID: "D"},
	}

	grouped := GroupByField(findings, "owasp")
	assert.Equal(t, []string{"A", "B"}, grouped["A01:2021"])
	assert.Equal(t, []string{"C"}, grouped["A03:2021"])
	assert.NotContains(t, grouped, "")
	assert.Equal(t, []string{"A01:2021", "A03:2021"}, SortedKeys(grouped))

	assert.Equal(t, map[string][]string{"CWE-79": {"B"}}, GroupByField(findings, "cwe"))
	assert.Empty(t, GroupByField(findings, "unknown-field"))
}

func TestCountStatusBuckets(t *testing.T) {
	findings := []Finding{
		finding("1", SeverityLow, StatusOpen),
		finding("2", SeverityLow, StatusInProgress),
		finding("3", SeverityLow, Status("in-progress")),
		finding("4", SeverityLow, StatusResolved),
		finding("5", SeverityLow, StatusFixed),
		finding("6", SeverityLow, StatusAcceptedRisk),
		finding("7", SeverityLow, Status("accepted-risk")),
		finding("8", SeverityLow, StatusWontFix),
	}

	assert.Equal(t, StatusBuckets{Total: 8, Open: 1, InProgress: 2, Resolved: 2, AcceptedRisk: 2}, CountStatusBuckets(findings))
}

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		name       string
		severities []Severity
		want       RiskLevel
	}{
		{"empty", nil, RiskLow},
		{"any critical", []Severity{SeverityLow, SeverityCritical}, RiskCritical},
		{"three highs", []Severity{SeverityHigh, SeverityHigh, SeverityHigh}, RiskHigh},
		{"two highs", []Severity{SeverityHigh, SeverityHigh}, RiskMedium},
		{"one high", []Severity{SeverityHigh, SeverityMedium}, RiskMedium},
		{"mediums only", []Severity{SeverityMedium, SeverityMedium, SeverityMedium}, RiskLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var findings []Finding
			for _, s := range tt.severities {
				findings = append(findings, finding("x", s, StatusOpen))
			}
			assert.Equal(t, tt.want, AssessRisk(findings))
		})
	}
}

func TestGroupByPhaseOrdering(t *testing.T) {
	findings := []Finding{
		{ID: "a", Phase: "Recon"},
		{ID: "b", Phase: "10"},
		{ID: "c", Phase: "2"},
		{ID: "d", Phase: "Phase 2"},
		{ID: "e", Phase: DefaultPhase},
		{ID: "f", Phase: "0"},
	}

	var labels []string
	for _, g := range groupByPhase(findings) {
		labels = append(labels, g.Label)
	}
	assert.Equal(t, []string{"Phase 0", "Phase 2", "Phase 10", "Recon", "Unknown"}, labels)
}

func TestGroupByPhaseHugeNumbers(t *testing.T) {
	huge := "1234567890123456789012345"
	findings := []Finding{
		{ID: "a", Phase: "Recon"},
		{ID: "b", Phase: huge},
		{ID: "c", Phase: "99999999999999999999999"},
		{ID: "d", Phase: "007"},
	}

	var labels []string
	for _, g := range groupByPhase(findings) {
		labels = append(labels, g.Label)
	}
	assert.Equal(t, []string{"Phase 007", "Phase 99999999999999999999999", "Phase " + huge, "Recon"}, labels)
}
