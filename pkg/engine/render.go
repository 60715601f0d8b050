package engine

import (
	"fmt"
	"strings"
	"time"
)

const (
	maxSummaryDescriptionLen = 300
	maxRoadmapRecommendation = 200
	maxKeyConcerns           = 3

	noKeyConcerns = "No critical or high severity findings identified."
)

// ExecutiveSummary renders the overview, severity counts and key concerns.
// now supplies the audit date when the context has none.
func ExecutiveSummary(findings []Finding, ctx AuditContext, now time.Time) string {
	counts := CountBySeverity(findings)
	auditDate := ctx.AuditStarted
	if auditDate == "" {
		auditDate = now.Format("2006-01-02")
	}

	var b strings.Builder
	b.WriteString("## Executive Summary\n\n")
	b.WriteString("### Overview\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| **Project** | %s |\n", ctx.ProjectLabel())
	fmt.Fprintf(&b, "| **Audit Date** | %s |\n", auditDate)
	fmt.Fprintf(&b, "| **Total Findings** | %d |\n", len(findings))
	fmt.Fprintf(&b, "| **Overall Risk Level** | %s |\n\n", AssessRisk(findings))

	b.WriteString("### Findings by Severity\n\n")
	b.WriteString("| Severity | Count |\n")
	b.WriteString("|----------|-------|\n")
	for _, s := range severityOrder {
		label := s.Title()
		if s == SeverityInfo {
			label = "Informational"
		}
		fmt.Fprintf(&b, "| %s %s | %d |\n", s.Emoji(), label, counts[s])
	}

	b.WriteString("\n### Key Concerns\n\n")
	n := 0
	for _, f := range findings {
		if f.Severity != SeverityCritical && f.Severity != SeverityHigh {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. %s **%s**: %s\n", n, f.Severity.Emoji(), f.ID, f.Title)
		if n == maxKeyConcerns {
			break
		}
	}
	if n == 0 {
		b.WriteString(noKeyConcerns + "\n")
	}
	return b.String()
}

// FindingsBySeverity renders one section per known severity level that has
// findings. Findings with an unrecognized severity are not listed here.
func FindingsBySeverity(findings []Finding) string {
	var b strings.Builder
	b.WriteString("## Findings by Severity\n\n")

	for _, s := range severityOrder {
		var group []Finding
		for _, f := range findings {
			if f.Severity == s {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(&b, "### %s %s (%d)\n\n", s.Emoji(), s.Title(), len(group))
		for _, f := range group {
			fmt.Fprintf(&b, "#### %s: %s\n\n", f.ID, f.Title)
			fmt.Fprintf(&b, "- **Phase**: %s\n", f.Phase)
			fmt.Fprintf(&b, "- **Status**: %s\n", f.Status.Title())
			if f.OWASP != "" {
				fmt.Fprintf(&b, "- **OWASP**: %s\n", f.OWASP)
			}
			if f.CWE != "" {
				fmt.Fprintf(&b, "- **CWE**: %s\n", f.CWE)
			}
			if f.Description != "" {
				desc := f.Description
				if len([]rune(desc)) > maxSummaryDescriptionLen {
					desc = truncate(desc, maxSummaryDescriptionLen) + "..."
				}
				fmt.Fprintf(&b, "\n%s\n", desc)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FindingsByPhase renders a table per display phase, lowest phase first.
func FindingsByPhase(findings []Finding) string {
	var b strings.Builder
	b.WriteString("## Findings by Phase\n\n")

	for _, g := range groupByPhase(findings) {
		fmt.Fprintf(&b, "### %s (%d findings)\n\n", g.Label, len(g.Findings))
		b.WriteString("| ID | Title | Severity | Status |\n")
		b.WriteString("|----|-------|----------|--------|\n")
		for _, f := range g.Findings {
			fmt.Fprintf(&b, "| %s | %s | %s %s | %s |\n",
				f.ID, f.Title, f.Severity.Emoji(), f.Severity.Title(), f.Status.Title())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RemediationRoadmap renders the open findings as prioritized checklists.
func RemediationRoadmap(findings []Finding) string {
	var b strings.Builder
	b.WriteString("## Remediation Roadmap\n\n")

	for _, bucket := range BuildRoadmap(findings).buckets() {
		if len(bucket.Items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", bucket.Heading)
		for _, item := range bucket.Items {
			fmt.Fprintf(&b, "- [ ] **%s**: %s\n", item.ID, item.Title)
			if bucket.ShowRecommendation && item.Recommendation != "" {
				fmt.Fprintf(&b, "  - %s\n", truncate(item.Recommendation, maxRoadmapRecommendation))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ComplianceMapping renders the OWASP and CWE cross-reference tables.
func ComplianceMapping(findings []Finding) string {
	var b strings.Builder
	b.WriteString("## Compliance Mapping\n\n")

	for _, table := range BuildComplianceMap(findings).tables() {
		if len(table.Groups) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", table.Heading)
		fmt.Fprintf(&b, "| %s | Findings |\n", table.Column)
		fmt.Fprintf(&b, "|%s|----------|\n", strings.Repeat("-", len(table.Column)+2))
		for _, ref := range SortedKeys(table.Groups) {
			fmt.Fprintf(&b, "| %s | %s |\n", ref, strings.Join(table.Groups[ref], ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Statistics renders the status bucket table.
func Statistics(findings []Finding) string {
	s := CountStatusBuckets(findings)

	var b strings.Builder
	b.WriteString("## Statistics\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Total Findings | %d |\n", s.Total)
	fmt.Fprintf(&b, "| Open | %d |\n", s.Open)
	fmt.Fprintf(&b, "| In Progress | %d |\n", s.InProgress)
	fmt.Fprintf(&b, "| Resolved | %d |\n", s.Resolved)
	fmt.Fprintf(&b, "| Accepted Risk | %d |\n", s.AcceptedRisk)
	return b.String()
}
