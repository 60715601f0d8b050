package engine

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/codeaudit/pkg/jsonutil"
	"github.com/user/codeaudit/pkg/logging"
)

// DefaultFramework is the framework label printed in report headers.
const DefaultFramework = "Codebase Security Audit Framework"

const sectionSeparator = "\n---\n\n"

// Format selects a report representation.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatSummary  Format = "summary"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

// Formats lists every supported report format.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatSummary, FormatJSON, FormatCSV}
}

// ParseFormat resolves a format name; "" and "md" mean markdown.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", "md":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatSummary, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want one of markdown, summary, json, csv)", name)
	}
}

// Generator assembles report sections into complete documents.
type Generator struct {
	Framework string
	Now       func() time.Time
}

// NewGenerator returns a Generator with the default framework label and
// the wall clock.
func NewGenerator() *Generator {
	return &Generator{Framework: DefaultFramework, Now: time.Now}
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g *Generator) framework() string {
	if g.Framework == "" {
		return DefaultFramework
	}
	return g.Framework
}

func (g *Generator) header(ctx AuditContext, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Security Audit Report\n\n")
	fmt.Fprintf(&b, "**Project:** %s\n", ctx.ProjectLabel())
	fmt.Fprintf(&b, "**Generated:** %s\n", now.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Framework:** %s\n\n", g.framework())
	b.WriteString("---\n\n")
	return b.String()
}

func (g *Generator) footer() string {
	return fmt.Sprintf("---\n\n*Report generated by %s*\n", g.framework())
}

// Full renders the complete markdown report.
func (g *Generator) Full(findings []Finding, ctx AuditContext) string {
	now := g.now()

	sections := []string{
		ExecutiveSummary(findings, ctx, now),
		FindingsBySeverity(findings),
		FindingsByPhase(findings),
		RemediationRoadmap(findings),
		ComplianceMapping(findings),
	}

	var b strings.Builder
	b.WriteString(g.header(ctx, now))
	for _, s := range sections {
		b.WriteString(s)
		b.WriteString(sectionSeparator)
	}
	b.WriteString(Statistics(findings))
	b.WriteString("\n")
	b.WriteString(g.footer())
	return b.String()
}

// SummaryOnly renders the header and executive summary.
func (g *Generator) SummaryOnly(findings []Finding, ctx AuditContext) string {
	now := g.now()

	var b strings.Builder
	b.WriteString(g.header(ctx, now))
	b.WriteString(ExecutiveSummary(findings, ctx, now))
	b.WriteString("\n")
	b.WriteString(g.footer())
	return b.String()
}

// ReportMetadata identifies a structured report.
type ReportMetadata struct {
	ProjectName string `json:"project_name"`
	GeneratedAt string `json:"generated_at"`
	Framework   string `json:"framework"`
}

// ReportSummary carries the headline counts of a structured report.
type ReportSummary struct {
	TotalFindings int            `json:"total_findings"`
	BySeverity    map[string]int `json:"by_severity"`
	ByStatus      map[string]int `json:"by_status"`
	RiskLevel     RiskLevel      `json:"risk_level"`
}

// StructuredReport is the machine-readable form of the full report.
type StructuredReport struct {
	Metadata    ReportMetadata `json:"metadata"`
	Summary     ReportSummary  `json:"summary"`
	Findings    []Finding      `json:"findings"`
	Remediation Roadmap        `json:"remediation"`
	Compliance  ComplianceMap  `json:"compliance"`
}

// Structured builds the machine-readable report. Every known severity is
// present in by_severity, zero when absent.
func (g *Generator) Structured(findings []Finding, ctx AuditContext) StructuredReport {
	bySeverity := make(map[string]int, len(severityOrder))
	for _, s := range severityOrder {
		bySeverity[string(s)] = 0
	}
	for s, n := range CountBySeverity(findings) {
		bySeverity[string(s)] = n
	}
	byStatus := make(map[string]int)
	for s, n := range CountByStatus(findings) {
		byStatus[string(s)] = n
	}

	all := make([]Finding, len(findings))
	copy(all, findings)

	return StructuredReport{
		Metadata: ReportMetadata{
			ProjectName: ctx.ProjectLabel(),
			GeneratedAt: g.now().Format(time.RFC3339),
			Framework:   g.framework(),
		},
		Summary: ReportSummary{
			TotalFindings: len(findings),
			BySeverity:    bySeverity,
			ByStatus:      byStatus,
			RiskLevel:     AssessRisk(findings),
		},
		Findings:    all,
		Remediation: BuildRoadmap(findings),
		Compliance:  BuildComplianceMap(findings),
	}
}

// JSON renders the structured report as indented JSON.
func (g *Generator) JSON(findings []Finding, ctx AuditContext) (string, error) {
	data, err := jsonutil.MarshalIndent(g.Structured(findings, ctx))
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(data) + "\n", nil
}

var csvHeader = []string{"ID", "Title", "Severity", "Phase", "Status", "OWASP", "CWE", "Impact", "Recommendation"}

// CSV renders one row per finding in the given order.
func (g *Generator) CSV(findings []Finding) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, f := range findings {
		row := []string{
			f.ID, f.Title, string(f.Severity), f.Phase, string(f.Status),
			f.OWASP, f.CWE, f.Impact, f.Recommendation,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("encoding csv: %w", err)
	}
	return b.String(), nil
}

// Render produces the report in the requested format.
func (g *Generator) Render(findings []Finding, ctx AuditContext, format Format) (string, error) {
	switch format {
	case FormatMarkdown, "":
		return g.Full(findings, ctx), nil
	case FormatSummary:
		return g.SummaryOnly(findings, ctx), nil
	case FormatJSON:
		return g.JSON(findings, ctx)
	case FormatCSV:
		return g.CSV(findings)
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
}

// GenerateResult describes one report run.
type GenerateResult struct {
	Content  string
	Path     string
	Findings []Finding
}

// Generate loads dir and renders it in format. The full markdown report is
// also written to the directory's report path; other formats are only
// returned.
func (g *Generator) Generate(dir AuditDir, format Format) (*GenerateResult, error) {
	info, err := os.Stat(dir.Root)
	if err != nil {
		return nil, fmt.Errorf("audit directory does not exist: %s", dir.Root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir.Root)
	}

	findings, err := dir.Repository().Load()
	if err != nil {
		return nil, err
	}
	logging.Debugf("loaded %d findings from %s", len(findings), dir.Root)

	content, err := g.Render(findings, dir.Context(), format)
	if err != nil {
		return nil, err
	}

	res := &GenerateResult{Content: content, Findings: findings}
	if format == FormatMarkdown || format == "" {
		res.Path = dir.ReportPath()
		if err := WriteReport(res.Path, content); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// WriteReport writes content to path in a single whole-file write,
// creating the parent directory when needed.
func WriteReport(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
