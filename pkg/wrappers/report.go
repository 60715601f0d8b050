package wrappers

import (
	"context"
	"fmt"

	"github.com/user/codeaudit/pkg/config"
	"github.com/user/codeaudit/pkg/engine"
)

// ReportWrapper generates the audit report for an audit directory
type ReportWrapper struct {
	Config *config.Config
}

func (r *ReportWrapper) Name() string {
	return "GenerateReport"
}

func (r *ReportWrapper) Description() string {
	return "Generates the security audit report from the findings in an audit directory. The markdown format is also written to final-report.md."
}

func (r *ReportWrapper) Schema() map[string]interface{} {
	return objectSchema([]string{"audit_dir"}, map[string]interface{}{
		"audit_dir": pathProperty("Path to the .audit directory"),
		"format": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"markdown", "summary", "json", "csv"},
			"description": "Report format (default: markdown)",
		},
	})
}

func (r *ReportWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	cfg := configOrDefault(r.Config)

	name := stringArg(args, "format")
	if name == "" {
		name = cfg.DefaultFormat
	}
	format, err := engine.ParseFormat(name)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	dir, err := openAuditDir(cfg, stringArg(args, "audit_dir"))
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	progress(fmt.Sprintf("Generating %s report for %s...", format, dir.Root))
	res, err := cfg.Generator().Generate(dir, format)
	if err != nil {
		return fmt.Sprintf("Error generating report: %v", err), nil
	}
	if res.Path != "" {
		return fmt.Sprintf("Report generated: %s (%d findings)\n\n%s", res.Path, len(res.Findings), res.Content), nil
	}
	return res.Content, nil
}
