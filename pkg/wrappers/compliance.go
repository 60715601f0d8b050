package wrappers

import (
	"context"
	"fmt"

	"github.com/user/codeaudit/pkg/config"
	"github.com/user/codeaudit/pkg/engine"
)

// ComplianceWrapper maps findings to OWASP and CWE references
type ComplianceWrapper struct {
	Config *config.Config
}

func (c *ComplianceWrapper) Name() string {
	return "MapCompliance"
}

func (c *ComplianceWrapper) Description() string {
	return "Returns JSON mapping each OWASP category and CWE reference found in an audit directory to the ids of the findings that cite it."
}

func (c *ComplianceWrapper) Schema() map[string]interface{} {
	return objectSchema([]string{"audit_dir"}, map[string]interface{}{
		"audit_dir": pathProperty("Path to the .audit directory"),
	})
}

func (c *ComplianceWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	dir, err := openAuditDir(c.Config, stringArg(args, "audit_dir"))
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	findings, err := dir.Repository().Load()
	if err != nil {
		return fmt.Sprintf("Error loading findings: %v", err), nil
	}
	return toJSON(engine.BuildComplianceMap(findings)), nil
}
