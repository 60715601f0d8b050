package wrappers

import (
	"context"
	"fmt"

	"github.com/user/codeaudit/pkg/workspace"
)

// InitWrapper creates the audit workspace of a project
type InitWrapper struct{}

func (i *InitWrapper) Name() string {
	return "InitAudit"
}

func (i *InitWrapper) Description() string {
	return "Creates the .audit workspace (findings, reports, carry-forward and audit-context.md) in a project. An existing audit-context.md is kept."
}

func (i *InitWrapper) Schema() map[string]interface{} {
	return objectSchema([]string{"target"}, map[string]interface{}{
		"target": pathProperty("Project root directory"),
	})
}

func (i *InitWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	target := stringArg(args, "target")
	if target == "" {
		return "Error: target is required", nil
	}
	res, err := workspace.InitWithOptions(target, workspace.Options{Agent: "MCP client"})
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	if res.Existed {
		return fmt.Sprintf("Audit context already exists: %s", res.ContextFile), nil
	}
	return fmt.Sprintf("Audit initialized: %s", res.ContextFile), nil
}
