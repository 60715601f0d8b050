package wrappers

import (
	"context"
	"fmt"

	"github.com/user/codeaudit/pkg/config"
	"github.com/user/codeaudit/pkg/engine"
)

// RemediationWrapper returns the prioritized roadmap of open findings
type RemediationWrapper struct {
	Config *config.Config
}

func (r *RemediationWrapper) Name() string {
	return "GetRemediationPlan"
}

func (r *RemediationWrapper) Description() string {
	return "Returns the remediation roadmap of an audit directory as JSON: open findings bucketed into immediate, short_term, medium_term and backlog by severity."
}

func (r *RemediationWrapper) Schema() map[string]interface{} {
	return objectSchema([]string{"audit_dir"}, map[string]interface{}{
		"audit_dir": pathProperty("Path to the .audit directory"),
	})
}

func (r *RemediationWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	dir, err := openAuditDir(r.Config, stringArg(args, "audit_dir"))
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	findings, err := dir.Repository().Load()
	if err != nil {
		return fmt.Sprintf("Error loading findings: %v", err), nil
	}
	plan := engine.BuildRoadmap(findings)
	progress(fmt.Sprintf("%d open findings in roadmap", plan.Len()))
	return toJSON(plan), nil
}
