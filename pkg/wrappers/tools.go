// Package wrappers adapts codeaudit operations to the adk.Tool interface so
// they can be served to agents.
package wrappers

import (
	"fmt"
	"os"

	"github.com/user/codeaudit/pkg/adk"
	"github.com/user/codeaudit/pkg/config"
	"github.com/user/codeaudit/pkg/engine"
	"github.com/user/codeaudit/pkg/jsonutil"
)

// All returns every tool bound to cfg. A nil cfg uses the defaults.
func All(cfg *config.Config) []adk.Tool {
	return []adk.Tool{
		&ReportWrapper{Config: cfg},
		&ValidateWrapper{},
		&DetectWrapper{},
		&InitWrapper{},
		&SaveSnapshotWrapper{Config: cfg},
		&DiffSnapshotWrapper{Config: cfg},
		&RemediationWrapper{Config: cfg},
		&ComplianceWrapper{Config: cfg},
	}
}

func configOrDefault(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func pathProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": desc,
	}
}

func objectSchema(required []string, props map[string]interface{}) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// openAuditDir checks that dir exists and returns its layout.
func openAuditDir(cfg *config.Config, dir string) (engine.AuditDir, error) {
	if dir == "" {
		return engine.AuditDir{}, fmt.Errorf("audit_dir is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return engine.AuditDir{}, fmt.Errorf("audit directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return engine.AuditDir{}, fmt.Errorf("not a directory: %s", dir)
	}
	return configOrDefault(cfg).Layout(dir), nil
}

func toJSON(v interface{}) string {
	data, err := jsonutil.MarshalIndent(v)
	if err != nil {
		return fmt.Sprintf("Error: encoding result: %v", err)
	}
	return string(data)
}
