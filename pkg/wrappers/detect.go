package wrappers

import (
	"context"
	"fmt"

	"github.com/user/codeaudit/pkg/detect"
)

// DetectWrapper identifies a project's technology stack
type DetectWrapper struct{}

func (d *DetectWrapper) Name() string {
	return "DetectStack"
}

func (d *DetectWrapper) Description() string {
	return "Detects platforms, frameworks, cloud provider, infrastructure, API types and compliance indicators of a project, and recommends audit phases."
}

func (d *DetectWrapper) Schema() map[string]interface{} {
	return objectSchema([]string{"target"}, map[string]interface{}{
		"target": pathProperty("Project root directory to scan"),
	})
}

func (d *DetectWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	target := stringArg(args, "target")
	if target == "" {
		return "Error: target is required", nil
	}
	progress(fmt.Sprintf("Scanning %s...", target))
	det, err := detect.Detect(target)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	return toJSON(det), nil
}
