package wrappers

import (
	"context"

	"github.com/user/codeaudit/pkg/validate"
)

// ValidateWrapper checks a single finding document
type ValidateWrapper struct{}

func (v *ValidateWrapper) Name() string {
	return "ValidateFinding"
}

func (v *ValidateWrapper) Description() string {
	return "Validates a finding markdown file and returns JSON with valid, errors, warnings and the extracted fields."
}

func (v *ValidateWrapper) Schema() map[string]interface{} {
	return objectSchema([]string{"path"}, map[string]interface{}{
		"path": pathProperty("Path to the finding .md file"),
	})
}

// Execute always returns the JSON result; an invalid finding is a normal
// outcome, not a tool failure.
func (v *ValidateWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	path := stringArg(args, "path")
	if path == "" {
		return "Error: path is required", nil
	}
	return toJSON(validate.ValidateFile(path)), nil
}
