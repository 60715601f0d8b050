package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/codeaudit/pkg/jsonutil"
	"github.com/user/codeaudit/pkg/ui"
	"github.com/user/codeaudit/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <finding.md>",
	Short: "Check a finding document for required fields and formats",
	Long: `Prints a JSON result with valid, errors, warnings and the extracted fields.
Exits with status 1 when the finding is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		res := validate.ValidateFile(path)
		if err := jsonutil.Write(cmd.OutOrStdout(), res); err != nil {
			return err
		}

		stderr := cmd.ErrOrStderr()
		ui.List(stderr, "Errors", res.Errors)
		ui.List(stderr, "Warnings", res.Warnings)
		if !res.Valid {
			ui.Errorf(stderr, "%s: %d errors, %d warnings", filepath.Base(path), len(res.Errors), len(res.Warnings))
			return &exitError{code: 1}
		}
		if len(res.Warnings) > 0 {
			ui.Warnf(stderr, "%s: valid with %d warnings", filepath.Base(path), len(res.Warnings))
		} else {
			ui.Successf(stderr, "%s: valid", filepath.Base(path))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
