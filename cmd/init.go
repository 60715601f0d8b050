package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/codeaudit/pkg/ui"
	"github.com/user/codeaudit/pkg/workspace"
)

var initAgent string

var initCmd = &cobra.Command{
	Use:   "init <target>",
	Short: "Create the .audit workspace in a project",
	Long: `Creates <target>/.audit with findings, reports and carry-forward
directories and an audit-context.md. An existing context file is kept.
Prints the context file path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := workspace.InitWithOptions(args[0], workspace.Options{Agent: initAgent})
		if err != nil {
			return err
		}

		stderr := cmd.ErrOrStderr()
		ui.Successf(stderr, "Created audit directory: %s", res.AuditDir)
		if res.Existed {
			ui.Warnf(stderr, "Audit context already exists: %s", res.ContextFile)
		} else {
			ui.Successf(stderr, "Created audit context: %s", res.ContextFile)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.ContextFile)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initAgent, "agent", "", "Agent name recorded in the audit context")
	rootCmd.AddCommand(initCmd)
}
