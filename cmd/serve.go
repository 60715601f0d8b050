package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/codeaudit/pkg/adk"
	"github.com/user/codeaudit/pkg/wrappers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the audit tools to an agent over MCP (stdio)",
	Long: `Runs a Model Context Protocol server on stdin/stdout exposing report
generation, finding validation, stack detection, workspace setup and
baseline comparison as tools.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		registry := adk.NewRegistry(wrappers.All(appConfig)...)
		return adk.NewServer(Version, registry).RunStdio(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
