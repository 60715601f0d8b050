package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/codeaudit/pkg/config"
	"github.com/user/codeaudit/pkg/logging"
	"github.com/user/codeaudit/pkg/ui"
)

// Version is set at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "codeaudit",
	Short: "Helpers for structured codebase security audits",
	Long: `codeaudit turns a directory of markdown finding documents into a
consolidated security audit report, and helps set up, validate and
compare audits along the way.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(DebugMode); err != nil {
			return err
		}
		if NoColor {
			ui.SetNoColor(true)
		}
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

var (
	DebugMode bool
	NoColor   bool
)

// appConfig is loaded before every command runs.
var appConfig = config.Default()

// exitError ends the process with code after the command has already
// reported its outcome.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	cobra.CheckErr(err)
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&NoColor, "no-color", false, "Disable colored output")
}

// existingPath resolves p to an absolute path and fails when it is missing.
func existingPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("path does not exist: %s", abs)
	}
	return abs, nil
}
