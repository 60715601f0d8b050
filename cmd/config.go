package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/codeaudit/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration (framework label, audit layout, default format)",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", path)
		for _, key := range config.Keys() {
			value, _ := appConfig.Get(key)
			fmt.Fprintf(out, "%s: %s\n", key, value)
		}
		return nil
	},
}

var setFrameworkCmd = &cobra.Command{
	Use:   "set-framework <label>",
	Short: "Set the framework label printed in report headers and footers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveSetting(cmd, "framework", args[0])
	},
}

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveSetting(cmd, args[0], args[1])
	},
}

func saveSetting(cmd *cobra.Command, key, value string) error {
	if err := appConfig.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(appConfig); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", key, value)
	return nil
}

func init() {
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setFrameworkCmd)
	configCmd.AddCommand(setCmd)
	rootCmd.AddCommand(configCmd)
}
