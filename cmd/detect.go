package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/codeaudit/pkg/detect"
	"github.com/user/codeaudit/pkg/jsonutil"
	"github.com/user/codeaudit/pkg/ui"
)

var detectCmd = &cobra.Command{
	Use:   "detect <target>",
	Short: "Detect a project's technology stack and recommended audit phases",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := existingPath(args[0])
		if err != nil {
			return err
		}
		det, err := detect.Detect(target)
		if err != nil {
			return err
		}
		if err := jsonutil.Write(cmd.OutOrStdout(), det); err != nil {
			return err
		}

		cloud := det.Cloud
		if cloud == "" {
			cloud = "none"
		}
		ui.Summary(cmd.ErrOrStderr(), "Stack", []ui.Row{
			{Label: "App type", Value: det.AppType},
			{Label: "Platforms", Value: ui.Join(det.Platforms)},
			{Label: "Frameworks", Value: ui.Join(det.Frameworks)},
			{Label: "Cloud", Value: cloud},
			{Label: "Phases", Value: fmt.Sprint(det.RecommendedPhases)},
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
