package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/user/codeaudit/pkg/engine"
	"github.com/user/codeaudit/pkg/ui"
	"github.com/user/codeaudit/pkg/wrappers"
)

var snapshotFile string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save and compare finding baselines",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <audit-dir>",
	Short: "Save the current findings as a baseline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := auditDir(args[0])
		if err != nil {
			return err
		}
		findings, err := dir.Repository().Load()
		if err != nil {
			return err
		}
		path := dir.SnapshotAt(snapshotFile)
		snap, err := engine.SaveSnapshot(path, findings)
		if err != nil {
			return err
		}
		ui.Successf(cmd.ErrOrStderr(), "Saved %d findings (snapshot %s)", len(snap.Findings), snap.ID)
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var snapshotDiffCmd = &cobra.Command{
	Use:   "diff <audit-dir>",
	Short: "Compare the current findings with a saved baseline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := auditDir(args[0])
		if err != nil {
			return err
		}
		path := dir.SnapshotAt(snapshotFile)
		baseline, err := engine.LoadSnapshot(path)
		if err != nil {
			return err
		}
		current, err := dir.Repository().Load()
		if err != nil {
			return err
		}

		diff := engine.CompareSnapshot(baseline.Findings, current)
		fmt.Fprint(cmd.OutOrStdout(), wrappers.FormatDiff(path, diff))
		ui.Summary(cmd.ErrOrStderr(), "Baseline Comparison", []ui.Row{
			{Label: "New", Value: strconv.Itoa(len(diff.New)), Level: levelIf(len(diff.New) > 0, "high")},
			{Label: "Fixed", Value: strconv.Itoa(len(diff.Fixed))},
			{Label: "Unchanged", Value: strconv.Itoa(len(diff.Unchanged))},
		})
		return nil
	},
}

func levelIf(cond bool, level string) string {
	if cond {
		return level
	}
	return ""
}

// auditDir resolves an existing audit directory with the configured layout.
func auditDir(arg string) (engine.AuditDir, error) {
	root, err := existingPath(arg)
	if err != nil {
		return engine.AuditDir{}, fmt.Errorf("audit directory does not exist: %s", arg)
	}
	return appConfig.Layout(root), nil
}

func init() {
	snapshotCmd.PersistentFlags().StringVar(&snapshotFile, "file", "", "Snapshot file, relative to the audit directory (default: reports/snapshot.json)")
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotDiffCmd)
	rootCmd.AddCommand(snapshotCmd)
}
