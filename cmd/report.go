package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/codeaudit/pkg/engine"
	"github.com/user/codeaudit/pkg/ui"
)

var (
	reportFormat string
	reportOutput string
	reportQuiet  bool
)

var reportCmd = &cobra.Command{
	Use:   "report <audit-dir>",
	Short: "Generate the audit report from an audit directory",
	Long: `Reads every finding under <audit-dir>/findings and the audit context, then
renders the report. The markdown report is also written to final-report.md
inside the audit directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := reportFormat
		if name == "" {
			name = appConfig.DefaultFormat
		}
		format, err := engine.ParseFormat(name)
		if err != nil {
			return err
		}
		root, err := existingPath(args[0])
		if err != nil {
			return fmt.Errorf("audit directory does not exist: %s", args[0])
		}

		dir := appConfig.Layout(root)
		res, err := appConfig.Generator().Generate(dir, format)
		if err != nil {
			return err
		}
		if reportOutput != "" {
			if err := engine.WriteReport(reportOutput, res.Content); err != nil {
				return err
			}
			res.Path = reportOutput
		}

		out := cmd.OutOrStdout()
		if res.Path != "" {
			fmt.Fprintf(out, "Report generated: %s\n", res.Path)
		}
		if !reportQuiet {
			if res.Path != "" {
				fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 60))
			}
			fmt.Fprint(out, res.Content)
		}

		printReportSummary(cmd, res.Findings)
		return nil
	},
}

func printReportSummary(cmd *cobra.Command, findings []engine.Finding) {
	counts := engine.CountBySeverity(findings)
	risk := engine.AssessRisk(findings)

	rows := []ui.Row{
		{Label: "Findings", Value: strconv.Itoa(len(findings))},
		{Label: "Risk", Value: string(risk), Level: string(risk)},
	}
	for _, s := range []engine.Severity{engine.SeverityCritical, engine.SeverityHigh, engine.SeverityMedium, engine.SeverityLow, engine.SeverityInfo} {
		if counts[s] > 0 {
			rows = append(rows, ui.Row{Label: s.Title(), Value: strconv.Itoa(counts[s]), Level: string(s)})
		}
	}
	ui.Summary(cmd.ErrOrStderr(), "Audit Report", rows)
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "Report format: markdown, summary, json or csv")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Also write the report to this file")
	reportCmd.Flags().BoolVarP(&reportQuiet, "quiet", "q", false, "Print only the report path")
	rootCmd.AddCommand(reportCmd)
}
