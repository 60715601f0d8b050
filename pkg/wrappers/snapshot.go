package wrappers

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/codeaudit/pkg/config"
	"github.com/user/codeaudit/pkg/engine"
)

const maxUnchangedListed = 10

func snapshotSchema() map[string]interface{} {
	return objectSchema([]string{"audit_dir"}, map[string]interface{}{
		"audit_dir": pathProperty("Path to the .audit directory"),
		"filename":  pathProperty("Snapshot file, relative to the audit directory (default: reports/snapshot.json)"),
	})
}

// SaveSnapshotWrapper records the current findings as a baseline
type SaveSnapshotWrapper struct {
	Config *config.Config
}

func (s *SaveSnapshotWrapper) Name() string {
	return "SaveSnapshot"
}

func (s *SaveSnapshotWrapper) Description() string {
	return "Saves the current findings of an audit directory to a snapshot file for future comparison."
}

func (s *SaveSnapshotWrapper) Schema() map[string]interface{} {
	return snapshotSchema()
}

func (s *SaveSnapshotWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	dir, err := openAuditDir(s.Config, stringArg(args, "audit_dir"))
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	findings, err := dir.Repository().Load()
	if err != nil {
		return fmt.Sprintf("Error loading findings: %v", err), nil
	}

	path := dir.SnapshotAt(stringArg(args, "filename"))
	if _, err := engine.SaveSnapshot(path, findings); err != nil {
		return fmt.Sprintf("Error saving snapshot: %v", err), nil
	}
	return fmt.Sprintf("Successfully saved %d findings to snapshot '%s'.", len(findings), path), nil
}

// DiffSnapshotWrapper compares current findings with a saved baseline
type DiffSnapshotWrapper struct {
	Config *config.Config
}

func (d *DiffSnapshotWrapper) Name() string {
	return "CompareWithBaseline"
}

func (d *DiffSnapshotWrapper) Description() string {
	return "Compares the current findings of an audit directory against a previously saved snapshot to identify New, Fixed, and Unchanged findings."
}

func (d *DiffSnapshotWrapper) Schema() map[string]interface{} {
	return snapshotSchema()
}

func (d *DiffSnapshotWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	dir, err := openAuditDir(d.Config, stringArg(args, "audit_dir"))
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	path := dir.SnapshotAt(stringArg(args, "filename"))
	baseline, err := engine.LoadSnapshot(path)
	if err != nil {
		return fmt.Sprintf("Error loading baseline snapshot '%s': %v. Save a snapshot before comparing.", path, err), nil
	}
	current, err := dir.Repository().Load()
	if err != nil {
		return fmt.Sprintf("Error loading findings: %v", err), nil
	}

	return FormatDiff(path, engine.CompareSnapshot(baseline.Findings, current)), nil
}

// FormatDiff renders a snapshot comparison as plain text.
func FormatDiff(baselinePath string, diff engine.SnapshotDiff) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Snapshot Comparison (vs %s):\n", baselinePath)
	sb.WriteString(strings.Repeat("-", 50) + "\n")

	fmt.Fprintf(&sb, "NEW: %d\n", len(diff.New))
	for _, f := range diff.New {
		writeDiffLine(&sb, "+", f)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "FIXED: %d\n", len(diff.Fixed))
	for _, f := range diff.Fixed {
		writeDiffLine(&sb, "-", f)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "UNCHANGED: %d\n", len(diff.Unchanged))
	for i, f := range diff.Unchanged {
		if i == maxUnchangedListed {
			fmt.Fprintf(&sb, "  ... and %d more.\n", len(diff.Unchanged)-maxUnchangedListed)
			break
		}
		writeDiffLine(&sb, "=", f)
	}
	return sb.String()
}

func writeDiffLine(sb *strings.Builder, mark string, f engine.Finding) {
	fmt.Fprintf(sb, "  [%s] %s [%s] %s (%s)\n", mark, f.ID, f.Severity, f.Title, f.Status)
}
