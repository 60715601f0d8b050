package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/codeaudit/pkg/logging"
)

// Default layout of an audit directory.
const (
	DefaultFindingsDir  = "findings"
	DefaultContextFile  = "audit-context.md"
	DefaultReportFile   = "final-report.md"
	DefaultSnapshotFile = "reports/snapshot.json"
)

// Repository is a source of findings. Implementations return findings
// sorted by severity.
type Repository interface {
	Load() ([]Finding, error)
}

// DirRepository reads finding documents from <Root>/<FindingsDir>/*.md.
type DirRepository struct {
	Root        string
	FindingsDir string
}

// NewDirRepository returns a repository over the default findings layout.
func NewDirRepository(root string) *DirRepository {
	return &DirRepository{Root: root, FindingsDir: DefaultFindingsDir}
}

// Load parses every markdown document directly inside the findings
// directory. Hidden files and unreadable documents are skipped. A missing,
// unlistable or non-directory findings path yields no findings, not an error.
func (r *DirRepository) Load() ([]Finding, error) {
	dir := filepath.Join(r.Root, r.findingsDir())
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Debugf("findings directory %s does not exist", dir)
		return []Finding{}, nil
	}
	if err != nil {
		logging.Warnf("cannot list findings directory %s: %v", dir, err)
		return []Finding{}, nil
	}

	findings := make([]Finding, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".md") {
			continue
		}
		f, ok := ParseFindingFile(filepath.Join(dir, name))
		if !ok {
			logging.Debugf("skipping unreadable finding %s", name)
			continue
		}
		if !f.Severity.IsValid() {
			logging.Debugf("%s has unrecognized severity %q", name, f.Severity)
		}
		findings = append(findings, f)
	}

	SortBySeverity(findings)
	return findings, nil
}

func (r *DirRepository) findingsDir() string {
	if r.FindingsDir == "" {
		return DefaultFindingsDir
	}
	return r.FindingsDir
}

// MemoryRepository serves a fixed set of findings.
type MemoryRepository []Finding

// Load returns a severity-sorted copy of the findings.
func (m MemoryRepository) Load() ([]Finding, error) {
	out := make([]Finding, len(m))
	copy(out, m)
	SortBySeverity(out)
	return out, nil
}

// SortBySeverity orders findings critical first. Equal severities keep
// their relative order.
func SortBySeverity(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() < findings[j].Severity.Rank()
	})
}

// LoadFindings loads the findings of an audit directory with the default
// layout. Errors are logged and produce an empty result.
func LoadFindings(auditDir string) []Finding {
	findings, err := NewDirRepository(auditDir).Load()
	if err != nil {
		logging.Warnf("loading findings: %v", err)
		return []Finding{}
	}
	return findings
}

// LoadAuditContext reads <auditDir>/audit-context.md. A missing or
// unreadable file yields an empty context.
func LoadAuditContext(auditDir string) AuditContext {
	return LoadAuditContextFile(filepath.Join(auditDir, DefaultContextFile))
}

// LoadAuditContextFile reads the audit context from path.
func LoadAuditContextFile(path string) AuditContext {
	data, err := os.ReadFile(path)
	if err != nil {
		return AuditContext{}
	}
	text := string(data)
	return AuditContext{
		ProjectName:  ExtractField(text, "Project Name"),
		AuditStarted: ExtractField(text, "Audit Started"),
		LastUpdated:  ExtractField(text, "Last Updated"),
		AuditStatus:  ExtractField(text, "Audit Status"),
	}
}

// AuditDir describes the file layout of one audit directory.
type AuditDir struct {
	Root         string
	FindingsDir  string
	ContextFile  string
	ReportFile   string
	SnapshotFile string
}

// NewAuditDir returns root with the default layout.
func NewAuditDir(root string) AuditDir {
	return AuditDir{
		Root:         root,
		FindingsDir:  DefaultFindingsDir,
		ContextFile:  DefaultContextFile,
		ReportFile:   DefaultReportFile,
		SnapshotFile: DefaultSnapshotFile,
	}
}

// Repository returns the findings store of the directory.
func (a AuditDir) Repository() Repository {
	return &DirRepository{Root: a.Root, FindingsDir: a.FindingsDir}
}

// Context loads the directory's audit context.
func (a AuditDir) Context() AuditContext {
	return LoadAuditContextFile(a.path(a.ContextFile, DefaultContextFile))
}

// ReportPath is where the full markdown report is written.
func (a AuditDir) ReportPath() string {
	return a.path(a.ReportFile, DefaultReportFile)
}

// SnapshotPath is the default baseline snapshot location.
func (a AuditDir) SnapshotPath() string {
	return a.path(a.SnapshotFile, DefaultSnapshotFile)
}

func (a AuditDir) path(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.Root, filepath.FromSlash(name))
}

// SnapshotAt resolves a snapshot file name against the directory. An empty
// name selects SnapshotPath.
func (a AuditDir) SnapshotAt(name string) string {
	if name == "" {
		return a.SnapshotPath()
	}
	return a.path(name, DefaultSnapshotFile)
}
