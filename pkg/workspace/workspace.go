// Package workspace scaffolds the .audit directory of a target project.
package workspace

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/user/codeaudit/pkg/engine"
	"github.com/user/codeaudit/pkg/logging"
)

// AuditDirName is the directory created inside the target.
const AuditDirName = ".audit"

// Subdirs are created inside the audit directory, each with a .gitkeep.
var Subdirs = []string{engine.DefaultFindingsDir, "reports", "carry-forward"}

//go:embed templates/audit-context.md.tmpl
var templateFS embed.FS

var contextTemplate = template.Must(
	template.New("audit-context.md.tmpl").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templateFS, "templates/audit-context.md.tmpl"),
)

// Phase is one stage of the audit methodology.
type Phase struct {
	Number int
	Name   string
}

// Phases lists the audit methodology stages in order.
var Phases = []Phase{
	{0, "Reconnaissance"},
	{1, "Authentication"},
	{2, "Authorization"},
	{3, "API Security"},
	{4, "Business Logic"},
	{5, "Data Layer"},
	{6, "Frontend"},
	{7, "Infrastructure"},
	{8, "Secrets Management"},
	{9, "Logging & Monitoring"},
	{10, "Error Handling"},
	{11, "Cross-Cutting"},
	{12, "Synthesis"},
}

// SpecializedAudits are listed in the context file as not applicable until
// the agent decides otherwise.
var SpecializedAudits = []string{"Mobile Security", "AWS Security", "Kubernetes", "GraphQL", "Performance"}

// Options tune the generated context file.
type Options struct {
	// ProjectName defaults to the target's base name.
	ProjectName string
	// Agent is recorded in the metadata table.
	Agent string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Result describes an initialized workspace.
type Result struct {
	AuditDir    string `json:"audit_dir"`
	ContextFile string `json:"context_file"`
	Existed     bool   `json:"existed"`
}

type contextData struct {
	ProjectName  string
	Started      string
	Agent        string
	AuditDirName string
	Phases       []Phase
	Specialized  []string
}

// Init creates the audit layout under target with default options.
func Init(target string) (*Result, error) {
	return InitWithOptions(target, Options{})
}

// InitWithOptions creates <target>/.audit with its subdirectories and an
// audit-context.md. An existing context file is left untouched.
func InitWithOptions(target string, opts Options) (*Result, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("path does not exist: %s", abs)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", abs)
	}

	auditDir := filepath.Join(abs, AuditDirName)
	for _, sub := range Subdirs {
		if err := os.MkdirAll(filepath.Join(auditDir, sub), 0755); err != nil {
			return nil, fmt.Errorf("creating audit directory: %w", err)
		}
	}
	logging.Debugf("created audit directory %s", auditDir)

	res := &Result{
		AuditDir:    auditDir,
		ContextFile: filepath.Join(auditDir, engine.DefaultContextFile),
	}

	if _, err := os.Stat(res.ContextFile); err == nil {
		res.Existed = true
		logging.Infof("audit context already exists: %s", res.ContextFile)
	} else {
		if opts.ProjectName == "" {
			opts.ProjectName = filepath.Base(abs)
		}
		content, err := RenderContext(opts)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(res.ContextFile, content, 0644); err != nil {
			return nil, fmt.Errorf("writing audit context: %w", err)
		}
	}

	for _, sub := range Subdirs {
		keep := filepath.Join(auditDir, sub, ".gitkeep")
		if _, err := os.Stat(keep); errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(keep, nil, 0644); err != nil {
				return nil, fmt.Errorf("creating %s: %w", keep, err)
			}
		}
	}
	return res, nil
}

// RenderContext renders the audit-context.md template.
func RenderContext(opts Options) ([]byte, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	data := contextData{
		ProjectName:  opts.ProjectName,
		Started:      now().Format("2006-01-02 15:04"),
		Agent:        opts.Agent,
		AuditDirName: AuditDirName,
		Phases:       Phases,
		Specialized:  SpecializedAudits,
	}

	var buf bytes.Buffer
	if err := contextTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering audit context: %w", err)
	}
	return buf.Bytes(), nil
}
