package detect

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// FrameworkRule flags a framework when its pattern matches a manifest.
type FrameworkRule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Mobile  bool   `yaml:"mobile"`

	re *regexp.Regexp
}

// Manifest groups the framework rules of one language ecosystem.
type Manifest struct {
	Ecosystem  string          `yaml:"ecosystem"`
	Files      []string        `yaml:"files"`
	Nested     string          `yaml:"nested"`
	IgnoreCase bool            `yaml:"ignore_case"`
	Frameworks []FrameworkRule `yaml:"frameworks"`
}

// CloudRule maps configuration markers to a cloud provider.
type CloudRule struct {
	Provider  string   `yaml:"provider"`
	Terraform []string `yaml:"terraform"`
	Keyword   string   `yaml:"keyword"`
}

// ComplianceRules lists where to look for regulatory keywords.
type ComplianceRules struct {
	Documents []string          `yaml:"documents"`
	Folders   []string          `yaml:"folders"`
	Patterns  map[string]string `yaml:"patterns"`

	compiled map[string]*regexp.Regexp
}

// AppTypeRules lists the framework families used to classify an app.
type AppTypeRules struct {
	Backend  []string `yaml:"backend"`
	Frontend []string `yaml:"frontend"`
	Web      []string `yaml:"web"`
}

// Limits caps how many files of each kind are opened.
type Limits struct {
	TerraformFiles int `yaml:"terraform_files"`
	YAMLFiles      int `yaml:"yaml_files"`
	SourceFiles    int `yaml:"source_files"`
}

// Rules is a complete detection profile.
type Rules struct {
	Manifests  []Manifest      `yaml:"manifests"`
	Cloud      []CloudRule     `yaml:"cloud"`
	Compliance ComplianceRules `yaml:"compliance"`
	AppTypes   AppTypeRules    `yaml:"app_types"`
	Limits     Limits          `yaml:"limits"`
}

// DefaultRules returns the built-in profile.
func DefaultRules() (*Rules, error) {
	return ParseRules(defaultRules)
}

// ParseRules decodes a YAML profile and compiles its patterns.
func ParseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse detection rules: %w", err)
	}

	for i := range r.Manifests {
		m := &r.Manifests[i]
		for j := range m.Frameworks {
			fw := &m.Frameworks[j]
			expr := fw.Pattern
			if m.IgnoreCase {
				expr = "(?i)" + expr
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("framework %s: %w", fw.Name, err)
			}
			fw.re = re
		}
	}

	r.Compliance.compiled = make(map[string]*regexp.Regexp, len(r.Compliance.Patterns))
	for name, expr := range r.Compliance.Patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compliance pattern %s: %w", name, err)
		}
		r.Compliance.compiled[name] = re
	}
	return &r, nil
}
