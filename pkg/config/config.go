package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/codeaudit/pkg/engine"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "CODEAUDIT_CONFIG"

// Config holds user preferences for report generation.
type Config struct {
	Framework     string `yaml:"framework"`
	DefaultFormat string `yaml:"default_format"`
	FindingsDir   string `yaml:"findings_dir"`
	ContextFile   string `yaml:"context_file"`
	ReportFile    string `yaml:"report_file"`
	SnapshotFile  string `yaml:"snapshot_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Framework:     engine.DefaultFramework,
		DefaultFormat: string(engine.FormatMarkdown),
		FindingsDir:   engine.DefaultFindingsDir,
		ContextFile:   engine.DefaultContextFile,
		ReportFile:    engine.DefaultReportFile,
		SnapshotFile:  engine.DefaultSnapshotFile,
	}
}

// GetConfigPath returns $CODEAUDIT_CONFIG, or ~/.codeaudit/config.yaml.
func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".codeaudit", "config.yaml"), nil
}

// LoadConfig reads the config file. A missing file yields the defaults;
// fields left empty in the file keep their default values.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.merge(&fileCfg)
	return cfg, nil
}

// SaveConfig writes cfg to the config path.
func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg to path, creating its directory.
func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (c *Config) merge(o *Config) {
	for _, key := range Keys() {
		if v := o.get(key); v != "" {
			_ = c.Set(key, v)
		}
	}
}

// Keys lists the settable keys in lexical order.
func Keys() []string {
	keys := []string{"framework", "default_format", "findings_dir", "context_file", "report_file", "snapshot_file"}
	sort.Strings(keys)
	return keys
}

func (c *Config) field(key string) *string {
	switch key {
	case "framework":
		return &c.Framework
	case "default_format":
		return &c.DefaultFormat
	case "findings_dir":
		return &c.FindingsDir
	case "context_file":
		return &c.ContextFile
	case "report_file":
		return &c.ReportFile
	case "snapshot_file":
		return &c.SnapshotFile
	}
	return nil
}

func (c *Config) get(key string) string {
	if p := c.field(key); p != nil {
		return *p
	}
	return ""
}

// Get returns the value of key.
func (c *Config) Get(key string) (string, error) {
	p := c.field(strings.ToLower(key))
	if p == nil {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return *p, nil
}

// Set assigns value to key. default_format is checked against the known
// report formats.
func (c *Config) Set(key, value string) error {
	key = strings.ToLower(key)
	p := c.field(key)
	if p == nil {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	if key == "default_format" {
		f, err := engine.ParseFormat(value)
		if err != nil {
			return err
		}
		value = string(f)
	}
	*p = value
	return nil
}

// Layout returns the audit directory layout rooted at root.
func (c *Config) Layout(root string) engine.AuditDir {
	return engine.AuditDir{
		Root:         root,
		FindingsDir:  c.FindingsDir,
		ContextFile:  c.ContextFile,
		ReportFile:   c.ReportFile,
		SnapshotFile: c.SnapshotFile,
	}
}

// Generator returns a report generator using the configured framework label.
func (c *Config) Generator() *engine.Generator {
	g := engine.NewGenerator()
	if c.Framework != "" {
		g.Framework = c.Framework
	}
	return g
}
