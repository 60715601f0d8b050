// Package detect scans a target codebase for technology signals and
// recommends which audit phases and specialized audits apply.
package detect

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/codeaudit/pkg/logging"
)

// Detection is the result of scanning one target.
type Detection struct {
	Platforms              []string `json:"platforms"`
	Frameworks             []string `json:"frameworks"`
	Cloud                  string   `json:"cloud"`
	Infrastructure         []string `json:"infrastructure"`
	APIType                []string `json:"api_type"`
	ComplianceIndicators   []string `json:"compliance_indicators"`
	AppType                string   `json:"app_type"`
	RecommendedPhases      []int    `json:"recommended_phases"`
	RecommendedSpecialized []string `json:"recommended_specialized"`
}

const (
	firstPhase = 0
	lastPhase  = 12
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{".git": true, "node_modules": true}

// Detect scans root with the built-in rules.
func Detect(root string) (*Detection, error) {
	rules, err := DefaultRules()
	if err != nil {
		return nil, err
	}
	return New(rules).Detect(root)
}

// Detector applies a rule profile to target directories.
type Detector struct {
	rules *Rules
}

// New returns a Detector using rules.
func New(rules *Rules) *Detector {
	return &Detector{rules: rules}
}

// Detect scans root. It fails only when root is missing; a plain file
// has no project files to match and yields the default detection.
func (d *Detector) Detect(root string) (*Detection, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("path does not exist: %s", root)
	}

	t, err := indexTree(root)
	if err != nil {
		return nil, err
	}
	logging.Debugf("indexed %d entries under %s", len(t.entries), root)

	platforms := newSet("web")
	frameworks := newSet()

	for _, m := range d.rules.Manifests {
		content, found := d.manifestContent(t, m)
		if !found {
			continue
		}
		for _, fw := range m.Frameworks {
			if fw.re.MatchString(content) {
				frameworks.add(fw.Name)
				if fw.Mobile {
					platforms.add("ios", "android")
				}
			}
		}
	}

	if t.detectIOS() {
		platforms.add("ios")
	}
	if t.detectAndroid() {
		platforms.add("android")
	}
	if t.detectFlutter() {
		platforms.add("ios", "android")
		frameworks.add("flutter")
	}

	det := &Detection{
		Platforms:            platforms.sorted(),
		Frameworks:           frameworks.sorted(),
		Cloud:                d.detectCloud(t),
		Infrastructure:       d.detectInfrastructure(t),
		APIType:              d.detectAPIType(t),
		ComplianceIndicators: d.detectCompliance(t),
	}
	det.AppType = d.appType(det.Platforms, det.Frameworks)
	det.RecommendedPhases, det.RecommendedSpecialized = recommend(det)
	return det, nil
}

func (d *Detector) manifestContent(t *tree, m Manifest) (string, bool) {
	var b strings.Builder
	found := false
	for _, name := range m.Files {
		if t.exists(name) {
			found = true
			b.WriteString(t.read(name))
		}
	}
	if m.Nested != "" {
		if matches := t.glob(m.Nested); len(matches) > 0 {
			found = true
			b.WriteString(t.read(matches[0]))
		}
	}
	return b.String(), found
}

func (d *Detector) detectCloud(t *tree) string {
	for _, tf := range limit(t.globExt(".tf"), d.rules.Limits.TerraformFiles) {
		content := t.read(tf)
		for _, rule := range d.rules.Cloud {
			for _, marker := range rule.Terraform {
				if strings.Contains(content, marker) {
					return rule.Provider
				}
			}
		}
	}

	if t.exists("serverless.yml") {
		content := t.read("serverless.yml")
		if strings.Contains(content, "provider:") {
			lower := strings.ToLower(content)
			for _, rule := range d.rules.Cloud {
				if strings.Contains(lower, rule.Keyword) {
					return rule.Provider
				}
			}
		}
	}

	if t.exists("app.yaml") {
		return "gcp"
	}
	if t.underDir(".aws") || len(t.globPrefix("aws-exports")) > 0 {
		return "aws"
	}
	return "unknown"
}

func (d *Detector) detectInfrastructure(t *tree) []string {
	infra := newSet()

	if t.exists("Dockerfile") || t.exists("docker-compose.yml") {
		infra.add("docker")
	}

	manifests := append(t.globExt(".yaml"), t.globExt(".yml")...)
	for _, f := range limit(manifests, d.rules.Limits.YAMLFiles) {
		content := t.read(f)
		if strings.Contains(content, "apiVersion:") &&
			(strings.Contains(content, "kind: Deployment") || strings.Contains(content, "kind: Service")) {
			infra.add("kubernetes")
			break
		}
	}

	if len(t.globExt(".tf")) > 0 {
		infra.add("terraform")
	}
	if t.exists("serverless.yml") || t.exists("serverless.ts") {
		infra.add("serverless")
	}

	template := t.read("template.yaml")
	if template == "" {
		template = t.read("template.yml")
	}
	if strings.Contains(template, "AWS::Serverless") {
		infra.add("aws-sam")
	}
	return infra.sorted()
}

func (d *Detector) detectAPIType(t *tree) []string {
	api := newSet("rest")

	if len(t.globExt(".graphql")) > 0 {
		api.add("graphql")
	} else {
	scan:
		for _, ext := range []string{".ts", ".js", ".py"} {
			for _, f := range limit(t.globExt(ext), d.rules.Limits.SourceFiles) {
				content := t.read(f)
				if strings.Contains(content, "type Query") || strings.Contains(strings.ToLower(content), "graphql") {
					api.add("graphql")
					break scan
				}
			}
		}
	}

	if len(t.globExt(".proto")) > 0 {
		api.add("grpc")
	}
	return api.sorted()
}

func (d *Detector) detectCompliance(t *tree) []string {
	var b strings.Builder
	for _, doc := range d.rules.Compliance.Documents {
		b.WriteString(strings.ToLower(t.read(doc)))
	}
	for _, folder := range d.rules.Compliance.Folders {
		for _, f := range t.children(folder, ".md") {
			b.WriteString(strings.ToLower(t.read(f)))
		}
	}
	content := b.String()

	found := newSet()
	for name, re := range d.rules.Compliance.compiled {
		if re.MatchString(content) {
			found.add(name)
		}
	}
	return found.sorted()
}

func (d *Detector) appType(platforms, frameworks []string) string {
	has := func(list []string, names ...string) bool {
		for _, n := range names {
			for _, v := range list {
				if v == n {
					return true
				}
			}
		}
		return false
	}

	switch {
	case has(platforms, "ios", "android"):
		if has(platforms, "web") {
			return "full-stack"
		}
		return "mobile"
	case has(frameworks, d.rules.AppTypes.Backend...):
		if has(frameworks, d.rules.AppTypes.Frontend...) {
			return "full-stack"
		}
		return "api"
	case has(frameworks, d.rules.AppTypes.Web...):
		return "web"
	default:
		return "unknown"
	}
}

// recommend returns every core phase plus the specialized audits the
// detection calls for.
func recommend(det *Detection) ([]int, []string) {
	phases := make([]int, 0, lastPhase-firstPhase+1)
	for p := firstPhase; p <= lastPhase; p++ {
		phases = append(phases, p)
	}

	specialized := []string{}
	contains := func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	}
	if contains(det.Platforms, "ios") || contains(det.Platforms, "android") {
		specialized = append(specialized, "mobile")
	}
	switch det.Cloud {
	case "aws", "gcp", "azure":
		specialized = append(specialized, det.Cloud)
	}
	if contains(det.Infrastructure, "kubernetes") {
		specialized = append(specialized, "kubernetes")
	}
	if contains(det.APIType, "graphql") {
		specialized = append(specialized, "graphql")
	}
	return phases, specialized
}

func limit(files []string, n int) []string {
	if n > 0 && len(files) > n {
		return files[:n]
	}
	return files
}

// tree is a flat index of a target directory. Paths are slash-separated
// and relative to root, in lexical walk order.
type tree struct {
	root    string
	entries []entry
}

type entry struct {
	rel   string
	isDir bool
}

func indexTree(root string) (*tree, error) {
	t := &tree{root: root}
	err := filepath.WalkDir(root, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			logging.Debugf("skipping %s: %v", p, err)
			if de != nil && de.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}
		if de.IsDir() && skipDirs[de.Name()] {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		t.entries = append(t.entries, entry{rel: filepath.ToSlash(rel), isDir: de.IsDir()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return t, nil
}

// read returns the file content, or "" when it cannot be read.
func (t *tree) read(rel string) string {
	data, err := os.ReadFile(filepath.Join(t.root, filepath.FromSlash(rel)))
	if err != nil {
		return ""
	}
	return string(data)
}

func (t *tree) exists(rel string) bool {
	_, err := os.Stat(filepath.Join(t.root, filepath.FromSlash(rel)))
	return err == nil
}

// glob returns files anywhere in the tree whose base name matches pattern.
func (t *tree) glob(pattern string) []string {
	var out []string
	for _, e := range t.entries {
		if e.isDir {
			continue
		}
		if ok, _ := path.Match(pattern, path.Base(e.rel)); ok {
			out = append(out, e.rel)
		}
	}
	return out
}

func (t *tree) globExt(ext string) []string {
	return t.glob("*" + ext)
}

func (t *tree) globPrefix(prefix string) []string {
	return t.glob(prefix + "*")
}

// topLevel returns root entries, files or directories, matching pattern.
func (t *tree) topLevel(pattern string) []string {
	var out []string
	for _, e := range t.entries {
		if strings.Contains(e.rel, "/") {
			continue
		}
		if ok, _ := path.Match(pattern, e.rel); ok {
			out = append(out, e.rel)
		}
	}
	return out
}

// children returns files directly inside dir with the given extension.
func (t *tree) children(dir, ext string) []string {
	var out []string
	prefix := dir + "/"
	for _, e := range t.entries {
		if e.isDir || !strings.HasPrefix(e.rel, prefix) {
			continue
		}
		rest := strings.TrimPrefix(e.rel, prefix)
		if !strings.Contains(rest, "/") && strings.HasSuffix(rest, ext) {
			out = append(out, e.rel)
		}
	}
	return out
}

// underDir reports whether a directory named name exists anywhere.
func (t *tree) underDir(name string) bool {
	for _, e := range t.entries {
		parts := strings.Split(e.rel, "/")
		if !e.isDir {
			parts = parts[:len(parts)-1]
		}
		for _, p := range parts {
			if p == name {
				return true
			}
		}
	}
	return false
}

func (t *tree) detectIOS() bool {
	return t.exists("Podfile") ||
		len(t.topLevel("*.xcodeproj")) > 0 ||
		len(t.topLevel("*.xcworkspace")) > 0 ||
		len(t.glob("Info.plist")) > 0
}

func (t *tree) detectAndroid() bool {
	if len(t.glob("AndroidManifest.xml")) > 0 {
		return true
	}
	for _, f := range t.glob("build.gradle*") {
		content := t.read(f)
		if strings.Contains(content, "com.android") || strings.Contains(content, "android {") {
			return true
		}
	}
	return false
}

func (t *tree) detectFlutter() bool {
	return strings.Contains(t.read("pubspec.yaml"), "flutter:")
}

// set is an insertion-agnostic string set with sorted output.
type set map[string]struct{}

func newSet(items ...string) set {
	s := set{}
	s.add(items...)
	return s
}

func (s set) add(items ...string) {
	for _, i := range items {
		s[i] = struct{}{}
	}
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
