// Package config — .mofmt.yaml configuration file support.
//
// When a .mofmt.yaml file exists in the project root, mofmt uses it as
// the source of truth for batch compilation targets. Without one, a
// single default target is synthesized from the conventional po/
// directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// MofmtFile is the top-level .mofmt.yaml structure.
type MofmtFile struct {
	// Languages is the default language list for all targets (can be
	// overridden per target).
	Languages []string `yaml:"languages,omitempty"`
	// Targets is the list of compilation targets.
	Targets []Target `yaml:"targets"`
}

// Target describes one set of PO catalogs compiled together into a
// directory of MO files.
type Target struct {
	// Name is a human-readable label shown in build logs.
	Name string `yaml:"name"`
	// Domain is the gettext domain (output file base name). Defaults to
	// Name.
	Domain string `yaml:"domain,omitempty"`
	// Root is the working directory relative to .mofmt.yaml (default ".").
	Root string `yaml:"root,omitempty"`
	// PODir is the PO directory relative to Root (default "po").
	PODir string `yaml:"po_dir,omitempty"`
	// OutDir is the output directory relative to Root (default "locale").
	OutDir string `yaml:"out_dir,omitempty"`
	// Layout selects the output path scheme: "nested" writes
	// out/<lang>/LC_MESSAGES/<domain>.mo, "flat" writes out/<lang>.mo.
	Layout string `yaml:"layout,omitempty"`
	// UseFuzzy includes fuzzy entries instead of skipping them.
	UseFuzzy bool `yaml:"use_fuzzy,omitempty"`
	// Languages overrides the global language list for this target.
	Languages []string `yaml:"languages,omitempty"`
}

// LayoutNested is the gettext runtime directory scheme (default).
const LayoutNested = "nested"

// LayoutFlat puts one <lang>.mo per language directly in the output dir.
const LayoutFlat = "flat"

// FileName is the default config file name.
const FileName = ".mofmt.yaml"

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load loads and validates .mofmt.yaml from the given directory. Returns
// nil if no .mofmt.yaml exists.
func Load(rootDir string) (*MofmtFile, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var mf MofmtFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i := range mf.Targets {
		t := &mf.Targets[i]

		if t.Name == "" {
			return nil, fmt.Errorf("%s: target #%d has no name", path, i+1)
		}
		if t.Domain == "" {
			t.Domain = t.Name
		}
		if t.Root == "" {
			t.Root = "."
		}
		if t.PODir == "" {
			t.PODir = "po"
		}
		if t.OutDir == "" {
			t.OutDir = "locale"
		}
		switch t.Layout {
		case "":
			t.Layout = LayoutNested
		case LayoutNested, LayoutFlat:
		default:
			return nil, fmt.Errorf("%s: target %q has unknown layout %q (valid: nested, flat)", path, t.Name, t.Layout)
		}
		if len(t.Languages) == 0 {
			t.Languages = mf.Languages
		}
	}

	return &mf, nil
}

// ---------------------------------------------------------------------------
// Resolving targets
// ---------------------------------------------------------------------------

// ResolvedTarget holds a fully resolved target with absolute paths.
type ResolvedTarget struct {
	Target    Target
	AbsRoot   string
	Languages []string
}

// Resolve converts a MofmtFile into a list of ResolvedTargets with
// absolute paths, auto-detecting languages from existing PO files when
// none are declared.
func (mf *MofmtFile) Resolve(projectRoot string) ([]ResolvedTarget, error) {
	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, err
	}

	var resolved []ResolvedTarget
	for _, t := range mf.Targets {
		absRoot := filepath.Join(absProjectRoot, t.Root)

		langs := t.Languages
		if len(langs) == 0 {
			langs = DetectLanguages(filepath.Join(absRoot, t.PODir))
		}

		resolved = append(resolved, ResolvedTarget{
			Target:    t,
			AbsRoot:   absRoot,
			Languages: langs,
		})
	}

	return resolved, nil
}

// Detect synthesizes a single default target for a project without a
// .mofmt.yaml: the conventional po/ directory compiled into locale/.
// Returns nil when no PO files are found.
func Detect(rootDir string) *ResolvedTarget {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil
	}
	poDir := filepath.Join(absRoot, "po")
	langs := DetectLanguages(poDir)
	if len(langs) == 0 {
		return nil
	}
	return &ResolvedTarget{
		Target: Target{
			Name:   filepath.Base(absRoot),
			Domain: filepath.Base(absRoot),
			Root:   ".",
			PODir:  "po",
			OutDir: "locale",
			Layout: LayoutNested,
		},
		AbsRoot:   absRoot,
		Languages: langs,
	}
}

// DetectLanguages lists language codes from the .po files in a directory.
func DetectLanguages(poDir string) []string {
	entries, err := os.ReadDir(poDir)
	if err != nil {
		return nil
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".po") {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, ".po"))
	}
	sort.Strings(langs)
	return langs
}

// POPath returns the .po file path for a language.
func (rt *ResolvedTarget) POPath(lang string) string {
	return filepath.Join(rt.AbsRoot, rt.Target.PODir, lang+".po")
}

// MOPath returns the output .mo file path for a language, following the
// target's layout.
func (rt *ResolvedTarget) MOPath(lang string) string {
	out := filepath.Join(rt.AbsRoot, rt.Target.OutDir)
	if rt.Target.Layout == LayoutFlat {
		return filepath.Join(out, lang+".mo")
	}
	return filepath.Join(out, lang, "LC_MESSAGES", rt.Target.Domain+".mo")
}
