// mofmt — gettext catalog compiler: converts textual PO translation
// catalogs into binary MO catalogs loaded by gettext runtimes.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minios-linux/mofmt/config"
	"github.com/minios-linux/mofmt/i18n"
	"github.com/minios-linux/mofmt/langmeta"
	"github.com/minios-linux/mofmt/mofile"
	"github.com/minios-linux/mofmt/pofile"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mofmt",
		Short: "Compile gettext PO catalogs into binary MO catalogs",
		Long: `mofmt — gettext catalog compiler.

Converts textual PO translation catalogs, as edited by translators, into
the binary MO format loaded at runtime by gettext implementations.

Commands:
  compile     Compile one or more PO files into MO files
  build       Compile a whole project (.mofmt.yaml or auto-detected po/)
  inspect     Decode an MO file and show its contents
  version     Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newCompileCmd(),
		newBuildCmd(),
		newInspectCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mofmt version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// compile (PO file -> MO file, msgfmt semantics)
// ---------------------------------------------------------------------------

func newCompileCmd() *cobra.Command {
	var (
		outFile  string
		useFuzzy bool
	)

	cmd := &cobra.Command{
		Use:   "compile FILE...",
		Short: "Compile one or more PO files into MO files",
		Long: `Compile PO files into binary MO catalogs.

Each FILE is a PO catalog; a missing .po extension is appended. The
output is written next to the input as FILE.mo unless --output-file is
given. Fuzzy (unreviewed) entries are skipped unless --use-fuzzy is set.

Any syntax error in the input aborts the compilation of that file; no
partial catalog is ever written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%s", i18n.T("No input file given"))
			}

			failed := 0
			for _, arg := range args {
				inPath := inputPath(arg)
				out := outFile
				if out == "" {
					out = defaultOutputPath(inPath)
				}
				stats, err := compileFile(inPath, out, useFuzzy)
				if err != nil {
					logError("%v", err)
					failed++
					continue
				}
				logSuccess("%s: %s (%s)", out, statEntries(stats.entries), statFuzzy(stats.fuzzySkipped))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output-file", "o", "", "Output .mo file (default: input with .mo extension)")
	cmd.Flags().BoolVarP(&useFuzzy, "use-fuzzy", "f", false, "Include fuzzy (unreviewed) entries in the output")

	return cmd
}

// compileStats summarizes one successful compilation.
type compileStats struct {
	entries      int
	fuzzySkipped int
}

func statEntries(n int) string {
	return fmt.Sprintf("%d %s", n, i18n.N("entry written", "entries written", n))
}

func statFuzzy(n int) string {
	return fmt.Sprintf("%d %s", n, i18n.N("fuzzy entry skipped", "fuzzy entries skipped", n))
}

// inputPath appends the .po extension when the argument lacks one.
func inputPath(arg string) string {
	if strings.HasSuffix(arg, ".po") {
		return arg
	}
	return arg + ".po"
}

// defaultOutputPath derives the .mo output path from a .po input path.
func defaultOutputPath(inPath string) string {
	return strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".mo"
}

// compileFile reads, parses and encodes one catalog. All file I/O and
// fuzzy filtering happen here, at the process boundary; the parser and
// encoder stay pure.
func compileFile(inPath, outPath string, useFuzzy bool) (compileStats, error) {
	src, err := os.ReadFile(inPath)
	if err != nil {
		return compileStats{}, err
	}

	catalog, err := pofile.Parse(src, inPath)
	if err != nil {
		return compileStats{}, err
	}

	stats := compileStats{}
	if !useFuzzy {
		stats.fuzzySkipped = catalog.RemoveFuzzy()
	}
	stats.entries = catalog.Len()

	buf := mofile.Encode(catalog)
	if err := os.WriteFile(outPath, buf, 0644); err != nil {
		return compileStats{}, err
	}
	return stats, nil
}

// ---------------------------------------------------------------------------
// build (compile a whole project)
// ---------------------------------------------------------------------------

func newBuildCmd() *cobra.Command {
	var useFuzzy bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile a whole project",
		Long: `Compile every PO catalog of the project into its MO output path.

Targets come from .mofmt.yaml in the project root when present;
otherwise a single target is auto-detected from the conventional po/
directory, compiled into locale/<lang>/LC_MESSAGES/<name>.mo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := resolveTargets(rootDir)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				return fmt.Errorf("no PO files found under %s (create po/ or a %s file)", rootDir, config.FileName)
			}

			compiled, failed := 0, 0
			for _, rt := range targets {
				if len(rt.Languages) == 0 {
					logWarning("%s: no languages found in %s", rt.Target.Name, rt.Target.PODir)
					continue
				}
				logInfo("Target %s: %s", rt.Target.Name, strings.Join(rt.Languages, ", "))

				for _, lang := range rt.Languages {
					outPath := rt.MOPath(lang)
					if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
						logError("%s: %v", lang, err)
						failed++
						continue
					}
					stats, err := compileFile(rt.POPath(lang), outPath, useFuzzy || rt.Target.UseFuzzy)
					if err != nil {
						logError("%s: %v", lang, err)
						failed++
						continue
					}
					logSuccess("  %s (%s): %s", lang, langmeta.Resolve(lang).Name, statEntries(stats.entries))
					compiled++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d catalog(s) failed to compile", failed)
			}
			logSuccess("%s: %d", i18n.T("Compiled"), compiled)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&useFuzzy, "use-fuzzy", "f", false, "Include fuzzy entries in all targets")

	return cmd
}

// resolveTargets loads .mofmt.yaml targets, falling back to po/
// auto-detection.
func resolveTargets(root string) ([]config.ResolvedTarget, error) {
	mf, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if mf != nil {
		return mf.Resolve(root)
	}
	if rt := config.Detect(root); rt != nil {
		return []config.ResolvedTarget{*rt}, nil
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// inspect (decode an MO file)
// ---------------------------------------------------------------------------

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect FILE.mo",
		Short: "Decode an MO file and show its contents",
		Long: `Decode a binary MO catalog and print its header metadata and
entries. Useful for verifying compiled output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			f, err := mofile.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			order := "little-endian"
			if f.BigEndian {
				order = "big-endian"
			}
			fmt.Printf("%s: %d entries, %s\n", args[0], len(f.Entries), order)

			for _, field := range []string{"Project-Id-Version", "Language", "Content-Type", "Plural-Forms"} {
				if v := f.HeaderField(field); v != "" {
					fmt.Printf("  %s: %s\n", field, v)
				}
			}
			if lang := f.HeaderField("Language"); lang != "" {
				fmt.Printf("  Language name: %s\n", langmeta.Resolve(lang).Name)
			}

			fmt.Println()
			for _, e := range f.Entries {
				if e.ID == "" && !e.HasCtx {
					continue // header already shown
				}
				key := pofile.Quote(e.ID)
				if e.HasCtx {
					key = "[" + pofile.Quote(e.Ctx) + "] " + key
				}
				if e.Plural {
					key += " / " + pofile.Quote(e.PluralID)
				}
				if len(e.Strs) > 1 {
					fmt.Println(key)
					for i, s := range e.Strs {
						fmt.Printf("  [%d] %s\n", i, pofile.Quote(s))
					}
				} else {
					fmt.Printf("%s -> %s\n", key, pofile.Quote(e.Strs[0]))
				}
			}
			return nil
		},
	}

	return cmd
}
