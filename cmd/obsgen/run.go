package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"obsgen/internal/config"
	"obsgen/internal/diagfmt"
	"obsgen/internal/driver"
	"obsgen/internal/logging"
	"obsgen/internal/version"
)

// runSettings collects everything a pipeline command needs after flag and
// config resolution.
type runSettings struct {
	dir      string
	patterns []string
	format   string
	cfg      config.Config
	log      *zap.Logger

	noCache     bool
	withNotes   bool
	withFixes   bool
	fullPath    bool
	showTimings bool
	useTUI      bool
	quiet       bool
	jobs        int
}

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json|sarif)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("no-cache", false, "disable the fingerprint cache")
	cmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
}

func gatherSettings(cmd *cobra.Command, args []string) (*runSettings, error) {
	s := &runSettings{patterns: args}

	var err error
	if s.dir, err = cmd.Root().PersistentFlags().GetString("dir"); err != nil {
		return nil, err
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return nil, err
	}
	if err := applyColorMode(colorMode); err != nil {
		return nil, err
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	if s.showTimings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return nil, err
	}
	if s.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return nil, err
	}
	if s.jobs, err = cmd.Root().PersistentFlags().GetInt("jobs"); err != nil {
		return nil, err
	}
	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, err
	}

	if s.format, err = cmd.Flags().GetString("format"); err != nil {
		return nil, err
	}
	switch s.format {
	case "pretty", "json", "sarif":
	default:
		return nil, fmt.Errorf("unsupported format %q (must be pretty, json or sarif)", s.format)
	}
	if s.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return nil, err
	}
	if s.withFixes, err = cmd.Flags().GetBool("suggest"); err != nil {
		return nil, err
	}
	if s.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return nil, err
	}
	if s.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return nil, err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, err
	}
	if s.useTUI, err = resolveTUI(uiValue, s.format); err != nil {
		return nil, err
	}

	cfg, _, err := config.Find(s.dir)
	if err != nil {
		return nil, err
	}
	if maxDiags > 0 {
		cfg.Generator.MaxDiagnostics = maxDiags
	}
	s.cfg = cfg
	s.log = logging.New(verbose || cfg.Generator.Verbose)
	if s.quiet {
		s.log = logging.Nop()
	}
	return s, nil
}

func applyColorMode(mode string) error {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// resolveTUI decides whether the progress display runs. The TUI and pretty
// diagnostics share stdout, so json/sarif output always stays plain.
func resolveTUI(value, format string) (bool, error) {
	var want bool
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		want = isTerminal(os.Stdout)
	case "on":
		want = true
	case "off":
		want = false
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return want && format == "pretty", nil
}

func (s *runSettings) driverOptions(mode driver.Mode) driver.Options {
	return driver.Options{
		Dir:      s.dir,
		Patterns: s.patterns,
		Mode:     mode,
		Version:  version.Version,
		Config:   s.cfg,
		Logger:   s.log,
		NoCache:  s.noCache,
		Jobs:     s.jobs,
	}
}

func (s *runSettings) pathMode() diagfmt.PathMode {
	if s.fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}

// renderDiagnostics writes the bag to stdout in the selected format.
func renderDiagnostics(s *runSettings, res *driver.Result) error {
	switch s.format {
	case "json":
		return diagfmt.JSON(os.Stdout, res.Bag, res.Files, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode(),
			Max:              s.cfg.Generator.MaxDiagnostics,
			IncludeNotes:     s.withNotes,
			IncludeFixes:     s.withFixes,
		})
	case "sarif":
		return diagfmt.Sarif(os.Stdout, res.Bag, res.Files, diagfmt.SarifRunMeta{
			ToolName:    "obsgen",
			ToolVersion: version.Version,
		})
	default:
		diagfmt.Pretty(os.Stdout, res.Bag, res.Files, diagfmt.PrettyOpts{
			Color:       !color.NoColor,
			PathMode:    s.pathMode(),
			ShowNotes:   s.withNotes,
			ShowFixes:   s.withFixes,
			ShowExcerpt: true,
		})
		return nil
	}
}

func printTimings(s *runSettings, res *driver.Result) {
	if !s.showTimings {
		return
	}
	fmt.Fprintln(os.Stderr, "timings:")
	for _, p := range res.Timings.Phases {
		fmt.Fprintf(os.Stderr, "  %-16s %8.2f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(os.Stderr, "  %-16s %8.2f ms\n", "total", res.Timings.TotalMS)
}

func printSuppressed(s *runSettings, res *driver.Result) {
	if s.quiet {
		return
	}
	if res.Suppressed > 0 {
		fmt.Fprintf(os.Stderr, "%d diagnostic(s) suppressed by obsgen.toml\n", res.Suppressed)
	}
}
