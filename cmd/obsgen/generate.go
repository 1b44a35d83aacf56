package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"obsgen/internal/driver"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] [patterns...]",
	Short: "Generate observable wiring for annotated types",
	Long: `Scan the packages matched by the patterns (default from obsgen.toml,
falling back to ./...), validate every annotated type, and write the
*_obsgen.go companion files. Stale companions whose annotated type is gone
are removed.`,
	Args: cobra.ArbitraryArgs,
	RunE: runGenerate,
}

func init() {
	addPipelineFlags(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := gatherSettings(cmd, args)
	if err != nil {
		return err
	}
	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := s.driverOptions(driver.ModeGenerate)
	var res *driver.Result
	if s.useTUI {
		res, err = runWithUI(cmd.Context(), "obsgen generate", opts)
	} else {
		res, err = driver.Run(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	if err := renderDiagnostics(s, res); err != nil {
		return err
	}
	if s.format == "pretty" && !s.quiet {
		printGenerateSummary(res)
	}
	printSuppressed(s, res)
	printTimings(s, res)

	if !res.Ok() {
		cleanup()
		os.Exit(1)
	}
	return nil
}

func printGenerateSummary(res *driver.Result) {
	for _, path := range res.Written {
		fmt.Fprintf(os.Stdout, "  wrote %s\n", path)
	}
	for _, path := range res.Stale {
		fmt.Fprintf(os.Stdout, "  removed %s\n", path)
	}
	if res.Bag.HasErrors() {
		fmt.Fprintln(os.Stdout, "types with errors were skipped: fix the findings above and rerun")
	}
	fmt.Fprintf(os.Stdout, "%d unit(s): %d written, %d up to date\n",
		len(res.Units), len(res.Written), len(res.Units)-len(res.Written))
}
