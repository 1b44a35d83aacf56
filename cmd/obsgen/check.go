package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"obsgen/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [patterns...]",
	Short: "Verify generated files are current without writing anything",
	Long: `Run the full pipeline in read-only mode. Reports validation
diagnostics, companions whose on-disk content is out of date, and orphaned
companions whose annotated type no longer exists. Intended for CI.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	addPipelineFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := gatherSettings(cmd, args)
	if err != nil {
		return err
	}
	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := s.driverOptions(driver.ModeCheck)
	var res *driver.Result
	if s.useTUI {
		res, err = runWithUI(cmd.Context(), "obsgen check", opts)
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
		for _, path := range res.Drifted {
			fmt.Fprintf(os.Stdout, "  out of date: %s\n", path)
		}
		if len(res.Drifted) > 0 {
			fmt.Fprintln(os.Stdout, "run `obsgen generate` to refresh")
		} else if !res.Bag.HasErrors() {
			fmt.Fprintf(os.Stdout, "%d unit(s) up to date\n", len(res.Units))
		}
	}
	printSuppressed(s, res)
	printTimings(s, res)

	if !res.Ok() {
		cleanup()
		os.Exit(1)
	}
	return nil
}
