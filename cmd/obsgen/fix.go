package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"obsgen/internal/driver"
	"obsgen/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [patterns...]",
	Short: "Apply suggested fixes from validation diagnostics",
	Long: `Run the pipeline in read-only mode, collect the fixes attached to
its diagnostics, and apply them according to the chosen strategy.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFix,
}

func init() {
	addPipelineFlags(fixCmd)
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "show what would change without writing")
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	s, err := gatherSettings(cmd, args)
	if err != nil {
		return err
	}
	s.useTUI = false

	res, err := driver.Run(cmd.Context(), s.driverOptions(driver.ModeCheck))
	if err != nil {
		return err
	}

	res.Bag.Sort()
	applied, applyErr := fix.Apply(res.Files, res.Bag.Items(), fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	return reportApplyResult(applied, applyErr, dryRun)
}

func reportApplyResult(res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(os.Stdout, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(os.Stdout, "  %s [%s] — %s (%d edit(s))\n",
				item.Title, item.ID, item.Path, item.EditCount)
		}
	}

	for _, skip := range res.Skipped {
		id := skip.ID
		if id == "" {
			id = "(unnamed)"
		}
		if skip.Title != "" {
			fmt.Fprintf(os.Stdout, "skipped %s [%s]: %s\n", skip.Title, id, skip.Reason)
		} else {
			fmt.Fprintf(os.Stdout, "skipped [%s]: %s\n", id, skip.Reason)
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}
