package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"obsgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "obsgen",
	Short: "Observable viewmodel generator for Go",
	Long: `obsgen scans Go packages for //obsgen: directives and generates the
notification, command and messenger wiring observable viewmodels need`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "run as if started in this directory")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers for package scanning (0=auto)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "cap collected diagnostics (0=config default)")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-phase timing information")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
