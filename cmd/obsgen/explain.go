package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"obsgen/internal/diag"
	"obsgen/internal/rules"
)

var explainCmd = &cobra.Command{
	Use:   "explain [code]",
	Short: "Describe a diagnostic code, or list all of them",
	Long: `With an argument such as VAL3004, print the code's description and
the validation rules that can raise it. Without arguments, list every
registered code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

var (
	codeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	ruleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	labelStyle = lipgloss.NewStyle().Faint(true)
)

func runExplain(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		listCodes(os.Stdout)
		return nil
	}

	code := diag.ParseCodeID(args[0])
	if code == diag.UnknownCode {
		return fmt.Errorf("unknown diagnostic code %q (run `obsgen explain` for the full list)", args[0])
	}

	fmt.Fprintf(os.Stdout, "%s %s\n", codeStyle.Render(code.ID()), code.Title())
	var names []string
	for _, rule := range rules.Registry() {
		if rule.Code == code {
			names = append(names, rule.Name)
		}
	}
	if len(names) > 0 {
		fmt.Fprintln(os.Stdout, labelStyle.Render("raised by:"))
		for _, name := range names {
			fmt.Fprintf(os.Stdout, "  %s\n", ruleStyle.Render(name))
		}
	}
	return nil
}

func listCodes(out io.Writer) {
	codes := diag.AllCodes()
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, c := range codes {
		fmt.Fprintf(out, "%s %s\n", codeStyle.Render(fmt.Sprintf("%-9s", c.ID())), c.Title())
	}
}
