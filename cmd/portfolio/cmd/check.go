package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Look for duplicate records and unreadable files",
	Long: `Load every source and report records that share an account, event time
and profit (usually the same trade in two overlapping exports) along with
any skipped file. Nothing is removed.

Examples:
  portfolio check
  portfolio check --strict`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

var checkStrict bool

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "exit non-zero when anything is found")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dups := engine.Duplicates(ctx)
	rep := engine.LoadReport(ctx)

	skipped := 0
	for _, f := range rep.Files {
		if f.Skipped != "" {
			skipped++
		}
	}

	out := cmd.OutOrStdout()
	report.PrintDuplicates(out, dups)
	if skipped > 0 {
		report.PrintSources(out, engine.Sources(), &rep)
	}

	if checkStrict && (len(dups) > 0 || skipped > 0) {
		return fmt.Errorf("check failed: %d duplicate groups, %d skipped inputs", len(dups), skipped)
	}
	return nil
}
