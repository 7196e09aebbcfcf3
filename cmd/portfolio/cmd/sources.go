package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/report"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured sources and what loading them does",
	Long: `List every configured source, then load them once and report each
file: how many rows it gave, how many cells were degraded, or why it was
skipped.

Examples:
  portfolio sources
  portfolio sources --metrics`,
	Args: cobra.NoArgs,
	RunE: runSources,
}

var sourcesMetrics bool

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.Flags().BoolVar(&sourcesMetrics, "metrics", false, "also print loader and cache counters")
}

func runSources(cmd *cobra.Command, args []string) error {
	rep := engine.LoadReport(cmd.Context())
	out := cmd.OutOrStdout()
	if ok, err := printJSON(out, rep); ok {
		return err
	}

	report.PrintSources(out, engine.Sources(), &rep)
	report.PrintCacheStats(out, engine.CacheStats())
	if sourcesMetrics {
		fmt.Fprintln(out)
		return printMetrics(out, registry)
	}
	return nil
}

// printMetrics writes one "name{labels} value" line per sample.
func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s_count %d", name, h.GetSampleCount()))
				lines = append(lines, fmt.Sprintf("%s_sum %g", name, h.GetSampleSum()))
			case m.GetGauge() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetGauge().GetValue()))
			}
		}
	}
	slices.Sort(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}
