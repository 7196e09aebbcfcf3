package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/cache"
	"github.com/rustyeddy/portfolio/config"
	"github.com/rustyeddy/portfolio/internal/logger"
	"github.com/rustyeddy/portfolio/internal/trace"
	"github.com/rustyeddy/portfolio/metrics"
	"github.com/rustyeddy/portfolio/portfolio"
)

// defaultConfig is picked up from the working directory when --config is
// not given.
const defaultConfig = "portfolio.yaml"

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Trading history analytics for MetaTrader account exports",
	Long: `Portfolio reads the *_History.csv exports of one or more trading accounts
and answers questions about them.

It provides tools for:
  - Portfolio summaries, breakdowns by strategy, symbol or account
  - Equity curves with drawdown and recovery factor
  - Loss streak risk profiles
  - CSV and SQLite exports of the normalized trade history
  - Org-mode reports

Sources, cache limits and logging are configured in portfolio.yaml.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return trace.Shutdown(cmd.Context())
	},
}

var (
	cfgFile    string
	envFile    string
	logLevel   string
	tracing    bool
	jsonOut    bool
	fromDate   string
	toDate     string
	strategy   string
	instrument string
	account    string
)

// Set up by setup before any analytics command runs.
var (
	cfg      *config.Config
	registry *prometheus.Registry
	engine   *portfolio.Engine
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./"+defaultConfig+" when present)")
	pf.StringVar(&envFile, "env", ".env", "dotenv file with PORTFOLIO_* overrides")
	pf.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.BoolVar(&tracing, "trace", false, "print OpenTelemetry spans to stderr")
	pf.BoolVar(&jsonOut, "json", false, "print results as JSON")
	pf.StringVar(&fromDate, "from", "", "first day to include (YYYY-MM-DD)")
	pf.StringVar(&toDate, "to", "", "last day to include (YYYY-MM-DD)")
	pf.StringVar(&strategy, "strategy", "", "only records of this strategy")
	pf.StringVar(&instrument, "instrument", "", "only records of this instrument")
	pf.StringVar(&account, "account", "", "only records of this account")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if err := c.ApplyEnv(envFile); err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		c.Log.Level = logLevel
	}
	if cmd.Flags().Changed("trace") {
		c.Tracing.Enabled = tracing
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c

	logger.Init(cfg.Log.Level, nil)
	if err := trace.Init(cmd.Context(), cfg.Tracing.Enabled, os.Stderr); err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	registry = prometheus.NewRegistry()
	m := metrics.New(registry)
	opts := append(cfg.Cache.Options(), cache.WithMetrics(m))
	engine = portfolio.New(cfg.Registry(), cache.New(opts...), portfolio.WithMetrics(m))

	log.Debug().
		Int("sources", len(cfg.Sources)).
		Int("cache_ttl", cfg.Cache.TTLSeconds).
		Int("cache_max", cfg.Cache.MaxSize).
		Msg("engine ready")
	return nil
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfig); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		path = defaultConfig
	}
	return config.LoadFromFile(path)
}

// filter builds the dataset filter from the persistent flags.
func filter() (analytics.Filter, error) {
	from, err := parseDay(fromDate)
	if err != nil {
		return analytics.Filter{}, fmt.Errorf("--from: %w", err)
	}
	to, err := parseDay(toDate)
	if err != nil {
		return analytics.Filter{}, fmt.Errorf("--to: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return analytics.Filter{}, fmt.Errorf("--to %s is before --from %s", toDate, fromDate)
	}
	return analytics.Filter{
		Window:     analytics.DayWindow(from, to),
		Strategy:   strategy,
		Instrument: instrument,
		Account:    account,
	}, nil
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// printJSON writes v indented when --json is set and reports whether it did.
func printJSON(w io.Writer, v any) (bool, error) {
	if !jsonOut {
		return false, nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}
