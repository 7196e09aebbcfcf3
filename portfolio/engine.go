// Package portfolio is the read-only query surface over the engine: it owns
// the source registry, the loader and the cache, and memoizes every query
// until the entry goes stale or the cache is cleared.
package portfolio

import (
	"context"
	"fmt"
	"sync"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/cache"
	"github.com/rustyeddy/portfolio/internal/trace"
	"github.com/rustyeddy/portfolio/journal"
	"github.com/rustyeddy/portfolio/loader"
	"github.com/rustyeddy/portfolio/metrics"
	"github.com/rustyeddy/portfolio/source"
)

// query carries the arguments of a cached call. Only exported fields take
// part in the cache key.
type query struct {
	ctx      context.Context
	Filter   analytics.Filter  `json:"filter"`
	By       analytics.GroupBy `json:"by,omitempty"`
	Key      string            `json:"key,omitempty"`
	Baseline bool              `json:"baseline,omitempty"`
}

type detailResult struct {
	detail analytics.GroupDetail
	err    error
}

// Engine answers portfolio queries. Returned slices are shared with the
// cache and must not be modified.
type Engine struct {
	mu      sync.RWMutex
	reg     *source.Registry
	ldr     *loader.Loader
	cache   *cache.Cache
	metrics *metrics.Metrics

	load           func(query) []journal.TradeRecord
	strategyData   func(query) []journal.TradeRecord
	instrumentData func(query) []journal.TradeRecord
	summary        func(query) analytics.Summary
	breakdown      func(query) []analytics.GroupStats
	equity         func(query) []analytics.EquityPoint
	risk           func(query) []analytics.RiskInsight
	detail         func(query) detailResult
}

type Option func(*Engine)

// WithMetrics records loader metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New builds an engine over reg. A nil cache gets a default one.
func New(reg *source.Registry, c *cache.Cache, opts ...Option) *Engine {
	if reg == nil {
		reg = source.NewRegistry()
	}
	if c == nil {
		c = cache.New()
	}

	e := &Engine{reg: reg, cache: c}
	for _, opt := range opts {
		opt(e)
	}
	e.ldr = loader.New(reg, loader.WithMetrics(e.metrics))

	e.load = cache.Cached1(c, "load_portfolio", func(q query) []journal.TradeRecord {
		return e.loader().Load(q.ctx)
	})
	e.strategyData = cache.Cached1(c, "strategy_data", func(q query) []journal.TradeRecord {
		return analytics.Filter{Strategy: q.Key}.Apply(e.LoadPortfolio(q.ctx))
	})
	e.instrumentData = cache.Cached1(c, "instrument_data", func(q query) []journal.TradeRecord {
		return analytics.Filter{Instrument: q.Key}.Apply(e.LoadPortfolio(q.ctx))
	})
	e.summary = cache.Cached1(c, "portfolio_summary", func(q query) analytics.Summary {
		return analytics.Summarize(e.dataset(q))
	})
	e.breakdown = cache.Cached1(c, "breakdown", func(q query) []analytics.GroupStats {
		return analytics.Breakdown(e.dataset(q), q.By)
	})
	e.equity = cache.Cached1(c, "equity_curve", func(q query) []analytics.EquityPoint {
		recs := e.dataset(q)
		if !q.Baseline {
			return analytics.EquityCurve(recs)
		}
		base := analytics.StartingEquity(e.LoadPortfolio(q.ctx), q.Filter.Window.Start)
		return analytics.EquityCurveFrom(recs, base)
	})
	e.risk = cache.Cached1(c, "risk_insights", func(q query) []analytics.RiskInsight {
		return analytics.RiskInsights(e.dataset(q), q.By)
	})
	e.detail = cache.Cached1(c, "detail", func(q query) detailResult {
		d, err := analytics.Detail(e.dataset(q), q.By, q.Key)
		return detailResult{detail: d, err: err}
	})
	return e
}

// LoadPortfolio returns the canonical dataset, loading it on a cache miss.
func (e *Engine) LoadPortfolio(ctx context.Context) []journal.TradeRecord {
	ctx, span := trace.StartSpan(ctx, "portfolio.LoadPortfolio")
	defer span.End()
	return e.load(query{ctx: ctx})
}

// Dataset is the canonical dataset narrowed by f.
func (e *Engine) Dataset(ctx context.Context, f analytics.Filter) []journal.TradeRecord {
	return e.dataset(query{ctx: ctx, Filter: f})
}

// StrategyData returns the records of one strategy.
func (e *Engine) StrategyData(ctx context.Context, name string) ([]journal.TradeRecord, error) {
	recs := e.strategyData(query{ctx: ctx, Key: name})
	if len(recs) == 0 {
		return nil, fmt.Errorf("strategy %q: %w", name, analytics.ErrNotFound)
	}
	return recs, nil
}

// InstrumentData returns the records of one instrument.
func (e *Engine) InstrumentData(ctx context.Context, symbol string) ([]journal.TradeRecord, error) {
	recs := e.instrumentData(query{ctx: ctx, Key: symbol})
	if len(recs) == 0 {
		return nil, fmt.Errorf("instrument %q: %w", symbol, analytics.ErrNotFound)
	}
	return recs, nil
}

func (e *Engine) Summary(ctx context.Context, f analytics.Filter) analytics.Summary {
	return e.summary(query{ctx: ctx, Filter: f})
}

func (e *Engine) Breakdown(ctx context.Context, f analytics.Filter, by analytics.GroupBy) []analytics.GroupStats {
	return e.breakdown(query{ctx: ctx, Filter: f, By: by})
}

// EquityCurve is the running profit of the filtered trades. With baseline
// set the curve starts from the account equity at the window start.
func (e *Engine) EquityCurve(ctx context.Context, f analytics.Filter, baseline bool) []analytics.EquityPoint {
	return e.equity(query{ctx: ctx, Filter: f, Baseline: baseline})
}

func (e *Engine) RiskInsights(ctx context.Context, f analytics.Filter, by analytics.GroupBy) []analytics.RiskInsight {
	return e.risk(query{ctx: ctx, Filter: f, By: by})
}

// Detail profiles one key; unknown keys are analytics.ErrNotFound.
func (e *Engine) Detail(ctx context.Context, f analytics.Filter, by analytics.GroupBy, key string) (analytics.GroupDetail, error) {
	r := e.detail(query{ctx: ctx, Filter: f, By: by, Key: key})
	return r.detail, r.err
}

// Duplicates reports identity collisions in the dataset.
func (e *Engine) Duplicates(ctx context.Context) []analytics.Duplicate {
	return analytics.Duplicates(e.LoadPortfolio(ctx))
}

// LoadReport runs an uncached load and reports what happened to every
// source and file.
func (e *Engine) LoadReport(ctx context.Context) loader.Report {
	_, rep := e.loader().LoadWithReport(ctx)
	return rep
}

func (e *Engine) Sources() []source.Source {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reg.All()
}

// ClearCache drops every memoized result; the next query reloads the files.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// Reload switches to a new source registry and clears the cache so no
// result computed from the old sources is served.
func (e *Engine) Reload(reg *source.Registry) {
	if reg == nil {
		reg = source.NewRegistry()
	}
	e.mu.Lock()
	e.reg = reg
	e.ldr = loader.New(reg, loader.WithMetrics(e.metrics))
	e.mu.Unlock()

	e.cache.Clear()
}

func (e *Engine) loader() *loader.Loader {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ldr
}

func (e *Engine) dataset(q query) []journal.TradeRecord {
	all := e.LoadPortfolio(q.ctx)
	if q.Filter.IsZero() {
		return all
	}
	return q.Filter.Apply(all)
}
