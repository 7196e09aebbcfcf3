// Package loader discovers history exports for every enabled source,
// normalizes them and merges the result into one ordered dataset.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rustyeddy/portfolio/internal/id"
	"github.com/rustyeddy/portfolio/internal/trace"
	"github.com/rustyeddy/portfolio/journal"
	"github.com/rustyeddy/portfolio/metrics"
	"github.com/rustyeddy/portfolio/normalize"
	"github.com/rustyeddy/portfolio/source"
)

// Skip reasons, also used as metric labels.
const (
	SkipMissing  = "missing"
	SkipNotDir   = "not_dir"
	SkipRead     = "read"
	SkipEncoding = "encoding"
	SkipParse    = "parse"
	SkipEmpty    = "empty"
)

// Loader builds the unified dataset. It holds no state between loads.
type Loader struct {
	reg     *source.Registry
	metrics *metrics.Metrics
}

type Option func(*Loader)

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

func New(reg *source.Registry, opts ...Option) *Loader {
	l := &Loader{reg: reg}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FileResult is the outcome for one source path or file.
type FileResult struct {
	Source   string `json:"source"`
	Path     string `json:"path"`
	Records  int    `json:"records"`
	Degraded int    `json:"degraded,omitempty"`
	Skipped  string `json:"skipped,omitempty"`
	Err      string `json:"error,omitempty"`
}

// Report describes one load pass.
type Report struct {
	LoadID   string        `json:"load_id"`
	Files    []FileResult  `json:"files"`
	Records  int           `json:"records"`
	Duration time.Duration `json:"duration"`
}

// Load returns every record from every enabled source, sorted by event time
// with untimed records last. It never fails: unreadable inputs are logged and
// skipped, and an empty result is a non-nil empty slice.
func (l *Loader) Load(ctx context.Context) []journal.TradeRecord {
	out, _ := l.LoadWithReport(ctx)
	return out
}

func (l *Loader) LoadWithReport(ctx context.Context) ([]journal.TradeRecord, Report) {
	start := time.Now()
	rep := Report{LoadID: id.New(), Files: []FileResult{}}

	ctx, span := trace.StartSpan(ctx, "loader.Load")
	defer span.End()
	span.SetAttributes(attribute.String("load_id", rep.LoadID))

	out := []journal.TradeRecord{}
	if l.reg == nil {
		return out, rep
	}

	for _, src := range l.reg.Enabled() {
		label := src.Label()
		logger := log.With().Str("load_id", rep.LoadID).Str("source", label).Logger()

		info, err := os.Stat(src.Path)
		switch {
		case err != nil:
			logger.Warn().Str("path", src.Path).Msg("source path missing, skipping")
			l.skip(&rep, FileResult{Source: label, Path: src.Path, Skipped: SkipMissing})
			continue
		case !info.IsDir():
			logger.Warn().Str("path", src.Path).Msg("source path is not a directory, skipping")
			l.skip(&rep, FileResult{Source: label, Path: src.Path, Skipped: SkipNotDir})
			continue
		}

		files, err := ListFiles(src.Path, src.Glob())
		if err != nil {
			logger.Warn().Err(err).Str("path", src.Path).Msg("cannot list source directory")
			l.skip(&rep, FileResult{Source: label, Path: src.Path, Skipped: SkipRead, Err: err.Error()})
			continue
		}

		for _, path := range files {
			recs, res := l.loadFile(ctx, src, path)
			if res.Skipped != "" {
				logger.Warn().Str("file", path).Str("reason", res.Skipped).Str("error", res.Err).Msg("skipping history file")
				l.skip(&rep, res)
				continue
			}
			if res.Degraded > 0 {
				logger.Warn().Str("file", path).Int("cells", res.Degraded).Msg("coerced unparseable cells to defaults")
			}
			logger.Debug().Str("file", path).Int("records", res.Records).Msg("loaded history file")

			l.metrics.FileLoaded(res.Records)
			l.metrics.Degraded(res.Degraded)
			rep.Files = append(rep.Files, res)
			out = append(out, recs...)
		}
	}

	journal.SortByEventTime(out)

	rep.Records = len(out)
	rep.Duration = time.Since(start)
	l.metrics.ObserveLoad(rep.Duration)
	span.SetAttributes(attribute.Int("records", rep.Records))

	log.Debug().Str("load_id", rep.LoadID).Int("records", rep.Records).Dur("took", rep.Duration).Msg("portfolio loaded")
	return out, rep
}

func (l *Loader) loadFile(ctx context.Context, src source.Source, path string) ([]journal.TradeRecord, FileResult) {
	_, span := trace.StartSpan(ctx, "loader.File")
	defer span.End()
	span.SetAttributes(attribute.String("file", path))

	res := FileResult{Source: src.Label(), Path: path}

	t, err := ReadTable(path, src.Sep())
	if err != nil {
		res.Skipped = skipReason(err)
		res.Err = err.Error()
		span.RecordError(err)
		return nil, res
	}

	recs, st := normalize.NormalizeWithStats(t, filepath.Base(path), src.Label())
	res.Records = len(recs)
	res.Degraded = st.Degraded
	span.SetAttributes(attribute.Int("records", res.Records))
	return recs, res
}

func (l *Loader) skip(rep *Report, res FileResult) {
	l.metrics.FileSkipped(res.Skipped)
	rep.Files = append(rep.Files, res)
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrEmpty):
		return SkipEmpty
	case errors.Is(err, ErrEncoding):
		return SkipEncoding
	case errors.Is(err, ErrCorrupt):
		return SkipRead
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return SkipRead
	}
	return SkipParse
}

// ListFiles returns the regular files in dir matching pattern, or matching
// it once a trailing .xz is removed, sorted by name.
func ListFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := []string{}
	for _, e := range entries {
		name := e.Name()
		if !matches(pattern, name) {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		out = append(out, path)
	}
	slices.Sort(out)
	return out, nil
}

func matches(pattern, name string) bool {
	if ok, _ := filepath.Match(pattern, name); ok {
		return true
	}
	if stem, ok := strings.CutSuffix(name, ".xz"); ok {
		ok, _ := filepath.Match(pattern, stem)
		return ok
	}
	return false
}
