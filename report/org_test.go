package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/journal"
)

func TestWriteOrg(t *testing.T) {
	t.Parallel()

	recs := records()
	p := Portfolio{
		Title:    "Live",
		Created:  time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		LoadID:   "01HZX3",
		Window:   analytics.DayWindow(day0, day0),
		Summary:  analytics.Summarize(recs),
		Curve:    analytics.EquityCurve(recs),
		Strategy: analytics.Breakdown(recs, analytics.GroupByStrategy),
		Symbols:  analytics.Breakdown(recs, analytics.GroupByInstrument),
		Risk:     analytics.RiskInsights(recs, analytics.GroupByStrategy),
		Recent:   analytics.RecentTrades(recs, 1),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrg(&buf, p))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "* REPORT: Live\n:PROPERTIES:\n"))
	assert.Contains(t, out, ":LOAD_ID:     01HZX3\n")
	assert.Contains(t, out, ":START_DATE:  2024-01-01\n")
	assert.Contains(t, out, ":END_DATE:    2024-01-02\n")
	assert.Contains(t, out, ":TRADES:      3\n")
	assert.Contains(t, out, ":WIN_RATE:    66.67\n")
	assert.Contains(t, out, ":NET_PL:      9.00\n")
	assert.Contains(t, out, ":MAX_DD:      -4.00\n")
	assert.Contains(t, out, ":CREATED:     [2024-01-02 Tue 10:00]\n")
	assert.Contains(t, out, "| A | 2 | 6.00 | 50.00 | -4.00 | 1.50 |\n")
	assert.Contains(t, out, "| GBPUSD | 1 | 3.00 | 100.00 | 0.00 | 0.00 |\n")
	assert.Contains(t, out, "| A | 1 | 1 | -4.00 | -4.00 |\n")
	assert.Contains(t, out, "* Recent trades\n** B: GBPUSD BUY\n")
	assert.NotContains(t, out, "** Duplicates")
}

func TestWriteOrgDefaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteOrg(&buf, Portfolio{}))
	out := buf.String()

	assert.Contains(t, out, "* REPORT: Portfolio\n")
	assert.Contains(t, out, ":LOAD_ID:     (load-id?)\n")
	assert.Contains(t, out, ":START_DATE:  -\n")
	assert.NotContains(t, out, "Best strategy")
	assert.NotContains(t, out, "* Recent trades")
}

func TestWriteOrgDuplicates(t *testing.T) {
	t.Parallel()

	r := trade("A", "EURUSD", 1, 10)
	dups := analytics.Duplicates([]journal.TradeRecord{r, r})

	var buf bytes.Buffer
	require.NoError(t, WriteOrg(&buf, Portfolio{Dups: dups}))
	assert.Contains(t, buf.String(), "** Duplicates\n- Live 2024-01-01 01:00:00 10.00 x2\n")
}
