package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/portfolio/metrics"
	"github.com/rustyeddy/portfolio/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixture lays out two accounts with the two export schemas plus files
// that must be skipped.
func fixture(t *testing.T) (*source.Registry, string) {
	t.Helper()

	root := t.TempDir()
	mt4 := filepath.Join(root, "mt4")
	mt5 := filepath.Join(root, "mt5")
	require.NoError(t, os.Mkdir(mt4, 0o755))
	require.NoError(t, os.Mkdir(mt5, 0o755))

	writeFile(t, filepath.Join(mt4, "Scalper_History.csv"),
		"Ticket;EA_Name;Symbol;Type;TimeOpen;TimeClose;Profit\n"+
			"1;Scalper;EURUSD;BUY;2024.01.02 09:00:00;2024.01.02 10:00:00;12,5\n"+
			"2;;EURUSD;SELL;2024.01.04 09:00:00;2024.01.04 10:00:00;-3\n"+
			"3;;;BALANCE;;;1000\n")
	writeXZ(t, filepath.Join(mt4, "Grid_History.csv.xz"),
		"Ticket;EA_Name;Symbol;Type;TimeOpen;TimeClose;Profit\n"+
			"4;Grid;GBPUSD;BUY;2024.01.03 09:00:00;2024.01.03 11:00:00;7\n")
	writeFile(t, filepath.Join(mt4, "Empty_History.csv"), "Ticket;EA_Name;Symbol;Profit\n")
	writeFile(t, filepath.Join(mt4, "Broken_History.csv"), "Symbol;Profit\nEURUSD;\xc3\x28\n")
	writeFile(t, filepath.Join(mt4, "notes.txt"), "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(mt4, "Dir_History.csv"), 0o755))

	writeUTF16(t, filepath.Join(mt5, "Account_History.csv"),
		"Time,Trading Pair,Deal type,Net profit,Order comment\n"+
			"2024-01-01 08:00:00,XAUUSD,buy,-2,Trend\n")

	reg := source.NewRegistry(
		source.Source{Name: "Live", Path: mt4, Enabled: true, Delimiter: ";"},
		source.Source{Path: mt5, Enabled: true},
		source.Source{Name: "Gone", Path: filepath.Join(root, "missing"), Enabled: true},
		source.Source{Name: "Off", Path: mt5, Enabled: false},
	)
	return reg, root
}

func TestLoad(t *testing.T) {
	t.Parallel()

	reg, _ := fixture(t)
	recs := New(reg).Load(context.Background())
	require.Len(t, recs, 5)

	want := []struct {
		strategy string
		account  string
		profit   float64
	}{
		{"Trend", "mt5", -2},
		{"Scalper", "Live", 12.5},
		{"Grid", "Live", 7},
		{"Scalper", "Live", -3},
		{"Scalper", "Live", 1000},
	}
	for i, w := range want {
		assert.Equal(t, w.strategy, recs[i].StrategyID, "record %d", i)
		assert.Equal(t, w.account, recs[i].AccountLabel, "record %d", i)
		assert.InDelta(t, w.profit, recs[i].Profit, 1e-9, "record %d", i)
	}

	assert.Nil(t, recs[4].EventTime, "untimed records sort last")
	assert.Equal(t, "BALANCE", recs[4].RecordType)
	assert.Equal(t, "Grid_History.csv.xz", recs[2].Origin)
}

func TestLoadIsIdempotent(t *testing.T) {
	t.Parallel()

	reg, _ := fixture(t)
	l := New(reg)

	first := l.Load(context.Background())
	second := l.Load(context.Background())
	assert.Equal(t, first, second)
}

func TestLoadReport(t *testing.T) {
	t.Parallel()

	reg, _ := fixture(t)
	m := metrics.New(nil)

	_, rep := New(reg, WithMetrics(m)).LoadWithReport(context.Background())
	assert.Len(t, rep.LoadID, 26)
	assert.Equal(t, 5, rep.Records)

	skipped := map[string]string{}
	for _, f := range rep.Files {
		if f.Skipped != "" {
			skipped[filepath.Base(f.Path)] = f.Skipped
		}
	}
	assert.Equal(t, map[string]string{
		"missing":            SkipMissing,
		"Empty_History.csv":  SkipEmpty,
		"Broken_History.csv": SkipEncoding,
	}, skipped)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.FilesLoaded))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.RecordsLoaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilesSkipped.WithLabelValues(SkipEncoding)))
}

func TestLoadNothing(t *testing.T) {
	t.Parallel()

	recs := New(source.NewRegistry()).Load(context.Background())
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	recs = New(nil).Load(context.Background())
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	reg := source.NewRegistry(source.Source{Name: "x", Path: "/definitely/not/here", Enabled: true})
	recs = New(reg).Load(context.Background())
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestLoadPathIsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "A_History.csv")
	writeFile(t, path, "Symbol,Profit\nEURUSD,1\n")

	reg := source.NewRegistry(source.Source{Name: "x", Path: path, Enabled: true})
	recs, rep := New(reg).LoadWithReport(context.Background())
	assert.Empty(t, recs)
	require.Len(t, rep.Files, 1)
	assert.Equal(t, SkipNotDir, rep.Files[0].Skipped)
}

func TestListFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b_History.csv", "a_History.csv.xz", "c_History.txt", "History.csv"} {
		writeFile(t, filepath.Join(dir, name), "x")
	}

	files, err := ListFiles(dir, source.DefaultPattern)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a_History.csv.xz"),
		filepath.Join(dir, "b_History.csv"),
	}, files)
}
