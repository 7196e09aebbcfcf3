package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/portfolio/journal"
)

func TestDetail(t *testing.T) {
	t.Parallel()

	in := series("S", 5, -2, -3, -1, 4, -6)
	in[1].Instrument = "GBPUSD"
	in = append(in, rec("S", "", "BALANCE", 0, 1000), rec("Other", "EURUSD", "BUY", 2, 99))

	d, err := Detail(in, GroupByStrategy, "S")
	require.NoError(t, err)

	assert.Equal(t, "S", d.Key)
	assert.Equal(t, GroupByStrategy, d.By)
	assert.Equal(t, 7, d.Records)
	assert.Equal(t, 6, d.TotalTrades)
	assert.Equal(t, -3.0, d.TotalProfit)
	assert.Equal(t, 5.0, d.MaxProfit)
	assert.Equal(t, -6.0, d.MaxLoss)
	assert.Equal(t, 3, d.MaxConsecutiveLosses)
	assert.Equal(t, -6.0, d.LongestStreakLoss)
	assert.Equal(t, 1, d.CurrentLossStreak)
	assert.Equal(t, StreakStats{MaxStreakLen: 3, WorstStreakLoss: -6, StreakCount: 2, AvgStreakLoss: -6}, d.Streaks)
	assert.Equal(t, -8.0, d.MaxDrawdown)
	assert.Equal(t, 0.0, d.RecoveryFactor)
	assert.Len(t, d.Equity, 6)

	require.Len(t, d.Breakdown, 2)
	assert.Equal(t, "EURUSD", d.Breakdown[0].Key)
	assert.Equal(t, -1.0, d.Breakdown[0].TotalProfit)
	assert.Equal(t, "GBPUSD", d.Breakdown[1].Key)
}

func TestDetailByInstrument(t *testing.T) {
	t.Parallel()

	d, err := Detail(portfolio(), GroupByInstrument, "EURUSD")
	require.NoError(t, err)
	assert.Equal(t, 2, d.TotalTrades)
	require.Len(t, d.Breakdown, 1)
	assert.Equal(t, "A", d.Breakdown[0].Key)
}

func TestDetailNotFound(t *testing.T) {
	t.Parallel()

	_, err := Detail(portfolio(), GroupByStrategy, "Missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), `strategy "Missing"`)

	_, err = Detail(nil, GroupByAccount, "Live")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetailLedgerOnly(t *testing.T) {
	t.Parallel()

	d, err := Detail([]journal.TradeRecord{rec("Cash", "", "Deposit", 1, 100)}, GroupByStrategy, "Cash")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Records)
	assert.Equal(t, 0, d.TotalTrades)
	assert.Empty(t, d.Equity)
}
