package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/portfolio/journal"
)

func TestLossStreaks(t *testing.T) {
	t.Parallel()

	streaks := LossStreaks([]float64{5, -2, -3, -1, 4, -6})
	assert.Equal(t, []Streak{{Count: 3, LossSum: -6}, {Count: 1, LossSum: -6}}, streaks)

	st := SummarizeStreaks(streaks)
	assert.Equal(t, StreakStats{MaxStreakLen: 3, WorstStreakLoss: -6, StreakCount: 2, AvgStreakLoss: -6}, st)
}

func TestLossStreaksZeroBreaks(t *testing.T) {
	t.Parallel()

	streaks := LossStreaks([]float64{-1, 0, -2, -2})
	assert.Equal(t, []Streak{{Count: 1, LossSum: -1}, {Count: 2, LossSum: -4}}, streaks)
}

func TestLossStreaksEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Streak{}, LossStreaks(nil))
	assert.Equal(t, []Streak{}, LossStreaks([]float64{1, 2, 0}))
	assert.Equal(t, StreakStats{}, SummarizeStreaks(nil))
}

func TestSummarizeStreaksWorstBySum(t *testing.T) {
	t.Parallel()

	st := SummarizeStreaks([]Streak{{Count: 4, LossSum: -4}, {Count: 1, LossSum: -10}})
	assert.Equal(t, 4, st.MaxStreakLen)
	assert.Equal(t, -10.0, st.WorstStreakLoss)
	assert.Equal(t, -7.0, st.AvgStreakLoss)
}

func TestCurrentLossStreak(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CurrentLossStreak(nil))
	assert.Equal(t, 0, CurrentLossStreak([]float64{-1, 2}))
	assert.Equal(t, 2, CurrentLossStreak([]float64{-1, 2, -3, -4}))
	assert.Equal(t, 12, CurrentLossStreak(make12Losses()))
}

func make12Losses() []float64 {
	out := make([]float64, 12)
	for i := range out {
		out[i] = -1
	}
	return out
}

func TestRiskInsights(t *testing.T) {
	t.Parallel()

	var in []journal.TradeRecord
	in = append(in, series("X", -1, -1, -1)...)
	in = append(in, series("Y", -5, 1)...)
	in = append(in, series("Z", -2, -2, -2)...)
	in = append(in, series("W", 1)...)
	in = append(in, rec("W", "", "BALANCE", 2, -500))

	got := RiskInsights(in, GroupByStrategy)
	require.Len(t, got, 4)

	keys := []string{got[0].Key, got[1].Key, got[2].Key, got[3].Key}
	assert.Equal(t, []string{"Z", "X", "Y", "W"}, keys)

	assert.Equal(t, 3, got[0].MaxStreakLen)
	assert.Equal(t, -6.0, got[0].WorstStreakLoss)
	assert.Equal(t, StreakStats{}, got[3].StreakStats, "ledger rows never start a streak")
}

func TestRiskInsightsUsesTimeOrder(t *testing.T) {
	t.Parallel()

	in := []journal.TradeRecord{
		rec("S", "", "BUY", 3, -1),
		rec("S", "", "BUY", 1, -1),
		rec("S", "", "BUY", 2, 5),
	}

	got := RiskInsights(in, GroupByStrategy)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].StreakCount)
	assert.Equal(t, 1, got[0].MaxStreakLen)
}
