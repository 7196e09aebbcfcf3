package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetTimes(t *testing.T) {
	t.Parallel()

	open := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	closeT := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		open  *time.Time
		close *time.Time
		want  *time.Time
	}{
		{"close wins", &open, &closeT, &closeT},
		{"open fallback", &open, nil, &open},
		{"neither", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r TradeRecord
			r.SetTimes(tt.open, tt.close)
			assert.Equal(t, tt.want, r.EventTime)
		})
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	a := TradeRecord{AccountLabel: "Live", Profit: 1.5, StrategyID: "x"}
	a.SetTimes(nil, &at)
	b := TradeRecord{AccountLabel: "Live", Profit: 1.5, StrategyID: "y"}
	b.SetTimes(nil, &at)

	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "Live|-|0", TradeRecord{AccountLabel: "Live"}.Key())

	b.Profit = 2
	assert.NotEqual(t, a.Key(), b.Key())
}
