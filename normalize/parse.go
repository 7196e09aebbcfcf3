package normalize

import (
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the terminal export format, tried before anything else.
const TimeLayout = "2006.01.02 15:04:05"

var lenientLayouts = []string{
	"2006.01.02 15:04",
	"2006.01.02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseTime parses a timestamp cell. Times without a zone are read as UTC.
// It returns nil when no layout matches.
func ParseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return &t
	}
	for _, layout := range lenientLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// ParseProfit parses a monetary cell. Spaces are dropped; a lone comma is a
// decimal separator and commas before a dot are thousands separators.
// ok is false when the cell is not a number, in which case v is 0.
func ParseProfit(s string) (v float64, ok bool) {
	d, ok := ParseDecimal(s)
	if !ok {
		return 0, false
	}
	v = d.InexactFloat64()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseDecimal is ParseProfit without the float conversion.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t', '\'':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, false
	}

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// 1.234,50
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0 && strings.Count(s, ",") == 1:
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FilenameToken derives a strategy name from a history file name:
// "Scalper_History.csv.xz" gives "Scalper".
func FilenameToken(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, ".xz")
	base = strings.TrimSuffix(base, ".csv")
	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i]
	}
	return base
}
