// Package normalize turns a parsed history table of any supported export
// schema into canonical trade records.
package normalize

import (
	"time"

	"github.com/rustyeddy/portfolio/journal"
)

// Table is a parsed delimited file: a header row and data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Stats describes how much of a table had to be coerced.
type Stats struct {
	Rows int
	// Degraded counts non-empty cells that could not be parsed and took a default.
	Degraded int
	// Missing lists fields with no matching column at all.
	Missing []Field
}

// Normalize maps every row of t to a record labelled with account. origin is
// the file name, used for the strategy fallback token.
func Normalize(t Table, origin, account string) []journal.TradeRecord {
	out, _ := NormalizeWithStats(t, origin, account)
	return out
}

func NormalizeWithStats(t Table, origin, account string) ([]journal.TradeRecord, Stats) {
	cols := Resolve(t.Header)
	token := FilenameToken(origin)

	st := Stats{Rows: len(t.Rows), Missing: []Field{}}
	for f := range cols {
		if !cols.Has(Field(f)) {
			st.Missing = append(st.Missing, Field(f))
		}
	}

	out := make([]journal.TradeRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := journal.TradeRecord{
			AccountLabel: account,
			Origin:       origin,
			StrategyID:   cols.cell(row, FieldStrategy),
			Instrument:   cols.cell(row, FieldInstrument),
			RecordType:   cols.cell(row, FieldType),
		}
		if rec.StrategyID == "" {
			rec.StrategyID = token
		}

		open := parseTimeCell(cols.cell(row, FieldOpenTime), &st)
		close := parseTimeCell(cols.cell(row, FieldCloseTime), &st)
		rec.SetTimes(open, close)

		if raw := cols.cell(row, FieldProfit); raw != "" {
			v, ok := ParseProfit(raw)
			if !ok {
				st.Degraded++
			}
			rec.Profit = v
		}

		out = append(out, rec)
	}
	return out, st
}

func parseTimeCell(raw string, st *Stats) *time.Time {
	if raw == "" {
		return nil
	}
	t := ParseTime(raw)
	if t == nil {
		st.Degraded++
	}
	return t
}
