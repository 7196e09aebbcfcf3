package normalize

import (
	"strings"
)

// Field is a canonical record field that can be sourced from a column.
type Field int

const (
	FieldStrategy Field = iota
	FieldInstrument
	FieldType
	FieldOpenTime
	FieldCloseTime
	FieldProfit
	numFields
)

func (f Field) String() string {
	switch f {
	case FieldStrategy:
		return "strategy"
	case FieldInstrument:
		return "instrument"
	case FieldType:
		return "type"
	case FieldOpenTime:
		return "open_time"
	case FieldCloseTime:
		return "close_time"
	case FieldProfit:
		return "profit"
	}
	return "unknown"
}

// Candidates lists, per field, the header names tried in order. The first
// one present in a table wins.
var Candidates = [numFields][]string{
	FieldStrategy:   {"EA_Name", "EA", "Strategy", "Order comment"},
	FieldInstrument: {"Symbol", "Trading Pair", "Instrument", "Item"},
	FieldType:       {"Type", "Deal type", "Direction"},
	FieldOpenTime:   {"TimeOpen", "Open time", "Time"},
	FieldCloseTime:  {"TimeClose", "Close time"},
	FieldProfit:     {"Profit", "Net profit", "NetProfit", "P/L"},
}

// Columns maps each field to its column index, -1 when absent.
type Columns [numFields]int

// Resolve picks the column for every field from a header row.
func Resolve(header []string) Columns {
	index := make(map[string]int, len(header))
	for i, h := range header {
		k := headerKey(h)
		if _, ok := index[k]; !ok {
			index[k] = i
		}
	}

	var cols Columns
	for f := range cols {
		cols[f] = -1
		for _, name := range Candidates[f] {
			if i, ok := index[headerKey(name)]; ok {
				cols[f] = i
				break
			}
		}
	}
	return cols
}

// Has reports whether the table carries a column for f.
func (c Columns) Has(f Field) bool {
	return c[f] >= 0
}

func (c Columns) cell(row []string, f Field) string {
	i := c[f]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func headerKey(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}
