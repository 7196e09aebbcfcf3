package journal

import "slices"

// SortByEventTime orders records by EventTime ascending in place, keeping
// input order for equal times and putting records without a time last.
func SortByEventTime(recs []TradeRecord) {
	slices.SortStableFunc(recs, CompareEventTime)
}

// CompareEventTime orders two records by event time, nil times last.
func CompareEventTime(a, b TradeRecord) int {
	switch {
	case a.EventTime == nil && b.EventTime == nil:
		return 0
	case a.EventTime == nil:
		return 1
	case b.EventTime == nil:
		return -1
	}
	return a.EventTime.Compare(*b.EventTime)
}
