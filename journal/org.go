package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a record as an Org-mode entry with the facts in a
// PROPERTIES drawer and an empty Review section for notes.
func FormatTradeOrg(t TradeRecord) string {
	heading := fmt.Sprintf("** %s: %s %s", orDash(t.StrategyID), orDash(t.Instrument), orDash(t.RecordType))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":STRATEGY: %s\n", t.StrategyID)
	fmt.Fprintf(&b, ":ACCOUNT: %s\n", t.AccountLabel)
	fmt.Fprintf(&b, ":INSTRUMENT: %s\n", t.Instrument)
	fmt.Fprintf(&b, ":TYPE: %s\n", t.RecordType)
	fmt.Fprintf(&b, ":OPEN_TIME: %s\n", orgTime(t.OpenTime))
	fmt.Fprintf(&b, ":CLOSE_TIME: %s\n", orgTime(t.CloseTime))
	fmt.Fprintf(&b, ":PROFIT: %.2f\n", t.Profit)
	if t.Origin != "" {
		fmt.Fprintf(&b, ":ORIGIN: %s\n", t.Origin)
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple records separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func orgTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
