package report

import (
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/journal"
)

// Portfolio is everything the Org report shows.
type Portfolio struct {
	Title    string
	Created  time.Time
	LoadID   string
	Window   analytics.Window
	Summary  analytics.Summary
	Curve    []analytics.EquityPoint
	Strategy []analytics.GroupStats
	Symbols  []analytics.GroupStats
	Risk     []analytics.RiskInsight
	Dups     []analytics.Duplicate
	Recent   []journal.TradeRecord
}

var orgFuncs = template.FuncMap{
	"money": fmtMoney,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"day": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"drawdown": func(curve []analytics.EquityPoint) analytics.DrawdownStats {
		return analytics.Drawdown(analytics.Values(curve))
	},
	"trades": func(recs []journal.TradeRecord) string {
		return journal.FormatTradesOrg(recs)
	},
}

var orgTemplate = template.Must(template.New("portfolio").Funcs(orgFuncs).Parse(PortfolioOrgTemplate))

// WriteOrg renders p as an Org-mode document.
func WriteOrg(w io.Writer, p Portfolio) error {
	if p.Title == "" {
		p.Title = "Portfolio"
	}
	return orgTemplate.Execute(w, p)
}

const PortfolioOrgTemplate = `* REPORT: {{.Title}}
:PROPERTIES:
:LOAD_ID:     {{if .LoadID}}{{.LoadID}}{{else}}(load-id?){{end}}
:START_DATE:  {{day .Window.Start}}
:END_DATE:    {{day .Window.End}}
:TRADES:      {{.Summary.TotalTrades}}
:WINS:        {{.Summary.ProfitableTrades}}
:LOSSES:      {{.Summary.LosingTrades}}
:WIN_RATE:    {{printf "%.2f" .Summary.WinRate}}
:NET_PL:      {{money .Summary.TotalProfit}}
{{- with drawdown .Curve}}
:MAX_DD:      {{money .Max}}
:RECOVERY:    {{printf "%.2f" .RecoveryFactor}}
{{- end}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Summary
- Avg profit: {{money .Summary.AvgProfit}}
- Avg loss: {{money .Summary.AvgLoss}}
{{- if .Summary.BestStrategy.Key}}
- Best strategy: {{.Summary.BestStrategy.Key}} ({{money .Summary.BestStrategy.Profit}})
- Worst strategy: {{.Summary.WorstStrategy.Key}} ({{money .Summary.WorstStrategy.Profit}})
{{- end}}
{{- if .Summary.BestInstrument.Key}}
- Best symbol: {{.Summary.BestInstrument.Key}} ({{money .Summary.BestInstrument.Profit}})
- Worst symbol: {{.Summary.WorstInstrument.Key}} ({{money .Summary.WorstInstrument.Profit}})
{{- end}}

** Strategies
| Strategy | Trades | Total | Win % | Max DD | Recovery |
|-
{{- range .Strategy}}
| {{.Key}} | {{.Trades}} | {{money .TotalProfit}} | {{printf "%.2f" .WinRate}} | {{money .MaxDrawdown}} | {{printf "%.2f" .RecoveryFactor}} |
{{- end}}

** Symbols
| Symbol | Trades | Total | Win % | Max DD | Recovery |
|-
{{- range .Symbols}}
| {{.Key}} | {{.Trades}} | {{money .TotalProfit}} | {{printf "%.2f" .WinRate}} | {{money .MaxDrawdown}} | {{printf "%.2f" .RecoveryFactor}} |
{{- end}}

** Risk
| Key | Longest | Streaks | Worst | Avg loss |
|-
{{- range .Risk}}
| {{.Key}} | {{.MaxStreakLen}} | {{.StreakCount}} | {{money .WorstStreakLoss}} | {{money .AvgStreakLoss}} |
{{- end}}
{{if .Dups}}
** Duplicates
{{- range .Dups}}
- {{.Account}} {{.EventTime.Format "2006-01-02 15:04:05"}} {{money .Profit}} x{{.Count}}
{{- end}}
{{end}}
** Next Actions
- [ ] 
{{- if .Recent}}

* Recent trades
{{trades .Recent}}
{{- end}}
`
