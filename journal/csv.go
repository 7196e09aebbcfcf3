package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var (
	tradesHeader = []string{"strategy_id", "account_label", "instrument", "record_type", "open_time", "close_time", "event_time", "profit", "origin"}
	equityHeader = []string{"time", "equity"}
)

type CSVJournal struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

// NewCSV creates both export files and writes their headers. An empty
// equityPath skips the equity file.
func NewCSV(tradesPath, equityPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	j := &CSVJournal{tf: tf, trades: csv.NewWriter(tf)}

	if equityPath != "" {
		ef, err := os.Create(equityPath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		j.ef = ef
		j.equity = csv.NewWriter(ef)
	}

	if err := j.writeHeaders(); err != nil {
		j.closeFiles()
		return nil, err
	}
	return j, nil
}

func (j *CSVJournal) writeHeaders() error {
	if err := j.trades.Write(tradesHeader); err != nil {
		return err
	}
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}

	if j.equity != nil {
		if err := j.equity.Write(equityHeader); err != nil {
			return err
		}
		j.equity.Flush()
		return j.equity.Error()
	}
	return nil
}

func (j *CSVJournal) closeFiles() {
	j.tf.Close()
	if j.ef != nil {
		j.ef.Close()
	}
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.StrategyID,
		t.AccountLabel,
		t.Instrument,
		t.RecordType,
		ts(t.OpenTime),
		ts(t.CloseTime),
		ts(t.EventTime),
		f(t.Profit),
		t.Origin,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	if j.equity == nil {
		return nil
	}
	err := j.equity.Write([]string{
		e.Time.UTC().Format(time.RFC3339),
		f(e.Equity),
	})
	if err != nil {
		return err
	}

	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	if err := j.tf.Close(); err != nil {
		return err
	}

	if j.equity != nil {
		j.equity.Flush()
		if err := j.equity.Error(); err != nil {
			return err
		}
		if err := j.ef.Close(); err != nil {
			return err
		}
	}
	return nil
}

func ts(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
