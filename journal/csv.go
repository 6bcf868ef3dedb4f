package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/fillpnl/ledger"
)

var csvHeader = []string{"trade_id", "symbol", "quantity", "open_price", "close_price", "open_time", "trade_time", "pnl"}

// CSV is a Journal that appends trades to a CSV file.
type CSV struct {
	w *csv.Writer
	f *os.File
}

// NewCSV creates (or truncates) path and writes the header row.
func NewCSV(path string) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}
	return &CSV{w: w, f: f}, nil
}

// RecordTrade writes one row and flushes it.
func (j *CSV) RecordTrade(t ledger.RealizedTrade) error {
	t = withID(t)
	err := j.w.Write([]string{
		t.ID,
		t.Symbol,
		num(t.Quantity),
		num(t.OpenPrice),
		num(t.ClosePrice),
		stamp(t.OpenTime),
		stamp(t.TradeTime),
		num(t.PnL),
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

// Close flushes pending rows and closes the file.
func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.f.Close()
		return err
	}
	return j.f.Close()
}

// ReadCSV loads trades previously written by CSV. Times keep the offset
// they were recorded with.
func ReadCSV(r io.Reader) ([]ledger.RealizedTrade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var out []ledger.RealizedTrade
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var t ledger.RealizedTrade
		t.ID, t.Symbol = rec[0], rec[1]
		floats := []*float64{&t.Quantity, &t.OpenPrice, &t.ClosePrice}
		for i, dst := range floats {
			if *dst, err = strconv.ParseFloat(rec[2+i], 64); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, csvHeader[2+i], err)
			}
		}
		if t.OpenTime, err = unstamp(rec[5]); err != nil {
			return nil, fmt.Errorf("line %d: open_time: %w", line, err)
		}
		if t.TradeTime, err = unstamp(rec[6]); err != nil {
			return nil, fmt.Errorf("line %d: trade_time: %w", line, err)
		}
		if t.PnL, err = strconv.ParseFloat(rec[7], 64); err != nil {
			return nil, fmt.Errorf("line %d: pnl: %w", line, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// ReadCSVFile opens path and calls ReadCSV.
func ReadCSVFile(path string) ([]ledger.RealizedTrade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func unstamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
