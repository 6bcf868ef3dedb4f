package orders

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Header is the orders.csv column layout.
var Header = []string{
	"Name",
	"Symbol",
	"Side",
	"Status",
	"Filled",
	"Total Qty",
	"Price",
	"Avg Price",
	"Time-in-Force",
	"Placed Time",
	"Filled Time",
}

// Load reads orders.csv rows. Columns are matched by header name, so extra
// or reordered columns are fine; missing columns read as blank.
func Load(r io.Reader) ([]Order, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	var out []Order
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		out = append(out, Order{
			Name:        get("Name"),
			Symbol:      get("Symbol"),
			Side:        get("Side"),
			Status:      get("Status"),
			Filled:      orZero(ParseNumeric(get("Filled"))),
			TotalQty:    orZero(ParseNumeric(get("Total Qty"))),
			Price:       ParseNumeric(get("Price")),
			AvgPrice:    ParseNumeric(get("Avg Price")),
			TimeInForce: get("Time-in-Force"),
			PlacedTime:  get("Placed Time"),
			FilledTime:  get("Filled Time"),
		})
	}
	return out, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) ([]Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orders: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Save writes orders in orders.csv layout. Nothing is written when there
// are no orders.
func Save(w io.Writer, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, o := range orders {
		err := cw.Write([]string{
			o.Name,
			o.Symbol,
			o.Side,
			o.Status,
			FormatNumeric(&o.Filled),
			FormatNumeric(&o.TotalQty),
			FormatPrice(o.Price),
			FormatNumeric(o.AvgPrice),
			o.TimeInForce,
			o.PlacedTime,
			o.FilledTime,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveFile writes orders to path, replacing it.
func SaveFile(path string, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create orders: %w", err)
	}
	if err := Save(f, orders); err != nil {
		f.Close()
		return fmt.Errorf("write orders: %w", err)
	}
	return f.Close()
}

// ParseNumeric parses broker numbers such as "@1.25" or "3". Blank or
// garbage cells give nil.
func ParseNumeric(s string) *float64 {
	s = strings.TrimLeft(strings.TrimSpace(s), "@")
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

// FormatNumeric prints v with at most four decimals and no trailing zeros.
func FormatNumeric(v *float64) string {
	if v == nil {
		return ""
	}
	return decimal.NewFromFloat(*v).Round(4).String()
}

// FormatPrice is FormatNumeric with the broker's "@" prefix.
func FormatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return "@" + FormatNumeric(v)
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
