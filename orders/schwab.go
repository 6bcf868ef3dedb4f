package orders

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/rustyeddy/fillpnl/occ"
	"github.com/shopspring/decimal"
)

// Schwab option symbols look like "TSLA 01/19/2024 250.00 C".
var schwabOptionRE = regexp.MustCompile(
	`^([A-Za-z0-9./-]+)\s+(\d{1,2})/(\d{1,2})/(\d{4})\s+([0-9,.]+)\s+([CP])$`)

var schwabDateRE = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)

var nonAlnumRE = regexp.MustCompile(`[^A-Za-z0-9]`)

// ConvertSchwab reads a Schwab transaction export and returns the option
// fills it contains as Orders. Rows with unsupported actions or non-option
// symbols are dropped. tz is the zone label appended to the timestamps.
func ConvertSchwab(r io.Reader, tz string) ([]Order, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

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
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		row := make(map[string]string, len(idx))
		blank := true
		for k, i := range idx {
			if i < len(rec) {
				row[k] = rec[i]
				if strings.TrimSpace(rec[i]) != "" {
					blank = false
				}
			}
		}
		if blank {
			continue
		}
		if !supportedAction(row["Action"]) {
			continue
		}
		if !schwabOptionRE.MatchString(strings.TrimSpace(row["Symbol"])) {
			continue
		}
		o, err := convertSchwabRow(row, tz)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func supportedAction(action string) bool {
	switch firstToken(action) {
	case "buy", "sell", "expired":
		return true
	}
	return false
}

func firstToken(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return strings.ToLower(f[0])
}

func convertSchwabRow(row map[string]string, tz string) (Order, error) {
	action := strings.TrimSpace(row["Action"])
	if action == "" {
		return Order{}, fmt.Errorf("missing Action")
	}
	symbol, err := schwabSymbol(strings.TrimSpace(row["Symbol"]))
	if err != nil {
		return Order{}, err
	}

	qty, err := parseSchwabDecimal(row["Quantity"])
	if err != nil {
		return Order{}, err
	}
	if qty == nil {
		return Order{}, fmt.Errorf("missing Quantity")
	}

	var side string
	switch firstToken(action) {
	case "buy":
		side = "Buy"
	case "sell":
		side = "Sell"
	case "expired":
		side = "Sell"
		if qty.IsNegative() {
			side = "Buy"
		}
	default:
		return Order{}, fmt.Errorf("unsupported Action %q", action)
	}

	price, err := parseSchwabDecimal(row["Price"])
	if err != nil {
		return Order{}, err
	}
	if price == nil && firstToken(action) == "expired" {
		zero := decimal.Zero
		price = &zero
	}

	ts, err := schwabTimestamp(row["Date"], tz)
	if err != nil {
		return Order{}, err
	}

	abs := qty.Abs().InexactFloat64()
	o := Order{
		Name:        symbol,
		Symbol:      symbol,
		Side:        side,
		Status:      "Filled",
		Filled:      abs,
		TotalQty:    abs,
		TimeInForce: "DAY",
		PlacedTime:  ts,
		FilledTime:  ts,
	}
	if price != nil {
		o.Price = Ptr(price.InexactFloat64())
		o.AvgPrice = Ptr(price.InexactFloat64())
	}
	return o, nil
}

func schwabSymbol(raw string) (string, error) {
	m := schwabOptionRE.FindStringSubmatch(raw)
	if m == nil {
		return strings.ToUpper(raw), nil
	}
	root := nonAlnumRE.ReplaceAllString(strings.ToUpper(m[1]), "")
	if root == "" {
		return "", fmt.Errorf("unable to parse underlying symbol %q", m[1])
	}
	exp, err := time.Parse("1/2/2006", m[2]+"/"+m[3]+"/"+m[4])
	if err != nil {
		return "", fmt.Errorf("invalid expiration in %q: %w", raw, err)
	}
	strike, err := parseSchwabDecimal(m[5])
	if err != nil {
		return "", err
	}
	if strike == nil {
		return "", fmt.Errorf("missing option strike")
	}

	typ := occ.Put
	if m[6] == "C" {
		typ = occ.Call
	}
	return occ.Encode(occ.Contract{
		Root:       root,
		Expiration: exp,
		Type:       typ,
		Strike:     strike.InexactFloat64(),
	}), nil
}

func parseSchwabDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric value %q", s)
	}
	return &d, nil
}

// Schwab dates may read "01/19/2024 as of 01/18/2024"; the first date wins.
func schwabTimestamp(raw, tz string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("missing Date")
	}
	m := schwabDateRE.FindString(raw)
	if m == "" {
		return "", fmt.Errorf("invalid Date %q", raw)
	}
	t, err := time.Parse("1/2/2006", m)
	if err != nil {
		return "", fmt.Errorf("invalid Date %q", raw)
	}
	return strings.TrimSpace(t.Format("01/02/2006") + " 00:00:00 " + strings.TrimSpace(tz)), nil
}
