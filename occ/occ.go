// Package occ decodes and encodes OCC-style option contract symbols of the
// form ROOT + YYMMDD + C|P + strike*1000 (8 digits), e.g. TSLA240119C00250000.
package occ

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

type OptionType string

const (
	Call OptionType = "Call"
	Put  OptionType = "Put"
)

// Contract is a decoded option contract.
type Contract struct {
	Root       string
	Expiration time.Time
	Type       OptionType
	Strike     float64
}

var symbolRE = regexp.MustCompile(`^(.+?)(\d{6})([CP])(\d{8})$`)

const expLayout = "060102"

// Decode parses an OCC symbol. The second return is false for plain equity
// tickers and anything else that does not have the OCC shape.
func Decode(symbol string) (Contract, bool) {
	m := symbolRE.FindStringSubmatch(symbol)
	if m == nil {
		return Contract{}, false
	}
	exp, err := time.Parse(expLayout, m[2])
	if err != nil {
		return Contract{}, false
	}
	strike, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		return Contract{}, false
	}

	typ := Put
	if m[3] == "C" {
		typ = Call
	}
	return Contract{
		Root:       m[1],
		Expiration: exp,
		Type:       typ,
		Strike:     float64(strike) / 1000,
	}, true
}

// Encode builds the OCC symbol for c.
func Encode(c Contract) string {
	flag := "P"
	if c.Type == Call {
		flag = "C"
	}
	strike := int64(math.Round(c.Strike * 1000))
	return fmt.Sprintf("%s%s%s%08d", c.Root, c.Expiration.Format(expLayout), flag, strike)
}

// FormatStrike prints a strike without trailing zeros (250, 252.5).
func FormatStrike(strike float64) string {
	return strconv.FormatFloat(strike, 'f', -1, 64)
}

// String renders the contract for humans: "TSLA 2024-01-19 Call 250".
func (c Contract) String() string {
	return fmt.Sprintf("%s %s %s %s", c.Root, c.Expiration.Format("2006-01-02"), c.Type, FormatStrike(c.Strike))
}

// Describe returns a readable label for symbol, or symbol itself when it is
// not an OCC contract.
func Describe(symbol string) string {
	c, ok := Decode(symbol)
	if !ok {
		return symbol
	}
	return c.String()
}
