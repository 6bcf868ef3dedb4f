// Package orders holds the normalized fill record consumed by the ledger,
// plus the orders.csv reader/writer and broker export conversion.
package orders

import (
	"strings"
	"time"
)

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Order is one row of orders.csv. Price and AvgPrice are nil when the
// broker left the cell blank.
type Order struct {
	Name        string
	Symbol      string
	Side        string
	Status      string
	Filled      float64
	TotalQty    float64
	Price       *float64
	AvgPrice    *float64
	TimeInForce string
	PlacedTime  string
	FilledTime  string
}

// NormalizedSide maps the free-form side column to Buy or Sell. Anything
// else comes back as "".
func (o Order) NormalizedSide() Side {
	switch strings.ToLower(strings.TrimSpace(o.Side)) {
	case "buy":
		return Buy
	case "sell":
		return Sell
	}
	return ""
}

// IsFilled reports whether the status column says filled.
func (o Order) IsFilled() bool {
	return strings.EqualFold(strings.TrimSpace(o.Status), "filled")
}

// EffectivePrice is Price, falling back to AvgPrice.
func (o Order) EffectivePrice() (float64, bool) {
	if o.Price != nil {
		return *o.Price, true
	}
	if o.AvgPrice != nil {
		return *o.AvgPrice, true
	}
	return 0, false
}

// EffectiveQty is TotalQty, falling back to Filled when TotalQty is zero.
func (o Order) EffectiveQty() float64 {
	if o.TotalQty != 0 {
		return o.TotalQty
	}
	return o.Filled
}

// Actionable reports whether the ledger should process the order.
func (o Order) Actionable() bool {
	if !o.IsFilled() {
		return false
	}
	if _, ok := o.EffectivePrice(); !ok {
		return false
	}
	return o.EffectiveQty() > 0
}

// TradeTime is the filled time, else the placed time. ok is false when
// neither parses.
func (o Order) TradeTime() (t time.Time, ok bool) {
	if t, err := ParseTime(o.FilledTime); err == nil {
		return t, true
	}
	if t, err := ParseTime(o.PlacedTime); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Ptr is a convenience for building orders with literal prices.
func Ptr(v float64) *float64 {
	return &v
}
