// Package ledger matches fills against open lots in FIFO order and records
// the realized profit or loss of every lot it closes.
package ledger

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/rustyeddy/fillpnl/orders"
	"go.uber.org/zap"
)

// DefaultMultiplier scales every option premium to contract notional.
const DefaultMultiplier = 100

// Lots whose quantity falls within epsilon of zero are closed.
const epsilon = 1e-9

// Lot is an open tranche of a position.
type Lot struct {
	Quantity float64
	Price    float64
	Opened   time.Time
}

// Position holds the open lots of one instrument. At most one of Long and
// Short is non-empty.
type Position struct {
	Long  []*Lot
	Short []*Lot
}

// Net is long quantity minus short quantity.
func (p *Position) Net() float64 {
	var n float64
	for _, l := range p.Long {
		n += l.Quantity
	}
	for _, l := range p.Short {
		n -= l.Quantity
	}
	return n
}

// Flat reports whether no lots remain open.
func (p *Position) Flat() bool {
	return len(p.Long) == 0 && len(p.Short) == 0
}

// RealizedTrade records the (partial) closure of one lot.
type RealizedTrade struct {
	ID         string
	Symbol     string
	Quantity   float64
	OpenPrice  float64
	ClosePrice float64
	PnL        float64
	TradeTime  time.Time
	OpenTime   time.Time

	// Seq counts earlier closures in the same run with identical fields, so
	// Key stays unique when a file repeats a fill.
	Seq int
}

// Key identifies a closure by content. Matching the same orders again
// yields the same keys.
func (t RealizedTrade) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%d",
		t.Symbol,
		keyTime(t.TradeTime),
		keyTime(t.OpenTime),
		strconv.FormatFloat(t.Quantity, 'g', -1, 64),
		strconv.FormatFloat(t.OpenPrice, 'g', -1, 64),
		strconv.FormatFloat(t.ClosePrice, 'g', -1, 64),
		t.Seq,
	)
}

func keyTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// UnknownDate labels trades whose timestamp could not be parsed.
const UnknownDate = "unknown"

func dateLabel(t time.Time) string {
	if t.IsZero() {
		return UnknownDate
	}
	return t.Format("2006-01-02")
}

// TradeDate is the ISO date of the closing fill.
func (t RealizedTrade) TradeDate() string { return dateLabel(t.TradeTime) }

// OpenDate is the ISO date the closed lot was opened.
func (t RealizedTrade) OpenDate() string { return dateLabel(t.OpenTime) }

// Matcher owns the lot queues and the trade ledger for one processing run.
// It is not safe for concurrent use.
type Matcher struct {
	multiplier float64
	log        *zap.Logger

	positions map[string]*Position
	trades    []RealizedTrade
	seen      map[string]int

	processed int
	skipped   int
}

// NewMatcher returns a Matcher. A non-positive multiplier selects
// DefaultMultiplier and a nil logger discards log output.
func NewMatcher(multiplier float64, log *zap.Logger) *Matcher {
	if multiplier <= 0 {
		multiplier = DefaultMultiplier
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{
		multiplier: multiplier,
		log:        log,
		positions:  make(map[string]*Position),
		seen:       make(map[string]int),
	}
}

// SortOrders returns a copy of in ordered by trade time. Orders without a
// usable timestamp sort first; ties keep their input order.
func SortOrders(in []orders.Order) []orders.Order {
	type keyed struct {
		o orders.Order
		t time.Time
	}
	ks := make([]keyed, len(in))
	for i, o := range in {
		t, _ := o.TradeTime()
		ks[i] = keyed{o, t}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		return ks[i].t.Before(ks[j].t)
	})

	out := make([]orders.Order, len(ks))
	for i, k := range ks {
		out[i] = k.o
	}
	return out
}

// Run sorts ords chronologically and applies each of them.
func (m *Matcher) Run(ords []orders.Order) {
	for _, o := range SortOrders(ords) {
		m.Apply(o)
	}
}

// Apply matches a single order against the open lots. Orders that are not
// actionable are skipped.
func (m *Matcher) Apply(o orders.Order) {
	side := o.NormalizedSide()
	price, hasPrice := o.EffectivePrice()
	qty := o.EffectiveQty()

	if !o.IsFilled() || !hasPrice || qty <= 0 || side == "" {
		m.skipped++
		m.log.Debug("skip order",
			zap.String("symbol", o.Symbol),
			zap.String("side", o.Side),
			zap.String("status", o.Status),
			zap.Bool("has_price", hasPrice),
			zap.Float64("qty", qty),
		)
		return
	}
	m.processed++

	when, _ := o.TradeTime()
	pos := m.position(o.Symbol)

	remaining := qty
	if side == orders.Buy {
		pos.Short, remaining = m.close(o.Symbol, pos.Short, remaining, price, when, -1)
		if remaining > epsilon {
			pos.Long = append(pos.Long, &Lot{Quantity: remaining, Price: price, Opened: when})
		}
		return
	}

	pos.Long, remaining = m.close(o.Symbol, pos.Long, remaining, price, when, 1)
	if remaining > epsilon {
		pos.Short = append(pos.Short, &Lot{Quantity: remaining, Price: price, Opened: when})
	}
}

// close drains queue oldest-first. dir is +1 when closing longs (sell) and
// -1 when closing shorts (buy).
func (m *Matcher) close(symbol string, queue []*Lot, remaining, price float64, when time.Time, dir float64) ([]*Lot, float64) {
	for remaining > epsilon && len(queue) > 0 {
		lot := queue[0]
		closeQty := math.Min(remaining, lot.Quantity)

		t := RealizedTrade{
			Symbol:     symbol,
			Quantity:   closeQty,
			OpenPrice:  lot.Price,
			ClosePrice: price,
			PnL:        dir * (price - lot.Price) * closeQty * m.multiplier,
			TradeTime:  when,
			OpenTime:   lot.Opened,
		}
		base := t.Key()
		t.Seq = m.seen[base]
		m.seen[base]++
		m.trades = append(m.trades, t)

		lot.Quantity -= closeQty
		remaining -= closeQty
		if math.Abs(lot.Quantity) < epsilon {
			queue = queue[1:]
		}
	}
	if len(queue) == 0 {
		queue = nil
	}
	return queue, remaining
}

func (m *Matcher) position(symbol string) *Position {
	p, ok := m.positions[symbol]
	if !ok {
		p = &Position{}
		m.positions[symbol] = p
	}
	return p
}

// Trades returns the realized trades in the order they were produced.
func (m *Matcher) Trades() []RealizedTrade {
	out := make([]RealizedTrade, len(m.trades))
	copy(out, m.trades)
	return out
}

// Positions returns the per-symbol lot queues, including flat symbols.
func (m *Matcher) Positions() map[string]*Position {
	return m.positions
}

// Processed and Skipped count the orders applied and ignored so far.
func (m *Matcher) Processed() int { return m.processed }
func (m *Matcher) Skipped() int   { return m.skipped }

// Result is the output of ComputeRealizedTrades.
type Result struct {
	Trades    []RealizedTrade
	Positions map[string]*Position
	Processed int
	Skipped   int
}

// ComputeRealizedTrades runs a fresh Matcher with DefaultMultiplier over
// ords.
func ComputeRealizedTrades(ords []orders.Order) Result {
	return Compute(ords, DefaultMultiplier, nil)
}

// Compute is ComputeRealizedTrades with an explicit multiplier and logger.
func Compute(ords []orders.Order, multiplier float64, log *zap.Logger) Result {
	m := NewMatcher(multiplier, log)
	m.Run(ords)
	return Result{
		Trades:    m.Trades(),
		Positions: m.Positions(),
		Processed: m.Processed(),
		Skipped:   m.Skipped(),
	}
}
