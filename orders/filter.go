package orders

import "strings"

// FilterBySymbol keeps orders whose symbol matches, ignoring case. An empty
// symbol keeps everything.
func FilterBySymbol(in []Order, symbol string) []Order {
	out := make([]Order, 0, len(in))
	for _, o := range in {
		if symbol == "" || strings.EqualFold(o.Symbol, symbol) {
			out = append(out, o)
		}
	}
	return out
}

// ScaleQuantities returns copies of in with Filled and TotalQty multiplied
// by k.
func ScaleQuantities(in []Order, k float64) []Order {
	out := make([]Order, len(in))
	for i, o := range in {
		o.Filled *= k
		o.TotalQty *= k
		out[i] = o
	}
	return out
}
