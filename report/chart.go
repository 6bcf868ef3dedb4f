// Package report renders realized PnL as text: the per-symbol bar chart,
// the daily timeline and detail views, and the interactive navigator that
// moves between them.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rustyeddy/fillpnl/pnl"
)

// DefaultChartWidth is the total column budget of the chart.
const DefaultChartWidth = 80

const (
	minBarWidth = 10
	rule        = "--------------------------------"
	emptyChart  = "No realized PnL to chart."
)

type entry struct {
	key   string
	value float64
}

// RenderContractPnlChart draws pnlByKey as a horizontal bar chart sorted by
// value, largest first, followed by summary statistics. risk may be nil, in
// which case the R:R and Kelly lines read n/a. width <= 0 selects
// DefaultChartWidth.
func RenderContractPnlChart(pnlByKey map[string]float64, risk *pnl.RiskSummary, width int) string {
	if len(pnlByKey) == 0 {
		return emptyChart
	}
	if width <= 0 {
		width = DefaultChartWidth
	}

	entries := make([]entry, 0, len(pnlByKey))
	for k, v := range pnlByKey {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].key < entries[j].key
	})

	labels := make([]string, len(entries))
	values := make([]float64, len(entries))
	labelWidth := 0
	maxMag := 0.0
	for i, e := range entries {
		labels[i] = fmt.Sprintf("%03d. %s (%s)", i+1, e.key, pnl.FormatMoney(e.value))
		values[i] = e.value
		labelWidth = max(labelWidth, len(labels[i]))
		maxMag = math.Max(maxMag, math.Abs(e.value))
	}
	barWidth := max(minBarWidth, width-labelWidth-1)

	var b strings.Builder
	for i, label := range labels {
		b.WriteString(fmt.Sprintf("%*s", labelWidth, label))
		if n := barLen(values[i], maxMag, barWidth); n > 0 {
			b.WriteString(" ")
			b.WriteString(strings.Repeat("=", n))
		}
		b.WriteString("\n")
	}
	writeStats(&b, pnl.Describe(values), risk)
	return strings.TrimRight(b.String(), "\n")
}

// barLen scales |v| against maxMag. Non-zero values get at least one cell.
func barLen(v, maxMag float64, width int) int {
	if maxMag == 0 || v == 0 {
		return 0
	}
	n := int(math.Round(math.Abs(v) / maxMag * float64(width)))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

func writeStats(b *strings.Builder, s pnl.Stats, risk *pnl.RiskSummary) {
	fmt.Fprintln(b, rule)
	fmt.Fprintf(b, "Total: %s\n", pnl.FormatMoney(s.Total))
	fmt.Fprintf(b, "Average: %s\n", pnl.FormatMoney(s.Mean))
	fmt.Fprintf(b, "Median: %s\n", pnl.FormatMoney(s.Median))
	fmt.Fprintf(b, "Mode: %s\n", pnl.FormatMoney(s.Mode))
	fmt.Fprintf(b, "Range: %s - %s\n", pnl.FormatMoney(s.Min), pnl.FormatMoney(s.Max))
	fmt.Fprintf(b, "Standard Deviation: %s\n", pnl.FormatMoney(s.StdDev))
	fmt.Fprintf(b, "Win Rate: %.1f%% (%d)\n", s.WinRate()*100, s.Wins)
	fmt.Fprintf(b, "Loss Rate: %.1f%% (%d)\n", s.LossRate()*100, s.Losses)
	fmt.Fprintf(b, "Flat: %d\n", s.Flats)

	rr, kelly := "n/a", "n/a"
	if risk != nil {
		if r, ok := risk.AverageRiskReward(); ok {
			rr = fmt.Sprintf("%.2f", r)
		}
		if k, ok := risk.Kelly(); ok {
			kelly = fmt.Sprintf("%.1f%%", k*100)
		}
	}
	fmt.Fprintf(b, "Average R:R: %s\n", rr)
	fmt.Fprintf(b, "Kelly: %s\n", kelly)
	fmt.Fprintln(b, rule)
}
