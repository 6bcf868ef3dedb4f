package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/fillpnl/pnl"
)

const (
	DefaultPageSize = 20
	DefaultBarWidth = 32
)

// pageCount is never below one so paging wraps on an empty timeline.
func pageCount(days, pageSize int) int {
	if days == 0 {
		return 1
	}
	return (days + pageSize - 1) / pageSize
}

// dayBar draws v as repeated ch scaled against maxMag.
func dayBar(v, maxMag float64, width int, ch string) string {
	return strings.Repeat(ch, barLen(v, maxMag, width))
}

// RenderTimeline renders one page of days. Bars are scaled against the
// largest bucket total across every day, not just the visible page.
func RenderTimeline(days []pnl.DayPnL, page, pageSize, barWidth int) string {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}

	var b strings.Builder
	pages := pageCount(len(days), pageSize)
	fmt.Fprintf(&b, "Daily realized PnL (page %d/%d, %d days)\n", page+1, pages, len(days))
	if len(days) == 0 {
		b.WriteString("No realized trades.\n")
		return b.String()
	}

	maxMag := 0.0
	for _, d := range days {
		maxMag = math.Max(maxMag, math.Abs(d.Winners.Total))
		maxMag = math.Max(maxMag, math.Abs(d.Losers.Total))
	}

	start := page * pageSize
	end := min(start+pageSize, len(days))
	for i := start; i < end; i++ {
		d := days[i]
		fmt.Fprintf(&b, "%4d. %-10s  W %13s %-*s  L %13s %s\n",
			i+1, d.Date,
			pnl.FormatSignedMoney(d.Winners.Total), barWidth, dayBar(d.Winners.Total, maxMag, barWidth, "+"),
			pnl.FormatSignedMoney(d.Losers.Total), dayBar(d.Losers.Total, maxMag, barWidth, "-"),
		)
	}
	return b.String()
}

// RenderDetail renders every trade of one day.
func RenderDetail(d pnl.DayPnL, index, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d of %d: %s\n", index+1, total, d.Date)
	writeBucket(&b, "Winners", d.Winners)
	writeBucket(&b, "Losers", d.Losers)
	fmt.Fprintf(&b, "Net: %s\n", pnl.FormatSignedMoney(d.Net()))
	return b.String()
}

func writeBucket(b *strings.Builder, title string, bk pnl.Bucket) {
	fmt.Fprintf(b, "%s (%s)\n", title, pnl.FormatSignedMoney(bk.Total))
	if len(bk.Lines) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, l := range bk.Lines {
		fmt.Fprintf(b, "  %s\n      %s\n", l.Summary, l.Initiated)
	}
}
