package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rustyeddy/fillpnl/pnl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDays(n int) []pnl.DayPnL {
	days := make([]pnl.DayPnL, n)
	for i := range days {
		days[i] = pnl.DayPnL{
			Date: fmt.Sprintf("2024-%02d-%02d", 1+i/28, 1+i%28),
			Winners: pnl.Bucket{
				Total: float64(100 * (i + 1)),
				Lines: []pnl.Line{{Summary: fmt.Sprintf("WIN%d", i), Initiated: "Initiated 2024-01-01"}},
			},
			Losers: pnl.Bucket{Total: -50},
		}
	}
	return days
}

func newNav(days []pnl.DayPnL, chart string) (*Navigator, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewNavigator(days, chart, &buf, NavOptions{}), &buf
}

func TestNavigatorPageWraparound(t *testing.T) {
	t.Parallel()

	nav, _ := newNav(makeDays(45), "")
	require.Equal(t, 3, nav.Pages())

	for i := 0; i < nav.Pages(); i++ {
		assert.False(t, nav.Handle("n"))
	}
	assert.Equal(t, 0, nav.Page())

	nav.Handle("p")
	assert.Equal(t, 2, nav.Page())
	nav.Handle("N")
	assert.Equal(t, 0, nav.Page())
}

func TestNavigatorEmptyTimeline(t *testing.T) {
	t.Parallel()

	nav, buf := newNav(nil, "")
	assert.Equal(t, 1, nav.Pages())
	nav.Handle("n")
	assert.Equal(t, 0, nav.Page())
	nav.Handle("1")
	assert.Equal(t, Timeline, nav.State())
	assert.Contains(t, buf.String(), "invalid day: 1")
}

func TestNavigatorDetail(t *testing.T) {
	t.Parallel()

	nav, buf := newNav(makeDays(5), "")

	nav.Handle("3")
	assert.Equal(t, Detail, nav.State())
	assert.Equal(t, 2, nav.Day())
	assert.Contains(t, buf.String(), "Day 3 of 5")
	assert.Contains(t, buf.String(), "WIN2")

	nav.Handle("n")
	nav.Handle("n")
	nav.Handle("n")
	assert.Equal(t, 0, nav.Day(), "next wraps around")
	nav.Handle("p")
	assert.Equal(t, 4, nav.Day(), "previous wraps around")

	nav.Handle("b")
	assert.Equal(t, Timeline, nav.State())
}

func TestNavigatorInvalidDay(t *testing.T) {
	t.Parallel()

	nav, buf := newNav(makeDays(5), "")
	for _, cmd := range []string{"0", "6", "99999999999999999999"} {
		nav.Handle(cmd)
		assert.Equal(t, Timeline, nav.State(), cmd)
		assert.Contains(t, buf.String(), "invalid day: "+cmd)
	}
}

func TestNavigatorSymbolReturnsToCaller(t *testing.T) {
	t.Parallel()

	nav, buf := newNav(makeDays(5), "CHART")

	nav.Handle("s")
	assert.Equal(t, Symbol, nav.State())
	assert.Contains(t, buf.String(), "CHART")
	nav.Handle("b")
	assert.Equal(t, Timeline, nav.State())

	nav.Handle("2")
	nav.Handle("S")
	assert.Equal(t, Symbol, nav.State())
	nav.Handle("n")
	assert.Equal(t, Symbol, nav.State())
	assert.Contains(t, buf.String(), "unknown command: n")
	nav.Handle("b")
	assert.Equal(t, Detail, nav.State())
	assert.Equal(t, 1, nav.Day())
}

func TestNavigatorNoChart(t *testing.T) {
	t.Parallel()

	nav, buf := newNav(makeDays(2), "")
	nav.Handle("s")
	assert.Equal(t, Timeline, nav.State())
	assert.Contains(t, buf.String(), "no symbol chart available")
}

func TestNavigatorEmptyAndUnknown(t *testing.T) {
	t.Parallel()

	nav, buf := newNav(makeDays(2), "")
	nav.Handle("   ")
	assert.Zero(t, buf.Len())
	assert.Equal(t, Timeline, nav.State())

	nav.Handle("xyz")
	assert.Equal(t, "unknown command: xyz\n", buf.String())
	assert.Equal(t, Timeline, nav.State())
}

func TestNavigatorQuitFromAnyState(t *testing.T) {
	t.Parallel()

	for _, setup := range [][]string{nil, {"1"}, {"s"}, {"1", "s"}} {
		nav, _ := newNav(makeDays(3), "CHART")
		for _, c := range setup {
			require.False(t, nav.Handle(c))
		}
		assert.True(t, nav.Handle("q"))
		assert.True(t, nav.Handle(" Q "))
	}
}

func TestNavigatorRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	nav := NewNavigator(makeDays(3), "CHART", &buf, NavOptions{})
	nav.Run(StaticCommands("2", "s", "b", "q", "n"))

	out := buf.String()
	assert.Contains(t, out, "Daily realized PnL (page 1/1, 3 days)")
	assert.Contains(t, out, "[timeline] > ")
	assert.Contains(t, out, "[detail] > ")
	assert.Contains(t, out, "[symbol] > ")
	assert.Equal(t, Detail, nav.State(), "commands after q are not read")
}

func TestRunInteractiveReportEOF(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	RunInteractiveReport(makeDays(25), "", strings.NewReader("n\n\n1\n"), &out, NavOptions{PageSize: 10})
	assert.Contains(t, out.String(), "page 2/3")
	assert.Contains(t, out.String(), "Day 1 of 25")
}

func TestRenderTimeline(t *testing.T) {
	t.Parallel()

	days := []pnl.DayPnL{
		{Date: "2024-01-02", Winners: pnl.Bucket{Total: 200}, Losers: pnl.Bucket{Total: -100}},
		{Date: "2024-01-03", Winners: pnl.Bucket{Total: 0.5}},
	}
	out := RenderTimeline(days, 0, 20, 32)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[1], "2024-01-02")
	assert.Contains(t, lines[1], "+$200.00 "+strings.Repeat("+", 32))
	assert.Contains(t, lines[1], "-$100.00 "+strings.Repeat("-", 16))
	assert.Contains(t, lines[2], "+$0.50 + ")
	assert.True(t, strings.HasSuffix(lines[2], "+$0.00 "), lines[2])
}

func TestRenderDetail(t *testing.T) {
	t.Parallel()

	d := pnl.DayPnL{
		Date: "2024-01-03",
		Winners: pnl.Bucket{Total: 150, Lines: []pnl.Line{
			{Summary: "TSLA 2024-01-19 Call 250 x1 @ 2.5 +$150.00", Initiated: "Initiated 2024-01-02"},
		}},
	}
	out := RenderDetail(d, 0, 1)
	assert.Contains(t, out, "Day 1 of 1: 2024-01-03")
	assert.Contains(t, out, "Winners (+$150.00)")
	assert.Contains(t, out, "  TSLA 2024-01-19 Call 250 x1 @ 2.5 +$150.00\n      Initiated 2024-01-02")
	assert.Contains(t, out, "Losers (+$0.00)\n  (none)")
	assert.Contains(t, out, "Net: +$150.00")
}
