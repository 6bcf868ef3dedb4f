package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rustyeddy/fillpnl/pnl"
)

// State is the view the navigator is showing.
type State int

const (
	Timeline State = iota
	Detail
	Symbol
)

func (s State) String() string {
	switch s {
	case Timeline:
		return "timeline"
	case Detail:
		return "detail"
	case Symbol:
		return "symbol"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// CommandSource yields one command line per call. ok is false at end of
// input.
type CommandSource interface {
	Next() (cmd string, ok bool)
}

type lineSource struct {
	sc *bufio.Scanner
}

// NewLineSource reads commands line by line from r.
func NewLineSource(r io.Reader) CommandSource {
	return &lineSource{sc: bufio.NewScanner(r)}
}

func (l *lineSource) Next() (string, bool) {
	if !l.sc.Scan() {
		return "", false
	}
	return l.sc.Text(), true
}

type staticSource struct {
	cmds []string
}

// StaticCommands replays cmds in order.
func StaticCommands(cmds ...string) CommandSource {
	return &staticSource{cmds: cmds}
}

func (s *staticSource) Next() (string, bool) {
	if len(s.cmds) == 0 {
		return "", false
	}
	c := s.cmds[0]
	s.cmds = s.cmds[1:]
	return c, true
}

// NavOptions configures a Navigator. Zero values select the defaults.
type NavOptions struct {
	PageSize int
	BarWidth int
}

// Navigator is the interactive timeline/detail/symbol browser.
type Navigator struct {
	days  []pnl.DayPnL
	chart string
	out   io.Writer

	pageSize int
	barWidth int

	state    State
	page     int
	day      int
	returnTo State
}

// NewNavigator starts in the Timeline state on page 0. chart may be empty,
// which disables the Symbol view.
func NewNavigator(days []pnl.DayPnL, chart string, out io.Writer, opts NavOptions) *Navigator {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.BarWidth <= 0 {
		opts.BarWidth = DefaultBarWidth
	}
	return &Navigator{
		days:     days,
		chart:    chart,
		out:      out,
		pageSize: opts.PageSize,
		barWidth: opts.BarWidth,
	}
}

// State is the current view.
func (n *Navigator) State() State { return n.state }

// Page is the zero-based timeline page.
func (n *Navigator) Page() int { return n.page }

// Day is the zero-based index of the selected day.
func (n *Navigator) Day() int { return n.day }

// Pages is the number of timeline pages.
func (n *Navigator) Pages() int { return pageCount(len(n.days), n.pageSize) }

// Render writes the current view.
func (n *Navigator) Render() {
	switch n.state {
	case Timeline:
		fmt.Fprint(n.out, RenderTimeline(n.days, n.page, n.pageSize, n.barWidth))
		fmt.Fprintln(n.out, "Commands: <day #> detail, n/p page, s symbols, q quit")
	case Detail:
		fmt.Fprint(n.out, RenderDetail(n.days[n.day], n.day, len(n.days)))
		fmt.Fprintln(n.out, "Commands: n/p day, b back, s symbols, q quit")
	case Symbol:
		fmt.Fprintln(n.out, n.chart)
		fmt.Fprintln(n.out, "Commands: b back, q quit")
	}
}

// Handle applies one command and reports whether the loop should stop.
func (n *Navigator) Handle(cmd string) (quit bool) {
	cmd = strings.ToLower(strings.TrimSpace(cmd))
	switch cmd {
	case "":
		return false
	case "q":
		return true
	}

	switch n.state {
	case Timeline:
		n.handleTimeline(cmd)
	case Detail:
		n.handleDetail(cmd)
	case Symbol:
		n.handleSymbol(cmd)
	}
	return false
}

func (n *Navigator) handleTimeline(cmd string) {
	if isDigits(cmd) {
		idx, err := strconv.Atoi(cmd)
		if err != nil || idx < 1 || idx > len(n.days) {
			fmt.Fprintf(n.out, "invalid day: %s\n", cmd)
			return
		}
		n.day = idx - 1
		n.state = Detail
		n.Render()
		return
	}

	switch cmd {
	case "n":
		n.page = (n.page + 1) % n.Pages()
		n.Render()
	case "p":
		n.page = (n.page - 1 + n.Pages()) % n.Pages()
		n.Render()
	case "s":
		n.showSymbols()
	default:
		n.unknown(cmd)
	}
}

func (n *Navigator) handleDetail(cmd string) {
	switch cmd {
	case "n":
		n.day = (n.day + 1) % len(n.days)
		n.Render()
	case "p":
		n.day = (n.day - 1 + len(n.days)) % len(n.days)
		n.Render()
	case "b":
		n.state = Timeline
		n.page = n.day / n.pageSize
		n.Render()
	case "s":
		n.showSymbols()
	default:
		n.unknown(cmd)
	}
}

func (n *Navigator) handleSymbol(cmd string) {
	if cmd != "b" {
		n.unknown(cmd)
		return
	}
	n.state = n.returnTo
	n.Render()
}

func (n *Navigator) showSymbols() {
	if n.chart == "" {
		fmt.Fprintln(n.out, "no symbol chart available")
		return
	}
	n.returnTo = n.state
	n.state = Symbol
	n.Render()
}

func (n *Navigator) unknown(cmd string) {
	fmt.Fprintf(n.out, "unknown command: %s\n", cmd)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Run renders the initial view and then applies commands until q or the
// source is exhausted.
func (n *Navigator) Run(src CommandSource) {
	n.Render()
	for {
		fmt.Fprintf(n.out, "[%s] > ", n.state)
		cmd, ok := src.Next()
		if !ok {
			fmt.Fprintln(n.out)
			return
		}
		if n.Handle(cmd) {
			return
		}
	}
}

// RunInteractiveReport drives a Navigator over line-oriented in/out.
func RunInteractiveReport(days []pnl.DayPnL, chart string, in io.Reader, out io.Writer, opts NavOptions) {
	NewNavigator(days, chart, out, opts).Run(NewLineSource(in))
}
