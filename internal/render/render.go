// Package render prints evaluation results for people.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/govalues/bigint"
	"github.com/govalues/bigint/internal/batch"
	"github.com/govalues/bigint/internal/config"
	"github.com/govalues/bigint/internal/history"
)

// Options control how values are printed.
type Options struct {
	// Color enables ANSI colors.
	Color bool
	// Group separates groups of three digits. Empty disables grouping.
	Group string
}

// UseColor resolves a color mode against the writer.
// Auto enables colors only when w is a terminal.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

// Printer writes results to an output and errors to an error stream.
type Printer struct {
	out, errOut io.Writer
	opts        Options

	value  *color.Color
	errc   *color.Color
	dim    *color.Color
	header *color.Color
}

// NewPrinter returns a printer.
func NewPrinter(out, errOut io.Writer, opts Options) *Printer {
	p := &Printer{
		out:    out,
		errOut: errOut,
		opts:   opts,
		value:  color.New(color.FgGreen, color.Bold),
		errc:   color.New(color.FgRed),
		dim:    color.New(color.FgHiBlack),
		header: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.value, p.errc, p.dim, p.header} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Group inserts sep between groups of three digits of d, counted from the
// least significant digit. An empty sep returns the canonical form.
func Group(d bigint.BigInteger, sep string) string {
	s := d.String()
	if sep == "" {
		return s
	}
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(sign) + len(s) + (len(s)-1)/3*len(sep))
	b.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteString(sep)
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Value prints a single result.
func (p *Printer) Value(d bigint.BigInteger) {
	fmt.Fprintln(p.out, p.value.Sprint(Group(d, p.opts.Group)))
}

// Error prints an error.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.errOut, p.errc.Sprint("error: ")+err.Error())
}

// Results prints batch results in input order.
// With a single result only its value or error is printed; otherwise each
// line is prefixed with its line number.
func (p *Printer) Results(results []batch.Result) {
	if len(results) == 1 {
		if results[0].Failed() {
			p.Error(results[0].Err)
		} else {
			p.Value(results[0].Value)
		}
		return
	}
	width := len(fmt.Sprint(results[len(results)-1].Line))
	for _, res := range results {
		prefix := p.dim.Sprint(fmt.Sprintf("%*d:", width, res.Line))
		if res.Failed() {
			fmt.Fprintf(p.errOut, "%s %s%s\n", prefix, p.errc.Sprint("error: "), res.Err)
			continue
		}
		fmt.Fprintf(p.out, "%s %s\n", prefix, p.value.Sprint(Group(res.Value, p.opts.Group)))
	}
}

// History prints history records as an aligned table.
// Expressions wider than maxExpr cells are truncated.
func (p *Printer) History(records []history.Record, maxExpr int) {
	if len(records) == 0 {
		fmt.Fprintln(p.out, p.dim.Sprint("no history"))
		return
	}
	if maxExpr <= 0 {
		maxExpr = 40
	}
	exprs := make([]string, len(records))
	exprWidth := runewidth.StringWidth("EXPRESSION")
	for i, rec := range records {
		exprs[i] = runewidth.Truncate(rec.Expr, maxExpr, "…")
		exprWidth = max(exprWidth, runewidth.StringWidth(exprs[i]))
	}
	idWidth := max(len("ID"), len(fmt.Sprint(records[len(records)-1].ID)))

	fmt.Fprintf(p.out, "%s  %s  %s\n",
		p.header.Sprint(runewidth.FillLeft("ID", idWidth)),
		p.header.Sprint(runewidth.FillRight("EXPRESSION", exprWidth)),
		p.header.Sprint("RESULT"))
	for i, rec := range records {
		var result string
		if rec.Result.Valid {
			result = p.value.Sprint(Group(rec.Result.BigInteger, p.opts.Group))
		} else {
			result = p.errc.Sprint("error: " + rec.Error)
		}
		fmt.Fprintf(p.out, "%s  %s  %s\n",
			p.dim.Sprint(runewidth.FillLeft(fmt.Sprint(rec.ID), idWidth)),
			runewidth.FillRight(exprs[i], exprWidth),
			result)
	}
}
