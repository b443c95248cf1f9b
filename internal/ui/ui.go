// Package ui renders furlong command output. Results go to the output
// writer; status lines and diagnostics go to the error writer.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/papapumpkin/furlong/internal/ansi"
	"github.com/papapumpkin/furlong/internal/catalog"
	"github.com/papapumpkin/furlong/internal/unit"
)

// Printer writes results and status lines.
type Printer struct {
	out     io.Writer
	errw    io.Writer
	palette ansi.Palette
}

// New returns a printer on stdout and stderr, colored when stderr is a
// terminal.
func New() *Printer {
	return &Printer{out: os.Stdout, errw: os.Stderr, palette: ansi.ForFile(os.Stderr)}
}

// NewWriter returns an uncolored printer on the given writers.
func NewWriter(out, errw io.Writer) *Printer {
	return &Printer{out: out, errw: errw}
}

func (p *Printer) paint(s string, codes ...string) string {
	return p.palette.Paint(s, codes...)
}

// Result prints one result line to the output writer.
func (p *Printer) Result(s string) {
	fmt.Fprintln(p.out, s)
}

// Error prints msg with an error prefix.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.errw, "%s%s\n", p.paint("error: ", ansi.Red, ansi.Bold), msg)
}

// Warn prints msg with a warning prefix.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.errw, "%s%s\n", p.paint("warning: ", ansi.Yellow, ansi.Bold), msg)
}

// Info prints a dimmed status line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.errw, p.paint(msg, ansi.Dim))
}

// UnitTable lists units with their symbol, system and dimension.
func (p *Printer) UnitTable(c *catalog.Catalog, units []unit.Unit) {
	if len(units) == 0 {
		fmt.Fprintln(p.errw, p.paint("(no units)", ansi.Dim))
		return
	}
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSYMBOL\tSYSTEM\tDIMENSION")
	for _, u := range units {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Name(), u.Symbol(), u.System().Name(), c.Describe(u.Dimension()))
	}
	tw.Flush()
}

// CheckResult summarizes a catalog check. Unresolved pairs are listed one
// per line.
func (p *Printer) CheckResult(name string, c *catalog.Catalog, unresolved []catalog.Unresolved) {
	if len(unresolved) == 0 {
		fmt.Fprintf(p.errw, "%s — %d unit(s), %d system(s), all conversions resolve\n",
			p.paint(fmt.Sprintf("✓ catalog %s", name), ansi.Green, ansi.Bold), len(c.Units()), len(c.Systems()))
		return
	}
	fmt.Fprintf(p.errw, "%s — %d unresolved conversion(s):\n",
		p.paint(fmt.Sprintf("✗ catalog %s", name), ansi.Red, ansi.Bold), len(unresolved))
	for _, u := range unresolved {
		fmt.Fprintf(p.errw, "  %s%s\n", p.paint("• ", ansi.Red), u)
	}
}

// ValidationErrors lists each problem carried by a catalog load error.
func (p *Printer) ValidationErrors(name string, err error) {
	errs := flatten(err)
	fmt.Fprintf(p.errw, "%s — %d error(s):\n", p.paint(fmt.Sprintf("✗ catalog %s", name), ansi.Red, ansi.Bold), len(errs))
	for _, e := range errs {
		fmt.Fprintf(p.errw, "  %s%s\n", p.paint("• ", ansi.Red), e)
	}
}

// Reloaded reports a successful hot reload.
func (p *Printer) Reloaded(name string, units, unresolved int) {
	msg := fmt.Sprintf("%s %s (%d unit(s))", p.paint("↻ reloaded", ansi.Cyan, ansi.Bold), name, units)
	if unresolved > 0 {
		msg += p.paint(fmt.Sprintf(", %d unresolved conversion(s)", unresolved), ansi.Yellow)
	}
	fmt.Fprintln(p.errw, msg)
}

// ReloadFailed reports a rejected reload; the previous catalog stays active.
func (p *Printer) ReloadFailed(name string, err error) {
	fmt.Fprintf(p.errw, "%s %s: %v %s\n", p.paint("✗ reload failed", ansi.Red, ansi.Bold), name, err,
		p.paint("(keeping previous catalog)", ansi.Dim))
}

// flatten descends through single-error wrappers to the first joined error
// and returns its members. An error with no joined members is returned alone.
func flatten(err error) []error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if multi, ok := e.(interface{ Unwrap() []error }); ok {
			return multi.Unwrap()
		}
	}
	if err == nil {
		return nil
	}
	return []error{err}
}
