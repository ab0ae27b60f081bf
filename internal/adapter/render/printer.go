package render

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// Printer writes markdown either verbatim or styled for a terminal.
type Printer struct {
	out   io.Writer
	plain bool
	style string // glamour standard style; empty picks one from the terminal background
	width int
}

// NewPrinter returns a Printer writing to out. Styling is skipped when plain is set
// or out is not a terminal.
func NewPrinter(out io.Writer, plain bool) *Printer {
	return &Printer{
		out:   out,
		plain: plain || !IsTerminal(out),
		width: 100,
	}
}

// Print renders md.
func (p *Printer) Print(md string) error {
	if p.plain {
		_, err := io.WriteString(p.out, md)
		return err
	}

	styleOpt := glamour.WithAutoStyle()
	if p.style != "" {
		styleOpt = glamour.WithStandardStyle(p.style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(p.width))
	if err != nil {
		return err
	}
	styled, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.out, styled)
	return err
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
