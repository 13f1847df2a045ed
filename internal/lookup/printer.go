package lookup

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const notFoundMarker = "*** NOT FOUND ***"

// Printer writes result lines. Colors only touch the family tag and the not found marker.
type Printer struct {
	w       io.Writer
	tag     *color.Color
	missing *color.Color
}

func NewPrinter(w io.Writer, colored bool) *Printer {
	p := &Printer{w: w, tag: color.New(color.FgCyan), missing: color.New(color.FgRed, color.Bold)}
	if colored {
		p.tag.EnableColor()
		p.missing.EnableColor()
	} else {
		p.tag.DisableColor()
		p.missing.DisableColor()
	}
	return p
}

func (p *Printer) NotFound(host string) error {
	_, err := fmt.Fprintf(p.w, "%s -> %s\n", host, p.missing.Sprint(notFoundMarker))
	return err
}

func (p *Printer) Address(host string, addr string, tag string) error {
	if tag != "" {
		tag = p.tag.Sprint(tag)
	}
	_, err := fmt.Fprintf(p.w, "%s = %s%s\n", host, addr, tag)
	return err
}

func (p *Printer) Alias(host string, canonical string) error {
	_, err := fmt.Fprintf(p.w, "%s -> %s\n", host, canonical)
	return err
}
