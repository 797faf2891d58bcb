package options

import (
	"fmt"
	"io"
	"strings"
)

// Spec describes one declared option for the argument collaborator: the
// names it should recognize, the help text, and whether the option is a
// value-less switch. Specs come back in declaration order.
type Spec struct {
	Long        string
	Short       rune
	Description string
	Switch      bool
	HasDefault  bool
}

// Specs returns the declared option specs in declaration order.
func (r *Registry) Specs() []Spec {
	specs := make([]Spec, 0, len(r.holders))
	for i := range r.holders {
		h := &r.holders[i]
		specs = append(specs, Spec{
			Long:        h.name.Long,
			Short:       h.name.Short,
			Description: h.opt.Description(),
			Switch:      h.u.isSwitch(),
			HasDefault:  h.u.hasDefault(),
		})
	}
	return specs
}

// Row is the presentation view of one declared option. Value is the
// printable effective value, empty when the option holds none.
type Row struct {
	Name        string
	Description string
	IsSet       bool
	Value       string
}

// Rows returns the presentation rows in declaration order, skipping
// options that implement OmitFromHelp and ask to be hidden.
func (r *Registry) Rows() []Row {
	rows := make([]Row, 0, len(r.holders))
	for i := range r.holders {
		h := &r.holders[i]
		if o, ok := h.opt.(interface{ OmitFromHelp() bool }); ok && o.OmitFromHelp() {
			continue
		}
		rows = append(rows, Row{
			Name:        h.name.String(),
			Description: h.opt.Description(),
			IsSet:       h.u.isSet(),
			Value:       h.u.printable(),
		})
	}
	return rows
}

// WriteHelp renders a plain two-column listing of the declared options:
// the caption, then flags and descriptions. Anything fancier belongs to
// a presentation layer consuming Rows.
func (r *Registry) WriteHelp(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s:\n", r.caption); err != nil {
		return err
	}

	type line struct{ flags, descr string }
	lines := make([]line, 0, len(r.holders))
	width := 0

	for i := range r.holders {
		h := &r.holders[i]
		if o, ok := h.opt.(interface{ OmitFromHelp() bool }); ok && o.OmitFromHelp() {
			continue
		}
		flags := h.name.LongFlag()
		if h.name.Short != 0 {
			flags += ", " + h.name.ShortFlag()
		}
		if len(flags) > width {
			width = len(flags)
		}
		lines = append(lines, line{flags: flags, descr: h.opt.Description()})
	}

	maxFlag := r.lineLength - r.minDescrLen
	if maxFlag > 0 && width > maxFlag {
		width = maxFlag
	}

	for _, l := range lines {
		pad := width - len(l.flags)
		if pad < 0 {
			pad = 0
		}
		if _, err := fmt.Fprintf(w, "  %s%s  %s\n", l.flags, strings.Repeat(" ", pad), l.descr); err != nil {
			return err
		}
	}
	return nil
}
