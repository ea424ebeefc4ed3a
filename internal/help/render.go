package help

import (
	"fmt"
	"strings"

	"github.com/toejough/argdef/internal/spec"
)

// Render produces usage text for program from the table and the
// description registry.
func Render(program string, t *spec.Table, d *spec.Descriptions) string {
	r := renderer{styles: DefaultStyles(), descs: d}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s [flags] [arguments]\n", r.styles.Header.Render("Usage:"), program)

	flagRows, argRows := r.rows(t)

	if len(flagRows) > 0 {
		b.WriteString("\n" + r.styles.Header.Render("Flags:") + "\n")
		r.writeRows(&b, flagRows)
	}

	if len(argRows) > 0 {
		b.WriteString("\n" + r.styles.Header.Render("Arguments:") + "\n")
		r.writeRows(&b, argRows)
	}

	return b.String()
}

type renderer struct {
	styles Styles
	descs  *spec.Descriptions
}

// row is one usage line: the alias column and its description.
type row struct {
	left string
	desc string
}

func (r renderer) rows(t *spec.Table) (flagRows, argRows []row) {
	for _, slot := range t.Slots() {
		entry := row{left: left(slot), desc: r.describe(slot)}

		if slot.Positional {
			argRows = append(argRows, entry)
		} else {
			flagRows = append(flagRows, entry)
		}
	}

	return flagRows, argRows
}

// left renders the alias column: aliases joined by commas, then the
// display labels or one placeholder per consumed value.
func left(slot *spec.Slot) string {
	s := strings.Join(slot.Aliases, ", ")

	switch {
	case len(slot.Labels) > 0:
		s += " " + strings.Join(slot.Labels, " ")
	case slot.Arity > 0:
		s += strings.Repeat(" <value>", slot.Arity)
	}

	return s
}

// describe returns the first registered description across the slot's
// aliases, with the default appended when one is declared.
func (r renderer) describe(slot *spec.Slot) string {
	text := ""

	for _, alias := range slot.Aliases {
		if t := r.descs.Get(alias); t != "" {
			text = t
			break
		}
	}

	if slot.HasDefault {
		def := r.styles.Value.Render(fmt.Sprintf("(default: %s)", slot.Default))
		if text == "" {
			return def
		}

		return text + " " + def
	}

	return text
}

// writeRows pads the alias column to a shared width before styling so
// the escape sequences don't skew alignment.
func (r renderer) writeRows(b *strings.Builder, rs []row) {
	width := 0

	for _, entry := range rs {
		if len(entry.left) > width {
			width = len(entry.left)
		}
	}

	for _, entry := range rs {
		pad := strings.Repeat(" ", width-len(entry.left)+2)
		fmt.Fprintf(b, "  %s%s%s\n", r.styles.Flag.Render(entry.left), pad, strings.TrimRight(entry.desc, " "))
	}
}
