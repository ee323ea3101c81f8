package scldiff

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// FormatPrettyString is a convenice wrapper that outputs to a string instead of
// an io.Writer
func FormatPrettyString(r *Report, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, r, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report to w, one line per path. if colorTTY is
// true it will add
// red "-" for entries only in A
// green "+" for entries only in B
// blue "~" for shared subtrees that occur a different number of times
func FormatPretty(w io.Writer, r *Report, colorTTY bool) error {
	var colorMap map[Operation]string

	if colorTTY {
		colorMap = map[Operation]string{
			Operation("close"): "\x1b[0m", // end color tag

			DTInsert: "\x1b[32m", // green
			DTDelete: "\x1b[31m", // red
			DTUpdate: "\x1b[34m", // blue
		}
	}

	if err := formatEntries(w, DTDelete, r.OnlyInA, 0, colorMap); err != nil {
		return err
	}
	if err := formatEntries(w, DTInsert, r.OnlyInB, 0, colorMap); err != nil {
		return err
	}
	for _, ch := range r.Changed {
		if _, err := fmt.Fprintf(w, "%s%s%s: %d in A, %d in B%s\n", colorMap[DTUpdate], DTUpdate, ch.label(), len(ch.A), len(ch.B), colorMap[Operation("close")]); err != nil {
			return err
		}
		if err := formatEntries(w, DTDelete, ch.A, 1, colorMap); err != nil {
			return err
		}
		if err := formatEntries(w, DTInsert, ch.B, 1, colorMap); err != nil {
			return err
		}
	}
	return nil
}

func formatEntries(w io.Writer, op Operation, es []*Entry, indent int, colorMap map[Operation]string) error {
	for _, e := range es {
		if _, err := fmt.Fprintf(w, "%s%s%s%s%s\n", strings.Repeat("  ", indent), colorMap[op], op, e.Path(), colorMap[Operation("close")]); err != nil {
			return err
		}
	}
	return nil
}

// label names the element kind a change concerns
func (ch *Change) label() string {
	for _, es := range [][]*Entry{ch.A, ch.B} {
		if len(es) > 0 {
			name := es[0].Node.Name()
			if isPrimary(name.Space) {
				return name.Local
			}
			return name.String()
		}
	}
	return ch.Digest.String()
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, color bool) string {
	var (
		neutralColor, insertColor, deleteColor, updateColor, closeColor string
	)

	if ds == nil {
		return "<nil>"
	}

	if color {
		neutralColor = "\x1b[37m"
		insertColor = "\x1b[32m"
		deleteColor = "\x1b[31m"
		updateColor = "\x1b[34m"
		closeColor = "\x1b[0m"
	}

	buf := &bytes.Buffer{}

	elsColor := insertColor
	change := ds.NodeChange()
	elementsWord := "elements"
	sign := "+"
	if change < 0 {
		elsColor = deleteColor
		sign = ""
	} else if change == 0 {
		elsColor = neutralColor
		sign = ""
	}
	if change == 1 || change == -1 {
		elementsWord = "element"
	}

	buf.WriteString(fmt.Sprintf("%s%s%d %s%s%s%s.",
		elsColor, sign, change, closeColor,
		neutralColor, elementsWord, closeColor,
	))

	buf.WriteString(fmt.Sprintf(" %s%d only in A.%s", deleteColor, ds.OnlyInA, closeColor))
	buf.WriteString(fmt.Sprintf(" %s%d only in B.%s", insertColor, ds.OnlyInB, closeColor))

	changedWord := "changes"
	if ds.Changed == 1 {
		changedWord = "change"
	}
	buf.WriteString(fmt.Sprintf(" %s%d %s.%s", updateColor, ds.Changed, changedWord, closeColor))

	if ds.Duplicates > 0 {
		dupWord := "duplicates"
		if ds.Duplicates == 1 {
			dupWord = "duplicate"
		}
		buf.WriteString(fmt.Sprintf(" %s%d %s.%s", neutralColor, ds.Duplicates, dupWord, closeColor))
	}

	buf.WriteRune('\n')

	return buf.String()
}
