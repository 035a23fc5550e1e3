package deck

import (
	"strconv"
	"strings"
)

func itoa(n int) string { return strconv.Itoa(n) }

// ExportText writes lines back as a deck list, one "Nxterm" per line.
// Input order is preserved.
func ExportText(name string, lines []Line) string {
	out := []string{}
	if name != "" {
		out = append(out, "# "+name)
	}
	for _, l := range lines {
		out = append(out, l.String())
	}
	return strings.Join(out, "\n")
}
