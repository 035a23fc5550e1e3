package deck

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var quantityPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s*x\s*(.+?)\s*$`)

// ParseLine parses "4xOP05-067", "2 x Kuzan" or a bare term (quantity 1).
// ok is false for blank lines and comments.
func ParseLine(raw string) (Line, bool, error) {
	txt := strings.TrimSpace(raw)
	if txt == "" || strings.HasPrefix(txt, "#") {
		return Line{}, false, nil
	}
	m := quantityPattern.FindStringSubmatch(txt)
	if m == nil {
		return Line{Quantity: 1, Term: txt}, true, nil
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil {
		return Line{}, false, fmt.Errorf("quantity %q: %w", m[1], err)
	}
	if qty <= 0 {
		return Line{}, false, fmt.Errorf("quantity must be positive in %q", txt)
	}
	return Line{Quantity: qty, Term: strings.TrimSpace(m[2])}, true, nil
}

// Parse reads a whole deck list.
func Parse(r io.Reader) ([]Line, error) {
	var lines []Line
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		l, ok, err := ParseLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if ok {
			lines = append(lines, l)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading deck list: %w", err)
	}
	return lines, nil
}

// ParseString is Parse over an in-memory deck list.
func ParseString(s string) ([]Line, error) {
	return Parse(strings.NewReader(s))
}
