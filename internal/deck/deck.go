package deck

import (
	"regexp"
	"strings"
)

// Line is one request from a deck list: how many copies and what to look up.
type Line struct {
	Quantity int    `json:"quantity"`
	Term     string `json:"term"`
}

var codePattern = regexp.MustCompile(`^[A-Z]+\d{2}-\d{3}$`)

// LooksLikeCode reports whether s has the shape of a card code such as OP05-067.
func LooksLikeCode(s string) bool {
	return codePattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// IsCode reports whether the line's term is code-shaped.
func (l Line) IsCode() bool { return LooksLikeCode(l.Term) }

// Display is the term as shown to users: codes upper-cased, names untouched.
func (l Line) Display() string {
	if l.IsCode() {
		return strings.ToUpper(strings.TrimSpace(l.Term))
	}
	return l.Term
}

// String renders the line the way it is written in a deck list.
func (l Line) String() string {
	return strings.TrimSpace(itoa(l.Quantity) + "x" + l.Display())
}
