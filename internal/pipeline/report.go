package pipeline

import (
	"fmt"

	"github.com/youruser/cardsheet/internal/deck"
)

// Failure is a line that produced no image.
type Failure struct {
	Line deck.Line
	Err  error
}

// String is the short form shown to users, e.g. "4xOP05-067".
func (f Failure) String() string {
	return fmt.Sprintf("%dx%s", f.Line.Quantity, f.Line.Display())
}

// Report summarises a run. Skipped lines count as neither success nor
// failure.
type Report struct {
	Files    []string
	Failures []Failure
	Skipped  []deck.Line
	// Placed is the number of card images emitted, copies included.
	Placed int
}

// Failed lists the failures in their short form.
func (r *Report) Failed() []string {
	out := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, f.String())
	}
	return out
}
