package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/youruser/cardsheet/internal/deck"
	"github.com/youruser/cardsheet/internal/source"
)

// Selector chooses one variant for a line when more than one was found.
// ok is false when the line should be skipped.
type Selector interface {
	Select(line deck.Line, variants []source.Variant) (index int, ok bool, err error)
}

// FirstSelector always takes the best-ranked variant.
type FirstSelector struct{}

func (FirstSelector) Select(_ deck.Line, variants []source.Variant) (int, bool, error) {
	return 0, len(variants) > 0, nil
}

// PromptSelector lists the variants on out and reads a choice from in. A
// number between 1 and len(variants) picks, "s" or an empty line skips.
type PromptSelector struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptSelector reads answers from in and writes prompts to out.
func NewPromptSelector(in io.Reader, out io.Writer) *PromptSelector {
	return &PromptSelector{in: bufio.NewReader(in), out: out}
}

func (p *PromptSelector) Select(line deck.Line, variants []source.Variant) (int, bool, error) {
	fmt.Fprintf(p.out, "%s: %d variants\n", line.Display(), len(variants))
	for i, v := range variants {
		fmt.Fprintf(p.out, "  [%d] %s (%d bytes)\n", i+1, v.Locator, len(v.Bytes))
	}
	for {
		fmt.Fprintf(p.out, "choose 1-%d, s to skip: ", len(variants))
		answer, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, false, fmt.Errorf("reading choice: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer == "" || answer == "s" {
			return 0, false, nil
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(variants) {
			return n - 1, true, nil
		}
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		fmt.Fprintf(p.out, "invalid choice %q\n", answer)
	}
}
