package stabilize

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user to confirm a step.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// AutoConfirm accepts every question.
type AutoConfirm struct{}

// Confirm implements Prompter.
func (AutoConfirm) Confirm(string) (bool, error) { return true, nil }

// LinePrompter writes questions to Out and reads one answer line from In.
type LinePrompter struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{In: bufio.NewReader(in), Out: out}
}

// Confirm implements Prompter. "y" and "yes" in any case accept; anything
// else, including end of input, declines.
func (p *LinePrompter) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(p.Out, "%s [y/N] ", question); err != nil {
		return false, err
	}
	reply, err := p.In.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
