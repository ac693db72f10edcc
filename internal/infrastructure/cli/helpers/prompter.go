package helpers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks yes/no questions before destructive commands.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm describes action and returns true only for "y" or "yes".
// EOF counts as a refusal.
func (p *Prompter) Confirm(action string) (bool, error) {
	fmt.Fprintf(p.out, "%s\nContinue? [y/N]: ", action)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}
