// Package confirm asks the user to approve destructive actions.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Service asks for confirmation. It blocks until the user answers or ctx ends.
type Service interface {
	Confirm(ctx context.Context, title, description string) (bool, error)
}

// Always answers every question the same way (used for --yes and tests).
type Always bool

// Confirm implements Service.
func (a Always) Confirm(ctx context.Context, title, description string) (bool, error) {
	return bool(a), nil
}

// Prompt asks on a line-oriented terminal.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt creates a prompt reading answers from in and writing questions to out.
// Pass the same *bufio.Reader the caller reads commands from so buffered
// input is shared.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Prompt{in: br, out: out}
}

type answer struct {
	line string
	err  error
}

// Confirm implements Service. Only "y" or "yes" (any case) confirms;
// end of input declines.
func (p *Prompt) Confirm(ctx context.Context, title, description string) (bool, error) {
	question := title
	if description = strings.TrimSpace(description); description != "" {
		question += " " + description
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	ch := make(chan answer, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-ch:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", a.err)
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}
