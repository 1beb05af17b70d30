// Package prompt asks the operator a yes/no question on the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// Confirmer asks a yes/no question. Anything but an explicit yes is a no.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// New returns a readline-backed Confirmer when in is a terminal and a plain
// line reader otherwise. Prompts go to out.
func New(in *os.File, out io.Writer) Confirmer {
	if in == nil {
		return NewReaderConfirmer(nil, out)
	}
	if readline.IsTerminal(int(in.Fd())) {
		return &TerminalConfirmer{in: in, out: out}
	}
	return NewReaderConfirmer(in, out)
}

// TerminalConfirmer reads the answer with line editing.
type TerminalConfirmer struct {
	in  io.ReadCloser
	out io.Writer
}

func (c *TerminalConfirmer) Confirm(question string) (bool, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 question + " (y/N): ",
		Stdin:                  c.in,
		Stdout:                 c.out,
		Stderr:                 c.out,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
	})
	if err != nil {
		return false, fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return isYes(line), nil
}

// ReaderConfirmer reads one line from any reader. EOF means no.
type ReaderConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewReaderConfirmer(in io.Reader, out io.Writer) *ReaderConfirmer {
	if in == nil {
		in = strings.NewReader("")
	}
	return &ReaderConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *ReaderConfirmer) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s (y/N): ", question); err != nil {
		return false, err
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(c.out)
	}
	return isYes(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
