package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrCancelled is returned when input ends or the user aborts with Ctrl+C
var ErrCancelled = errors.New("cancelled by user")

// Prompter interface wraps basic prompting functionality for testability
type Prompter interface {
	Prompt(string) (string, error)
	Close() error
}

// LinerPrompter wraps liner.State to implement Prompter interface
type LinerPrompter struct {
	*liner.State
}

// NewLinerPrompter creates a new liner-based prompter
func NewLinerPrompter() Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinerPrompter{State: line}
}

// Prompt reads one line and keeps non-empty answers in the session history
func (p *LinerPrompter) Prompt(prompt string) (string, error) {
	result, err := p.State.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("liner prompt failed: %w", err)
	}
	if strings.TrimSpace(result) != "" {
		p.AppendHistory(result)
	}
	return result, nil
}

// ReaderPrompter reads lines from any reader. Used when input is piped
type ReaderPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewReaderPrompter creates a prompter that writes prompts to out and reads
// answers from in
func NewReaderPrompter(in io.Reader, out io.Writer) *ReaderPrompter {
	return &ReaderPrompter{reader: bufio.NewReader(in), out: out}
}

// Prompt writes prompt and returns the next line without its line ending
func (p *ReaderPrompter) Prompt(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrCancelled
			}
			// last line without a trailing newline
			return strings.TrimRight(line, "\r"), nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Close is a no-op
func (*ReaderPrompter) Close() error {
	return nil
}

// New picks a liner prompter when in is a terminal and a plain line reader
// otherwise
func New(in *os.File, out io.Writer) Prompter {
	if term.IsTerminal(int(in.Fd())) { //nolint:gosec // fd fits in int
		return NewLinerPrompter()
	}
	return NewReaderPrompter(in, out)
}

// TextInputWithPrompter provides simple text input using a custom prompter
func TextInputWithPrompter(prompter Prompter, prompt string) (string, error) {
	coloredPrompt := color.CyanString(prompt + " ")
	result, err := prompter.Prompt(coloredPrompt)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("text input with prompter failed: %w", err)
	}
	return strings.TrimSpace(result), nil
}
