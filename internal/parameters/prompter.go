package parameters

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingValue is returned by StaticPrompter when it has no value left.
var ErrMissingValue = errors.New("no value provided for parameter")

// StaticPrompter answers from preset values: named placeholders look up
// Named first, anything else consumes Positional in order. When both are
// exhausted it defers to Fallback, or fails with ErrMissingValue.
type StaticPrompter struct {
	Named      map[string]string
	Positional []string
	Fallback   Prompter

	next int
}

// ParseValues builds a StaticPrompter from CLI style values where
// "name=value" sets a named parameter and anything else is positional.
func ParseValues(values []string, fallback Prompter) *StaticPrompter {
	p := &StaticPrompter{Named: make(map[string]string), Fallback: fallback}
	for _, v := range values {
		if name, value, ok := strings.Cut(v, "="); ok && name != "" && !strings.ContainsAny(name, " \t") {
			p.Named[name] = value
			continue
		}
		p.Positional = append(p.Positional, v)
	}
	return p
}

// Prompt implements Prompter.
func (s *StaticPrompter) Prompt(p Placeholder) (string, error) {
	if p.Name != "" {
		if value, ok := s.Named[p.Name]; ok {
			return value, nil
		}
	}
	if s.next < len(s.Positional) {
		value := s.Positional[s.next]
		s.next++
		return value, nil
	}
	if s.Fallback != nil {
		return s.Fallback.Prompt(p)
	}
	return "", fmt.Errorf("%w: %s", ErrMissingValue, p.Label())
}

// TerminalPrompter asks for each value on Out and reads one line from In.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter creates a prompter reading answers from in.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

// Prompt implements Prompter.
func (t *TerminalPrompter) Prompt(p Placeholder) (string, error) {
	if _, err := fmt.Fprintf(t.out, "Enter value for %s: ", p.Label()); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read value for %s: %w", p.Label(), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
