// Package parameters resolves placeholder tokens in stored command templates.
//
// A placeholder starts with the open token. When the close token follows
// before any whitespace, the text in between names the placeholder
// (`#target!`) and every occurrence of that name receives the same value.
// Otherwise the open token alone is an anonymous placeholder, and each one
// is asked for separately.
package parameters

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"hoard/internal/logger"
	"hoard/pkg/hoardtypes"
)

const (
	// DefaultOpenToken marks the start of a placeholder.
	DefaultOpenToken = "#"
	// DefaultCloseToken terminates a named placeholder.
	DefaultCloseToken = "!"
)

// ErrEmptyToken is returned when the engine has no open token configured.
var ErrEmptyToken = errors.New("parameter token cannot be empty")

// Placeholder is one parameter occurrence in a template.
type Placeholder struct {
	// Name is empty for anonymous placeholders.
	Name string
	// Index counts anonymous placeholders from 1; it is 0 for named ones.
	Index int
	// Start and End delimit the raw token text in the template.
	Start, End int
}

// Label is the text shown when asking for a value.
func (p Placeholder) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("parameter %d", p.Index)
}

// Prompter supplies a value for a placeholder.
type Prompter interface {
	Prompt(p Placeholder) (string, error)
}

// Engine substitutes placeholders using a Prompter. It implements hoardtypes.Resolver.
type Engine struct {
	Open     string
	Close    string
	Prompter Prompter
}

// NewEngine creates an engine. Empty tokens fall back to the defaults.
func NewEngine(open, close string, prompter Prompter) *Engine {
	if open == "" {
		open = DefaultOpenToken
	}
	if close == "" {
		close = DefaultCloseToken
	}
	return &Engine{Open: open, Close: close, Prompter: prompter}
}

// Placeholders lists the placeholders of template in order of appearance.
func (e *Engine) Placeholders(template string) ([]Placeholder, error) {
	if e.Open == "" {
		return nil, ErrEmptyToken
	}

	var result []Placeholder
	anonymous := 0
	pos := 0
	for {
		i := strings.Index(template[pos:], e.Open)
		if i < 0 {
			return result, nil
		}
		start := pos + i
		afterOpen := start + len(e.Open)

		if name, ok := e.namedAt(template[afterOpen:]); ok {
			end := afterOpen + len(name) + len(e.Close)
			result = append(result, Placeholder{Name: name, Start: start, End: end})
			pos = end
			continue
		}

		anonymous++
		result = append(result, Placeholder{Index: anonymous, Start: start, End: afterOpen})
		pos = afterOpen
	}
}

// namedAt reports the placeholder name when rest starts with name+close.
func (e *Engine) namedAt(rest string) (string, bool) {
	if e.Close == "" {
		return "", false
	}
	j := strings.Index(rest, e.Close)
	if j <= 0 {
		return "", false
	}
	name := rest[:j]
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 || strings.Contains(name, e.Open) {
		return "", false
	}
	return name, true
}

// Resolve returns a copy of command with every placeholder replaced by the
// prompter's value. Prompter errors are returned unchanged.
func (e *Engine) Resolve(command hoardtypes.Command) (hoardtypes.Command, error) {
	placeholders, err := e.Placeholders(command.Command)
	if err != nil {
		return hoardtypes.Command{}, err
	}
	if len(placeholders) == 0 {
		return command.Clone(), nil
	}
	if e.Prompter == nil {
		return hoardtypes.Command{}, fmt.Errorf("command %q has %d parameters but no way to ask for them", command.Name, len(placeholders))
	}

	named := make(map[string]string)
	var b strings.Builder
	last := 0
	for _, p := range placeholders {
		b.WriteString(command.Command[last:p.Start])
		last = p.End

		if value, ok := named[p.Name]; ok && p.Name != "" {
			b.WriteString(value)
			continue
		}
		value, err := e.Prompter.Prompt(p)
		if err != nil {
			return hoardtypes.Command{}, err
		}
		if p.Name != "" {
			named[p.Name] = value
		}
		b.WriteString(value)
	}
	b.WriteString(command.Command[last:])

	logger.Debug("Resolved command parameters", "command", command.Name, "parameters", len(placeholders))
	return command.WithCommand(b.String()), nil
}
