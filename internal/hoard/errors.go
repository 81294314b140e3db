package hoard

import (
	"fmt"
	"strings"
)

// NotFoundError reports a missing command or namespace together with close
// matches. It unwraps to the trove error, so errors.Is(err, trove.ErrNotFound) holds.
type NotFoundError struct {
	Kind        string
	Name        string
	Suggestions []string
	Err         error
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func (a *App) commandNotFound(name string, err error) error {
	names := make([]string, 0, a.trove.Len())
	for _, c := range a.trove.Commands() {
		names = append(names, c.Name)
	}
	return &NotFoundError{Kind: "command", Name: name, Suggestions: a.suggest.Suggest(name, names), Err: err}
}

func (a *App) namespaceNotFound(namespace string, err error) error {
	return &NotFoundError{Kind: "namespace", Name: namespace, Suggestions: a.suggest.Suggest(namespace, a.trove.Namespaces()), Err: err}
}
