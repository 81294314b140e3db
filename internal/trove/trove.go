// Package trove implements the in-memory collection manager for hoard.
// A Trove owns an ordered list of commands and a namespace cache, and
// resolves identity collisions, duplicates and merges between collections.
// A Trove is not safe for concurrent use; one process loads it, mutates it
// synchronously and persists it wholesale.
package trove

import (
	"fmt"
	"strings"

	"hoard/internal/logger"
	"hoard/internal/version"
	"hoard/pkg/hoardtypes"
)

// maxSuffixAttempts bounds how often the suffixer is asked for a free name.
const maxSuffixAttempts = 64

// Trove is a treasure trove of commands.
type Trove struct {
	version    string
	commands   []hoardtypes.Command
	namespaces NamespaceSet
	suffixer   Suffixer
}

// Option configures a Trove.
type Option func(*Trove)

// WithSuffixer sets the policy used to rename a colliding command when it is
// added without overwriting.
func WithSuffixer(s Suffixer) Option {
	return func(t *Trove) {
		if s != nil {
			t.suffixer = s
		}
	}
}

// WithVersion overrides the producer version recorded in the trove.
func WithVersion(v string) Option {
	return func(t *Trove) {
		t.version = v
	}
}

// New creates an empty trove stamped with the running hoard version.
func New(opts ...Option) *Trove {
	t := &Trove{
		version:    version.GetVersion(),
		commands:   []hoardtypes.Command{},
		namespaces: make(NamespaceSet),
		suffixer:   RandomSuffix,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FromCommands creates a trove holding a copy of commands. The namespace
// cache is derived from the commands.
func FromCommands(commands []hoardtypes.Command, opts ...Option) *Trove {
	t := New(opts...)
	for _, c := range commands {
		t.commands = append(t.commands, c.Clone())
	}
	t.syncNamespaces()
	return t
}

// Version returns the hoard version the trove was created with.
func (t *Trove) Version() string {
	return t.version
}

// Len returns the number of stored commands.
func (t *Trove) Len() int {
	return len(t.commands)
}

// IsEmpty reports whether the trove holds no commands.
func (t *Trove) IsEmpty() bool {
	return len(t.commands) == 0
}

// Commands returns a copy of the stored commands in storage order.
func (t *Trove) Commands() []hoardtypes.Command {
	result := make([]hoardtypes.Command, len(t.commands))
	for i, c := range t.commands {
		result[i] = c.Clone()
	}
	return result
}

// CachedNamespaces returns the namespace cache as persisted in the document.
// Prefer Namespaces, which is derived from the commands.
func (t *Trove) CachedNamespaces() []string {
	return t.namespaces.Sorted()
}

// Namespaces returns the distinct namespaces of the stored commands, sorted.
func (t *Trove) Namespaces() []string {
	return namespacesOf(t.commands)
}

// Get returns the first command with the given name in storage order.
func (t *Trove) Get(name string) (hoardtypes.Command, bool) {
	for _, c := range t.commands {
		if c.Name == name {
			return c.Clone(), true
		}
	}
	return hoardtypes.Command{}, false
}

// CollisionOf returns the first stored command sharing namespace and name with command.
func (t *Trove) CollisionOf(command hoardtypes.Command) (hoardtypes.Command, bool) {
	for _, c := range t.commands {
		if c.Collides(command) {
			return c.Clone(), true
		}
	}
	return hoardtypes.Command{}, false
}

// IsDuplicate reports whether a stored command has the same namespace, name and body.
func (t *Trove) IsDuplicate(command hoardtypes.Command) bool {
	for _, c := range t.commands {
		if c.SameAs(command) {
			return true
		}
	}
	return false
}

// AddCommand stores command and reports whether the trove changed.
//
// A duplicate of a stored command is ignored. A command colliding on
// namespace and name replaces the stored one when overwriteColliding is set,
// and is otherwise stored under a new name produced by the suffixer.
func (t *Trove) AddCommand(command hoardtypes.Command, overwriteColliding bool) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, fmt.Errorf("cannot save command: %w: %v", ErrInvalidCommand, err)
	}
	command = command.Clone()

	colliding, collides := t.CollisionOf(command)
	switch {
	case collides && t.IsDuplicate(command):
		logger.TroveOperation("add", "command", command.Key(), "result", "duplicate")
		return false, nil
	case collides && overwriteColliding:
		t.removeWhere(func(c hoardtypes.Command) bool { return c.Equal(colliding) })
		t.commands = append(t.commands, command)
		logger.TroveOperation("add", "command", command.Key(), "result", "overwritten")
	case collides:
		renamed, err := t.freeName(command)
		if err != nil {
			return false, err
		}
		t.commands = append(t.commands, renamed)
		logger.TroveOperation("add", "command", command.Key(), "result", "renamed", "name", renamed.Name)
	default:
		t.namespaces.Add(command.Namespace)
		t.commands = append(t.commands, command)
		logger.TroveOperation("add", "command", command.Key(), "result", "added")
	}

	t.syncNamespaces()
	return true, nil
}

// freeName asks the suffixer for names until one does not collide.
func (t *Trove) freeName(command hoardtypes.Command) (hoardtypes.Command, error) {
	for i := 0; i < maxSuffixAttempts; i++ {
		candidate := command.WithName(t.suffixer(command.Name))
		if candidate.Name == command.Name {
			continue
		}
		if _, collides := t.CollisionOf(candidate); !collides {
			return candidate, nil
		}
	}
	return hoardtypes.Command{}, fmt.Errorf("no free name found for %s after %d attempts", command.Key(), maxSuffixAttempts)
}

// RemoveCommand removes every command with the given name, in any namespace.
func (t *Trove) RemoveCommand(name string) error {
	if removed := t.removeWhere(func(c hoardtypes.Command) bool { return c.Name == name }); removed == 0 {
		return fmt.Errorf("command %q: %w", name, ErrNotFound)
	}
	t.syncNamespaces()
	logger.TroveOperation("remove", "name", name)
	return nil
}

// RemoveNamespaceCommands removes every command in namespace.
func (t *Trove) RemoveNamespaceCommands(namespace string) error {
	if removed := t.removeWhere(func(c hoardtypes.Command) bool { return c.Namespace == namespace }); removed == 0 {
		return fmt.Errorf("no commands in namespace %q: %w", namespace, ErrNotFound)
	}
	t.syncNamespaces()
	logger.TroveOperation("remove_namespace", "namespace", namespace)
	return nil
}

// PickCommand finds the first command named name and resolves its parameters.
// When several namespaces hold the same name, the first one stored wins.
// Errors from resolver are returned unchanged.
func (t *Trove) PickCommand(name string, resolver hoardtypes.Resolver) (hoardtypes.Command, error) {
	command, ok := t.Get(name)
	if !ok {
		return hoardtypes.Command{}, fmt.Errorf("no matching command found with name %q: %w", name, ErrNotFound)
	}
	if resolver == nil {
		return command, nil
	}
	return resolver.Resolve(command)
}

// UpdateCommandByName replaces every stored command named command.Name with command.
func (t *Trove) UpdateCommandByName(command hoardtypes.Command) *Trove {
	for i := range t.commands {
		if t.commands[i].Name == command.Name {
			t.commands[i] = command.Clone()
		}
	}
	t.syncNamespaces()
	return t
}

// MergeTrove adds every command of other, overwriting collisions, and
// reports whether this trove changed. Every command is processed.
func (t *Trove) MergeTrove(other *Trove) bool {
	dirty := false
	for _, c := range other.commands {
		changed, err := t.AddCommand(c, true)
		if err != nil {
			logger.Warn("Skipping command during merge", "command", c.Key(), "error", err)
			continue
		}
		dirty = changed || dirty
	}
	return dirty
}

// Filter returns the commands whose name, namespace or one of the tags
// contains query, case-insensitively. An empty query returns every command.
func (t *Trove) Filter(query string) []hoardtypes.Command {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return t.Commands()
	}

	var matches []hoardtypes.Command
	for _, c := range t.commands {
		if matchesQuery(c, query) {
			matches = append(matches, c.Clone())
		}
	}
	return matches
}

func matchesQuery(c hoardtypes.Command, query string) bool {
	if strings.Contains(strings.ToLower(c.Name), query) || strings.Contains(strings.ToLower(c.Namespace), query) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// removeWhere drops the matching commands, keeping the order of the rest.
func (t *Trove) removeWhere(match func(hoardtypes.Command) bool) int {
	kept := t.commands[:0]
	removed := 0
	for _, c := range t.commands {
		if match(c) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	t.commands = kept
	return removed
}

// syncNamespaces rebuilds the namespace cache from the stored commands.
func (t *Trove) syncNamespaces() {
	t.namespaces = NewNamespaceSet(namespacesOf(t.commands)...)
}
