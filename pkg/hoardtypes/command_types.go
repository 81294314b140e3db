// Package hoardtypes defines the command record stored in a hoard trove.
// This file contains the Command type together with its identity, equivalence
// and validity rules.
package hoardtypes

import (
	"fmt"
	"strings"
)

// DefaultNamespace is used for commands created without an explicit namespace.
const DefaultNamespace = "default"

// Command is one stored snippet: a name, the namespace it lives in, the shell
// command template, a free-form description and an ordered list of tags.
// Commands are treated as immutable values; the With* helpers return copies.
type Command struct {
	Name        string   `yaml:"name" json:"name"`
	Namespace   string   `yaml:"namespace" json:"namespace"`
	Command     string   `yaml:"command" json:"command"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags" json:"tags"`
}

// Key identifies a command for collision purposes.
type Key struct {
	Namespace string
	Name      string
}

// String renders the key as namespace/name.
func (k Key) String() string {
	return k.Namespace + "/" + k.Name
}

// Key returns the (namespace, name) identity of the command.
func (c Command) Key() Key {
	return Key{Namespace: c.Namespace, Name: c.Name}
}

// Collides reports whether both commands share namespace and name.
func (c Command) Collides(other Command) bool {
	return c.Key() == other.Key()
}

// SameAs reports whether both commands are the same command: equal namespace,
// name and command body. Description and tags are ignored.
func (c Command) SameAs(other Command) bool {
	return c.Collides(other) && c.Command == other.Command
}

// Equal compares every field, tags included.
func (c Command) Equal(other Command) bool {
	if !c.SameAs(other) || c.Description != other.Description || len(c.Tags) != len(other.Tags) {
		return false
	}
	for i := range c.Tags {
		if c.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}

// Validate returns an error describing why the command cannot be stored.
func (c Command) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if strings.ContainsAny(c.Name, " \t\n\r") {
		return fmt.Errorf("command name %q cannot contain whitespace", c.Name)
	}
	if strings.TrimSpace(c.Command) == "" {
		return fmt.Errorf("command %q has an empty command body", c.Name)
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (c Command) IsValid() bool {
	return c.Validate() == nil
}

// TagsAsString joins the tags for display.
func (c Command) TagsAsString() string {
	return strings.Join(c.Tags, ", ")
}

// Clone returns a deep copy of the command.
func (c Command) Clone() Command {
	if c.Tags != nil {
		tags := make([]string, len(c.Tags))
		copy(tags, c.Tags)
		c.Tags = tags
	}
	return c
}

// WithName returns a copy with the given name.
func (c Command) WithName(name string) Command {
	c = c.Clone()
	c.Name = name
	return c
}

// WithNamespace returns a copy with the given namespace.
func (c Command) WithNamespace(namespace string) Command {
	c = c.Clone()
	c.Namespace = namespace
	return c
}

// WithCommand returns a copy with the given command template.
func (c Command) WithCommand(command string) Command {
	c = c.Clone()
	c.Command = command
	return c
}

// WithDescription returns a copy with the given description.
func (c Command) WithDescription(description string) Command {
	c = c.Clone()
	c.Description = description
	return c
}

// WithTags returns a copy carrying the given tags. Empty and duplicate tags are dropped.
func (c Command) WithTags(tags ...string) Command {
	c = c.Clone()
	c.Tags = NormalizeTags(tags)
	return c
}

// NormalizeTags trims tags, splits comma separated values and drops empty
// and repeated entries while keeping the first occurrence order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	result := []string{}
	for _, raw := range tags {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			result = append(result, tag)
		}
	}
	return result
}
