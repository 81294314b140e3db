package trove

import (
	"sort"

	"gopkg.in/yaml.v3"

	"hoard/pkg/hoardtypes"
)

// NamespaceSet is the set of namespaces recorded in a trove document.
// It serialises as a sorted YAML sequence.
type NamespaceSet map[string]struct{}

// NewNamespaceSet builds a set from the given namespaces.
func NewNamespaceSet(namespaces ...string) NamespaceSet {
	set := make(NamespaceSet, len(namespaces))
	for _, ns := range namespaces {
		set.Add(ns)
	}
	return set
}

// Add inserts ns, returning true if it was not present yet.
func (s NamespaceSet) Add(ns string) bool {
	if _, ok := s[ns]; ok {
		return false
	}
	s[ns] = struct{}{}
	return true
}

// Contains reports whether ns is in the set.
func (s NamespaceSet) Contains(ns string) bool {
	_, ok := s[ns]
	return ok
}

// Sorted returns the namespaces in lexicographic order.
func (s NamespaceSet) Sorted() []string {
	result := make([]string, 0, len(s))
	for ns := range s {
		result = append(result, ns)
	}
	sort.Strings(result)
	return result
}

// MarshalYAML implements yaml.Marshaler.
func (s NamespaceSet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *NamespaceSet) UnmarshalYAML(node *yaml.Node) error {
	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*s = NewNamespaceSet(list...)
	return nil
}

// namespacesOf derives the distinct namespaces of commands, sorted.
func namespacesOf(commands []hoardtypes.Command) []string {
	set := make(NamespaceSet)
	for _, c := range commands {
		set.Add(c.Namespace)
	}
	return set.Sorted()
}
