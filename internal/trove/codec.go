package trove

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"hoard/internal/logger"
	"hoard/internal/version"
	"hoard/pkg/hoardtypes"
)

// document is the persisted form of a trove.
type document struct {
	Version    string               `yaml:"version"`
	Commands   []hoardtypes.Command `yaml:"commands"`
	Namespaces NamespaceSet         `yaml:"namespaces"`
}

// Decode parses a YAML trove document. An empty document yields an empty trove.
func Decode(data []byte, opts ...Option) (*Trove, error) {
	t := New(opts...)
	if len(bytes.TrimSpace(data)) == 0 {
		return t, nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if doc.Version != "" {
		t.version = doc.Version
	}
	if version.IsOlder(t.version) {
		logger.Debug("Trove was written by an older hoard", "trove_version", t.version, "running_version", version.GetVersion())
	}
	if doc.Commands != nil {
		t.commands = doc.Commands
	}
	if doc.Namespaces != nil {
		t.namespaces = doc.Namespaces
	}
	return t, nil
}

// Encode serialises the trove as a YAML document.
func Encode(t *Trove) ([]byte, error) {
	doc := document{
		Version:    t.version,
		Commands:   t.commands,
		Namespaces: t.namespaces,
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode trove: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode trove: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAML returns the YAML document as a string.
func (t *Trove) ToYAML() (string, error) {
	data, err := Encode(t)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EncodeJSON serialises the commands as an indented JSON array.
func EncodeJSON(commands []hoardtypes.Command) ([]byte, error) {
	if commands == nil {
		commands = []hoardtypes.Command{}
	}
	data, err := json.MarshalIndent(commands, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode commands as JSON: %w", err)
	}
	return data, nil
}

// Load decodes data and never fails: a malformed document is reported to
// diagnostics and replaced by a fresh empty trove. A nil diagnostics writer
// discards the report.
func Load(data []byte, diagnostics io.Writer, opts ...Option) *Trove {
	t, err := Decode(data, opts...)
	if err == nil {
		return t
	}

	logger.Error("Failed to parse trove, starting with an empty one", "error", err)
	if diagnostics != nil {
		_, _ = fmt.Fprintln(diagnostics, "The supplied trove file is invalid!")
		_, _ = fmt.Fprintln(diagnostics, strings.TrimSpace(err.Error()))
	}
	return New(opts...)
}
