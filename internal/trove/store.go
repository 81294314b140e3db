package trove

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"hoard/internal/logger"
)

// Store reads and writes a trove document on a filesystem.
type Store struct {
	fs          afero.Fs
	path        string
	diagnostics io.Writer
	opts        []Option
}

// NewStore creates a store for the trove file at path. Diagnostics about a
// corrupt trove file are written to diagnostics; opts are applied to every
// trove the store loads.
func NewStore(fs afero.Fs, path string, diagnostics io.Writer, opts ...Option) *Store {
	return &Store{
		fs:          fs,
		path:        path,
		diagnostics: diagnostics,
		opts:        opts,
	}
}

// logs returns a component logger following the current logger configuration.
func (s *Store) logs() *log.Logger {
	return logger.NewStyledLogger("store")
}

// Path returns the location of the trove file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the trove file. A missing or unreadable file yields a fresh empty trove.
func (s *Store) Load() *Trove {
	if s.path == "" {
		s.logs().Debug("No trove path available, creating a new trove")
		return New(s.opts...)
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logs().Debug("No trove file found", "path", s.path)
		} else {
			s.logs().Warn("Unable to read trove file", "path", s.path, "error", err)
		}
		return New(s.opts...)
	}

	return Load(data, s.diagnostics, s.opts...)
}

// LoadFrom decodes the trove file at path with the store's options, without
// the empty-trove fallback. It is used for imports where a bad file must be reported.
func (s *Store) LoadFrom(path string) (*Trove, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trove %s: %w", path, err)
	}
	t, err := Decode(data, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load trove %s: %w", path, err)
	}
	return t, nil
}

// Save writes the whole trove to the store's path.
func (s *Store) Save(t *Trove) error {
	return s.SaveTo(s.path, t)
}

// SaveTo writes the whole trove to path, creating parent directories.
func (s *Store) SaveTo(path string, t *Trove) error {
	if path == "" {
		return fmt.Errorf("no trove path configured")
	}

	data, err := Encode(t)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create trove directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trove %s: %w", path, err)
	}

	s.logs().Debug("Saved trove", "path", path, "commands", t.Len())
	return nil
}
