package services

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"hoard/internal/logger"
	"hoard/pkg/hoardtypes"
)

// EditorRunner launches editor on path and waits for it to exit.
type EditorRunner func(editor, path string) error

// EditorService provides external editor integration for hoard.
type EditorService struct {
	initialized bool
	editor      string
	fs          afero.Fs
	tempDir     string
	run         EditorRunner
}

// EditorOption configures an EditorService.
type EditorOption func(*EditorService)

// WithEditorRunner replaces the process launcher, mainly for tests.
func WithEditorRunner(run EditorRunner) EditorOption {
	return func(e *EditorService) {
		if run != nil {
			e.run = run
		}
	}
}

// WithEditorFs sets the filesystem the temporary file lives on. The editor is
// an external process, so anything but the OS filesystem only makes sense
// together with WithEditorRunner.
func WithEditorFs(fs afero.Fs) EditorOption {
	return func(e *EditorService) {
		if fs != nil {
			e.fs = fs
		}
	}
}

// NewEditorService creates a new EditorService using the given editor command.
// An empty editor falls back to $EDITOR and common editors found in PATH.
func NewEditorService(editor string, opts ...EditorOption) *EditorService {
	e := &EditorService{
		editor: editor,
		fs:     afero.NewOsFs(),
		run:    executeEditor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the service name "editor" for registration.
func (e *EditorService) Name() string {
	return "editor"
}

// Initialize creates the temporary directory for editor files.
func (e *EditorService) Initialize() error {
	if e.initialized {
		return nil
	}

	tempDir, err := afero.TempDir(e.fs, "", "hoard-editor-")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	e.tempDir = tempDir
	e.initialized = true

	logger.Debug("EditorService initialized", "tempDir", tempDir)
	return nil
}

// editableCommand is the document a user edits; it leaves out nothing but
// makes the field order stable.
type editableCommand struct {
	Name        string   `yaml:"name"`
	Namespace   string   `yaml:"namespace"`
	Command     string   `yaml:"command"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

// MarshalCommand renders the YAML document the editor shows for cmd.
func MarshalCommand(cmd hoardtypes.Command) (string, error) {
	tags := cmd.Tags
	if tags == nil {
		tags = []string{}
	}
	data, err := yaml.Marshal(editableCommand{
		Name:        cmd.Name,
		Namespace:   cmd.Namespace,
		Command:     cmd.Command,
		Description: cmd.Description,
		Tags:        tags,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode command: %w", err)
	}
	return string(data), nil
}

// UnmarshalCommand parses an edited document back into a command.
func UnmarshalCommand(content string) (hoardtypes.Command, error) {
	var edited editableCommand
	if err := yaml.Unmarshal([]byte(content), &edited); err != nil {
		return hoardtypes.Command{}, fmt.Errorf("failed to parse edited command: %w", err)
	}
	return hoardtypes.Command{
		Name:        strings.TrimSpace(edited.Name),
		Namespace:   strings.TrimSpace(edited.Namespace),
		Command:     edited.Command,
		Description: edited.Description,
		Tags:        hoardtypes.NormalizeTags(edited.Tags),
	}, nil
}

// EditCommand opens cmd as YAML in the editor and returns the edited command.
func (e *EditorService) EditCommand(cmd hoardtypes.Command) (hoardtypes.Command, error) {
	content, err := MarshalCommand(cmd)
	if err != nil {
		return hoardtypes.Command{}, err
	}

	edited, err := e.OpenEditorWithContent(content)
	if err != nil {
		return hoardtypes.Command{}, err
	}

	return UnmarshalCommand(edited)
}

// OpenEditorWithContent opens the editor with initial content and returns the edited content.
func (e *EditorService) OpenEditorWithContent(initialContent string) (string, error) {
	if !e.initialized {
		return "", fmt.Errorf("editor service not initialized")
	}

	editorCmd := e.getEditorCommand()
	if editorCmd == "" {
		return "", fmt.Errorf("no editor configured or found")
	}

	tempFile := filepath.Join(e.tempDir, "hoard-command.yaml")
	if err := afero.WriteFile(e.fs, tempFile, []byte(initialContent), 0600); err != nil {
		return "", fmt.Errorf("failed to write initial content: %w", err)
	}
	defer func() {
		if err := e.fs.Remove(tempFile); err != nil {
			logger.Error("Failed to remove temp file", "error", err, "file", tempFile)
		}
	}()

	logger.Debug("Opening editor with content", "editor", editorCmd, "file", tempFile, "contentLength", len(initialContent))

	logger.ServiceOperation(e.Name(), "open", "editor", editorCmd)
	if err := e.run(editorCmd, tempFile); err != nil {
		return "", fmt.Errorf("editor execution failed: %w", err)
	}

	content, err := afero.ReadFile(e.fs, tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to read editor content: %w", err)
	}

	contentStr := strings.TrimSpace(string(content))
	logger.Debug("Editor content retrieved", "length", len(contentStr))

	return contentStr, nil
}

// getEditorCommand determines which editor to use based on configuration and environment.
func (e *EditorService) getEditorCommand() string {
	if e.editor != "" {
		return e.editor
	}

	if editor := os.Getenv("EDITOR"); editor != "" {
		logger.Debug("Using EDITOR environment variable", "editor", editor)
		return editor
	}

	commonEditors := []string{"nvim", "vim", "nano", "vi"}
	for _, editor := range commonEditors {
		if _, err := exec.LookPath(editor); err == nil {
			logger.Debug("Found editor in PATH", "editor", editor)
			return editor
		}
	}

	logger.Debug("No editor found")
	return ""
}

// executeEditor runs the editor command and waits for it to complete.
func executeEditor(editorCmd, filePath string) error {
	// Split the editor command to handle arguments
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	cmd := exec.Command(parts[0], append(parts[1:], filePath)...)

	// Editors are interactive, so they get the terminal
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor command failed: %w", err)
	}

	return nil
}

// Cleanup removes the temporary directory and files.
func (e *EditorService) Cleanup() error {
	if e.tempDir != "" {
		if err := e.fs.RemoveAll(e.tempDir); err != nil {
			logger.Error("Failed to cleanup editor temp directory", "error", err, "tempDir", e.tempDir)
			return err
		}
		logger.Debug("EditorService cleanup completed", "tempDir", e.tempDir)
		e.tempDir = ""
		e.initialized = false
	}
	return nil
}
