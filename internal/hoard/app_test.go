package hoard

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoard/internal/logger"
	"hoard/internal/services"
	"hoard/internal/testutils"
	"hoard/internal/trove"
	"hoard/pkg/hoardtypes"
)

const (
	testHome   = "/home/tester/.hoard"
	handMarker = "# written by hand\n"
)

var trovePath = filepath.Join(testHome, "trove.yml")

type harness struct {
	fs     afero.Fs
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	opts   Options
}

func cleanEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"HOARD_HOME", "HOARD_TROVE_PATH", "HOARD_PARAMETER_TOKEN",
		"HOARD_PARAMETER_ENDING_TOKEN", "HOARD_EDITOR", "HOARD_THEME", "HOARD_LOG_LEVEL", "VISUAL", "EDITOR"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

// newHarness prepares a filesystem holding troveDoc (when not empty) and
// options writing to buffers.
func newHarness(t *testing.T, troveDoc string) *harness {
	t.Helper()
	cleanEnv(t)

	h := &harness{
		fs:     afero.NewMemMapFs(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	if troveDoc != "" {
		require.NoError(t, afero.WriteFile(h.fs, trovePath, []byte(troveDoc), 0644))
	}
	h.opts = Options{
		Fs:       h.fs,
		HomeDir:  testHome,
		Stdin:    strings.NewReader(""),
		Stdout:   h.stdout,
		Stderr:   h.stderr,
		Plain:    true,
		Suffixer: testutils.SequenceSuffixer(),
	}
	return h
}

func (h *harness) app(t *testing.T) *App {
	t.Helper()
	a, err := New(h.opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// saved decodes the trove file as currently stored.
func (h *harness) saved(t *testing.T) *trove.Trove {
	t.Helper()
	data, err := afero.ReadFile(h.fs, trovePath)
	require.NoError(t, err)
	decoded, err := trove.Decode(data)
	require.NoError(t, err)
	return decoded
}

// untouched reports whether the hand written fixture is still on disk.
func (h *harness) untouched(t *testing.T) bool {
	t.Helper()
	data, err := afero.ReadFile(h.fs, trovePath)
	require.NoError(t, err)
	return strings.HasPrefix(string(data), handMarker)
}

func basicTrove() string {
	return handMarker + testutils.NewTestDataGenerator().TroveYAML()
}

func TestNew_MissingTrove(t *testing.T) {
	h := newHarness(t, "")
	a := h.app(t)

	assert.True(t, a.Trove().IsEmpty())
	assert.Equal(t, []string{"clipboard", "diff", "editor", "markdown", "suggestion"}, a.Services().Names())

	require.NoError(t, a.List("", ListTable))
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "Your trove is empty")

	exists, err := afero.Exists(h.fs, trovePath)
	require.NoError(t, err)
	assert.False(t, exists, "reading never writes")
}

func TestNew_CorruptTrove(t *testing.T) {
	h := newHarness(t, "commands: [unclosed")
	a := h.app(t)

	assert.True(t, a.Trove().IsEmpty())
	assert.Contains(t, h.stderr.String(), "The supplied trove file is invalid!")
}

func TestNew_ConfigLogLevelAppliesBeforeLoad(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, afero.WriteFile(h.fs, filepath.Join(testHome, "config.yaml"), []byte("log_level: debug\n"), 0644))
	require.NoError(t, logger.Configure("", ""))
	defer func() { _ = logger.Configure("warn", "") }()
	var logs bytes.Buffer
	logger.SetOutput(&logs)

	h.app(t)

	assert.Contains(t, logs.String(), "No trove file found")
}

func TestNewCommand(t *testing.T) {
	h := newHarness(t, "")
	a := h.app(t)

	stored, err := a.NewCommand(hoardtypes.Command{Name: "hello", Command: "echo hello", Tags: []string{"demo, shell"}}, false)
	require.NoError(t, err)

	assert.Equal(t, hoardtypes.DefaultNamespace, stored.Namespace)
	assert.Equal(t, []string{"demo", "shell"}, stored.Tags)
	assert.Contains(t, h.stderr.String(), "✓ Saved default/hello")

	saved := h.saved(t)
	require.Equal(t, 1, saved.Len())
	assert.Equal(t, []string{"default"}, saved.CachedNamespaces())
}

func TestNewCommand_Collision(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	stored, err := a.NewCommand(hoardtypes.Command{Name: "deploy", Namespace: "ops", Command: "helm upgrade #release!"}, false)
	require.NoError(t, err)

	assert.Equal(t, "deploy-1", stored.Name)
	assert.Contains(t, h.stderr.String(), "ops/deploy already exists, saved as ops/deploy-1")
	assert.Equal(t, 4, h.saved(t).Len())
}

func TestNewCommand_Overwrite(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	stored, err := a.NewCommand(hoardtypes.Command{Name: "deploy", Namespace: "ops", Command: "helm upgrade #release!"}, true)
	require.NoError(t, err)
	assert.Equal(t, "deploy", stored.Name)

	saved := h.saved(t)
	assert.Equal(t, 3, saved.Len())
	cmd, ok := saved.Get("deploy")
	require.True(t, ok)
	assert.Equal(t, "helm upgrade #release!", cmd.Command)
}

func TestNewCommand_DuplicateDoesNotSave(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	_, err := a.NewCommand(hoardtypes.Command{Name: "deploy", Namespace: "ops", Command: "kubectl apply -f #file!", Description: "other"}, false)
	require.NoError(t, err)

	assert.True(t, h.untouched(t))
	assert.Contains(t, h.stderr.String(), "already exists")
}

func TestNewCommand_Invalid(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	_, err := a.NewCommand(hoardtypes.Command{Name: "two words", Command: "echo"}, false)
	assert.ErrorIs(t, err, trove.ErrInvalidCommand)
	assert.True(t, h.untouched(t))
}

func TestList(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		format   ListFormat
		contains []string
		absent   []string
	}{
		{name: "table", format: ListTable, contains: []string{"Name", "deploy", "kubectl logs -f #pod!", "python, http"}},
		{name: "filtered table", filter: "python", format: ListTable, contains: []string{"serve"}, absent: []string{"deploy"}},
		{name: "simple", format: ListSimple, contains: []string{"ops/deploy\nops/logs\ndev/serve\n"}},
		{name: "json", filter: "logs", format: ListJSON, contains: []string{`"name": "logs"`, `"namespace": "ops"`}, absent: []string{"deploy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, basicTrove())
			a := h.app(t)

			require.NoError(t, a.List(tt.filter, tt.format))
			for _, s := range tt.contains {
				assert.Contains(t, h.stdout.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, h.stdout.String(), s)
			}
		})
	}
}

func TestList_NoMatch(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	require.NoError(t, a.List("terraform", ListTable))
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), `No commands match "terraform"`)
}

func TestShow(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	require.NoError(t, a.Show("logs"))
	assert.Contains(t, h.stdout.String(), "kubectl logs -f #pod!")
	assert.Contains(t, h.stdout.String(), "Follow pod logs")

	err := a.Show("log")
	assert.ErrorIs(t, err, trove.ErrNotFound)
}

func TestPick(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		params   []string
		stdin    string
		expected string
	}{
		{name: "named value", command: "deploy", params: []string{"file=app.yaml"}, expected: "kubectl apply -f app.yaml"},
		{name: "positional value", command: "serve", params: []string{"8080"}, expected: "python -m http.server 8080"},
		{name: "prompted value", command: "logs", stdin: "api-0\n", expected: "kubectl logs -f api-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, basicTrove())
			h.opts.Stdin = strings.NewReader(tt.stdin)
			a := h.app(t)

			picked, err := a.Pick(tt.command, tt.params, false)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, picked)
			assert.Equal(t, tt.expected+"\n", h.stdout.String(), "stdout carries only the command")
			assert.True(t, h.untouched(t))
		})
	}
}

func TestPick_PromptShowsLabel(t *testing.T) {
	h := newHarness(t, basicTrove())
	h.opts.Stdin = strings.NewReader("api-0\n")
	a := h.app(t)

	_, err := a.Pick("logs", nil, false)
	require.NoError(t, err)
	assert.Contains(t, h.stderr.String(), "pod")
}

func TestPick_NotFoundSuggests(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	_, err := a.Pick("delpoy", nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, trove.ErrNotFound)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, []string{"deploy"}, notFound.Suggestions)
	assert.Contains(t, err.Error(), "did you mean: deploy?")
}

func TestPick_MissingValue(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	_, err := a.Pick("deploy", nil, false)
	assert.Error(t, err)
	assert.Empty(t, h.stdout.String())
}

type memoryClipboard struct {
	initErr error
	content string
}

func (m *memoryClipboard) Init() error { return m.initErr }

func (m *memoryClipboard) Write(text string) error {
	m.content = text
	return nil
}

func TestPick_Copy(t *testing.T) {
	h := newHarness(t, basicTrove())
	board := &memoryClipboard{}
	h.opts.Clipboard = board
	a := h.app(t)

	_, err := a.Pick("serve", []string{"9000"}, true)
	require.NoError(t, err)
	assert.Equal(t, "python -m http.server 9000", board.content)
	assert.Contains(t, h.stderr.String(), "Copied 26 characters to clipboard")
}

func TestPick_CopyUnavailable(t *testing.T) {
	h := newHarness(t, basicTrove())
	h.opts.Clipboard = &memoryClipboard{initErr: errors.New("no display")}
	a := h.app(t)

	_, err := a.Pick("serve", []string{"9000"}, true)
	require.NoError(t, err)
	assert.Contains(t, h.stderr.String(), "Failed to copy to clipboard")
	assert.Equal(t, "python -m http.server 9000\n", h.stdout.String())
}

func TestRemove(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	require.NoError(t, a.Remove("logs"))
	saved := h.saved(t)
	assert.Equal(t, 2, saved.Len())
	_, ok := saved.Get("logs")
	assert.False(t, ok)

	err := a.Remove("logs")
	assert.ErrorIs(t, err, trove.ErrNotFound)
}

func TestRemove_NotFoundDoesNotSave(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	require.Error(t, a.Remove("missing"))
	assert.True(t, h.untouched(t))
}

func TestRemoveNamespace(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	require.NoError(t, a.RemoveNamespace("ops"))
	saved := h.saved(t)
	assert.Equal(t, 1, saved.Len())
	assert.Equal(t, []string{"dev"}, saved.CachedNamespaces())

	err := a.RemoveNamespace("op")
	assert.ErrorIs(t, err, trove.ErrNotFound)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "namespace", notFound.Kind)
}

// editorWriting returns a runner that replaces the edited file with content.
func editorWriting(fs afero.Fs, content string) services.EditorRunner {
	return func(_ string, path string) error {
		return afero.WriteFile(fs, path, []byte(content), 0600)
	}
}

func TestEdit(t *testing.T) {
	h := newHarness(t, basicTrove())
	t.Setenv("HOARD_EDITOR", "fake")
	h.opts.EditorRunner = editorWriting(h.fs, `name: logs
namespace: ops
command: kubectl logs --tail=100 -f #pod!
description: Follow pod logs
tags: [k8s]
`)
	a := h.app(t)

	require.NoError(t, a.Edit("logs"))
	diff := h.stderr.String()
	assert.Contains(t, diff, "- command:")
	assert.Contains(t, diff, "+ command:")
	assert.Contains(t, diff, "--tail=100")
	assert.Contains(t, diff, "  name: logs")

	cmd, ok := h.saved(t).Get("logs")
	require.True(t, ok)
	assert.Equal(t, "kubectl logs --tail=100 -f #pod!", cmd.Command)
}

func TestEdit_NoChanges(t *testing.T) {
	h := newHarness(t, basicTrove())
	t.Setenv("HOARD_EDITOR", "fake")
	h.opts.EditorRunner = func(string, string) error { return nil }
	a := h.app(t)

	require.NoError(t, a.Edit("serve"))
	assert.Contains(t, h.stderr.String(), "No changes to serve")
	assert.True(t, h.untouched(t))
}

func TestEdit_NameInSeveralNamespaces(t *testing.T) {
	h := newHarness(t, handMarker+`commands:
  - name: deploy
    namespace: ops
    command: helm upgrade #release!
  - name: deploy
    namespace: web
    command: rsync -a dist/ #host!:/srv
`)
	t.Setenv("HOARD_EDITOR", "fake")
	edited := false
	h.opts.EditorRunner = func(string, string) error {
		edited = true
		return nil
	}
	a := h.app(t)

	err := a.Edit("deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ops, web")
	assert.False(t, edited)
	assert.True(t, h.untouched(t))
}

func TestEdit_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{name: "rename", content: "name: other\nnamespace: dev\ncommand: echo\n", message: "cannot rename"},
		{name: "empty command", content: "name: serve\nnamespace: dev\ncommand: \"\"\n", message: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, basicTrove())
			t.Setenv("HOARD_EDITOR", "fake")
			h.opts.EditorRunner = editorWriting(h.fs, tt.content)
			a := h.app(t)

			err := a.Edit("serve")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.True(t, h.untouched(t))
		})
	}
}

func TestImport(t *testing.T) {
	h := newHarness(t, basicTrove())
	require.NoError(t, afero.WriteFile(h.fs, "/tmp/shared.yml", []byte(`version: 1.4.2
commands:
  - name: deploy
    namespace: ops
    command: helm upgrade #release!
  - name: top
    namespace: sys
    command: htop
`), 0644))
	a := h.app(t)

	require.NoError(t, a.Import("/tmp/shared.yml"))
	saved := h.saved(t)
	assert.Equal(t, 4, saved.Len())
	assert.Equal(t, []string{"dev", "ops", "sys"}, saved.Namespaces())
	deploy, _ := saved.Get("deploy")
	assert.Equal(t, "helm upgrade #release!", deploy.Command)
	assert.Contains(t, h.stderr.String(), "Imported 2 commands")
}

func TestImport_NothingNew(t *testing.T) {
	h := newHarness(t, basicTrove())
	require.NoError(t, afero.WriteFile(h.fs, "/tmp/same.yml", []byte(testutils.NewTestDataGenerator().TroveYAML()), 0644))
	a := h.app(t)

	require.NoError(t, a.Import("/tmp/same.yml"))
	assert.True(t, h.untouched(t))
	assert.Contains(t, h.stderr.String(), "Nothing new")
}

func TestImport_Errors(t *testing.T) {
	h := newHarness(t, basicTrove())
	require.NoError(t, afero.WriteFile(h.fs, "/tmp/broken.yml", []byte("commands: [unclosed"), 0644))
	a := h.app(t)

	assert.ErrorIs(t, a.Import("/tmp/broken.yml"), trove.ErrParse)
	assert.Error(t, a.Import("/tmp/missing.yml"))
	assert.True(t, h.untouched(t))
}

func TestExport(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	require.NoError(t, a.Export("/backup/trove.yml"))

	data, err := afero.ReadFile(h.fs, "/backup/trove.yml")
	require.NoError(t, err)
	exported, err := trove.Decode(data)
	require.NoError(t, err)
	testutils.NewAssertionHelpers(t).AssertCommandsEqual(a.Trove().Commands(), exported.Commands())
}

func TestNamespaces(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	assert.Equal(t, []string{"dev", "ops"}, a.Namespaces())
	assert.Equal(t, "dev\nops\n", h.stdout.String())
}

func TestInfo(t *testing.T) {
	h := newHarness(t, basicTrove())
	a := h.app(t)

	report := a.Info()
	assert.Equal(t, testHome, report.Home)
	assert.Equal(t, trovePath, report.TrovePath)
	assert.Equal(t, "1.4.2", report.TroveVersion)
	assert.Equal(t, 3, report.Commands)
	assert.Equal(t, 2, report.Namespaces)
	assert.Contains(t, h.stdout.String(), "trove:         "+trovePath)
}

func TestShellConfig(t *testing.T) {
	h := newHarness(t, "")
	a := h.app(t)

	require.NoError(t, a.ShellConfig("zsh"))
	assert.Contains(t, h.stdout.String(), "hoard")
	assert.Error(t, a.ShellConfig("powershell"))
}

func TestSetParameterToken(t *testing.T) {
	h := newHarness(t, "")
	a := h.app(t)

	require.NoError(t, a.SetParameterToken("@", false))
	require.NoError(t, a.SetParameterToken("?", true))
	assert.Contains(t, h.stderr.String(), `Set parameter ending token to "?"`)

	_, err := a.NewCommand(hoardtypes.Command{Name: "greet", Command: "echo @who? @"}, false)
	require.NoError(t, err)

	picked, err := a.Pick("greet", []string{"who=world", "again"}, false)
	require.NoError(t, err)
	assert.Equal(t, "echo world again", picked)

	reloaded := h.app(t)
	assert.Equal(t, "@", reloaded.Config().Config().ParameterToken)
	assert.Error(t, a.SetParameterToken("", false))
}

func TestTroveOverride(t *testing.T) {
	h := newHarness(t, "")
	h.opts.TrovePath = "/elsewhere/trove.yml"
	a := h.app(t)

	_, err := a.NewCommand(hoardtypes.Command{Name: "hello", Command: "echo hi"}, false)
	require.NoError(t, err)

	exists, err := afero.Exists(h.fs, "/elsewhere/trove.yml")
	require.NoError(t, err)
	assert.True(t, exists)
}
