// Package hoard wires configuration, the trove store and the services into
// the operations behind every CLI subcommand.
package hoard

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"hoard/internal/config"
	"hoard/internal/logger"
	"hoard/internal/output"
	"hoard/internal/parameters"
	"hoard/internal/services"
	"hoard/internal/trove"
	"hoard/pkg/hoardtypes"
)

// Options configures an App. Zero values select the real environment.
type Options struct {
	Fs        afero.Fs
	HomeDir   string
	TrovePath string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Plain disables colors and markdown styling.
	Plain bool
	// TestMode selects deterministic plain output.
	TestMode bool
	// Quiet suppresses status messages; command output is still written.
	Quiet bool
	// Suffixer names renamed commands; nil uses trove.RandomSuffix.
	Suffixer trove.Suffixer

	EditorRunner services.EditorRunner
	Clipboard    services.ClipboardWriter
}

// App holds one loaded trove and everything needed to change and show it.
type App struct {
	config *config.Manager
	store  *trove.Store
	trove  *trove.Trove

	stdin  io.Reader
	out    *output.Printer
	json   *output.Printer
	status *output.Printer
	theme  *output.Theme

	registry  *services.Registry
	editor    *services.EditorService
	markdown  *services.MarkdownService
	diff      *services.DiffService
	clipboard *services.ClipboardService
	suggest   *services.SuggestionService
}

// New loads the configuration and the trove and initializes the services.
func New(opts Options) (*App, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(config.LoadOptions{Fs: opts.Fs, HomeDir: opts.HomeDir, TrovePath: opts.TrovePath})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	settings := cfg.Config()
	logger.ApplyConfigLevel(settings.LogLevel)

	plain := opts.Plain || opts.TestMode || !output.SupportsColor()
	themeName, markdownStyle := settings.Theme, ""
	if plain {
		themeName, markdownStyle = "plain", "notty"
	}

	a := &App{
		config:    cfg,
		stdin:     opts.Stdin,
		theme:     output.LoadTheme(themeName),
		registry:  services.NewRegistry(),
		editor:    services.NewEditorService(settings.Editor, services.WithEditorFs(opts.Fs), services.WithEditorRunner(opts.EditorRunner)),
		markdown:  services.NewMarkdownService(markdownStyle),
		diff:      services.NewDiffService(),
		clipboard: services.NewClipboardService(opts.Clipboard),
		suggest:   services.NewSuggestionService(),
	}
	a.out = newPrinter(opts.Stdout, a.theme, plain, opts.TestMode)
	a.json = output.NewPrinter(output.WithWriter(opts.Stdout), output.JSON())
	a.status = newPrinter(opts.Stderr, a.theme, plain, opts.TestMode)
	if opts.Quiet {
		a.status = output.NewPrinter(output.WithWriter(opts.Stderr), output.Silent())
	}

	for _, service := range []hoardtypes.Service{a.editor, a.markdown, a.diff, a.clipboard, a.suggest} {
		if err := a.registry.RegisterService(service); err != nil {
			return nil, err
		}
	}
	if err := a.registry.InitializeAll(); err != nil {
		return nil, err
	}

	var troveOpts []trove.Option
	if opts.Suffixer != nil {
		troveOpts = append(troveOpts, trove.WithSuffixer(opts.Suffixer))
	}
	a.store = trove.NewStore(opts.Fs, settings.TrovePath, opts.Stderr, troveOpts...)
	a.trove = a.store.Load()

	logger.Debug("Hoard initialized", "home", cfg.Home(), "trove", settings.TrovePath, "commands", a.trove.Len())
	return a, nil
}

func newPrinter(w io.Writer, theme *output.Theme, plain, testMode bool) *output.Printer {
	if testMode {
		return output.NewPrinter(output.WithWriter(w), output.TestMode())
	}
	if plain {
		return output.NewPrinter(output.WithWriter(w), output.PlainText())
	}
	return output.NewPrinter(output.WithWriter(w), output.WithStyles(theme), output.WithMode(output.ModeStyled))
}

// Trove returns the loaded trove.
func (a *App) Trove() *trove.Trove {
	return a.trove
}

// Config returns the configuration manager.
func (a *App) Config() *config.Manager {
	return a.config
}

// Services returns the service registry.
func (a *App) Services() *services.Registry {
	return a.registry
}

// Close releases temporary resources held by the services.
func (a *App) Close() error {
	return a.editor.Cleanup()
}

// save writes the trove when changed is set.
func (a *App) save(changed bool) error {
	if !changed {
		logger.Debug("Trove unchanged, skipping save")
		return nil
	}
	if err := a.store.Save(a.trove); err != nil {
		return err
	}
	logger.TroveOperation("save", "path", a.store.Path(), "commands", a.trove.Len())
	return nil
}

// engine builds a parameter engine from the configured tokens. Values are
// taken from params first and then asked for on the terminal.
func (a *App) engine(params []string) *parameters.Engine {
	settings := a.config.Config()
	prompter := parameters.ParseValues(params, parameters.NewTerminalPrompter(a.stdin, a.status.Writer()))
	return parameters.NewEngine(settings.ParameterToken, settings.ParameterEndingToken, prompter)
}
