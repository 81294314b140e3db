// Package main provides the hoard CLI entry point.
// hoard stores named, namespaced shell command templates in a YAML trove and
// fills in their parameters when a command is picked.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hoard/internal/hoard"
	"hoard/internal/logger"
	"hoard/internal/output"
	"hoard/internal/testutils"
)

// Flag names shared by every subcommand.
const (
	flagLogLevel  = "log-level"
	flagLogFile   = "log-file"
	flagConfigDir = "config-dir"
	flagTrove     = "trove"
	flagPlain     = "plain"
	flagTestMode  = "test-mode"
	flagQuiet     = "quiet"
)

func main() {
	output.ConfigureGlobal(output.WithWriter(os.Stderr), output.PlainText())

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}

// configureErrorPrinter points the global printer used for the final error
// report at the command's stderr.
func configureErrorPrinter(cmd *cobra.Command, testMode bool) {
	if testMode {
		output.ConfigureGlobal(output.WithWriter(cmd.ErrOrStderr()), output.TestMode())
		return
	}
	output.ConfigureGlobal(output.WithWriter(cmd.ErrOrStderr()), output.PlainText())
}

// newRootCmd builds the command tree. Global flags are bound to a viper
// instance owned by the returned command.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "hoard",
		Short: "hoard - a stash for the shell commands you keep forgetting",
		Long: `hoard keeps named, namespaced shell command templates in a YAML trove.
Placeholders such as #file! are filled in when a command is picked, so the
result can be pasted into the prompt or piped straight into a shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configureErrorPrinter(cmd, v.GetBool(flagTestMode))
			if err := logger.Configure(v.GetString(flagLogLevel), v.GetString(flagLogFile)); err != nil {
				return fmt.Errorf("error configuring logger: %w", err)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagLogLevel, "", "Set log level (debug|info|warn|error) [default: warn]")
	flags.String(flagLogFile, "", "Write logs to file instead of stderr")
	flags.String(flagConfigDir, "", "Hoard home directory [default: $HOARD_HOME or ~/.hoard]")
	flags.String(flagTrove, "", "Trove file to use instead of the configured one")
	flags.Bool(flagPlain, false, "Disable colors and styling")
	flags.Bool(flagQuiet, false, "Suppress status messages")
	flags.Bool(flagTestMode, false, "Use deterministic names and output")
	if err := flags.MarkHidden(flagTestMode); err != nil {
		panic(err)
	}

	for _, name := range []string{flagLogLevel, flagLogFile, flagConfigDir, flagTrove, flagPlain, flagQuiet, flagTestMode} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", name, err))
		}
	}

	opener := &appOpener{v: v}
	rootCmd.AddCommand(
		newNewCmd(opener),
		newListCmd(opener),
		newShowCmd(opener),
		newPickCmd(opener),
		newRemoveCmd(opener),
		newRemoveNamespaceCmd(opener),
		newEditCmd(opener),
		newImportCmd(opener),
		newExportCmd(opener),
		newNamespacesCmd(opener),
		newInfoCmd(opener),
		newShellConfigCmd(opener),
		newSetParameterTokenCmd(opener),
		newVersionCmd(),
	)

	return rootCmd
}

// appOpener creates the App for a subcommand from the global flags.
type appOpener struct {
	v *viper.Viper
}

func (o *appOpener) open(cmd *cobra.Command) (*hoard.App, error) {
	app, err := hoard.New(hoard.Options{
		HomeDir:   o.v.GetString(flagConfigDir),
		TrovePath: o.v.GetString(flagTrove),
		Stdin:     cmd.InOrStdin(),
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
		Plain:     o.v.GetBool(flagPlain),
		TestMode:  o.v.GetBool(flagTestMode),
		Quiet:     o.v.GetBool(flagQuiet),
		Suffixer:  testutils.NameSuffixer(o.v.GetBool(flagTestMode)),
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// run opens the App, calls fn and releases the App.
func (o *appOpener) run(cmd *cobra.Command, fn func(*hoard.App) error) error {
	app, err := o.open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Debug("Failed to release resources", "error", err)
		}
	}()
	return fn(app)
}
