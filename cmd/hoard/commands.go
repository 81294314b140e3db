package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hoard/internal/data/embedded"
	"hoard/internal/hoard"
	"hoard/internal/version"
	"hoard/pkg/hoardtypes"
)

func newNewCmd(o *appOpener) *cobra.Command {
	var (
		namespace   string
		tags        []string
		description string
		overwrite   bool
	)

	cmd := &cobra.Command{
		Use:   "new <name> <command...>",
		Short: "Save a new command",
		Long: `Save a command template under a name. Mark parameters with #name! to be
asked once per name, or a bare # to be asked every time.`,
		Example: `  hoard new -n ops -t k8s,prod deploy 'kubectl apply -f #file!'
  hoard new serve python -m http.server '#'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				_, err := app.NewCommand(hoardtypes.Command{
					Name:        args[0],
					Namespace:   namespace,
					Command:     strings.Join(args[1:], " "),
					Description: description,
					Tags:        tags,
				}, overwrite)
				return err
			})
		},
	}

	// Everything after the name belongs to the command, flags included.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&namespace, "namespace", "n", hoardtypes.DefaultNamespace, "Namespace to store the command in")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Comma separated tags")
	cmd.Flags().StringVarP(&description, "description", "d", "", "What the command does")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace a command with the same name in the namespace")
	return cmd
}

func newListCmd(o *appOpener) *cobra.Command {
	var asJSON, simple bool

	cmd := &cobra.Command{
		Use:     "list [filter]",
		Aliases: []string{"ls"},
		Short:   "List saved commands",
		Long:    `List saved commands, optionally only those whose name, namespace or tags contain the filter.`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			format := hoard.ListTable
			switch {
			case asJSON:
				format = hoard.ListJSON
			case simple:
				format = hoard.ListSimple
			}
			return o.run(cmd, func(app *hoard.App) error {
				return app.List(filter, format)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the commands as JSON")
	cmd.Flags().BoolVar(&simple, "simple", false, "Print one namespace/name per line")
	cmd.MarkFlagsMutuallyExclusive("json", "simple")
	return cmd
}

func newShowCmd(o *appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one command in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				return app.Show(args[0])
			})
		},
	}
}

func newPickCmd(o *appOpener) *cobra.Command {
	var (
		params []string
		copyIt bool
	)

	cmd := &cobra.Command{
		Use:   "pick <name>",
		Short: "Fill in a command's parameters and print it",
		Long: `Print a saved command with its parameters filled in. Values come from
--param (name=value for named parameters, plain values in order for the
rest); anything missing is asked for on the terminal. Only the command is
written to stdout.`,
		Example: `  hoard pick deploy -p file=app.yaml
  eval "$(hoard pick serve -p 8080)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				_, err := app.Pick(args[0], params, copyIt)
				return err
			})
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Parameter value, name=value or positional (repeatable)")
	cmd.Flags().BoolVarP(&copyIt, "copy", "c", false, "Also copy the command to the clipboard")
	return cmd
}

func newRemoveCmd(o *appOpener) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a command from every namespace",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				return app.Remove(args[0])
			})
		},
	}
}

func newRemoveNamespaceCmd(o *appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-namespace <namespace>",
		Short: "Remove every command in a namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				return app.RemoveNamespace(args[0])
			})
		},
	}
}

func newEditCmd(o *appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit a command in your editor",
		Long: `Open the command as YAML in the configured editor ($EDITOR when unset) and save the result.
The name cannot change while editing, and a name stored in more than one
namespace is refused because saving would overwrite every copy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				return app.Edit(args[0])
			})
		},
	}
}

func newImportCmd(o *appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Merge another trove file into yours",
		Long:  `Merge the commands of another trove file. Commands with the same name and namespace are replaced.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				return app.Import(args[0])
			})
		},
	}
}

func newExportCmd(o *appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write your trove to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				return app.Export(args[0])
			})
		},
	}
}

func newNamespacesCmd(o *appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "namespaces",
		Short: "List the namespaces in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				app.Namespaces()
				return nil
			})
		},
	}
}

func newInfoCmd(o *appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where hoard keeps its files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				app.Info()
				return nil
			})
		},
	}
}

func newShellConfigCmd(o *appOpener) *cobra.Command {
	return &cobra.Command{
		Use:       "shell-config <shell>",
		Short:     "Print the shell integration script",
		Long:      `Print a script binding hoard pick to a key. Add eval "$(hoard shell-config zsh)" to your shell's rc file.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: embedded.SupportedShells(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				return app.ShellConfig(args[0])
			})
		},
	}
}

func newSetParameterTokenCmd(o *appOpener) *cobra.Command {
	var ending bool

	cmd := &cobra.Command{
		Use:   "set-parameter-token <token>",
		Short: "Change the token that marks parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(app *hoard.App) error {
				return app.SetParameterToken(args[0], ending)
			})
		},
	}

	cmd.Flags().BoolVar(&ending, "ending", false, "Set the token that closes a named parameter instead")
	return cmd
}

func newVersionCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if detailed {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.GetFormattedVersion())
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "Include Go version and platform")
	return cmd
}
