package hoard

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"hoard/internal/data/embedded"
	"hoard/internal/output"
	"hoard/internal/services"
	"hoard/internal/trove"
	"hoard/internal/version"
	"hoard/pkg/hoardtypes"
)

// ListFormat selects how List prints commands.
type ListFormat int

const (
	// ListTable prints a bordered table.
	ListTable ListFormat = iota
	// ListJSON prints the commands as a JSON array.
	ListJSON
	// ListSimple prints one namespace/name per line.
	ListSimple
)

// NewCommand stores cmd and returns the command as it was stored, which may
// carry a suffixed name when it collided with an existing one.
func (a *App) NewCommand(cmd hoardtypes.Command, overwrite bool) (hoardtypes.Command, error) {
	if strings.TrimSpace(cmd.Namespace) == "" {
		cmd.Namespace = hoardtypes.DefaultNamespace
	}
	cmd.Tags = hoardtypes.NormalizeTags(cmd.Tags)

	changed, err := a.trove.AddCommand(cmd, overwrite)
	if err != nil {
		return hoardtypes.Command{}, err
	}
	if !changed {
		a.status.Info(fmt.Sprintf("Command %s already exists", cmd.Key()))
		return cmd, nil
	}
	if err := a.save(true); err != nil {
		return hoardtypes.Command{}, err
	}

	commands := a.trove.Commands()
	stored := commands[len(commands)-1]
	if stored.Name != cmd.Name {
		a.status.Warning(fmt.Sprintf("%s already exists, saved as %s", cmd.Key(), stored.Key()))
	} else {
		a.status.Success(fmt.Sprintf("Saved %s", stored.Key()))
	}
	return stored, nil
}

// List prints the commands matching filter in the requested format.
func (a *App) List(filter string, format ListFormat) error {
	commands := a.trove.Filter(filter)

	switch format {
	case ListJSON:
		data, err := trove.EncodeJSON(commands)
		if err != nil {
			return err
		}
		a.json.Data(data)
		return nil
	case ListSimple:
		a.out.Data([]byte(output.RenderSimple(commands)))
		return nil
	}

	if len(commands) == 0 {
		if a.trove.IsEmpty() {
			a.status.Info("Your trove is empty. Save a command with: hoard new <name> <command>")
		} else {
			a.status.Info(fmt.Sprintf("No commands match %q", filter))
		}
		return nil
	}
	a.out.Data([]byte(output.RenderCommandTable(commands, a.theme, output.DefaultCommandWidth)))
	return nil
}

// Show prints one command rendered as markdown.
func (a *App) Show(name string) error {
	cmd, ok := a.trove.Get(name)
	if !ok {
		return a.commandNotFound(name, trove.ErrNotFound)
	}
	rendered, err := a.markdown.RenderCommand(cmd)
	if err != nil {
		return err
	}
	a.out.Data([]byte(rendered))
	return nil
}

// Pick resolves the parameters of the named command and prints the result
// alone on stdout. params hold "name=value" or positional values; missing
// values are asked for on the terminal. With copyToClipboard the result is
// also copied; a missing clipboard only produces a warning.
func (a *App) Pick(name string, params []string, copyToClipboard bool) (string, error) {
	cmd, err := a.trove.PickCommand(name, a.engine(params))
	if err != nil {
		if errors.Is(err, trove.ErrNotFound) {
			return "", a.commandNotFound(name, err)
		}
		return "", err
	}

	a.out.Data([]byte(cmd.Command))
	if copyToClipboard {
		if err := a.clipboard.Copy(cmd.Command); err != nil {
			a.status.Warning(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		} else {
			a.status.Success(fmt.Sprintf("Copied %d characters to clipboard", len(cmd.Command)))
		}
	}
	return cmd.Command, nil
}

// Remove deletes every command called name.
func (a *App) Remove(name string) error {
	if err := a.trove.RemoveCommand(name); err != nil {
		if errors.Is(err, trove.ErrNotFound) {
			return a.commandNotFound(name, err)
		}
		return err
	}
	if err := a.save(true); err != nil {
		return err
	}
	a.status.Success(fmt.Sprintf("Removed %s", name))
	return nil
}

// RemoveNamespace deletes every command in namespace.
func (a *App) RemoveNamespace(namespace string) error {
	if err := a.trove.RemoveNamespaceCommands(namespace); err != nil {
		if errors.Is(err, trove.ErrNotFound) {
			return a.namespaceNotFound(namespace, err)
		}
		return err
	}
	if err := a.save(true); err != nil {
		return err
	}
	a.status.Success(fmt.Sprintf("Removed namespace %s", namespace))
	return nil
}

// Edit opens the named command in the editor, prints what changed and
// stores the result. The name cannot be changed through Edit.
func (a *App) Edit(name string) error {
	before, ok := a.trove.Get(name)
	if !ok {
		return a.commandNotFound(name, trove.ErrNotFound)
	}
	// Updates replace every command with the name, whatever its namespace.
	if namespaces := a.namespacesOf(name); len(namespaces) > 1 {
		return fmt.Errorf("%s exists in namespaces %s; remove the extra copies before editing",
			name, strings.Join(namespaces, ", "))
	}

	after, err := a.editor.EditCommand(before)
	if err != nil {
		return err
	}
	if after.Name != before.Name {
		return fmt.Errorf("cannot rename %s to %s while editing; use new and remove instead", before.Name, after.Name)
	}
	if after.Namespace == "" {
		after.Namespace = hoardtypes.DefaultNamespace
	}
	if err := after.Validate(); err != nil {
		return fmt.Errorf("edited command is invalid: %w: %v", trove.ErrInvalidCommand, err)
	}

	oldDoc, err := services.MarshalCommand(before)
	if err != nil {
		return err
	}
	newDoc, err := services.MarshalCommand(after)
	if err != nil {
		return err
	}
	diff := a.diff.DiffLines(oldDoc, newDoc)
	if !services.HasChanges(diff) {
		a.status.Info(fmt.Sprintf("No changes to %s", name))
		return nil
	}

	a.status.Print(diff)
	a.trove.UpdateCommandByName(after)
	if err := a.save(true); err != nil {
		return err
	}
	a.status.Success(fmt.Sprintf("Updated %s", after.Key()))
	return nil
}

// namespacesOf lists the distinct namespaces holding a command called name.
func (a *App) namespacesOf(name string) []string {
	var namespaces []string
	for _, c := range a.trove.Commands() {
		if c.Name == name && !slices.Contains(namespaces, c.Namespace) {
			namespaces = append(namespaces, c.Namespace)
		}
	}
	return namespaces
}

// Import merges the trove file at path into the loaded trove, overwriting
// colliding commands.
func (a *App) Import(path string) error {
	other, err := a.store.LoadFrom(path)
	if err != nil {
		return err
	}

	changed := a.trove.MergeTrove(other)
	if err := a.save(changed); err != nil {
		return err
	}
	if changed {
		a.status.Success(fmt.Sprintf("Imported %d commands from %s", other.Len(), path))
	} else {
		a.status.Info(fmt.Sprintf("Nothing new in %s", path))
	}
	return nil
}

// Export writes the loaded trove to path.
func (a *App) Export(path string) error {
	if err := a.store.SaveTo(path, a.trove); err != nil {
		return err
	}
	a.status.Success(fmt.Sprintf("Exported %d commands to %s", a.trove.Len(), path))
	return nil
}

// Namespaces prints the namespaces in use, one per line, and returns them.
func (a *App) Namespaces() []string {
	namespaces := a.trove.Namespaces()
	for _, ns := range namespaces {
		a.out.Println(ns)
	}
	return namespaces
}

// Report describes the running binary and the loaded trove.
type Report struct {
	Version      string
	Home         string
	ConfigPath   string
	TrovePath    string
	TroveVersion string
	Commands     int
	Namespaces   int
}

// Info prints and returns a Report.
func (a *App) Info() Report {
	r := Report{
		Version:      version.GetFormattedVersion(),
		Home:         a.config.Home(),
		ConfigPath:   a.config.Path(),
		TrovePath:    a.store.Path(),
		TroveVersion: a.trove.Version(),
		Commands:     a.trove.Len(),
		Namespaces:   len(a.trove.Namespaces()),
	}

	lines := []string{
		r.Version,
		"home:          " + r.Home,
		"config:        " + r.ConfigPath,
		"trove:         " + r.TrovePath,
		"trove version: " + r.TroveVersion,
		fmt.Sprintf("commands:      %d", r.Commands),
		fmt.Sprintf("namespaces:    %d", r.Namespaces),
	}
	for _, line := range lines {
		a.out.Println(line)
	}
	if version.IsOlder(r.TroveVersion) {
		a.status.Info(fmt.Sprintf("The trove was written by hoard %s, older than this binary", r.TroveVersion))
	}
	return r
}

// ShellConfig prints the integration script for shell.
func (a *App) ShellConfig(shell string) error {
	script, err := embedded.ShellIntegration(shell)
	if err != nil {
		return err
	}
	a.out.Data([]byte(script))
	return nil
}

// SetParameterToken persists a new placeholder token. With ending set it
// changes the token that closes a named placeholder.
func (a *App) SetParameterToken(token string, ending bool) error {
	set, label := a.config.SetParameterToken, "parameter token"
	if ending {
		set, label = a.config.SetParameterEndingToken, "parameter ending token"
	}
	if err := set(token); err != nil {
		return err
	}
	a.status.Success(fmt.Sprintf("Set %s to %q", label, token))
	return nil
}
