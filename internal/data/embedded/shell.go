package embedded

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed shell/*
var shellFiles embed.FS

// ShellIntegration returns the integration script for shell (bash, zsh or fish).
func ShellIntegration(shell string) (string, error) {
	data, err := shellFiles.ReadFile("shell/hoard." + strings.ToLower(shell))
	if err != nil {
		return "", fmt.Errorf("unsupported shell %q (supported: %s)", shell, strings.Join(SupportedShells(), ", "))
	}
	return string(data), nil
}

// SupportedShells lists the shells with an embedded integration script.
func SupportedShells() []string {
	entries, err := shellFiles.ReadDir("shell")
	if err != nil {
		return nil
	}
	shells := make([]string, 0, len(entries))
	for _, e := range entries {
		shells = append(shells, strings.TrimPrefix(e.Name(), "hoard."))
	}
	sort.Strings(shells)
	return shells
}
