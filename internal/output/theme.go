package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"hoard/internal/data/embedded"
	"hoard/internal/logger"
	"hoard/pkg/hoardtypes"
)

// Theme holds the lipgloss styles hoard renders with. It implements StyleProvider.
type Theme struct {
	Name      string
	Header    lipgloss.Style
	CmdName   lipgloss.Style
	Namespace lipgloss.Style
	Command   lipgloss.Style
	Border    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Highlight lipgloss.Style
	Bold      lipgloss.Style
}

var themeFiles = map[string][]byte{
	"default": embedded.DefaultThemeData,
	"plain":   embedded.PlainThemeData,
}

// ThemeNames lists the embedded themes.
func ThemeNames() []string {
	return []string{"default", "plain"}
}

// LoadTheme returns the embedded theme with the given name. Unknown names and
// broken theme files fall back to an unstyled theme; it never fails.
func LoadTheme(name string) *Theme {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		normalized = "default"
	}

	data, ok := themeFiles[normalized]
	if !ok {
		logger.Debug("Unknown theme requested, using plain theme", "theme", name, "available", ThemeNames())
		return fallbackTheme("plain")
	}

	theme, err := parseTheme(data)
	if err != nil {
		logger.Error("Failed to load theme", "theme", normalized, "error", err)
		return fallbackTheme(normalized)
	}
	return theme
}

// parseTheme decodes a theme file and converts it into lipgloss styles.
func parseTheme(data []byte) (*Theme, error) {
	var config hoardtypes.ThemeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	s := config.Styles
	return &Theme{
		Name:      config.Name,
		Header:    createStyle(s.Header).Padding(0, 1),
		CmdName:   createStyle(s.Name),
		Namespace: createStyle(s.Namespace),
		Command:   createStyle(s.Command),
		Border:    createStyle(s.Border),
		Success:   createStyle(s.Success),
		Error:     createStyle(s.Error),
		Warning:   createStyle(s.Warning),
		Info:      createStyle(s.Info),
		Highlight: createStyle(s.Highlight),
		Bold:      createStyle(s.Bold),
	}, nil
}

// createStyle converts a StyleConfig to a lipgloss.Style.
func createStyle(config hoardtypes.StyleConfig) lipgloss.Style {
	style := lipgloss.NewStyle()

	if color := parseColor(config.Foreground); color != nil {
		style = style.Foreground(color)
	}
	if color := parseColor(config.Background); color != nil {
		style = style.Background(color)
	}
	if config.Bold != nil && *config.Bold {
		style = style.Bold(true)
	}
	if config.Italic != nil && *config.Italic {
		style = style.Italic(true)
	}
	if config.Underline != nil && *config.Underline {
		style = style.Underline(true)
	}

	return style
}

// parseColor parses a color value that can be a string or a light/dark map.
func parseColor(colorValue interface{}) lipgloss.TerminalColor {
	switch v := colorValue.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]interface{}:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
		return nil
	default:
		return nil
	}
}

func fallbackTheme(name string) *Theme {
	plain := lipgloss.NewStyle()
	return &Theme{
		Name:      name,
		Header:    plain.Bold(true).Padding(0, 1),
		CmdName:   plain,
		Namespace: plain,
		Command:   plain,
		Border:    plain,
		Success:   plain,
		Error:     plain,
		Warning:   plain,
		Info:      plain,
		Highlight: plain,
		Bold:      plain.Bold(true),
	}
}

// GetStyle implements StyleProvider.
func (t *Theme) GetStyle(semantic string) TextStyle {
	switch SemanticType(semantic) {
	case SemanticSuccess:
		return t.Success
	case SemanticError:
		return t.Error
	case SemanticWarning:
		return t.Warning
	case SemanticInfo:
		return t.Info
	case SemanticCommand:
		return t.Command
	case SemanticName:
		return t.CmdName
	case SemanticNamespace:
		return t.Namespace
	case SemanticHighlight:
		return t.Highlight
	case SemanticBold:
		return t.Bold
	default:
		return lipgloss.NewStyle()
	}
}

// IsAvailable implements StyleProvider.
func (t *Theme) IsAvailable() bool {
	return t != nil
}
