package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"hoard/pkg/hoardtypes"
)

// TableHeaders are the columns of the command table, in order.
var TableHeaders = []string{"Name", "Namespace", "Command", "Description", "Tags"}

// DefaultCommandWidth is the widest a command body is rendered in the table.
const DefaultCommandWidth = 60

// RenderCommandTable renders commands in storage order as a bordered table.
// Command bodies wider than maxCommandWidth are truncated with an ellipsis;
// zero or less disables truncation. A nil theme renders without colors.
func RenderCommandTable(commands []hoardtypes.Command, theme *Theme, maxCommandWidth int) string {
	if theme == nil {
		theme = fallbackTheme("plain")
	}

	rows := make([][]string, 0, len(commands))
	for _, c := range commands {
		body := c.Command
		if maxCommandWidth > 0 {
			body = ansi.Truncate(body, maxCommandWidth, "…")
		}
		rows = append(rows, []string{c.Name, c.Namespace, body, c.Description, c.TagsAsString()})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.Border).
		Headers(TableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.Header
			case col == 0:
				return theme.CmdName.Padding(0, 1)
			case col == 1:
				return theme.Namespace.Padding(0, 1)
			case col == 2:
				return theme.Command.Padding(0, 1)
			default:
				return cell
			}
		})

	return t.String()
}

// RenderSimple renders one namespace/name pair per line.
func RenderSimple(commands []hoardtypes.Command) string {
	var b strings.Builder
	for _, c := range commands {
		b.WriteString(c.Key().String())
		b.WriteString("\n")
	}
	return b.String()
}
