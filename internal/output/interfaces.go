// Package output provides a unified console output system for hoard.
// It uses dependency injection to support optional styling while maintaining clean architecture.
package output

// StyleProvider is the interface that themes implement to provide styled text rendering.
// The output package depends only on this interface, not on a concrete theme.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	// Semantic types include: "info", "success", "warning", "error", "command", etc.
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the style provider is ready to provide styles.
	// This allows the output system to gracefully fall back to plain text.
	IsAvailable() bool
}

// TextStyle represents the capability to render text with styling.
// This interface is implemented by lipgloss.Style or other styling systems.
type TextStyle interface {
	// Render applies styling to the given text and returns the styled result.
	Render(text ...string) string
}

// Mode defines different output modes the printer can operate in.
type Mode int

const (
	// ModeAuto automatically detects the best output mode based on context
	ModeAuto Mode = iota

	// ModeStyled forces styled output (with colors, formatting)
	ModeStyled

	// ModePlain forces plain text output (no colors, minimal formatting)
	ModePlain

	// ModeJSON outputs structured JSON for machine consumption
	ModeJSON
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticPlain represents plain text without any semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess represents success or completion text.
	SemanticSuccess SemanticType = "success"
	// SemanticWarning represents warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents error text.
	SemanticError SemanticType = "error"

	// SemanticCommand represents a command body.
	SemanticCommand SemanticType = "command"
	// SemanticName represents a command name.
	SemanticName SemanticType = "name"
	// SemanticNamespace represents a namespace.
	SemanticNamespace SemanticType = "namespace"

	// SemanticHighlight represents highlighted or emphasized text.
	SemanticHighlight SemanticType = "highlight"
	// SemanticBold represents bold text styling.
	SemanticBold SemanticType = "bold"
)
