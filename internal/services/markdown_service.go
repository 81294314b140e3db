package services

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"hoard/internal/logger"
	"hoard/pkg/hoardtypes"
)

// DefaultWordWrap is the width markdown is wrapped at.
const DefaultWordWrap = 80

// MarkdownService renders commands as markdown for the terminal using Glamour.
type MarkdownService struct {
	initialized bool
	style       string
	wordWrap    int
	renderer    *glamour.TermRenderer
}

// NewMarkdownService creates a new MarkdownService. An empty style detects
// the terminal background; "notty" renders without escape sequences.
func NewMarkdownService(style string) *MarkdownService {
	return &MarkdownService{
		style:    style,
		wordWrap: DefaultWordWrap,
	}
}

// Name returns the service name "markdown" for registration.
func (m *MarkdownService) Name() string {
	return "markdown"
}

// Initialize creates the terminal renderer.
func (m *MarkdownService) Initialize() error {
	renderer, err := m.newRenderer(m.style, m.wordWrap)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	m.renderer = renderer
	m.initialized = true

	logger.Debug("MarkdownService initialized successfully", "style", m.style)
	return nil
}

func (m *MarkdownService) newRenderer(style string, width int) (*glamour.TermRenderer, error) {
	styleOption := glamour.WithAutoStyle()
	if style != "" {
		styleOption = glamour.WithStandardStyle(style)
	}
	return glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(width))
}

// Render renders markdown content to terminal output.
func (m *MarkdownService) Render(markdown string) (string, error) {
	if !m.initialized {
		return "", fmt.Errorf("markdown service not initialized")
	}

	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("markdown content cannot be empty")
	}

	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return rendered, nil
}

// RenderCommand renders a single command as a markdown card.
func (m *MarkdownService) RenderCommand(cmd hoardtypes.Command) (string, error) {
	return m.Render(CommandMarkdown(cmd))
}

// SetWordWrap sets the word wrap width for markdown rendering.
func (m *MarkdownService) SetWordWrap(width int) error {
	if !m.initialized {
		return fmt.Errorf("markdown service not initialized")
	}

	if width <= 0 {
		return fmt.Errorf("word wrap width must be positive, got %d", width)
	}

	renderer, err := m.newRenderer(m.style, width)
	if err != nil {
		return fmt.Errorf("failed to create renderer with word wrap %d: %w", width, err)
	}

	m.renderer = renderer
	m.wordWrap = width
	logger.Debug("MarkdownService word wrap updated", "width", width)
	return nil
}

// CommandMarkdown builds the markdown document shown for a command.
func CommandMarkdown(cmd hoardtypes.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cmd.Name)
	fmt.Fprintf(&b, "**Namespace:** %s\n\n", cmd.Namespace)
	if cmd.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", cmd.Description)
	}
	fmt.Fprintf(&b, "```sh\n%s\n```\n", cmd.Command)
	if len(cmd.Tags) > 0 {
		fmt.Fprintf(&b, "\n**Tags:** %s\n", cmd.TagsAsString())
	}
	return b.String()
}
