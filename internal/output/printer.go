package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Printer is the main output handler that supports both plain and styled output.
// Status messages (Info, Success, Warning, Error) and data (Println, Command)
// go to the same writer; the CLI points it at stderr for status output when
// stdout must stay clean.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	forcePlain    bool
	silent        bool

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes to os.Stdout with automatic mode detection.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// Print outputs text without any semantic styling.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Println outputs text with a newline without any semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs informational text with info styling.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs success text with success styling (typically green).
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs warning text with warning styling (typically yellow).
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs error text with error styling (typically red).
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Data writes a ready-made document such as an encoded JSON array or a
// picked command, ending it with a newline. Text modes write it unchanged; JSON mode passes valid JSON through and wraps
// anything else as a message.
func (p *Printer) Data(data []byte) {
	if p.silent || len(data) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	text := string(data)
	if p.mode == ModeJSON && !json.Valid(data) {
		text = p.renderJSON(SemanticPlain, text)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = fmt.Fprint(p.writer, text)
}

// Writer returns the destination of this printer.
func (p *Printer) Writer() io.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer
}

// output is the core output method that handles all rendering logic.
func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string
	switch p.mode {
	case ModeJSON:
		finalText = p.renderJSON(semantic, text)
	case ModeStyled:
		finalText = p.renderStyled(semantic, text, addNewline)
	default:
		finalText = p.renderText(semantic, text, addNewline)
	}

	_, _ = fmt.Fprint(p.writer, finalText) // Ignore write errors for output operations
}

// renderText renders text in plain or auto mode.
func (p *Printer) renderText(semantic SemanticType, text string, addNewline bool) string {
	var provider StyleProvider = NewPlainStyleProvider()
	if p.IsStylable() {
		provider = p.styleProvider
	}
	result := provider.GetStyle(string(semantic)).Render(text)

	if addNewline && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result
}

// renderStyled renders text with forced styling.
func (p *Printer) renderStyled(semantic SemanticType, text string, addNewline bool) string {
	if p.styleProvider != nil && p.styleProvider.IsAvailable() {
		result := p.styleProvider.GetStyle(string(semantic)).Render(text)
		if addNewline && !strings.HasSuffix(result, "\n") {
			result += "\n"
		}
		return result
	}
	return p.renderText(semantic, text, addNewline)
}

// renderJSON renders output as structured JSON.
func (p *Printer) renderJSON(semantic SemanticType, text string) string {
	jsonBytes, err := json.Marshal(map[string]interface{}{
		"type":    semantic,
		"message": text,
	})
	if err != nil {
		return text + "\n"
	}
	return string(jsonBytes) + "\n"
}

// IsStylable returns true if the printer can apply styles.
func (p *Printer) IsStylable() bool {
	return !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}
