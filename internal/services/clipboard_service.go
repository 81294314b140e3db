package services

import (
	"errors"
	"fmt"
	"strings"

	"hoard/internal/logger"
)

// ErrClipboardUnavailable is returned when the system clipboard cannot be used.
var ErrClipboardUnavailable = errors.New("clipboard not available")

// ClipboardWriter writes text to a clipboard.
type ClipboardWriter interface {
	Init() error
	Write(text string) error
}

// ClipboardService copies picked commands to the system clipboard.
type ClipboardService struct {
	initialized bool
	writer      ClipboardWriter
	initErr     error
}

// NewClipboardService creates a ClipboardService. A nil writer uses the
// platform clipboard.
func NewClipboardService(writer ClipboardWriter) *ClipboardService {
	if writer == nil {
		writer = systemClipboard{}
	}
	return &ClipboardService{writer: writer}
}

// Name returns the service name "clipboard" for registration.
func (c *ClipboardService) Name() string {
	return "clipboard"
}

// Initialize probes the clipboard. A missing clipboard is not an error here;
// Copy reports it when a copy is actually requested.
func (c *ClipboardService) Initialize() error {
	if c.initialized {
		return nil
	}
	if err := c.writer.Init(); err != nil {
		c.initErr = err
		logger.Debug("Clipboard unavailable", "error", err)
	}
	c.initialized = true
	return nil
}

// Available reports whether Copy can succeed.
func (c *ClipboardService) Available() bool {
	return c.initialized && c.initErr == nil
}

// Copy writes text to the clipboard.
func (c *ClipboardService) Copy(text string) error {
	if !c.initialized {
		return fmt.Errorf("clipboard service not initialized")
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to copy")
	}
	if c.initErr != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, c.initErr)
	}
	if err := c.writer.Write(text); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	logger.ServiceOperation(c.Name(), "copy", "length", len(text))
	return nil
}

// systemClipboard adapts the platform clipboard functions.
type systemClipboard struct{}

func (systemClipboard) Init() error {
	if !clipboardAvailable {
		return ErrClipboardUnavailable
	}
	return initClipboard()
}

func (systemClipboard) Write(text string) error {
	return writeToClipboard(text)
}
