package output

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Global printer instance for convenience functions
var (
	globalPrinter *Printer
	globalMu      sync.RWMutex
)

func init() {
	globalPrinter = NewPrinter()
}

// GetGlobalPrinter returns the current global printer instance.
func GetGlobalPrinter() *Printer {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalPrinter
}

// ConfigureGlobal configures the global printer with the given options.
func ConfigureGlobal(options ...Option) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalPrinter = NewPrinter(options...)
}

// Error outputs error text using the global printer.
func Error(text string) {
	GetGlobalPrinter().Error(text)
}

// SupportsColor reports whether stdout should receive colored output.
// NO_COLOR disables colors; otherwise the detected terminal profile decides.
func SupportsColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return lipgloss.ColorProfile() != termenv.Ascii
}
