package logging

import (
	"io"
	"log"
	"os"
)

var (
	Debug   *log.Logger
	Scanner *log.Logger
	Enabled bool
)

func init() {
	// Only enable logging if FOLDERSIZE_DEBUG environment variable is set
	if os.Getenv("FOLDERSIZE_DEBUG") == "" {
		Disable()
		return
	}

	// Open debug.log once for all loggers
	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		Enable(os.Stderr)
		return
	}

	Enable(debugFile)
}

// Enable sends both loggers to w
func Enable(w io.Writer) {
	Debug = log.New(w, "[DEBUG] ", log.Lmicroseconds)
	Scanner = log.New(w, "[SCANNER] ", log.Lmicroseconds)
	Enabled = true
}

// Disable replaces both loggers with no-op loggers that discard output
func Disable() {
	Debug = log.New(io.Discard, "", 0)
	Scanner = log.New(io.Discard, "", 0)
	Enabled = false
}
