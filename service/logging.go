package service

import (
	"io"
	"log"
	"os"

	"github.com/ludo-technologies/rbscan/internal/constants"
)

// newDefaultLogger returns the logger services use until SetLogger is called
func newDefaultLogger() *log.Logger {
	return log.New(os.Stderr, constants.ToolName+": ", 0)
}

// NewDiscardLogger returns a logger that drops everything, for quiet runs and tests
func NewDiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
