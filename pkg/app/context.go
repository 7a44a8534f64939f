package app

import (
	"context"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/deploymenttheory/go-mbr/internal/device"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Device configuration
	Config *device.Config

	// Common timeouts
	DefaultTimeout time.Duration

	// Destination for formatted results
	Out io.Writer

	Logger *log.Logger
}

// NewContext creates a new application context
func NewContext() *Context {
	return &Context{
		Context:        context.Background(),
		OutputFormat:   "table",
		Config:         device.DefaultConfig(),
		DefaultTimeout: 30 * time.Second,
		Out:            os.Stdout,
		Logger:         log.StandardLogger(),
	}
}

// WithTimeout creates a context with timeout
func (c *Context) WithTimeout(timeout time.Duration) (*Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Context, timeout)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// ApplyLogLevel sets the logger level from the Verbose and Quiet flags.
func (c *Context) ApplyLogLevel() {
	switch {
	case c.Quiet:
		c.Logger.SetLevel(log.ErrorLevel)
	case c.Verbose:
		c.Logger.SetLevel(log.DebugLevel)
	default:
		c.Logger.SetLevel(log.InfoLevel)
	}
}

// Log outputs a message when verbose output is enabled
func (c *Context) Log(message string) {
	c.Logger.Debug(message)
}

// Info outputs a message unless quiet
func (c *Context) Info(message string) {
	c.Logger.Info(message)
}

// Error outputs an error message
func (c *Context) Error(message string) {
	c.Logger.Error(message)
}
