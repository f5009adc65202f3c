// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/openmwmm"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/openmwmm/app automatically implements this
// interface, providing dependency injection for commands while maintaining
// testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Manager returns the default manager instance, creating it lazily if
	// needed. This is thread-safe and ensures only one instance is created.
	Manager() (openmwmm.Manager, error)

	// ManagerWithOptions creates a new manager instance with custom options.
	// Use this when a command needs specific configuration.
	ManagerWithOptions(...openmwmm.Option) (openmwmm.Manager, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (text, json, yaml).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
