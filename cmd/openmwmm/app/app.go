// Package app provides the application context and dependency management
// for the openmwmm CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle management.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/openmwmm"
	"github.com/agentstation/openmwmm/pkg/errors"
)

// App represents the openmwmm application with all its dependencies.
// It provides a centralized place for configuration, logging, and
// the manager instance, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Manager instance (lazy-initialized, singleton)
	mu      sync.RWMutex
	manager openmwmm.Manager
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Manager returns the manager instance, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Manager() (openmwmm.Manager, error) {
	a.mu.RLock()
	if a.manager != nil {
		mm := a.manager
		a.mu.RUnlock()
		return mm, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.manager != nil {
		return a.manager, nil
	}

	// Create manager instance with options from config
	opts := a.buildManagerOptions()
	mm, err := openmwmm.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "manager", "", err)
	}

	a.manager = mm
	return mm, nil
}

// ManagerWithOptions returns a new manager instance with custom options.
// This is useful for commands that need specific configurations different
// from the default app instance.
func (a *App) ManagerWithOptions(opts ...openmwmm.Option) (openmwmm.Manager, error) {
	mm, err := openmwmm.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "manager", "with custom options", err)
	}
	return mm, nil
}

// buildManagerOptions constructs manager options from the app configuration.
func (a *App) buildManagerOptions() []openmwmm.Option {
	var opts []openmwmm.Option

	// Point the manager at the configured openmw.cfg
	if a.config.OpenMWConfig != "" {
		opts = append(opts, openmwmm.WithConfigFile(a.config.OpenMWConfig))
	}

	// Default install destination
	if a.config.ModsDir != "" {
		opts = append(opts, openmwmm.WithModsDir(a.config.ModsDir))
	}

	// Merge policy
	if len(a.config.NeverMerge) > 0 {
		opts = append(opts, openmwmm.WithNeverMerge(a.config.NeverMerge...))
	}
	if a.config.MergeOutput != "" {
		opts = append(opts, openmwmm.WithMergeOutput(a.config.MergeOutput))
	}

	opts = append(opts, openmwmm.WithLogger(a.logger))

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithManager sets a custom manager instance (useful for testing).
func WithManager(mm openmwmm.Manager) Option {
	return func(a *App) error {
		a.manager = mm
		return nil
	}
}
