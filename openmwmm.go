// Package openmwmm provides the main entry point for the OpenMW mod manager.
// It offers a high-level interface for maintaining an OpenMW installation:
// installing and uninstalling mod directories, enabling and disabling content
// plugins, cleaning stale configuration entries, and merging the leveled
// lists of every enabled plugin into a single generated plugin.
//
// All state lives in openmw.cfg and on disk. A Manager re-reads the
// configuration for each operation, so external edits are picked up and a
// Manager can be kept around for the lifetime of a process:
//
//	mm, err := openmwmm.New(
//	    openmwmm.WithConfigFile("/home/user/.config/openmw/openmw.cfg"),
//	    openmwmm.WithModsDir("/home/user/games/mods"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Install a mod and enable one of its plugins
//	mod, err := mm.Install(ctx, "./Better Bows", "", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := mm.Enable("Better Bows.esp"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Merge leveled lists across every enabled plugin
//	report, err := mm.Merge(ctx, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report.Print(os.Stdout)
package openmwmm

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/openmwmm/pkg/constants"
	"github.com/agentstation/openmwmm/pkg/errors"
	"github.com/agentstation/openmwmm/pkg/logging"
	"github.com/agentstation/openmwmm/pkg/omwconfig"
)

// Compile-time interface check to ensure proper implementation.
var _ Configurator = (*manager)(nil)

// Configurator provides access to the managed openmw.cfg.
type Configurator interface {
	// Config returns a freshly parsed copy of openmw.cfg
	Config() (*omwconfig.File, error)

	// ConfigPath returns the openmw.cfg path the manager operates on
	ConfigPath() string
}

// Manager maintains an OpenMW installation through its openmw.cfg.
type Manager interface {

	// Configurator provides access to the managed openmw.cfg
	Configurator

	// ModManager installs, uninstalls, and lists mod directories
	ModManager

	// PluginManager lists and toggles content plugins
	PluginManager

	// Cleaner drops configuration entries that no longer resolve on disk
	Cleaner

	// Merger folds leveled lists across the enabled plugins
	Merger
}

// manager is the internal implementation of the Manager interface.
type manager struct {

	// options are the configured options for the manager
	options *options

	// mu serializes load-modify-write cycles on openmw.cfg
	mu sync.Mutex
}

// New creates a new Manager instance with the given options.
func New(opts ...Option) (Manager, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	// Fall back to the engine's own config location
	if options.configFile == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		options.configFile = path
	}

	return &manager{options: options}, nil
}

// DefaultConfigPath returns the conventional location of openmw.cfg inside
// the user configuration directory, matching where the engine reads it.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.WrapIO("locate", "user config directory", err)
	}
	return filepath.Join(dir, "openmw", constants.OpenMWConfigName), nil
}

// Config returns a freshly parsed copy of openmw.cfg.
func (m *manager) Config() (*omwconfig.File, error) {
	return omwconfig.LoadFile(m.options.configFile)
}

// ConfigPath returns the openmw.cfg path the manager operates on.
func (m *manager) ConfigPath() string {
	return m.options.configFile
}

// log returns the configured logger, or the package default.
func (m *manager) log() *zerolog.Logger {
	if m.options.logger != nil {
		return m.options.logger
	}
	return logging.Default()
}
