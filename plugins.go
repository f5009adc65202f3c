package openmwmm

import (
	"github.com/agentstation/openmwmm/pkg/omwconfig"
)

// Compile-time interface check to ensure proper implementation.
var _ PluginManager = (*manager)(nil)

// PluginManager lists and toggles content plugins.
type PluginManager interface {
	// Plugins lists every plugin provided by the registered mods, with
	// later data directories shadowing earlier ones
	Plugins() ([]*omwconfig.Plugin, error)

	// Enable activates a plugin by appending a content entry
	Enable(name string) error

	// Disable deactivates a plugin by removing its content entry
	Disable(name string) error
}

// Plugins lists every plugin provided by the registered mods.
func (m *manager) Plugins() ([]*omwconfig.Plugin, error) {
	cfg, err := omwconfig.LoadFile(m.options.configFile)
	if err != nil {
		return nil, err
	}
	return cfg.Plugins()
}

// Enable activates a plugin by appending a content entry.
func (m *manager) Enable(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := omwconfig.LoadFile(m.options.configFile)
	if err != nil {
		return err
	}

	plugin, err := cfg.Plugin(name)
	if err != nil {
		return err
	}
	if err := plugin.Enable(); err != nil {
		return err
	}

	m.log().Info().Str("plugin", plugin.Name()).Msg("Enabled plugin")
	return cfg.Write()
}

// Disable deactivates a plugin by removing its content entry.
func (m *manager) Disable(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := omwconfig.LoadFile(m.options.configFile)
	if err != nil {
		return err
	}

	plugin, err := cfg.Plugin(name)
	if err != nil {
		return err
	}
	if err := plugin.Disable(); err != nil {
		return err
	}

	m.log().Info().Str("plugin", plugin.Name()).Msg("Disabled plugin")
	return cfg.Write()
}
