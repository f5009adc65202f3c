package openmwmm

import (
	"os"

	"github.com/agentstation/openmwmm/pkg/errors"
	"github.com/agentstation/openmwmm/pkg/omwconfig"
)

// Compile-time interface check to ensure proper implementation.
var _ Cleaner = (*manager)(nil)

// Cleaner drops configuration entries that no longer resolve on disk.
type Cleaner interface {
	// Clean removes data entries whose directory is gone and content
	// entries no installed mod provides. The file is rewritten only
	// when something was removed.
	Clean() (*CleanResult, error)
}

// CleanResult reports the entries removed by a Clean pass.
type CleanResult struct {
	// Dirs holds the paths of removed data entries.
	Dirs []string `json:"dirs,omitempty" yaml:"dirs,omitempty"`

	// Plugins holds the names of removed content entries.
	Plugins []string `json:"plugins,omitempty" yaml:"plugins,omitempty"`
}

// HasChanges reports whether the pass removed anything.
func (r *CleanResult) HasChanges() bool {
	return len(r.Dirs) > 0 || len(r.Plugins) > 0
}

// Clean removes data entries whose directory is gone and content entries
// no installed mod provides.
func (m *manager) Clean() (*CleanResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := omwconfig.LoadFile(m.options.configFile)
	if err != nil {
		return nil, err
	}

	result := &CleanResult{}

	// Dead data directories first, so their plugins orphan below.
	for _, mod := range cfg.Mods() {
		info, err := os.Stat(mod.Path())
		if err == nil && info.IsDir() {
			continue
		}
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.WrapIO("stat", mod.Path(), err)
		}
		cfg.Remove(mod.Entry())
		result.Dirs = append(result.Dirs, mod.Path())
	}

	orphans, err := cfg.Orphaned()
	if err != nil {
		return nil, err
	}
	for _, name := range orphans {
		cfg.Remove(&omwconfig.Entry{Key: omwconfig.KeyContent, Value: name})
		result.Plugins = append(result.Plugins, name)
	}

	if !result.HasChanges() {
		return result, nil
	}

	m.log().Info().
		Strs("dirs", result.Dirs).
		Strs("plugins", result.Plugins).
		Msg("Cleaned stale entries")

	if err := cfg.Write(); err != nil {
		return nil, err
	}
	return result, nil
}
