package omwconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/openmwmm/pkg/errors"
)

// pluginExtensions are the content file types OpenMW loads from data
// directories. Matching is case-insensitive, as on the Windows installs
// most mods were packaged for.
var pluginExtensions = map[string]bool{
	".esm":      true,
	".esp":      true,
	".omwaddon": true,
}

// IsPluginFile reports whether name has a plugin file extension.
func IsPluginFile(name string) bool {
	return pluginExtensions[strings.ToLower(filepath.Ext(name))]
}

// Mod is one data directory registered in openmw.cfg.
type Mod struct {
	path string
	cfg  *File
}

// Name returns the mod's directory name.
func (m *Mod) Name() string {
	return filepath.Base(m.path)
}

// Path returns the mod's directory path as registered.
func (m *Mod) Path() string {
	return m.path
}

// Entry returns the data entry that registers this mod, for removal.
func (m *Mod) Entry() *Entry {
	return &Entry{Key: KeyData, Value: m.path}
}

// Plugins returns the plugin files inside the mod directory, in directory
// order. A missing directory yields no plugins rather than an error, so
// stale data entries surface through Clean instead of breaking listings.
func (m *Mod) Plugins() ([]*Plugin, error) {
	dirents, err := os.ReadDir(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", m.path, err)
	}

	var out []*Plugin
	for _, d := range dirents {
		if d.IsDir() || !IsPluginFile(d.Name()) {
			continue
		}
		out = append(out, &Plugin{
			name: d.Name(),
			path: filepath.Join(m.path, d.Name()),
			cfg:  m.cfg,
		})
	}
	return out, nil
}

// Mods returns one Mod per data entry, in file order.
func (f *File) Mods() []*Mod {
	entries := f.FindKey(KeyData)
	out := make([]*Mod, 0, len(entries))
	for _, e := range entries {
		out = append(out, &Mod{path: e.Value, cfg: f})
	}
	return out
}

// Mod resolves a mod by directory name or full path.
func (f *File) Mod(name string) (*Mod, error) {
	for _, m := range f.Mods() {
		if m.Name() == name || m.Path() == name {
			return m, nil
		}
	}
	return nil, errors.NewNotFoundError("mod", name)
}

// Plugin is a plugin file provided by an installed mod.
type Plugin struct {
	name string
	path string
	cfg  *File
}

// Name returns the plugin's base filename.
func (p *Plugin) Name() string {
	return p.name
}

// Path returns the plugin file's full path.
func (p *Plugin) Path() string {
	return p.path
}

// Enabled reports whether a content entry exists for the plugin.
func (p *Plugin) Enabled() bool {
	return p.Order() >= 0
}

// Order returns the plugin's position among content entries, which is its
// load order. It returns -1 for a disabled plugin.
func (p *Plugin) Order() int {
	for i, e := range p.cfg.FindKey(KeyContent) {
		if e.Value == p.name {
			return i
		}
	}
	return -1
}

// Enable appends a content entry for the plugin. The change is in memory
// until the file is written.
func (p *Plugin) Enable() error {
	if p.Enabled() {
		return errors.NewValidationError("plugin", p.name, "already enabled")
	}
	p.cfg.Add(KeyContent, p.name)
	return nil
}

// Disable removes the plugin's content entry.
func (p *Plugin) Disable() error {
	if !p.Enabled() {
		return errors.NewValidationError("plugin", p.name, "not enabled")
	}
	p.cfg.Remove(&Entry{Key: KeyContent, Value: p.name})
	return nil
}

// Plugins returns every plugin provided by the registered mods. When two
// mods provide the same filename the later data entry shadows the earlier
// one, keeping the earlier position.
func (f *File) Plugins() ([]*Plugin, error) {
	var out []*Plugin
	index := make(map[string]int)
	for _, m := range f.Mods() {
		plugins, err := m.Plugins()
		if err != nil {
			return nil, err
		}
		for _, p := range plugins {
			if i, ok := index[p.name]; ok {
				out[i] = p
				continue
			}
			index[p.name] = len(out)
			out = append(out, p)
		}
	}
	return out, nil
}

// Plugin resolves a plugin by filename across all registered mods.
func (f *File) Plugin(name string) (*Plugin, error) {
	plugins, err := f.Plugins()
	if err != nil {
		return nil, err
	}
	for _, p := range plugins {
		if p.name == name {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError("plugin", name)
}

// Orphaned returns content entries that no registered mod provides, in
// file order. These are plugins whose mod was deleted or unregistered.
func (f *File) Orphaned() ([]string, error) {
	plugins, err := f.Plugins()
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(plugins))
	for _, p := range plugins {
		known[p.name] = true
	}

	var out []string
	for _, e := range f.FindKey(KeyContent) {
		if !known[e.Value] {
			out = append(out, e.Value)
		}
	}
	return out, nil
}
