package openmwmm

import (
	"context"
	"path/filepath"

	"github.com/agentstation/openmwmm/internal/mods"
	"github.com/agentstation/openmwmm/pkg/errors"
	"github.com/agentstation/openmwmm/pkg/omwconfig"
)

// Compile-time interface check to ensure proper implementation.
var _ ModManager = (*manager)(nil)

// ModManager installs, uninstalls, and lists mod directories.
type ModManager interface {
	// Mods lists the mods registered as data directories, in load order
	Mods() ([]*omwconfig.Mod, error)

	// Mod resolves a registered mod by name or path
	Mod(name string) (*omwconfig.Mod, error)

	// Install copies src into dest and registers the copy as a data
	// directory. An empty dest falls back to the configured mods
	// directory. Unless force is set, src must look like a mod
	// directory.
	Install(ctx context.Context, src, dest string, force bool) (*omwconfig.Mod, error)

	// Uninstall removes a mod's data entry. It can also disable the
	// mod's plugins first and delete the directory from disk.
	Uninstall(ctx context.Context, name string, disable, remove bool) error
}

// Mods lists the mods registered as data directories, in load order.
func (m *manager) Mods() ([]*omwconfig.Mod, error) {
	cfg, err := omwconfig.LoadFile(m.options.configFile)
	if err != nil {
		return nil, err
	}
	return cfg.Mods(), nil
}

// Mod resolves a registered mod by name or path.
func (m *manager) Mod(name string) (*omwconfig.Mod, error) {
	cfg, err := omwconfig.LoadFile(m.options.configFile)
	if err != nil {
		return nil, err
	}
	return resolveMod(cfg, name)
}

// resolveMod looks up name as given, then as an absolute path.
func resolveMod(cfg *omwconfig.File, name string) (*omwconfig.Mod, error) {
	mod, err := cfg.Mod(name)
	if err == nil {
		return mod, nil
	}
	abs, absErr := filepath.Abs(name)
	if absErr != nil || abs == name {
		return nil, err
	}
	if mod, absErr := cfg.Mod(abs); absErr == nil {
		return mod, nil
	}
	return nil, err
}

// Install copies src into dest and registers the copy as a data directory.
func (m *manager) Install(ctx context.Context, src, dest string, force bool) (*omwconfig.Mod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := omwconfig.LoadFile(m.options.configFile)
	if err != nil {
		return nil, err
	}

	src, err = filepath.Abs(src)
	if err != nil {
		return nil, errors.WrapIO("resolve", src, err)
	}

	if !force {
		ok, err := mods.IsModDir(src)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &errors.ValidationError{
				Field:   "src",
				Value:   src,
				Message: "does not look like a mod directory, use force to install anyway",
			}
		}
	}

	if dest == "" {
		dest = m.options.modsDir
	}
	if dest == "" {
		return nil, &errors.ValidationError{
			Field:   "dest",
			Message: "no destination given and no mods directory configured",
		}
	}
	dest, err = filepath.Abs(dest)
	if err != nil {
		return nil, errors.WrapIO("resolve", dest, err)
	}
	target := filepath.Join(dest, filepath.Base(src))

	m.log().Info().
		Str("src", src).
		Str("dest", target).
		Msg("Installing mod")

	if err := mods.CopyDir(ctx, src, target); err != nil {
		return nil, err
	}

	cfg.Add(omwconfig.KeyData, target)
	if err := cfg.Write(); err != nil {
		return nil, err
	}

	return cfg.Mod(target)
}

// Uninstall removes a mod's data entry, optionally disabling its plugins
// and deleting the directory.
func (m *manager) Uninstall(ctx context.Context, name string, disable, remove bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	cfg, err := omwconfig.LoadFile(m.options.configFile)
	if err != nil {
		return err
	}

	mod, err := resolveMod(cfg, name)
	if err != nil {
		return err
	}

	if disable {
		plugins, err := mod.Plugins()
		if err != nil {
			return err
		}
		for _, plugin := range plugins {
			if !plugin.Enabled() {
				continue
			}
			if err := plugin.Disable(); err != nil {
				return err
			}
		}
	}

	m.log().Info().
		Str("mod", mod.Name()).
		Str("path", mod.Path()).
		Bool("delete", remove).
		Msg("Uninstalling mod")

	cfg.Remove(mod.Entry())
	if err := cfg.Write(); err != nil {
		return err
	}

	if remove {
		return mods.Remove(mod.Path())
	}
	return nil
}
