package omwconfig_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/openmwmm/pkg/errors"
	"github.com/agentstation/openmwmm/pkg/omwconfig"
)

// modDir creates a mod directory with the given files.
func modDir(t *testing.T, root, name string, files ...string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644))
	}
	return dir
}

// loadFixture builds a config over the given data dirs and content lines.
func loadFixture(t *testing.T, dataDirs []string, content []string) *omwconfig.File {
	t.Helper()
	var b strings.Builder
	for _, d := range dataDirs {
		fmt.Fprintf(&b, "data=%q\n", d)
	}
	for _, c := range content {
		fmt.Fprintf(&b, "content=%s\n", c)
	}
	cfg, err := omwconfig.Load(strings.NewReader(b.String()), "openmw.cfg")
	require.NoError(t, err)
	return cfg
}

func TestIsPluginFile(t *testing.T) {
	assert.True(t, omwconfig.IsPluginFile("mod.esp"))
	assert.True(t, omwconfig.IsPluginFile("Morrowind.ESM"))
	assert.True(t, omwconfig.IsPluginFile("patch.OmwAddon"))
	assert.False(t, omwconfig.IsPluginFile("readme.txt"))
	assert.False(t, omwconfig.IsPluginFile("texture.dds"))
}

func TestMods(t *testing.T) {
	root := t.TempDir()
	rats := modDir(t, root, "Better Rats", "better_rats.esp", "readme.txt")
	cfg := loadFixture(t, []string{rats}, nil)

	mods := cfg.Mods()
	require.Len(t, mods, 1)
	assert.Equal(t, "Better Rats", mods[0].Name())
	assert.Equal(t, rats, mods[0].Path())
	assert.Equal(t, omwconfig.KeyData, mods[0].Entry().Key)
	assert.Equal(t, rats, mods[0].Entry().Value)

	t.Run("lookup by name or path", func(t *testing.T) {
		byName, err := cfg.Mod("Better Rats")
		require.NoError(t, err)
		assert.Equal(t, rats, byName.Path())

		byPath, err := cfg.Mod(rats)
		require.NoError(t, err)
		assert.Equal(t, "Better Rats", byPath.Name())

		_, err = cfg.Mod("Absent Mod")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestModPlugins(t *testing.T) {
	t.Run("discovers plugin files case-insensitively", func(t *testing.T) {
		root := t.TempDir()
		dir := modDir(t, root, "Mixed", "a.esp", "B.ESM", "c.omwaddon", "notes.txt")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "Textures"), 0o755))
		cfg := loadFixture(t, []string{dir}, nil)

		plugins, err := cfg.Mods()[0].Plugins()
		require.NoError(t, err)
		require.Len(t, plugins, 3)
		assert.Equal(t, "B.ESM", plugins[0].Name())
		assert.Equal(t, "a.esp", plugins[1].Name())
		assert.Equal(t, "c.omwaddon", plugins[2].Name())
		assert.Equal(t, filepath.Join(dir, "a.esp"), plugins[1].Path())
	})

	t.Run("missing directory yields no plugins", func(t *testing.T) {
		cfg := loadFixture(t, []string{"/nonexistent/mod"}, nil)
		plugins, err := cfg.Mods()[0].Plugins()
		require.NoError(t, err)
		assert.Empty(t, plugins)
	})
}

func TestPlugins(t *testing.T) {
	root := t.TempDir()
	base := modDir(t, root, "Base", "shared.esp", "base_only.esp")
	override := modDir(t, root, "Override", "shared.esp")
	cfg := loadFixture(t, []string{base, override}, nil)

	plugins, err := cfg.Plugins()
	require.NoError(t, err)
	require.Len(t, plugins, 2)

	// The later data dir shadows the earlier one, keeping its position.
	assert.Equal(t, "shared.esp", plugins[1].Name())
	assert.Equal(t, filepath.Join(override, "shared.esp"), plugins[1].Path())
	assert.Equal(t, "base_only.esp", plugins[0].Name())
}

func TestPluginEnableDisable(t *testing.T) {
	root := t.TempDir()
	dir := modDir(t, root, "Rats", "rats.esp")
	cfg := loadFixture(t, []string{dir}, []string{"Morrowind.esm"})

	plugin, err := cfg.Plugin("rats.esp")
	require.NoError(t, err)
	assert.False(t, plugin.Enabled())
	assert.Equal(t, -1, plugin.Order())

	require.NoError(t, plugin.Enable())
	assert.True(t, plugin.Enabled())
	assert.Equal(t, 1, plugin.Order())

	err = plugin.Enable()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	require.NoError(t, plugin.Disable())
	assert.False(t, plugin.Enabled())

	err = plugin.Disable()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	t.Run("unknown plugin", func(t *testing.T) {
		_, err := cfg.Plugin("absent.esp")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestOrphaned(t *testing.T) {
	root := t.TempDir()
	dir := modDir(t, root, "Rats", "rats.esp")
	cfg := loadFixture(t, []string{dir}, []string{"rats.esp", "deleted_mod.esp", "Morrowind.esm"})

	orphans, err := cfg.Orphaned()
	require.NoError(t, err)
	assert.Equal(t, []string{"deleted_mod.esp", "Morrowind.esm"}, orphans)
}
