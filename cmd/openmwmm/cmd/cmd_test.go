package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/openmwmm"
	"github.com/agentstation/openmwmm/cmd/openmwmm/cmd"
	"github.com/agentstation/openmwmm/internal/appcontext"
	"github.com/agentstation/openmwmm/pkg/errors"
)

// newTestContext builds a mock app context over a real manager operating on
// a temp openmw.cfg with one installed mod providing two plugins.
func newTestContext(t *testing.T, format string) (*appcontext.Mock, string) {
	t.Helper()

	root := t.TempDir()
	modDir := filepath.Join(root, "Better Rats")
	require.NoError(t, os.MkdirAll(modDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "better_rats.esp"), []byte("stub"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "extra_rats.esp"), []byte("stub"), 0o644))

	cfgPath := filepath.Join(root, "openmw.cfg")
	cfgBody := "# test config\ndata=\"" + modDir + "\"\ncontent=better_rats.esp\ncontent=ghost.esp\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0o644))

	mm, err := openmwmm.New(openmwmm.WithConfigFile(cfgPath))
	require.NoError(t, err)

	return &appcontext.Mock{
		ManagerFunc: func() (openmwmm.Manager, error) {
			return mm, nil
		},
		OutputFormatFunc: func() string {
			return format
		},
	}, cfgPath
}

// execute runs a command with args and returns its combined output.
func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetArgs(args)
	err := c.Execute()
	return buf.String(), err
}

func TestListModsCommand(t *testing.T) {
	t.Run("names by default", func(t *testing.T) {
		appCtx, _ := newTestContext(t, "text")
		out, err := execute(t, cmd.NewListModsCommand(appCtx))
		require.NoError(t, err)
		assert.Equal(t, "Better Rats\n", out)
	})

	t.Run("paths with showpath", func(t *testing.T) {
		appCtx, cfgPath := newTestContext(t, "text")
		out, err := execute(t, cmd.NewListModsCommand(appCtx), "--showpath")
		require.NoError(t, err)
		assert.Contains(t, out, filepath.Join(filepath.Dir(cfgPath), "Better Rats"))
	})

	t.Run("directory argument scans unpacked mods", func(t *testing.T) {
		appCtx, _ := newTestContext(t, "text")

		downloads := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(downloads, "Nicer Caves"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(downloads, "Nicer Caves", "nicer_caves.esp"), []byte("stub"), 0o644))
		require.NoError(t, os.MkdirAll(filepath.Join(downloads, "readme-only"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(downloads, "readme-only", "README.txt"), []byte("docs"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(downloads, "loose.zip"), []byte("zip"), 0o644))

		out, err := execute(t, cmd.NewListModsCommand(appCtx), downloads)
		require.NoError(t, err)
		assert.Equal(t, "Nicer Caves\n", out)
	})

	t.Run("json output", func(t *testing.T) {
		appCtx, _ := newTestContext(t, "json")
		out, err := execute(t, cmd.NewListModsCommand(appCtx))
		require.NoError(t, err)

		var mods []struct {
			Name string `json:"name"`
			Path string `json:"path"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &mods))
		require.Len(t, mods, 1)
		assert.Equal(t, "Better Rats", mods[0].Name)
	})
}

func TestListPluginsCommand(t *testing.T) {
	t.Run("marks enabled plugins", func(t *testing.T) {
		appCtx, _ := newTestContext(t, "text")
		out, err := execute(t, cmd.NewListPluginsCommand(appCtx))
		require.NoError(t, err)
		assert.Contains(t, out, "[x] better_rats.esp")
		assert.Contains(t, out, "[ ] extra_rats.esp")
	})

	t.Run("reports orphaned content entries", func(t *testing.T) {
		appCtx, _ := newTestContext(t, "text")
		out, err := execute(t, cmd.NewListPluginsCommand(appCtx))
		require.NoError(t, err)
		assert.Contains(t, out, "Orphaned content entries")
		assert.Contains(t, out, "ghost.esp")
	})

	t.Run("tree groups by mod", func(t *testing.T) {
		appCtx, _ := newTestContext(t, "text")
		out, err := execute(t, cmd.NewListPluginsCommand(appCtx), "--tree")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.NotEmpty(t, lines)
		assert.Equal(t, "Better Rats", lines[0])
		assert.Contains(t, out, "  [x] better_rats.esp")
	})
}

func TestEnableDisableCommands(t *testing.T) {
	appCtx, cfgPath := newTestContext(t, "text")

	out, err := execute(t, cmd.NewEnableCommand(appCtx), "extra_rats.esp")
	require.NoError(t, err)
	assert.Contains(t, out, "Enabled extra_rats.esp")

	body, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), "content=extra_rats.esp")

	out, err = execute(t, cmd.NewDisableCommand(appCtx), "extra_rats.esp")
	require.NoError(t, err)
	assert.Contains(t, out, "Disabled extra_rats.esp")

	body, err = os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "content=extra_rats.esp")

	// Enabling twice is a validation error
	_, err = execute(t, cmd.NewEnableCommand(appCtx), "better_rats.esp")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCleanCommand(t *testing.T) {
	appCtx, cfgPath := newTestContext(t, "text")

	out, err := execute(t, cmd.NewCleanCommand(appCtx))
	require.NoError(t, err)
	assert.Contains(t, out, "Removed content entry ghost.esp")

	// A second pass has nothing left to do
	out, err = execute(t, cmd.NewCleanCommand(appCtx))
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to clean")

	body, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "ghost.esp")
}

func TestMergeCommand_NothingToMerge(t *testing.T) {
	appCtx, cfgPath := newTestContext(t, "text")

	// Disable everything so no plugin is selected for merging.
	_, err := execute(t, cmd.NewDisableCommand(appCtx), "better_rats.esp")
	require.NoError(t, err)
	_, err = execute(t, cmd.NewCleanCommand(appCtx))
	require.NoError(t, err)

	_, err = execute(t, cmd.NewMergeCommand(appCtx), "-o", filepath.Join(filepath.Dir(cfgPath), "Merged.esp"))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestUninstallCommand(t *testing.T) {
	appCtx, cfgPath := newTestContext(t, "text")

	out, err := execute(t, cmd.NewUninstallCommand(appCtx), "Better Rats", "--clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Uninstalled Better Rats")

	body, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "Better Rats")
	assert.NotContains(t, string(body), "content=better_rats.esp")
}
