package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/openmwmm"
	"github.com/agentstation/openmwmm/internal/appcontext"
	"github.com/agentstation/openmwmm/internal/mods"
	"github.com/agentstation/openmwmm/pkg/errors"
)

// NewListCommand creates the list command using app context.
func NewListCommand(appCtx appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed mods and plugins",
		Long: `List displays what openmw.cfg currently registers.

Available subcommands:
  mods     - installed mod directories, in data-entry order
  plugins  - plugin files provided by the installed mods`,
		Example: `  openmwmm list mods
  openmwmm list mods --showpath
  openmwmm list mods ~/downloads/unpacked
  openmwmm list plugins --tree`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewListModsCommand(appCtx))
	cmd.AddCommand(NewListPluginsCommand(appCtx))

	return cmd
}

// modInfo is the serializable shape of one installed mod.
type modInfo struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// NewListModsCommand creates the list mods subcommand.
func NewListModsCommand(appCtx appcontext.Interface) *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "mods [dir]",
		Short: "List installed mod directories",
		Long: `List mods shows the mod directories openmw.cfg registers, in
data-entry order. With a directory argument it instead scans that
directory and lists the subfolders that look like mods, whether or
not they are installed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []modInfo
			if len(args) == 1 {
				var err error
				infos, err = scanModDirs(args[0])
				if err != nil {
					return err
				}
			} else {
				mm, err := appCtx.Manager()
				if err != nil {
					return err
				}

				installed, err := mm.Mods()
				if err != nil {
					return err
				}

				infos = make([]modInfo, 0, len(installed))
				for _, m := range installed {
					infos = append(infos, modInfo{Name: m.Name(), Path: m.Path()})
				}
			}

			return render(cmd.OutOrStdout(), appCtx.OutputFormat(), infos, func(w io.Writer) error {
				for _, info := range infos {
					if showPath {
						fmt.Fprintln(w, info.Path)
					} else {
						fmt.Fprintln(w, info.Name)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&showPath, "showpath", "s", false, "print full directory paths instead of names")

	return cmd
}

// scanModDirs lists the subdirectories of dir that look like mods.
func scanModDirs(dir string) ([]modInfo, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	var infos []modInfo
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		path := filepath.Join(dir, d.Name())
		ok, err := mods.IsModDir(path)
		if err != nil {
			return nil, err
		}
		if ok {
			infos = append(infos, modInfo{Name: d.Name(), Path: path})
		}
	}
	return infos, nil
}

// pluginInfo is the serializable shape of one plugin file.
type pluginInfo struct {
	Name    string `json:"name"            yaml:"name"`
	Path    string `json:"path"            yaml:"path"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Order   int    `json:"order"   yaml:"order"` // -1 when disabled
}

// pluginListing is the full list plugins payload, orphans included.
type pluginListing struct {
	Plugins  []pluginInfo `json:"plugins"            yaml:"plugins"`
	Orphaned []string     `json:"orphaned,omitempty" yaml:"orphaned,omitempty"`
}

// NewListPluginsCommand creates the list plugins subcommand.
func NewListPluginsCommand(appCtx appcontext.Interface) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List plugins provided by installed mods",
		Args:  cobra.NoArgs,
		Long: `List plugins shows every plugin file the installed mods provide,
marking enabled ones with their load order. Content entries that no
installed mod provides are reported as orphaned; clean removes them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mm, err := appCtx.Manager()
			if err != nil {
				return err
			}

			plugins, err := mm.Plugins()
			if err != nil {
				return err
			}

			cfg, err := mm.Config()
			if err != nil {
				return err
			}
			orphaned, err := cfg.Orphaned()
			if err != nil {
				return err
			}

			listing := pluginListing{Orphaned: orphaned}
			for _, p := range plugins {
				listing.Plugins = append(listing.Plugins, pluginInfo{
					Name:    p.Name(),
					Path:    p.Path(),
					Enabled: p.Enabled(),
					Order:   p.Order(),
				})
			}

			return render(cmd.OutOrStdout(), appCtx.OutputFormat(), listing, func(w io.Writer) error {
				if tree {
					return printPluginTree(w, mm, listing.Orphaned)
				}
				for _, p := range listing.Plugins {
					fmt.Fprintf(w, "%s %s\n", checkmark(p.Enabled), p.Name)
				}
				printOrphaned(w, listing.Orphaned)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "group plugins under the mod that provides them")

	return cmd
}

// printPluginTree renders plugins grouped by owning mod.
func printPluginTree(w io.Writer, mm openmwmm.Manager, orphaned []string) error {
	installed, err := mm.Mods()
	if err != nil {
		return err
	}
	for _, m := range installed {
		fmt.Fprintln(w, m.Name())
		plugins, err := m.Plugins()
		if err != nil {
			return err
		}
		for _, p := range plugins {
			fmt.Fprintf(w, "  %s %s\n", checkmark(p.Enabled()), p.Name())
		}
	}
	printOrphaned(w, orphaned)
	return nil
}

// printOrphaned renders the orphaned-content footer, if any.
func printOrphaned(w io.Writer, orphaned []string) {
	if len(orphaned) == 0 {
		return
	}
	fmt.Fprintln(w, "Orphaned content entries (no installed mod provides them):")
	for _, name := range orphaned {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
