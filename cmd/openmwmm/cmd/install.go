package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/openmwmm/internal/appcontext"
)

// NewInstallCommand creates the install command using app context.
func NewInstallCommand(appCtx appcontext.Interface) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "install <source> [destination]",
		GroupID: "mods",
		Short:   "Install a mod directory",
		Args:    cobra.RangeArgs(1, 2),
		Long: `Install copies a mod directory into the configured mods directory
(or an explicit destination) and registers the copy as a data entry in
openmw.cfg. The source must look like a mod directory: it contains
plugin files, archives, or known data subdirectories. Use --force to
install a directory that fails that check.

Plugins provided by the mod stay disabled until enabled explicitly.`,
		Example: `  openmwmm install "./Better Bows"
  openmwmm install "./Better Bows" ~/games/mods
  openmwmm install ./loose-files --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mm, err := appCtx.Manager()
			if err != nil {
				return err
			}

			dest := ""
			if len(args) == 2 {
				dest = args[1]
			}

			mod, err := mm.Install(cmd.Context(), args[0], dest, force)
			if err != nil {
				return err
			}

			cmd.Printf("Installed %s -> %s\n", mod.Name(), mod.Path())

			plugins, err := mod.Plugins()
			if err != nil {
				return err
			}
			for _, p := range plugins {
				cmd.Printf("  provides %s (disabled)\n", p.Name())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "install even if the source does not look like a mod directory")

	return cmd
}
