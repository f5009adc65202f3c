package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/openmwmm/internal/appcontext"
)

// NewUninstallCommand creates the uninstall command using app context.
func NewUninstallCommand(appCtx appcontext.Interface) *cobra.Command {
	var (
		deleteDir bool
		clean     bool
	)

	cmd := &cobra.Command{
		Use:     "uninstall <mod>",
		GroupID: "mods",
		Short:   "Uninstall a mod directory",
		Args:    cobra.ExactArgs(1),
		Long: `Uninstall removes a mod's data entry from openmw.cfg. The mod is
resolved by directory name or path. The directory itself is left on
disk unless --delete is given; content entries for the mod's plugins
are left in place unless --clean is given.`,
		Example: `  openmwmm uninstall "Better Bows"
  openmwmm uninstall "Better Bows" --clean
  openmwmm uninstall "Better Bows" --delete --clean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mm, err := appCtx.Manager()
			if err != nil {
				return err
			}

			if err := mm.Uninstall(cmd.Context(), args[0], clean, deleteDir); err != nil {
				return err
			}

			cmd.Printf("Uninstalled %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&deleteDir, "delete", "d", false, "also delete the mod directory from disk")
	cmd.Flags().BoolVarP(&clean, "clean", "c", false, "disable the mod's plugins before uninstalling")

	return cmd
}
