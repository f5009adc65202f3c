package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/openmwmm/internal/appcontext"
)

// NewDisableCommand creates the disable command using app context.
func NewDisableCommand(appCtx appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "disable <plugin>",
		GroupID: "plugins",
		Short:   "Disable a content plugin",
		Args:    cobra.ExactArgs(1),
		Long: `Disable removes the named plugin's content entry from openmw.cfg.
The plugin's files stay installed; only its load-order entry goes away.`,
		Example: `  openmwmm disable "Better Bows.esp"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mm, err := appCtx.Manager()
			if err != nil {
				return err
			}

			if err := mm.Disable(args[0]); err != nil {
				return err
			}

			cmd.Printf("Disabled %s\n", args[0])
			return nil
		},
	}
}
