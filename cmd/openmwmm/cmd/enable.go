package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/openmwmm/internal/appcontext"
)

// NewEnableCommand creates the enable command using app context.
func NewEnableCommand(appCtx appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "enable <plugin>",
		GroupID: "plugins",
		Short:   "Enable a content plugin",
		Args:    cobra.ExactArgs(1),
		Long: `Enable appends a content entry for the named plugin to openmw.cfg.
The plugin must be provided by an installed mod; new entries load after
every existing one.`,
		Example: `  openmwmm enable "Better Bows.esp"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mm, err := appCtx.Manager()
			if err != nil {
				return err
			}

			if err := mm.Enable(args[0]); err != nil {
				return err
			}

			cmd.Printf("Enabled %s\n", args[0])
			return nil
		},
	}
}
