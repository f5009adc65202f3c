package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/openmwmm/internal/appcontext"
)

// NewCleanCommand creates the clean command using app context.
func NewCleanCommand(appCtx appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove stale openmw.cfg entries",
		Args:  cobra.NoArgs,
		Long: `Clean removes data entries whose directory no longer exists and
content entries no installed mod provides. openmw.cfg is rewritten only
when something was removed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mm, err := appCtx.Manager()
			if err != nil {
				return err
			}

			result, err := mm.Clean()
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), appCtx.OutputFormat(), result, func(w io.Writer) error {
				if !result.HasChanges() {
					fmt.Fprintln(w, "Nothing to clean")
					return nil
				}
				for _, dir := range result.Dirs {
					fmt.Fprintf(w, "Removed data entry %s\n", dir)
				}
				for _, plugin := range result.Plugins {
					fmt.Fprintf(w, "Removed content entry %s\n", plugin)
				}
				return nil
			})
		},
	}
}
