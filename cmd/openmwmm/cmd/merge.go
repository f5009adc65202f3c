package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/openmwmm/internal/appcontext"
	"github.com/agentstation/openmwmm/pkg/merger"
)

// NewMergeCommand creates the merge command using app context.
func NewMergeCommand(appCtx appcontext.Interface) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "merge",
		GroupID: "plugins",
		Short:   "Merge leveled lists across enabled plugins",
		Args:    cobra.NoArgs,
		Long: `Merge parses every enabled plugin in load order, folds their leveled
creature and item lists into one union-merged definition per list, and
writes the result as a new plugin. Loading that plugin last restores
additions that later plugins would otherwise override away.

Plugins named by the never_merge configuration key are skipped, as is
any previous merge output. The merged plugin is not enabled
automatically.`,
		Example: `  openmwmm merge
  openmwmm merge -o ~/games/mods/merged/Merged_Lists.esp
  openmwmm merge --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mm, err := appCtx.Manager()
			if err != nil {
				return err
			}

			report, err := mm.Merge(cmd.Context(), output)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), appCtx.OutputFormat(), report, func(w io.Writer) error {
				return printReport(w, report)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "path for the merged plugin (default Merged_Lists.esp)")

	return cmd
}

// printReport renders the merge report followed by its summary line.
func printReport(w io.Writer, report *merger.Report) error {
	report.Print(w)
	_, err := fmt.Fprintln(w, report)
	return err
}
