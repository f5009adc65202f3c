package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/openmwmm/cmd/openmwmm/cmd"
)

// CreateInstallCommand creates the install command with app dependencies.
func (a *App) CreateInstallCommand() *cobra.Command {
	return cmd.NewInstallCommand(a)
}

// CreateUninstallCommand creates the uninstall command with app dependencies.
func (a *App) CreateUninstallCommand() *cobra.Command {
	return cmd.NewUninstallCommand(a)
}

// CreateEnableCommand creates the enable command with app dependencies.
func (a *App) CreateEnableCommand() *cobra.Command {
	return cmd.NewEnableCommand(a)
}

// CreateDisableCommand creates the disable command with app dependencies.
func (a *App) CreateDisableCommand() *cobra.Command {
	return cmd.NewDisableCommand(a)
}

// CreateListCommand creates the list command with app dependencies.
func (a *App) CreateListCommand() *cobra.Command {
	return cmd.NewListCommand(a)
}

// CreateCleanCommand creates the clean command with app dependencies.
func (a *App) CreateCleanCommand() *cobra.Command {
	return cmd.NewCleanCommand(a)
}

// CreateMergeCommand creates the merge command with app dependencies.
func (a *App) CreateMergeCommand() *cobra.Command {
	return cmd.NewMergeCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("openmwmm %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
