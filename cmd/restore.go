/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"

	"github.com/fulmenhq/hooktier/internal/hooks"
	"github.com/fulmenhq/hooktier/internal/ops"
	"github.com/fulmenhq/hooktier/pkg/logger"
	"github.com/spf13/cobra"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the hooks tree from the last backup",
	Long: `Replace the current hooks tree with the backup taken by the last
restructure run. The current tree is discarded.`,
	RunE: runRestore,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("restore", ops.GroupHooks, ops.CategoryOrganization, restoreCmd, "Restore hooks from the last backup"); err != nil {
		panic(fmt.Sprintf("Failed to register restore command: %v", err))
	}
}

func runRestore(cmd *cobra.Command, args []string) error {
	settings, err := loadHooksSettings(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	organizer := hooks.NewOrganizer(settings.Root, settings.Extensions)
	restructurer := hooks.NewRestructurer(organizer, nil, settings.BackupDir)

	logger.Info(fmt.Sprintf("Restoring hooks from %s", restructurer.BackupDir()))

	if err := restructurer.RestoreFromBackup(); err != nil {
		return fmt.Errorf("restore failed: %v", err)
	}

	fmt.Fprintf(out, "✅ Restored hooks tree from %s\n", restructurer.BackupDir())
	return nil
}
