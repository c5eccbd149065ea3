/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fulmenhq/hooktier/internal/hooks"
	"github.com/fulmenhq/hooktier/internal/ops"
	"github.com/fulmenhq/hooktier/pkg/ascii"
	"github.com/fulmenhq/hooktier/pkg/logger"
	"github.com/spf13/cobra"
)

// restructureCmd represents the restructure command
var restructureCmd = &cobra.Command{
	Use:   "restructure",
	Short: "Migrate hooks into the tiered directory layout",
	Long: `Migrate a flat or ad hoc hooks directory into the tiered layout.

Every hook is classified, the migration is planned, the current tree is
backed up, and the hook files are moved into the tier1, tier2, tier3 and
utils directories. The registry, manifest and tier READMEs are then
regenerated from the result.

Use --dry-run to preview the plan without touching any file.`,
	RunE: runRestructure,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("restructure", ops.GroupHooks, ops.CategoryOrganization, restructureCmd, "Migrate hooks into tier directories"); err != nil {
		panic(fmt.Sprintf("Failed to register restructure command: %v", err))
	}

	restructureCmd.Flags().Bool("dry-run", false, "Preview the migration without making changes")
	restructureCmd.Flags().Bool("no-backup", false, "Skip the pre-migration backup")
	restructureCmd.Flags().Bool("json", false, "Output the migration result in JSON format")
}

func runRestructure(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noBackup, _ := cmd.Flags().GetBool("no-backup")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noOp, _ := cmd.Flags().GetBool("no-op")

	// Check if no-op mode is enabled
	if noOp {
		logger.Info("Running in no-op mode - the migration will be planned but no files will be moved")
		dryRun = true
	}

	settings, err := loadHooksSettings(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	organizer := hooks.NewOrganizer(settings.Root, settings.Extensions)
	restructurer := hooks.NewRestructurer(organizer, nil, settings.BackupDir)

	opts := hooks.Options{
		DryRun:   dryRun,
		NoBackup: noBackup || settings.BackupDir == "",
	}

	if !dryRun {
		logger.Info(fmt.Sprintf("Restructuring hooks under %s", settings.Root))
	}

	result, err := restructurer.Restructure(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("restructure failed: %v", err)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %v", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		printMigration(out, result)
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("restructure completed with %d failed operations", len(result.Errors))
	}
	return nil
}

func printMigration(out io.Writer, result *hooks.Result) {
	plan := result.Plan

	title := "Migration Plan"
	if result.DryRun {
		title = "Migration Plan (dry run)"
	}
	fmt.Fprint(out, ascii.BoxWithTitle(title, []string{
		fmt.Sprintf("Tier 1 (critical):  %d", plan.Summary.Tier1),
		fmt.Sprintf("Tier 2 (important): %d", plan.Summary.Tier2),
		fmt.Sprintf("Tier 3 (optional):  %d", plan.Summary.Tier3),
		fmt.Sprintf("Utils:              %d", plan.Summary.Utils),
		fmt.Sprintf("Total hooks:        %d", plan.Summary.Total),
	}))

	for _, move := range plan.Moves {
		fmt.Fprintf(out, "  📦 %s -> %s\n", move.Hook, move.To)
	}
	for _, keep := range plan.Preserves {
		fmt.Fprintf(out, "  ✓ %s (%s)\n", keep.Hook, keep.Reason)
	}

	if result.DryRun {
		fmt.Fprintln(out, "💡 Dry run: no files were changed")
		return
	}

	if result.BackupPath != "" {
		fmt.Fprintf(out, "📁 Backup created at %s\n", result.BackupPath)
	}
	fmt.Fprintf(out, "✅ Moved %d hook(s), created %d dir(s), preserved %d\n",
		result.Moved, result.Created, result.Preserved)
	for _, opErr := range result.Errors {
		fmt.Fprintf(out, "❌ %s\n", opErr.Error())
	}
}
