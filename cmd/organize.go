/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fulmenhq/hooktier/internal/hooks"
	"github.com/fulmenhq/hooktier/internal/ops"
	"github.com/fulmenhq/hooktier/pkg/logger"
	"github.com/spf13/cobra"
)

// organizeCmd represents the organize command
var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Classify hooks and write the registry, manifest and tier READMEs",
	Long: `Scan the hooks root, classify every hook into a tier and category, and
write the hook registry, the manifest and the per-tier README files.

Organize records tier assignments without moving any hook files. Use
restructure to migrate the files into their tier directories.`,
	RunE: runOrganize,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("organize", ops.GroupHooks, ops.CategoryOrganization, organizeCmd, "Classify hooks and write registry metadata"); err != nil {
		panic(fmt.Sprintf("Failed to register organize command: %v", err))
	}

	organizeCmd.Flags().Bool("json", false, "Output the organization summary in JSON format")
}

func runOrganize(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	settings, err := loadHooksSettings(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	source := hooks.NewDirSource(settings.Root, settings.Extensions)
	records, err := source.LoadExistingHooks()
	if err != nil {
		return fmt.Errorf("failed to scan hooks root: %v", err)
	}
	if len(records) == 0 {
		fmt.Fprintf(out, "No hooks found under %s\n", settings.Root)
		return nil
	}

	categorized := hooks.NewCategorizer().Categorize(records)

	organizer := hooks.NewOrganizer(settings.Root, settings.Extensions)
	reg, err := organizer.Organize(categorized)
	if err != nil {
		return fmt.Errorf("failed to organize hooks: %v", err)
	}
	if err := organizer.WriteManifest(); err != nil {
		return fmt.Errorf("failed to write manifest: %v", err)
	}
	if err := organizer.CreateTierReadmeFiles(); err != nil {
		return fmt.Errorf("failed to write tier READMEs: %v", err)
	}

	logger.Info(fmt.Sprintf("Organized %d hooks under %s", categorized.Total(), settings.Root))

	if jsonOutput {
		tiers := map[string]int{}
		for _, tier := range hooks.AllTiers() {
			tiers[string(tier)] = len(reg.Tiers[tier])
		}
		summary := map[string]interface{}{
			"root":       settings.Root,
			"totalHooks": categorized.Total(),
			"tiers":      tiers,
			"registry":   organizer.Store().Path(),
			"manifest":   organizer.ManifestPath(),
		}
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %v", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "📋 Organized %d hooks under %s\n", categorized.Total(), settings.Root)
	for _, tier := range hooks.AllTiers() {
		fmt.Fprintf(out, "   %-5s %d hook(s)\n", tier, len(reg.Tiers[tier]))
	}
	fmt.Fprintf(out, "✅ Registry written to %s\n", organizer.Store().Path())
	fmt.Fprintf(out, "✅ Manifest written to %s\n", organizer.ManifestPath())

	return nil
}
