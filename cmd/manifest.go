/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fulmenhq/hooktier/internal/hooks"
	"github.com/fulmenhq/hooktier/internal/ops"
	"github.com/spf13/cobra"
)

// manifestCmd represents the manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Generate the hooks manifest",
	Long: `Generate the per-tier manifest summarizing the organized hooks.

The manifest is printed to stdout; use --write to also persist it to the
hooks root as ` + hooks.ManifestFileName + `.`,
	RunE: runManifest,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("manifest", ops.GroupHooks, ops.CategoryInspection, manifestCmd, "Generate the hooks manifest"); err != nil {
		panic(fmt.Sprintf("Failed to register manifest command: %v", err))
	}

	manifestCmd.Flags().Bool("write", false, "Write the manifest to the hooks root")
}

func runManifest(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")

	settings, err := loadHooksSettings(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	organizer := hooks.NewOrganizer(settings.Root, settings.Extensions)
	manifest, err := organizer.GenerateManifest()
	if err != nil {
		return fmt.Errorf("failed to generate manifest: %v", err)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %v", err)
	}
	fmt.Fprintln(out, string(data))

	if write {
		if err := organizer.WriteManifest(); err != nil {
			return fmt.Errorf("failed to write manifest: %v", err)
		}
		fmt.Fprintf(out, "✅ Manifest written to %s\n", organizer.ManifestPath())
	}

	return nil
}
