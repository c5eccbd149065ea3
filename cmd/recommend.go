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

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show hooks this project is missing",
	Long: `Compare the installed hooks against the profile for the project type and
report what is missing, grouped by how strongly it applies.`,
	RunE: runRecommend,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("recommend", ops.GroupHooks, ops.CategorySelection, recommendCmd, "Show missing recommended hooks"); err != nil {
		panic(fmt.Sprintf("Failed to register recommend command: %v", err))
	}

	recommendCmd.Flags().String("project-type", "", "Project type (node|typescript|react|python|monorepo|api|default)")
	recommendCmd.Flags().Bool("json", false, "Output recommendations in JSON format")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	projectType, _ := cmd.Flags().GetString("project-type")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	settings, err := loadHooksSettings(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if projectType == "" {
		projectType = settings.ProjectType
	}
	if projectType == "" {
		projectType = hooks.DetectProjectType(".")
	}

	organizer := hooks.NewOrganizer(settings.Root, settings.Extensions)
	categorized, err := organizer.CategorizedHooks()
	if err != nil {
		return fmt.Errorf("failed to load hooks: %v", err)
	}

	set := hooks.Recommendations(projectType, categorized.Names())

	if jsonOutput {
		payload := map[string]interface{}{
			"projectType":     projectType,
			"recommendations": set,
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal recommendations: %v", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(set.Required)+len(set.Recommended)+len(set.Optional) == 0 {
		fmt.Fprintf(out, "✅ All recommended hooks for %s projects are installed\n", projectType)
		return nil
	}

	fmt.Fprintf(out, "🔍 Missing hooks for %s project:\n", projectType)
	for _, name := range set.Required {
		fmt.Fprintf(out, "  ❌ %s (required)\n", name)
	}
	for _, name := range set.Recommended {
		fmt.Fprintf(out, "  💡 %s (recommended)\n", name)
	}
	for _, name := range set.Optional {
		fmt.Fprintf(out, "  ✨ %s (optional)\n", name)
	}

	return nil
}
