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
	"github.com/fulmenhq/hooktier/pkg/safeio"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <hook-name>",
	Short: "Show classification details for one hook",
	Long: `Show everything hooktier knows about one hook: tier, category,
importance, location, and the behavior flags inferred from its source.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("inspect", ops.GroupHooks, ops.CategoryInspection, inspectCmd, "Show details for one hook"); err != nil {
		panic(fmt.Sprintf("Failed to register inspect command: %v", err))
	}

	inspectCmd.Flags().Bool("json", false, "Output hook details in JSON format")
}

func runInspect(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	name := args[0]

	settings, err := loadHooksSettings(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	organizer := hooks.NewOrganizer(settings.Root, settings.Extensions)
	categorized, err := organizer.CategorizedHooks()
	if err != nil {
		return fmt.Errorf("failed to load hooks: %v", err)
	}

	hook, ok := categorized.Find(name)
	if !ok {
		return fmt.Errorf("hook %q not found under %s", name, settings.Root)
	}

	// Missing or unreadable files leave the flags at their zero values.
	var flags hooks.ContentFlags
	if content, err := safeio.ReadFileContained(settings.Root, hook.CurrentPath); err == nil {
		flags = hooks.AnalyzeContent(string(content))
	}

	if jsonOutput {
		payload := map[string]interface{}{
			"name":        hook.Name,
			"tier":        hook.Tier,
			"category":    hook.Category,
			"importance":  hook.Importance,
			"description": hook.Description,
			"path":        hook.CurrentPath,
			"flags":       flags,
		}
		if hook.SubPath != "" {
			payload["subPath"] = hook.SubPath
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal hook details: %v", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	lines := []string{
		fmt.Sprintf("Tier:        %s", hook.Tier),
		fmt.Sprintf("Category:    %s", hook.Category),
		fmt.Sprintf("Importance:  %s", hook.Importance),
		fmt.Sprintf("Path:        %s", hook.CurrentPath),
	}
	if hook.Description != "" {
		lines = append(lines, fmt.Sprintf("Description: %s", hook.Description))
	}
	fmt.Fprint(out, ascii.BoxWithTitle(hook.Name, lines))

	fmt.Fprintln(out, "Behavior flags:")
	printFlag(out, "security checks", flags.HasSecurityChecks)
	printFlag(out, "validation", flags.HasValidation)
	printFlag(out, "enforcement", flags.HasEnforcement)
	printFlag(out, "reporting", flags.HasReporting)
	printFlag(out, "notification", flags.HasNotification)
	printFlag(out, "async execution", flags.IsAsync)
	printFlag(out, "external API calls", flags.UsesExternalAPI)

	return nil
}

func printFlag(out io.Writer, label string, set bool) {
	mark := "✗"
	if set {
		mark = "✓"
	}
	fmt.Fprintf(out, "  %s %s\n", mark, label)
}
