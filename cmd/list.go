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

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List hooks by tier",
	Long: `List the hooks known to this project, grouped by tier.

The registry is used when present; otherwise the tier directories are
scanned directly.`,
	RunE: runList,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("list", ops.GroupHooks, ops.CategoryInspection, listCmd, "List hooks by tier"); err != nil {
		panic(fmt.Sprintf("Failed to register list command: %v", err))
	}

	listCmd.Flags().String("tier", "", "Only show hooks in this tier (tier1|tier2|tier3|utils)")
	listCmd.Flags().Bool("json", false, "Output the hook list in JSON format")
}

func runList(cmd *cobra.Command, args []string) error {
	tierFilter, _ := cmd.Flags().GetString("tier")
	jsonOutput, _ := cmd.Flags().GetBool("json")

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

	tiers := hooks.AllTiers()
	if tierFilter != "" {
		tier := hooks.Tier(tierFilter)
		if !tier.Valid() {
			return fmt.Errorf("unknown tier %q (expected tier1, tier2, tier3 or utils)", tierFilter)
		}
		tiers = []hooks.Tier{tier}
	}

	if jsonOutput {
		payload := map[string]interface{}{}
		for _, tier := range tiers {
			payload[string(tier)] = categorized[tier]
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal hook list: %v", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	total := 0
	for _, tier := range tiers {
		total += len(categorized[tier])
	}
	fmt.Fprintf(out, "📋 %d hook(s) under %s\n", total, settings.Root)
	for _, tier := range tiers {
		tierHooks := categorized[tier]
		fmt.Fprintf(out, "\n%s (%d)\n", tier.Title(), len(tierHooks))
		if len(tierHooks) == 0 {
			fmt.Fprintln(out, "  (none)")
			continue
		}
		for _, h := range tierHooks {
			fmt.Fprintf(out, "  %-32s %-12s %s\n", h.Name, h.Category, h.Description)
		}
	}

	return nil
}
