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

// moveCmd represents the move command
var moveCmd = &cobra.Command{
	Use:   "move <hook-name> <from-tier> <to-tier>",
	Short: "Move a hook to a different tier",
	Long: `Move one hook file between tier directories and update the registry to
match. The hook keeps its name; its importance follows the new tier.`,
	Args: cobra.ExactArgs(3),
	RunE: runMove,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("move", ops.GroupHooks, ops.CategoryOrganization, moveCmd, "Move a hook between tiers"); err != nil {
		panic(fmt.Sprintf("Failed to register move command: %v", err))
	}
}

func runMove(cmd *cobra.Command, args []string) error {
	name, from, to := args[0], hooks.Tier(args[1]), hooks.Tier(args[2])

	settings, err := loadHooksSettings(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	organizer := hooks.NewOrganizer(settings.Root, settings.Extensions)
	dst, registryUpdated, err := organizer.MoveHookToTier(name, from, to)
	if err != nil {
		return fmt.Errorf("failed to move hook: %v", err)
	}

	if registryUpdated {
		logger.Info(fmt.Sprintf("Moved %s from %s to %s", name, from, to))
	} else if !organizer.Store().Exists() {
		fmt.Fprintln(out, "⚠️  No registry found; the file moved but no metadata was updated")
	}
	fmt.Fprintf(out, "✅ %s is now at %s\n", name, dst)
	return nil
}
