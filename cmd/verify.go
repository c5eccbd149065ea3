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

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the health of the organized hooks tree",
	Long: `Check that the hooks tree has the expected tier layout.

The basic check confirms that the tier directories and the registry exist
and that no stray hook files sit at the root. With --deep the registry and
manifest are also validated against their schemas, registry bookkeeping is
cross-checked, and every registered hook is checked for a file on disk.`,
	RunE: runVerify,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("verify", ops.GroupHooks, ops.CategoryInspection, verifyCmd, "Check hooks tree health"); err != nil {
		panic(fmt.Sprintf("Failed to register verify command: %v", err))
	}

	verifyCmd.Flags().Bool("deep", false, "Validate registry and manifest contents as well as layout")
	verifyCmd.Flags().Bool("json", false, "Output the verification result in JSON format")
}

func runVerify(cmd *cobra.Command, args []string) error {
	deep, _ := cmd.Flags().GetBool("deep")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	settings, err := loadHooksSettings(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	organizer := hooks.NewOrganizer(settings.Root, settings.Extensions)
	restructurer := hooks.NewRestructurer(organizer, nil, settings.BackupDir)

	var result hooks.VerifyResult
	if deep {
		result, err = restructurer.VerifyDeep(cmd.Context())
		if err != nil {
			return fmt.Errorf("verification failed: %v", err)
		}
	} else {
		result = restructurer.Verify()
	}

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %v", err)
		}
		fmt.Fprintln(out, string(data))
	} else if result.Valid {
		fmt.Fprintf(out, "✅ Hooks tree at %s is healthy\n", settings.Root)
	} else {
		fmt.Fprintf(out, "⚠️  Hooks tree at %s has %d issue(s):\n", settings.Root, len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  ❌ %s\n", issue)
		}
	}

	if !result.Valid {
		return fmt.Errorf("verification found %d issue(s)", len(result.Issues))
	}
	return nil
}
