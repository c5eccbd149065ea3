/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fulmenhq/hooktier/internal/ops"
	"github.com/fulmenhq/hooktier/pkg/config"
	"github.com/spf13/cobra"
)

// homeCmd represents the home command
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Manage the hooktier home directory",
	Long: `Show and initialize the hooktier home directory.

The home directory holds user-level configuration and logs that do not
belong to any single project. Set HOOKTIER_HOME to relocate it.`,
	RunE: runHome,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("home", ops.GroupSupport, ops.CategoryConfiguration, homeCmd, "Manage user configuration and preferences"); err != nil {
		panic(fmt.Sprintf("Failed to register home command: %v", err))
	}

	homeCmd.Flags().Bool("init", false, "Create the home directory tree")
}

func runHome(cmd *cobra.Command, args []string) error {
	initHome, _ := cmd.Flags().GetBool("init")

	out := cmd.OutOrStdout()

	if initHome {
		homeDir, err := config.EnsureHooktierHome()
		if err != nil {
			return fmt.Errorf("failed to initialize hooktier home: %v", err)
		}
		if _, err := config.GetConfigDir(); err != nil {
			return fmt.Errorf("failed to create config directory: %v", err)
		}
		if _, err := config.GetLogDir(); err != nil {
			return fmt.Errorf("failed to create log directory: %v", err)
		}
		fmt.Fprintf(out, "✅ Initialized hooktier home at %s\n", homeDir)
		return nil
	}

	homeDir, err := config.GetHooktierHome()
	if err != nil {
		return fmt.Errorf("failed to resolve hooktier home: %v", err)
	}

	fmt.Fprintln(out, "Hooktier User Home")
	fmt.Fprintln(out, "==================")
	fmt.Fprintf(out, "Home:   %s\n", homeDir)
	fmt.Fprintf(out, "Config: %s\n", filepath.Join(homeDir, "config"))
	fmt.Fprintf(out, "Logs:   %s\n", filepath.Join(homeDir, "logs"))
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "💡 Use --init to create the directory tree")

	return nil
}
