/*
Copyright © 2025 3 Leaps <info@3leaps.com>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/fulmenhq/hooktier/internal/ops"
	"github.com/fulmenhq/hooktier/pkg/buildinfo"
	"github.com/fulmenhq/hooktier/pkg/config"
	"github.com/fulmenhq/hooktier/pkg/exitcode"
	"github.com/fulmenhq/hooktier/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooktier",
		Short: "Tier-based organizer for developer automation hooks",
		Long: `Hooktier classifies the automation hooks in a project and keeps them
organized into importance tiers: tier1 for critical validation and security,
tier2 for quality checks, tier3 for conveniences, and utils for shared helpers.

Examples:
   hooktier restructure --dry-run   # Preview the migration of a flat hooks directory
   hooktier restructure             # Migrate hooks into tiers (with backup)
   hooktier list                    # Show organized hooks by tier
   hooktier select --minimal        # Compute the minimal hook set for this project
   hooktier verify --deep           # Check layout, registry and manifest health`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().Bool("no-op", false, "Run tasks without making changes (assessment mode)")
	cmd.PersistentFlags().String("hooks-root", "", "Override the hooks root directory (default from config)")

	// Wire Cobra's built-in --version using hooktier's binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("hooktier {{.Version}}\n")

	// Grouped help by command group (Hooks → Support)
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		reg := ops.GetRegistry()
		// Header
		cmd.Println(cmd.Long)
		cmd.Println()
		cmd.Println("Tip: Use 'hooktier restructure --dry-run' to preview a migration before it runs.")
		cmd.Println()
		cmd.Println("Hook Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupHooks) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Support Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupSupport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(versionCmd)
	cmd.AddCommand(organizeCmd)
	cmd.AddCommand(restructureCmd)
	cmd.AddCommand(restoreCmd)
	cmd.AddCommand(verifyCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(selectCmd)
	cmd.AddCommand(recommendCmd)
	cmd.AddCommand(manifestCmd)
	cmd.AddCommand(inspectCmd)
	cmd.AddCommand(moveCmd)
	cmd.AddCommand(homeCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	// Register all subcommands with the production rootCmd
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	noOp, _ := cmd.Flags().GetBool("no-op")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "hooktier",
		NoOp:      noOp,
	}

	if err := logger.Initialize(config); err != nil {
		// Fallback to stderr
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			// Best effort: nothing else we can do here
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
}

// hooksSettings carries the resolved per-invocation hook configuration.
type hooksSettings struct {
	Root        string
	Extensions  []string
	BackupDir   string
	ProjectType string
	Minimal     bool
	Include     []string
	Exclude     []string
}

// loadHooksSettings merges the configuration cascade with the --hooks-root
// override. Commands call this instead of reading config themselves so the
// precedence stays in one place.
func loadHooksSettings(cmd *cobra.Command) (hooksSettings, error) {
	cfg, err := config.LoadProjectConfig()
	if err != nil {
		return hooksSettings{}, fmt.Errorf("failed to load configuration: %v", err)
	}

	hc := cfg.GetHooksConfig()
	root := hc.Root
	if flagRoot, _ := cmd.Flags().GetString("hooks-root"); flagRoot != "" {
		root = flagRoot
	}

	backupDir := ""
	if hc.Backup.Enabled {
		backupDir = cfg.BackupDir(root)
	}

	return hooksSettings{
		Root:        root,
		Extensions:  cfg.RecognizedExtensions(),
		BackupDir:   backupDir,
		ProjectType: hc.ProjectType,
		Minimal:     hc.Select.Minimal,
		Include:     hc.Select.Include,
		Exclude:     hc.Select.Exclude,
	}, nil
}
