package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestInitializeLogger(t *testing.T) {
	// Test default logger initialization
	cmd := &cobra.Command{}
	cmd.Flags().String("log-level", "info", "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("no-color", false, "")
	cmd.Flags().Bool("no-op", false, "")

	// This should not panic
	initializeLogger(cmd)
}

func TestInitializeLogger_DebugLevel(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("log-level", "debug", "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("no-color", false, "")
	cmd.Flags().Bool("no-op", false, "")

	initializeLogger(cmd)
}

func TestInitializeLogger_InvalidLevel(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("log-level", "invalid", "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("no-color", false, "")
	cmd.Flags().Bool("no-op", false, "")

	// Should default to info level
	initializeLogger(cmd)
}

func TestInitializeLogger_NoOp(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("log-level", "info", "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("no-color", false, "")
	cmd.Flags().Bool("no-op", true, "")

	initializeLogger(cmd)
}

func TestRootCmd_VersionSet(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("rootCmd.Version should not be empty")
	}
}

func TestRootCmd_Help(t *testing.T) {
	// Create fresh command instance per test to prevent state pollution
	cmd := newRootCommand()
	registerSubcommands(cmd)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	cmd.SetArgs([]string{"--help"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("help execution failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "hooktier") {
		t.Error("Help output should contain 'hooktier'")
	}
	if !strings.Contains(output, "Hook Commands:") {
		t.Error("Help output should contain the hook command group")
	}
	if !strings.Contains(output, "Support Commands:") {
		t.Error("Help output should contain the support command group")
	}
	if !strings.Contains(output, "restructure") {
		t.Error("Help output should list the restructure command")
	}
}

func TestRootCmd_VersionFlag(t *testing.T) {
	cmd := newRootCommand()
	registerSubcommands(cmd)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version flag failed: %v", err)
	}

	if !strings.Contains(buf.String(), "hooktier") {
		t.Error("Version output should contain 'hooktier'")
	}
}

func TestRootCmd_InvalidFlag(t *testing.T) {
	cmd := newRootCommand()
	registerSubcommands(cmd)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	cmd.SetArgs([]string{"--invalid-flag"})
	if err := cmd.Execute(); err == nil {
		t.Error("Invalid flag should return an error")
	}
}

func TestLoadHooksSettings_Defaults(t *testing.T) {
	t.Setenv("HOOKTIER_HOME", filepath.Join(t.TempDir(), "home"))

	cmd := &cobra.Command{}
	cmd.Flags().String("hooks-root", "", "")

	settings, err := loadHooksSettings(cmd)
	if err != nil {
		t.Fatalf("loadHooksSettings failed: %v", err)
	}

	if settings.Root != ".claude/hooks" {
		t.Errorf("default root = %q", settings.Root)
	}
	if len(settings.Extensions) == 0 {
		t.Error("expected default extensions")
	}
	found := false
	for _, ext := range settings.Extensions {
		if ext == ".py" {
			found = true
		}
	}
	if !found {
		t.Errorf("default extensions missing .py: %v", settings.Extensions)
	}
	if settings.BackupDir == "" {
		t.Error("backups are enabled by default, expected a backup dir")
	}
}

func TestLoadHooksSettings_RootOverride(t *testing.T) {
	t.Setenv("HOOKTIER_HOME", filepath.Join(t.TempDir(), "home"))

	root := filepath.Join(t.TempDir(), "custom", "hooks")
	cmd := &cobra.Command{}
	cmd.Flags().String("hooks-root", root, "")

	settings, err := loadHooksSettings(cmd)
	if err != nil {
		t.Fatalf("loadHooksSettings failed: %v", err)
	}

	if settings.Root != root {
		t.Errorf("root = %q, want %q", settings.Root, root)
	}
	if settings.BackupDir != filepath.Join(filepath.Dir(root), "hooks-backup") {
		t.Errorf("backup dir = %q", settings.BackupDir)
	}
}
