package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSelectTestCommand(root string, flagValues map[string]string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "select"}
	cmd.Flags().String("project-type", "", "")
	cmd.Flags().Bool("minimal", false, "")
	cmd.Flags().Bool("no-critical", false, "")
	cmd.Flags().StringSlice("include", nil, "")
	cmd.Flags().StringSlice("exclude", nil, "")
	cmd.Flags().StringSlice("categories", nil, "")
	cmd.Flags().StringSlice("exclude-categories", nil, "")
	cmd.Flags().String("min-importance", "", "")
	cmd.Flags().String("format", "text", "")
	cmd.Flags().String("hooks-root", root, "")
	for name, value := range flagValues {
		if err := cmd.Flags().Set(name, value); err != nil {
			panic(err)
		}
	}

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestRunSelect_TypescriptProject(t *testing.T) {
	t.Setenv("HOOKTIER_HOME", filepath.Join(t.TempDir(), "home"))
	root := seedFlatHooks(t)
	restructureTree(t, root)

	cmd, buf := newSelectTestCommand(root, map[string]string{"project-type": "typescript"})
	if err := runSelect(cmd, nil); err != nil {
		t.Fatalf("runSelect failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "for typescript project") {
		t.Errorf("missing project type:\n%s", output)
	}
	if !strings.Contains(output, "commit-message-validator.py") {
		t.Errorf("critical hook missing:\n%s", output)
	}
	if !strings.Contains(output, "universal-linter.py") {
		t.Errorf("recommended hook missing:\n%s", output)
	}
	if strings.Contains(output, "slack-notification.py") {
		t.Errorf("tier3 hook should not be selected for typescript:\n%s", output)
	}
}

func TestRunSelect_Minimal(t *testing.T) {
	t.Setenv("HOOKTIER_HOME", filepath.Join(t.TempDir(), "home"))
	root := seedFlatHooks(t)
	restructureTree(t, root)

	cmd, buf := newSelectTestCommand(root, map[string]string{
		"project-type": "typescript",
		"minimal":      "true",
	})
	if err := runSelect(cmd, nil); err != nil {
		t.Fatalf("runSelect failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "commit-message-validator.py") {
		t.Errorf("minimal selection must keep critical hooks:\n%s", output)
	}
	if strings.Contains(output, "universal-linter.py") {
		t.Errorf("minimal selection must drop non-critical hooks:\n%s", output)
	}
}

func TestRunSelect_JSON(t *testing.T) {
	t.Setenv("HOOKTIER_HOME", filepath.Join(t.TempDir(), "home"))
	root := seedFlatHooks(t)
	restructureTree(t, root)

	cmd, buf := newSelectTestCommand(root, map[string]string{
		"project-type": "typescript",
		"format":       "json",
	})
	if err := runSelect(cmd, nil); err != nil {
		t.Fatalf("runSelect failed: %v", err)
	}

	var payload selection
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("selection JSON does not parse: %v", err)
	}
	if payload.ProjectType != "typescript" {
		t.Errorf("projectType = %q", payload.ProjectType)
	}
	if payload.Count != len(payload.Hooks) {
		t.Errorf("count = %d, hooks = %d", payload.Count, len(payload.Hooks))
	}
	if len(payload.Hooks) == 0 || payload.Hooks[0].Importance != "critical" {
		t.Errorf("selection should be sorted critical-first: %+v", payload.Hooks)
	}
}

func TestRunSelect_YAML(t *testing.T) {
	t.Setenv("HOOKTIER_HOME", filepath.Join(t.TempDir(), "home"))
	root := seedFlatHooks(t)
	restructureTree(t, root)

	cmd, buf := newSelectTestCommand(root, map[string]string{
		"project-type": "typescript",
		"format":       "yaml",
	})
	if err := runSelect(cmd, nil); err != nil {
		t.Fatalf("runSelect failed: %v", err)
	}

	var payload selection
	if err := yaml.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("selection YAML does not parse: %v", err)
	}
	if payload.ProjectType != "typescript" {
		t.Errorf("projectType = %q", payload.ProjectType)
	}
	if payload.Count == 0 {
		t.Error("expected a non-empty selection")
	}
}

func TestRunSelect_InvalidFormat(t *testing.T) {
	root := seedFlatHooks(t)

	cmd, _ := newSelectTestCommand(root, map[string]string{"format": "xml"})
	if err := runSelect(cmd, nil); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRunSelect_InvalidImportance(t *testing.T) {
	t.Setenv("HOOKTIER_HOME", filepath.Join(t.TempDir(), "home"))
	root := seedFlatHooks(t)

	cmd, _ := newSelectTestCommand(root, map[string]string{"min-importance": "sometimes"})
	if err := runSelect(cmd, nil); err == nil {
		t.Fatal("expected error for unknown importance")
	}
}

func TestRunSelect_ExcludeWins(t *testing.T) {
	t.Setenv("HOOKTIER_HOME", filepath.Join(t.TempDir(), "home"))
	root := seedFlatHooks(t)
	restructureTree(t, root)

	cmd, buf := newSelectTestCommand(root, map[string]string{
		"project-type": "typescript",
		"include":      "universal-linter.py",
		"exclude":      "universal-linter.py",
	})
	if err := runSelect(cmd, nil); err != nil {
		t.Fatalf("runSelect failed: %v", err)
	}

	if strings.Contains(buf.String(), "universal-linter.py") {
		t.Errorf("exclude must win over include:\n%s", buf.String())
	}
}
