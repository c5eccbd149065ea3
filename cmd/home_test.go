package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newHomeTestCommand(initHome bool) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "home"}
	cmd.Flags().Bool("init", initHome, "")

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestRunHome_ShowsPaths(t *testing.T) {
	home := filepath.Join(t.TempDir(), "hooktier-home")
	t.Setenv("HOOKTIER_HOME", home)

	cmd, buf := newHomeTestCommand(false)
	if err := runHome(cmd, nil); err != nil {
		t.Fatalf("runHome failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Hooktier User Home") {
		t.Error("output should carry the home heading")
	}
	if !strings.Contains(output, home) {
		t.Errorf("output should mention %s:\n%s", home, output)
	}

	// Showing paths must not create them
	if _, err := os.Stat(home); !os.IsNotExist(err) {
		t.Error("home directory should not be created by a plain run")
	}
}

func TestRunHome_Init(t *testing.T) {
	home := filepath.Join(t.TempDir(), "hooktier-home")
	t.Setenv("HOOKTIER_HOME", home)

	cmd, buf := newHomeTestCommand(true)
	if err := runHome(cmd, nil); err != nil {
		t.Fatalf("runHome --init failed: %v", err)
	}

	if !strings.Contains(buf.String(), "Initialized hooktier home") {
		t.Error("init output should confirm initialization")
	}
	for _, dir := range []string{home, filepath.Join(home, "config"), filepath.Join(home, "logs")} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}
