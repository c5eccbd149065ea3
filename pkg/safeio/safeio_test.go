package safeio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanUserPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple relative", input: "hooks/tier1", want: "hooks/tier1"},
		{name: "redundant separators", input: "hooks//tier1/", want: "hooks/tier1"},
		{name: "dot segments collapse", input: "./hooks/./tier2", want: "hooks/tier2"},
		{name: "absolute path", input: "/tmp/hooks", want: "/tmp/hooks"},
		{name: "parent traversal", input: "../etc/passwd", wantErr: true},
		{name: "embedded traversal", input: "hooks/../../etc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanUserPath(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CleanUserPath(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanUserPath(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("CleanUserPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadFileContained(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "tier1", "validator.py")
	if err := os.MkdirAll(filepath.Dir(inside), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(inside, []byte("#!/usr/bin/env python3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFileContained(base, inside)
	if err != nil {
		t.Fatalf("ReadFileContained inside base: %v", err)
	}
	if !strings.HasPrefix(string(data), "#!") {
		t.Errorf("unexpected content: %q", data)
	}

	outside := filepath.Join(t.TempDir(), "escape.py")
	if err := os.WriteFile(outside, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFileContained(base, outside); err == nil {
		t.Error("expected error reading file outside base directory")
	}

	traversal := filepath.Join(base, "tier1", "..", "..", "escape.py")
	if _, err := ReadFileContained(base, traversal); err == nil {
		t.Error("expected error for traversal path")
	}
}

func TestWriteFilePreservePerms(t *testing.T) {
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.json")
	if err := WriteFilePreservePerms(fresh, []byte("{}")); err != nil {
		t.Fatalf("write new file: %v", err)
	}
	st, err := os.Stat(fresh)
	if err != nil {
		t.Fatal(err)
	}
	if got := st.Mode() & 0o777; got != 0o644 {
		t.Errorf("new file mode = %o, want 0644", got)
	}

	executable := filepath.Join(dir, "hook.sh")
	if err := os.WriteFile(executable, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := WriteFilePreservePerms(executable, []byte("#!/bin/sh\nexit 0\n")); err != nil {
		t.Fatalf("rewrite existing file: %v", err)
	}
	st, err = os.Stat(executable)
	if err != nil {
		t.Fatal(err)
	}
	if got := st.Mode() & 0o777; got != 0o755 {
		t.Errorf("rewritten file mode = %o, want 0755", got)
	}
	data, err := os.ReadFile(executable)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "#!/bin/sh\nexit 0\n" {
		t.Errorf("rewritten content = %q", data)
	}
}
