package hooks

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleRegistry() *Registry {
	reg := NewRegistry()
	reg.Hooks["commit-message-validator.py"] = RegistryEntry{
		Name:        "commit-message-validator.py",
		Tier:        Tier1,
		Category:    CategoryValidation,
		Importance:  ImportanceCritical,
		Description: "Validates commit message format and conventions",
		CurrentPath: "hooks/tier1/commit-message-validator.py",
	}
	reg.Tiers[Tier1] = append(reg.Tiers[Tier1], "commit-message-validator.py")
	reg.Hooks["universal-linter.py"] = RegistryEntry{
		Name:        "universal-linter.py",
		Tier:        Tier2,
		Category:    CategoryLinting,
		Importance:  ImportanceImportant,
		CurrentPath: "hooks/tier2/universal-linter.py",
	}
	reg.Tiers[Tier2] = append(reg.Tiers[Tier2], "universal-linter.py")
	return reg
}

func TestNewRegistryShape(t *testing.T) {
	reg := NewRegistry()
	if reg.Version != "1.0.0" {
		t.Errorf("version = %q", reg.Version)
	}
	if len(reg.Tiers) != 4 {
		t.Fatalf("tiers = %d, want 4", len(reg.Tiers))
	}
	for _, tier := range AllTiers() {
		if reg.Tiers[tier] == nil {
			t.Errorf("tier %s list should be non-nil", tier)
		}
	}
	if issues := reg.Integrity(); len(issues) != 0 {
		t.Errorf("fresh registry has issues: %v", issues)
	}
}

func TestRegistryIntegrity(t *testing.T) {
	t.Run("consistent", func(t *testing.T) {
		if issues := sampleRegistry().Integrity(); len(issues) != 0 {
			t.Errorf("unexpected issues: %v", issues)
		}
	})

	t.Run("listed without entry", func(t *testing.T) {
		reg := sampleRegistry()
		reg.Tiers[Tier3] = append(reg.Tiers[Tier3], "ghost.py")
		issues := reg.Integrity()
		if len(issues) != 1 || !strings.Contains(issues[0], "ghost.py") {
			t.Errorf("issues = %v", issues)
		}
	})

	t.Run("entry without listing", func(t *testing.T) {
		reg := sampleRegistry()
		reg.Hooks["orphan.py"] = RegistryEntry{Name: "orphan.py", Tier: Tier3}
		issues := reg.Integrity()
		if len(issues) != 1 || !strings.Contains(issues[0], "no tier lists it") {
			t.Errorf("issues = %v", issues)
		}
	})

	t.Run("tier mismatch", func(t *testing.T) {
		reg := sampleRegistry()
		entry := reg.Hooks["universal-linter.py"]
		entry.Tier = Tier3
		reg.Hooks["universal-linter.py"] = entry
		issues := reg.Integrity()
		if len(issues) != 1 || !strings.Contains(issues[0], "listed under tier2") {
			t.Errorf("issues = %v", issues)
		}
	})

	t.Run("duplicate listing", func(t *testing.T) {
		reg := sampleRegistry()
		reg.Tiers[Tier1] = append(reg.Tiers[Tier1], "commit-message-validator.py")
		issues := reg.Integrity()
		if len(issues) != 1 || !strings.Contains(issues[0], "more than once") {
			t.Errorf("issues = %v", issues)
		}
	})
}

func TestRegistryStoreSaveLoad(t *testing.T) {
	root := t.TempDir()
	store := NewRegistryStore(root)

	if store.Exists() {
		t.Fatal("store should not exist before save")
	}
	if _, err := store.Load(); err == nil {
		t.Fatal("load without a registry should fail")
	}

	if err := store.Save(sampleRegistry()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !store.Exists() {
		t.Fatal("store should exist after save")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.LastUpdated == "" {
		t.Error("lastUpdated should be stamped on save")
	}
	if len(loaded.Hooks) != 2 {
		t.Errorf("hooks = %d, want 2", len(loaded.Hooks))
	}
	entry := loaded.Hooks["commit-message-validator.py"]
	if entry.Tier != Tier1 || entry.Category != CategoryValidation {
		t.Errorf("entry = %+v", entry)
	}
	for _, tier := range AllTiers() {
		if loaded.Tiers[tier] == nil {
			t.Errorf("tier %s list should be non-nil after load", tier)
		}
	}
}

func TestRegistryStoreLoadRejectsInvalid(t *testing.T) {
	root := t.TempDir()
	store := NewRegistryStore(root)

	// Versions must be semantic and all four tier lists present.
	bad := `{"version":"one","lastUpdated":"2026-01-02T03:04:05Z","hooks":{},"tiers":{"tier1":[],"tier2":[],"tier3":[],"utils":[]}}`
	if err := os.WriteFile(store.Path(), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); err == nil || !strings.Contains(err.Error(), "invalid") {
		t.Errorf("load error = %v", err)
	}

	missingTiers := `{"version":"1.0.0","lastUpdated":"2026-01-02T03:04:05Z","hooks":{},"tiers":{"tier1":[]}}`
	if err := os.WriteFile(store.Path(), []byte(missingTiers), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("registry without all tier lists should be rejected")
	}

	if err := os.WriteFile(store.Path(), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("malformed registry should be rejected")
	}
}

func TestRegistryStoreUpdate(t *testing.T) {
	root := t.TempDir()
	store := NewRegistryStore(root)
	if err := store.Save(sampleRegistry()); err != nil {
		t.Fatal(err)
	}

	err := store.Update(func(reg *Registry) error {
		entry := reg.Hooks["universal-linter.py"]
		entry.Description = "Runs language-appropriate linters on changed files"
		reg.Hooks["universal-linter.py"] = entry
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := loaded.Hooks["universal-linter.py"].Description; !strings.Contains(got, "linters") {
		t.Errorf("description = %q", got)
	}
}

func TestRegistryStoreUpdateAbandonsOnError(t *testing.T) {
	root := t.TempDir()
	store := NewRegistryStore(root)
	if err := store.Save(sampleRegistry()); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	wantErr := os.ErrPermission
	err = store.Update(func(reg *Registry) error {
		reg.Hooks = nil
		return wantErr
	})
	if err == nil {
		t.Fatal("update should propagate the callback error")
	}

	after, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("failed update must not rewrite the registry")
	}
}

func TestRegistryStoreSaveRejectsInconsistent(t *testing.T) {
	root := t.TempDir()
	store := NewRegistryStore(root)

	reg := sampleRegistry()
	reg.Tiers[Tier3] = append(reg.Tiers[Tier3], "ghost.py")
	if err := store.Save(reg); err == nil || !strings.Contains(err.Error(), "ghost.py") {
		t.Errorf("save error = %v", err)
	}
	if store.Exists() {
		t.Error("inconsistent registry must not be written")
	}
}

func TestRegistrySerializationShape(t *testing.T) {
	data, err := json.Marshal(sampleRegistry())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "lastUpdated", "hooks", "tiers"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("serialized registry lacks %q", key)
		}
	}
	hooks := raw["hooks"].(map[string]any)
	entry := hooks["commit-message-validator.py"].(map[string]any)
	for _, key := range []string{"name", "tier", "category", "importance", "currentPath"} {
		if _, ok := entry[key]; !ok {
			t.Errorf("serialized entry lacks %q", key)
		}
	}
}

func TestRegistryStorePath(t *testing.T) {
	store := NewRegistryStore(filepath.Join("some", "root"))
	if got := store.Path(); got != filepath.Join("some", "root", RegistryFileName) {
		t.Errorf("path = %q", got)
	}
}
