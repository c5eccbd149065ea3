package hooks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T) Categorized {
	t.Helper()
	c := NewCategorizer()
	return c.Categorize([]HookRecord{
		{Name: "commit-message-validator.py", Path: "hooks/commit-message-validator.py"},
		{Name: "typescript-validator.py", Path: "hooks/typescript-validator.py"},
		{Name: "task-completion-enforcer.py", Path: "hooks/task-completion-enforcer.py"},
		{Name: "api-standards-checker.py", Path: "hooks/api-standards-checker.py"},
		{Name: "universal-linter.py", Path: "hooks/universal-linter.py"},
		{Name: "slack-notification.py", Path: "hooks/slack-notification.py"},
		{Name: "helper.py", Path: "hooks/utils/llm/helper.py"},
	})
}

func TestGetProjectProfile_UnknownFallsBack(t *testing.T) {
	profile := GetProjectProfile("fortran")
	assert.Equal(t, "default", profile.Type)
	assert.Equal(t, []Tier{Tier1}, profile.RequiredTiers)

	profile = GetProjectProfile("")
	assert.Equal(t, "default", profile.Type)

	profile = GetProjectProfile("TypeScript")
	assert.Equal(t, "typescript", profile.Type)
}

func TestSelectHooks_TypescriptProject(t *testing.T) {
	pool := testPool(t)
	selected := SelectHooks(pool, "typescript", Preferences{})
	names := hookNames(selected)

	// Tier1 and tier2 in full, recommended hooks already among them.
	assert.Contains(t, names, "commit-message-validator.py")
	assert.Contains(t, names, "typescript-validator.py")
	assert.Contains(t, names, "task-completion-enforcer.py")
	assert.Contains(t, names, "api-standards-checker.py")
	assert.Contains(t, names, "universal-linter.py")
	assert.NotContains(t, names, "slack-notification.py")
	assert.NotContains(t, names, "helper.py")
}

func TestSelectHooks_MinimalSetupKeepsOnlyCritical(t *testing.T) {
	pool := testPool(t)
	selected := SelectHooks(pool, "typescript", Preferences{MinimalSetup: true})
	require.NotEmpty(t, selected)

	for _, h := range selected {
		assert.Equal(t, ImportanceCritical, h.Importance, "hook %s", h.Name)
	}
}

func TestSelectHooks_ExcludeAlwaysWins(t *testing.T) {
	pool := testPool(t)
	prefs := Preferences{
		IncludeHooks: []string{"typescript-validator.py"},
		ExcludeHooks: []string{"typescript-validator.py"},
	}
	selected := SelectHooks(pool, "typescript", prefs)
	assert.NotContains(t, hookNames(selected), "typescript-validator.py")
}

func TestSelectHooks_ProfileExclusionHolds(t *testing.T) {
	pool := testPool(t)
	// The python profile excludes the TypeScript validator even though it
	// is a tier1 hook.
	selected := SelectHooks(pool, "python", Preferences{})
	assert.NotContains(t, hookNames(selected), "typescript-validator.py")
	assert.Contains(t, hookNames(selected), "universal-linter.py")
}

func TestSelectHooks_IncludePullsFromAnyTier(t *testing.T) {
	pool := testPool(t)
	prefs := Preferences{IncludeHooks: []string{"slack-notification.py"}}
	selected := SelectHooks(pool, "default", prefs)
	assert.Contains(t, hookNames(selected), "slack-notification.py")
}

func TestSelectHooks_SortedByImportance(t *testing.T) {
	pool := testPool(t)
	selected := SelectHooks(pool, "monorepo", Preferences{})
	require.NotEmpty(t, selected)

	for i := 1; i < len(selected); i++ {
		prev := selected[i-1].Importance.sortRank()
		curr := selected[i].Importance.sortRank()
		assert.LessOrEqual(t, prev, curr, "selection must be ordered by importance")
	}
}

func TestFilterTierHooks_NoCritical(t *testing.T) {
	pool := testPool(t)
	profile := GetProjectProfile("typescript")

	kept := FilterTierHooks(pool[Tier1], profile, Preferences{NoCritical: true, MinimalSetup: true})
	assert.Empty(t, kept)

	kept = FilterTierHooks(pool[Tier1], profile, Preferences{})
	assert.Len(t, kept, len(pool[Tier1]))
}

func TestApplyPreferences_CategoryFilters(t *testing.T) {
	pool := testPool(t)
	all := append([]Annotated{}, pool[Tier1]...)
	all = append(all, pool[Tier2]...)

	only := ApplyPreferences(all, Preferences{Categories: []Category{CategoryValidation}})
	for _, h := range only {
		assert.Equal(t, CategoryValidation, h.Category)
	}
	assert.NotEmpty(t, only)

	none := ApplyPreferences(all, Preferences{ExcludeCategories: []Category{CategoryValidation}})
	for _, h := range none {
		assert.NotEqual(t, CategoryValidation, h.Category)
	}
}

func TestApplyPreferences_MinImportanceDropsUtility(t *testing.T) {
	pool := testPool(t)
	var all []Annotated
	for _, tier := range AllTiers() {
		all = append(all, pool[tier]...)
	}

	kept := ApplyPreferences(all, Preferences{MinImportance: ImportanceOptional})
	for _, h := range kept {
		assert.NotEqual(t, ImportanceUtility, h.Importance, "hook %s", h.Name)
	}

	critical := ApplyPreferences(all, Preferences{MinImportance: ImportanceCritical})
	for _, h := range critical {
		assert.Equal(t, ImportanceCritical, h.Importance)
	}
}

func TestRecommendations(t *testing.T) {
	set := Recommendations("typescript", []string{"universal-linter.py"})
	assert.Contains(t, set.Required, "typescript-validator.py")
	assert.NotContains(t, set.Recommended, "universal-linter.py")

	set = Recommendations("typescript", []string{"typescript-validator.py", "universal-linter.py"})
	assert.Empty(t, set.Required)
	assert.Empty(t, set.Recommended)

	set = Recommendations("monorepo", nil)
	assert.Contains(t, set.Optional, "workspace-organizer.py")

	set = Recommendations("api", nil)
	assert.Contains(t, set.Recommended, "api-standards-checker.py")
}

func TestDetectProjectType(t *testing.T) {
	write := func(t *testing.T, dir, name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	t.Run("monorepo via workspaces", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "package.json", `{"name":"m","workspaces":["packages/*"],"dependencies":{"react":"18.0.0"}}`)
		assert.Equal(t, "monorepo", DetectProjectType(dir))
	})

	t.Run("monorepo via turbo", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "turbo.json", `{}`)
		assert.Equal(t, "monorepo", DetectProjectType(dir))
	})

	t.Run("react", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "package.json", `{"dependencies":{"react":"18.2.0"}}`)
		assert.Equal(t, "react", DetectProjectType(dir))
	})

	t.Run("react via devDependencies", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "package.json", `{"devDependencies":{"react":"18.2.0"}}`)
		assert.Equal(t, "react", DetectProjectType(dir))
	})

	t.Run("typescript", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "tsconfig.json", `{}`)
		assert.Equal(t, "typescript", DetectProjectType(dir))
	})

	t.Run("node", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "package.json", `{"name":"plain"}`)
		assert.Equal(t, "node", DetectProjectType(dir))
	})

	t.Run("python via pyproject", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "pyproject.toml", "[project]\nname = \"svc\"\n")
		assert.Equal(t, "python", DetectProjectType(dir))
	})

	t.Run("python via poetry", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "pyproject.toml", "[tool.poetry]\nname = \"svc\"\n")
		assert.Equal(t, "python", DetectProjectType(dir))
	})

	t.Run("python via requirements", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "requirements.txt", "flask\n")
		assert.Equal(t, "python", DetectProjectType(dir))
	})

	t.Run("api", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "openapi.yaml", "openapi: 3.0.0\n")
		assert.Equal(t, "api", DetectProjectType(dir))
	})

	t.Run("default", func(t *testing.T) {
		assert.Equal(t, "default", DetectProjectType(t.TempDir()))
	})

	t.Run("malformed package.json ignored", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "package.json", `{not json`)
		assert.Equal(t, "default", DetectProjectType(dir))
	})
}

func hookNames(hooks []Annotated) []string {
	names := make([]string, 0, len(hooks))
	for _, h := range hooks {
		names = append(names, h.Name)
	}
	return names
}
