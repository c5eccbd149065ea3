package hooks

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Preferences narrow a selection after project rules have been applied.
// Exclusions always win over inclusions.
type Preferences struct {
	MinimalSetup      bool       `json:"minimalSetup"`
	NoCritical        bool       `json:"noCritical"`
	IncludeHooks      []string   `json:"includeHooks,omitempty"`
	ExcludeHooks      []string   `json:"excludeHooks,omitempty"`
	Categories        []Category `json:"categories,omitempty"`
	ExcludeCategories []Category `json:"excludeCategories,omitempty"`
	MinImportance     Importance `json:"minImportance,omitempty"`
}

// ProjectProfile describes which hooks a project type should run.
type ProjectProfile struct {
	Type             string   `json:"type"`
	RequiredTiers    []Tier   `json:"requiredTiers"`
	RecommendedHooks []string `json:"recommendedHooks"`
	ExcludeHooks     []string `json:"excludeHooks,omitempty"`
}

var projectProfiles = map[string]ProjectProfile{
	"default": {
		Type:             "default",
		RequiredTiers:    []Tier{Tier1},
		RecommendedHooks: []string{"universal-linter.py"},
	},
	"node": {
		Type:             "node",
		RequiredTiers:    []Tier{Tier1, Tier2},
		RecommendedHooks: []string{"universal-linter.py", "api-standards-checker.py"},
	},
	"typescript": {
		Type:             "typescript",
		RequiredTiers:    []Tier{Tier1, Tier2},
		RecommendedHooks: []string{"typescript-validator.py", "universal-linter.py"},
	},
	"react": {
		Type:             "react",
		RequiredTiers:    []Tier{Tier1, Tier2},
		RecommendedHooks: []string{"typescript-validator.py", "universal-linter.py"},
		ExcludeHooks:     []string{"api-standards-checker.py"},
	},
	"python": {
		Type:             "python",
		RequiredTiers:    []Tier{Tier1, Tier2},
		RecommendedHooks: []string{"universal-linter.py"},
		ExcludeHooks:     []string{"typescript-validator.py"},
	},
	"monorepo": {
		Type:             "monorepo",
		RequiredTiers:    []Tier{Tier1, Tier2, Tier3},
		RecommendedHooks: []string{"typescript-validator.py", "universal-linter.py", "api-standards-checker.py"},
	},
	"api": {
		Type:             "api",
		RequiredTiers:    []Tier{Tier1, Tier2},
		RecommendedHooks: []string{"api-standards-checker.py", "universal-linter.py"},
	},
}

// GetProjectProfile returns the profile for a project type, or the default
// profile when the type is unknown or empty.
func GetProjectProfile(projectType string) ProjectProfile {
	if profile, ok := projectProfiles[strings.ToLower(projectType)]; ok {
		return profile
	}
	return projectProfiles["default"]
}

// SelectHooks picks hooks from the categorized pool for a project type and
// applies user preferences. The result is sorted by importance, most
// critical first.
func SelectHooks(pool Categorized, projectType string, prefs Preferences) []Annotated {
	profile := GetProjectProfile(projectType)

	var selected []Annotated
	seen := map[string]bool{}
	add := func(h Annotated) {
		if !seen[h.Name] {
			seen[h.Name] = true
			selected = append(selected, h)
		}
	}

	for _, tier := range profile.RequiredTiers {
		for _, h := range FilterTierHooks(pool[tier], profile, prefs) {
			add(h)
		}
	}

	if !prefs.MinimalSetup {
		for _, name := range profile.RecommendedHooks {
			if isExcluded(name, profile, prefs) {
				continue
			}
			if h, ok := pool.Find(name); ok {
				add(h)
			}
		}
	}

	for _, name := range prefs.IncludeHooks {
		if isExcluded(name, profile, prefs) {
			continue
		}
		if h, ok := pool.Find(name); ok {
			add(h)
		}
	}

	return ApplyPreferences(selected, prefs)
}

// FilterTierHooks keeps the hooks of one tier that survive the project's
// exclusions and the caller's preference gates. A hook passes when it is
// critical (unless critical hooks are suppressed), recommended for the
// project, or any non-critical hook in a full setup. Minimal setups keep
// only critical hooks.
func FilterTierHooks(tierHooks []Annotated, profile ProjectProfile, prefs Preferences) []Annotated {
	var kept []Annotated
	for _, h := range tierHooks {
		if isExcluded(h.Name, profile, prefs) {
			continue
		}
		critical := h.Importance == ImportanceCritical
		switch {
		case critical && !prefs.NoCritical:
			kept = append(kept, h)
		case !prefs.MinimalSetup && isRecommended(h.Name, profile):
			kept = append(kept, h)
		case !prefs.MinimalSetup && !critical:
			kept = append(kept, h)
		}
	}
	return kept
}

// FindHookByName searches all tiers for a hook with the exact name.
func FindHookByName(pool Categorized, name string) (Annotated, bool) {
	return pool.Find(name)
}

// ApplyPreferences filters by category allow list, category deny list and
// minimum importance, then sorts by importance rank. The sort is stable so
// hooks of equal importance keep their tier ordering.
func ApplyPreferences(hooks []Annotated, prefs Preferences) []Annotated {
	result := make([]Annotated, 0, len(hooks))
	for _, h := range hooks {
		if len(prefs.Categories) > 0 && !containsCategory(prefs.Categories, h.Category) {
			continue
		}
		if containsCategory(prefs.ExcludeCategories, h.Category) {
			continue
		}
		if prefs.MinImportance != "" && !h.Importance.Meets(prefs.MinImportance) {
			continue
		}
		result = append(result, h)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Importance.sortRank() < result[j].Importance.sortRank()
	})
	return result
}

// RecommendationSet groups hook suggestions by how strongly they apply.
type RecommendationSet struct {
	Required    []string `json:"required"`
	Recommended []string `json:"recommended"`
	Optional    []string `json:"optional"`
}

// Recommendations reports which of the project's profile hooks are missing
// from an existing installation. Validators and enforcers are required;
// everything else recommended. Monorepos additionally get the workspace
// organizer suggested.
func Recommendations(projectType string, existing []string) RecommendationSet {
	profile := GetProjectProfile(projectType)
	have := map[string]bool{}
	for _, name := range existing {
		have[name] = true
	}

	var set RecommendationSet
	for _, name := range profile.RecommendedHooks {
		if have[name] {
			continue
		}
		lower := strings.ToLower(name)
		if strings.Contains(lower, "validator") || strings.Contains(lower, "enforcer") {
			set.Required = append(set.Required, name)
		} else {
			set.Recommended = append(set.Recommended, name)
		}
	}
	if strings.EqualFold(profile.Type, "monorepo") && !have["workspace-organizer.py"] {
		set.Optional = append(set.Optional, "workspace-organizer.py")
	}
	return set
}

func isExcluded(name string, profile ProjectProfile, prefs Preferences) bool {
	for _, excluded := range profile.ExcludeHooks {
		if excluded == name {
			return true
		}
	}
	for _, excluded := range prefs.ExcludeHooks {
		if excluded == name {
			return true
		}
	}
	return false
}

func isRecommended(name string, profile ProjectProfile) bool {
	for _, rec := range profile.RecommendedHooks {
		if rec == name {
			return true
		}
	}
	return false
}

func containsCategory(categories []Category, c Category) bool {
	for _, candidate := range categories {
		if candidate == c {
			return true
		}
	}
	return false
}

// packageJSON is the subset of package.json that project detection reads.
type packageJSON struct {
	Workspaces      json.RawMessage   `json:"workspaces"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// pyProject is the subset of pyproject.toml that project detection reads.
type pyProject struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name string `toml:"name"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// DetectProjectType inspects a directory's marker files and returns the
// best-fitting project type. Detection order matters: monorepo markers are
// checked before framework ones so a workspace of react packages still
// reports monorepo. Unreadable or malformed marker files demote the match
// rather than erroring; the fallback is "default".
func DetectProjectType(dir string) string {
	pkg, hasPackageJSON := readPackageJSON(filepath.Join(dir, "package.json"))

	if hasPackageJSON && len(pkg.Workspaces) > 0 && string(pkg.Workspaces) != "null" {
		return "monorepo"
	}
	for _, marker := range []string{"lerna.json", "turbo.json", "pnpm-workspace.yaml"} {
		if fileExists(filepath.Join(dir, marker)) {
			return "monorepo"
		}
	}

	if hasPackageJSON {
		if _, ok := pkg.Dependencies["react"]; ok {
			return "react"
		}
		if _, ok := pkg.DevDependencies["react"]; ok {
			return "react"
		}
	}

	if fileExists(filepath.Join(dir, "tsconfig.json")) {
		return "typescript"
	}
	if hasPackageJSON {
		return "node"
	}

	if isPythonProject(dir) {
		return "python"
	}

	for _, marker := range []string{"openapi.yaml", "openapi.yml", "openapi.json", "swagger.yaml", "swagger.json"} {
		if fileExists(filepath.Join(dir, marker)) {
			return "api"
		}
	}

	return "default"
}

func readPackageJSON(path string) (packageJSON, bool) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is a well-known marker file under the inspected project dir
	if err != nil {
		return packageJSON{}, false
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return packageJSON{}, false
	}
	return pkg, true
}

// isPythonProject accepts a pyproject.toml that names a project under
// [project] or [tool.poetry]. Nameless or malformed files fall back to the
// requirements.txt and setup.py markers.
func isPythonProject(dir string) bool {
	pyprojectPath := filepath.Join(dir, "pyproject.toml")
	if data, err := os.ReadFile(pyprojectPath); err == nil { // #nosec G304 -- well-known marker file
		var py pyProject
		if err := toml.Unmarshal(data, &py); err == nil {
			if py.Project.Name != "" || py.Tool.Poetry.Name != "" {
				return true
			}
		}
	}
	return fileExists(filepath.Join(dir, "requirements.txt")) ||
		fileExists(filepath.Join(dir, "setup.py"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
