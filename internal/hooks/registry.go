package hooks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fulmenhq/hooktier/pkg/safeio"
	"github.com/fulmenhq/hooktier/pkg/schema"
)

const (
	// RegistryFileName is the registry's file name under the hooks root.
	RegistryFileName = "hook-registry.json"
	// ManifestFileName is the manifest's file name under the hooks root.
	ManifestFileName = "hooks-manifest.json"
	// registrySchemaName selects the embedded schema a registry must satisfy.
	registrySchemaName = "hook-registry-v1.0.0"
	// manifestSchemaName selects the embedded schema a manifest must satisfy.
	manifestSchemaName = "hooks-manifest-v1.0.0"
	// registryLockName is the advisory lock file guarding registry writes.
	registryLockName = ".hook-registry.lock"

	registryVersion = "1.0.0"
)

// RegistryEntry is one hook's classification record.
type RegistryEntry struct {
	Name        string     `json:"name"`
	Tier        Tier       `json:"tier"`
	Category    Category   `json:"category"`
	Importance  Importance `json:"importance"`
	Description string     `json:"description,omitempty"`
	CurrentPath string     `json:"currentPath"`
	SubPath     string     `json:"subPath,omitempty"`
	Size        int64      `json:"size,omitempty"`
	Modified    string     `json:"modified,omitempty"`
}

// Registry is the persistent index of every organized hook. Hooks holds the
// entries keyed by name; Tiers holds per-tier name lists in display order.
// The two views must agree; Integrity reports any drift.
type Registry struct {
	Version     string                   `json:"version"`
	LastUpdated string                   `json:"lastUpdated"`
	Hooks       map[string]RegistryEntry `json:"hooks"`
	Tiers       map[Tier][]string        `json:"tiers"`
}

// NewRegistry returns an empty registry with all tier lists present, so the
// serialized form always carries the full tier layout.
func NewRegistry() *Registry {
	tiers := make(map[Tier][]string, len(AllTiers()))
	for _, tier := range AllTiers() {
		tiers[tier] = []string{}
	}
	return &Registry{
		Version: registryVersion,
		Hooks:   map[string]RegistryEntry{},
		Tiers:   tiers,
	}
}

// Integrity cross-checks the hook map against the tier lists and returns a
// description of every inconsistency found. An empty slice means the
// registry is internally consistent.
func (r *Registry) Integrity() []string {
	var issues []string
	listed := map[string]bool{}

	for _, tier := range AllTiers() {
		seenInTier := map[string]bool{}
		for _, name := range r.Tiers[tier] {
			if seenInTier[name] {
				issues = append(issues, fmt.Sprintf("tier %s lists %q more than once", tier, name))
				continue
			}
			seenInTier[name] = true
			listed[name] = true

			entry, ok := r.Hooks[name]
			if !ok {
				issues = append(issues, fmt.Sprintf("tier %s lists %q but no hook entry exists", tier, name))
				continue
			}
			if entry.Tier != tier {
				issues = append(issues, fmt.Sprintf("hook %q is listed under %s but its entry says %s", name, tier, entry.Tier))
			}
			if entry.Name != name {
				issues = append(issues, fmt.Sprintf("hook entry keyed %q carries name %q", name, entry.Name))
			}
		}
	}

	names := make([]string, 0, len(r.Hooks))
	for name := range r.Hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !listed[name] {
			issues = append(issues, fmt.Sprintf("hook %q has an entry but no tier lists it", name))
		}
	}
	return issues
}

// RegistryStore reads and writes a registry file under a hooks root.
// Writes are serialized through an advisory file lock so concurrent
// invocations cannot interleave partial registries.
type RegistryStore struct {
	path     string
	lockPath string
}

// NewRegistryStore returns a store for the registry under hooksRoot.
func NewRegistryStore(hooksRoot string) *RegistryStore {
	return &RegistryStore{
		path:     filepath.Join(hooksRoot, RegistryFileName),
		lockPath: filepath.Join(hooksRoot, registryLockName),
	}
}

// Path returns the registry file's location.
func (s *RegistryStore) Path() string {
	return s.path
}

// Exists reports whether a registry file is present.
func (s *RegistryStore) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && info.Mode().IsRegular()
}

// Load reads the registry, validates it against the embedded schema and
// unmarshals it. A registry that fails validation is rejected rather than
// partially loaded.
func (s *RegistryStore) Load() (*Registry, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 -- path is derived from the configured hooks root
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	result, err := schema.ValidateBytes(data, registrySchemaName)
	if err != nil {
		return nil, fmt.Errorf("validate registry: %w", err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("registry %s is invalid: %s", s.path, joinValidationErrors(result.Errors))
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if reg.Hooks == nil {
		reg.Hooks = map[string]RegistryEntry{}
	}
	if reg.Tiers == nil {
		reg.Tiers = map[Tier][]string{}
	}
	for _, tier := range AllTiers() {
		if reg.Tiers[tier] == nil {
			reg.Tiers[tier] = []string{}
		}
	}
	return &reg, nil
}

// Save writes the registry with a fresh lastUpdated stamp, holding the
// store's file lock for the duration of the write.
func (s *RegistryStore) Save(reg *Registry) error {
	lock := safeio.NewFileLock(s.lockPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock registry: %w", err)
	}
	defer func() { _ = lock.Unlock() }()
	return s.saveLocked(reg)
}

// Update loads the registry, applies fn and saves the result, all under the
// store's file lock. fn may mutate the registry freely; returning an error
// abandons the update without writing.
func (s *RegistryStore) Update(fn func(*Registry) error) error {
	lock := safeio.NewFileLock(s.lockPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock registry: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	reg, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		return err
	}
	return s.saveLocked(reg)
}

func (s *RegistryStore) saveLocked(reg *Registry) error {
	if issues := reg.Integrity(); len(issues) > 0 {
		return fmt.Errorf("inconsistent registry: %s", strings.Join(issues, "; "))
	}
	if reg.Version == "" {
		reg.Version = registryVersion
	}
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}
	if err := safeio.WriteFilePreservePerms(s.path, data); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

func joinValidationErrors(errs []schema.ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Path != "" && e.Path != "(root)" {
			parts = append(parts, fmt.Sprintf("%s: %s", e.Path, e.Message))
		} else {
			parts = append(parts, e.Message)
		}
	}
	return strings.Join(parts, "; ")
}
