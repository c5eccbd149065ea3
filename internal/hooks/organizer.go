package hooks

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aymerick/raymond"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/fulmenhq/hooktier/internal/assets"
	"github.com/fulmenhq/hooktier/pkg/safeio"
)

const tierReadmeTemplate = "templates/readme/tier-readme.md.hbs"

// defaultExtensions are the hook file extensions recognized when the caller
// does not supply a set.
var defaultExtensions = []string{".py", ".sh", ".js", ".ts"}

// tierGuidance is the per-tier advice block rendered into tier READMEs.
var tierGuidance = map[Tier]string{
	Tier1:     "These hooks must stay enabled. They guard commit hygiene, type safety and task completion, and removing them weakens the safety net for every contributor.",
	Tier2:     "Enable these hooks for day-to-day development. They catch quality problems early without blocking the workflow.",
	Tier3:     "Optional quality-of-life hooks. Enable the ones that match your workflow.",
	TierUtils: "Shared helpers imported by other hooks. They are not executed directly.",
}

// Organizer lays hooks out under a root directory, one subdirectory per
// tier, and maintains the registry, manifest and per-tier READMEs that
// describe the layout.
type Organizer struct {
	root        string
	extensions  []string
	store       *RegistryStore
	categorizer *Categorizer
}

// NewOrganizer returns an organizer for the given hooks root. extensions
// may be nil to accept the default hook file extensions.
func NewOrganizer(root string, extensions []string) *Organizer {
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}
	return &Organizer{
		root:        root,
		extensions:  extensions,
		store:       NewRegistryStore(root),
		categorizer: NewCategorizer(),
	}
}

// Root returns the hooks root directory.
func (o *Organizer) Root() string {
	return o.root
}

// Store returns the organizer's registry store.
func (o *Organizer) Store() *RegistryStore {
	return o.store
}

// EnsureTierDirectories creates all tier directories under the root.
func (o *Organizer) EnsureTierDirectories() error {
	for _, tier := range AllTiers() {
		dir := filepath.Join(o.root, string(tier))
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create tier directory %s: %w", dir, err)
		}
	}
	return nil
}

// TargetPath returns the canonical location for a hook under the root.
// Hooks in the utils tier keep their subdirectory nesting; all other tiers
// are flat.
func (o *Organizer) TargetPath(h Annotated) string {
	base := filepath.Base(h.Name)
	if h.Tier != TierUtils {
		return filepath.Join(o.root, string(h.Tier), base)
	}

	sub := h.SubPath
	if sub == "" {
		sub = utilsSubPath(h.Path)
	}
	if sub == "" {
		return filepath.Join(o.root, string(TierUtils), base)
	}
	return filepath.Join(o.root, string(TierUtils), filepath.FromSlash(sub), base)
}

// Organize writes a fresh registry describing the canonical layout for the
// categorized hooks. Tier directories and utils subdirectories are created;
// hook files themselves are not touched.
func (o *Organizer) Organize(c Categorized) (*Registry, error) {
	if err := o.EnsureTierDirectories(); err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for _, tier := range AllTiers() {
		for _, h := range c[tier] {
			target := o.TargetPath(h)
			if dir := filepath.Dir(target); dir != filepath.Join(o.root, string(tier)) {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return nil, fmt.Errorf("create utils subdirectory %s: %w", dir, err)
				}
			}

			entry := RegistryEntry{
				Name:        h.Name,
				Tier:        tier,
				Category:    h.Category,
				Importance:  h.Importance,
				Description: h.Description,
				CurrentPath: target,
				SubPath:     h.SubPath,
				Size:        h.Size,
			}
			if !h.Modified.IsZero() {
				entry.Modified = h.Modified.UTC().Format(time.RFC3339)
			}
			reg.Hooks[h.Name] = entry
			reg.Tiers[tier] = append(reg.Tiers[tier], h.Name)
		}
	}

	if err := o.store.Save(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// CategorizedHooks reconstructs the categorized view. It prefers the
// registry; without one it falls back to scanning the tier directories,
// where placement determines the tier.
func (o *Organizer) CategorizedHooks() (Categorized, error) {
	if o.store.Exists() {
		reg, err := o.store.Load()
		if err != nil {
			return nil, err
		}
		return categorizedFromRegistry(reg), nil
	}
	return o.scanTiers()
}

func categorizedFromRegistry(reg *Registry) Categorized {
	out := NewCategorized()
	for _, tier := range AllTiers() {
		for _, name := range reg.Tiers[tier] {
			entry, ok := reg.Hooks[name]
			if !ok {
				continue
			}
			rec := HookRecord{
				Name:    entry.Name,
				Path:    entry.CurrentPath,
				Size:    entry.Size,
				SubPath: entry.SubPath,
			}
			if entry.Modified != "" {
				if ts, err := time.Parse(time.RFC3339, entry.Modified); err == nil {
					rec.Modified = ts
				}
			}
			out[tier] = append(out[tier], Annotated{
				HookRecord:  rec,
				Tier:        entry.Tier,
				Category:    entry.Category,
				Description: entry.Description,
				Importance:  entry.Importance,
				CurrentPath: entry.CurrentPath,
			})
		}
	}
	return out
}

func (o *Organizer) scanTiers() (Categorized, error) {
	out := NewCategorized()
	for _, tier := range AllTiers() {
		hooks, err := o.ScanDirectory(filepath.Join(o.root, string(tier)), tier)
		if err != nil {
			return nil, err
		}
		out[tier] = append(out[tier], hooks...)
	}
	return out, nil
}

// ScanDirectory walks one tier directory and annotates every hook file
// found there. The directory fixes the tier; name and content rules still
// supply category and description. A missing directory yields no hooks.
func (o *Organizer) ScanDirectory(dir string, tier Tier) ([]Annotated, error) {
	var found []Annotated
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == RegistryFileName || name == ManifestFileName || name == "README.md" {
			return nil
		}
		matched, err := matchesExtension(name, o.extensions)
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}

		rec := HookRecord{Name: name, Path: path}
		if info, err := d.Info(); err == nil {
			rec.Size = info.Size()
			rec.Modified = info.ModTime()
		}
		if tier == TierUtils {
			if rel, err := filepath.Rel(dir, path); err == nil {
				if sub := filepath.ToSlash(filepath.Dir(rel)); sub != "." {
					rec.SubPath = sub
				}
			}
		}

		found = append(found, Annotated{
			HookRecord:  rec,
			Tier:        tier,
			Category:    o.categorizer.CategoryFor(rec),
			Description: o.categorizer.DescriptionFor(rec),
			Importance:  ImportanceForTier(tier),
			CurrentPath: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return found, nil
}

// MoveHookToTier relocates one hook file between tiers and keeps the
// registry in step. The returned bool reports whether a registry entry was
// updated; moving a file the registry does not know about succeeds with
// the registry untouched.
func (o *Organizer) MoveHookToTier(name string, from, to Tier) (string, bool, error) {
	if !from.Valid() || !to.Valid() {
		return "", false, fmt.Errorf("invalid tier in move %s -> %s", from, to)
	}

	base := filepath.Base(name)
	src := filepath.Join(o.root, string(from), base)
	if o.store.Exists() {
		if reg, err := o.store.Load(); err == nil {
			if entry, ok := reg.Hooks[base]; ok && entry.CurrentPath != "" {
				src = entry.CurrentPath
			}
		}
	}
	dst := filepath.Join(o.root, string(to), base)
	if src == dst {
		return dst, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return "", false, fmt.Errorf("create tier directory: %w", err)
	}
	if err := safeio.MoveFile(src, dst); err != nil {
		return "", false, err
	}

	if !o.store.Exists() {
		return dst, false, nil
	}
	updated := false
	err := o.store.Update(func(reg *Registry) error {
		entry, ok := reg.Hooks[base]
		if !ok {
			return nil
		}
		entry.Tier = to
		entry.Importance = ImportanceForTier(to)
		entry.CurrentPath = dst
		entry.SubPath = ""
		reg.Hooks[base] = entry

		for _, tier := range AllTiers() {
			reg.Tiers[tier] = removeName(reg.Tiers[tier], base)
		}
		reg.Tiers[to] = append(reg.Tiers[to], base)
		updated = true
		return nil
	})
	if err != nil {
		return dst, false, fmt.Errorf("update registry after move: %w", err)
	}
	return dst, updated, nil
}

// GenerateManifest builds the manifest from the current categorized view.
func (o *Organizer) GenerateManifest() (*Manifest, error) {
	c, err := o.CategorizedHooks()
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Version:    registryVersion,
		Generated:  time.Now().UTC().Format(time.RFC3339),
		TotalHooks: c.Total(),
		Tiers:      make(map[Tier]TierSummary, len(AllTiers())),
	}
	for _, tier := range AllTiers() {
		summary := TierSummary{
			Description: tier.Description(),
			HookCount:   len(c[tier]),
			Hooks:       make([]ManifestHook, 0, len(c[tier])),
		}
		for _, h := range c[tier] {
			summary.Hooks = append(summary.Hooks, ManifestHook{
				Name:        h.Name,
				Category:    h.Category,
				Description: h.Description,
				Size:        h.Size,
			})
		}
		m.Tiers[tier] = summary
	}
	return m, nil
}

// WriteManifest renders the manifest to its file under the hooks root.
func (o *Organizer) WriteManifest() error {
	m, err := o.GenerateManifest()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(o.root, ManifestFileName)
	if err := safeio.WriteFilePreservePerms(path, data); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ManifestPath returns the manifest file's location.
func (o *Organizer) ManifestPath() string {
	return filepath.Join(o.root, ManifestFileName)
}

// CreateTierReadmeFiles renders a README.md into every tier directory from
// the embedded template.
func (o *Organizer) CreateTierReadmeFiles() error {
	tmpl, err := fs.ReadFile(assets.GetTemplatesFS(), tierReadmeTemplate)
	if err != nil {
		return fmt.Errorf("embedded template %s: %w", tierReadmeTemplate, err)
	}

	c, err := o.CategorizedHooks()
	if err != nil {
		return err
	}
	if err := o.EnsureTierDirectories(); err != nil {
		return err
	}

	for _, tier := range AllTiers() {
		hookRows := make([]map[string]any, 0, len(c[tier]))
		for _, h := range c[tier] {
			hookRows = append(hookRows, map[string]any{
				"name":        h.Name,
				"category":    string(h.Category),
				"description": h.Description,
			})
		}
		data := map[string]any{
			"title":       tier.Title(),
			"tier":        string(tier),
			"description": tier.Description(),
			"importance":  string(ImportanceForTier(tier)),
			"guidance":    tierGuidance[tier],
			"hooks":       hookRows,
		}

		rendered, err := raymond.Render(string(tmpl), data)
		if err != nil {
			return fmt.Errorf("render README for %s: %w", tier, err)
		}
		readmePath := filepath.Join(o.root, string(tier), "README.md")
		if err := safeio.WriteFilePreservePerms(readmePath, []byte(rendered)); err != nil {
			return fmt.Errorf("write README for %s: %w", tier, err)
		}
	}
	return nil
}

// matchesExtension reports whether a file name carries one of the
// recognized hook extensions. Matching is case-insensitive.
func matchesExtension(name string, extensions []string) (bool, error) {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		matched, err := doublestar.Match("*"+ext, lower)
		if err != nil {
			return false, fmt.Errorf("bad extension pattern %q: %w", ext, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// utilsSubPath extracts the directory nesting that follows a utils segment
// in p, excluding the file name itself. It returns "" when p has no utils
// segment or the hook sits directly in the utils directory.
func utilsSubPath(p string) string {
	segs := splitPathSegments(p)
	for i, seg := range segs {
		if strings.EqualFold(seg, "utils") {
			middle := segs[i+1:]
			if len(middle) <= 1 {
				return ""
			}
			return strings.Join(middle[:len(middle)-1], "/")
		}
	}
	return ""
}

func removeName(names []string, target string) []string {
	out := names[:0]
	for _, n := range names {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}
