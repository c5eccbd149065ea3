package hooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fulmenhq/hooktier/pkg/safeio"
	"github.com/fulmenhq/hooktier/pkg/schema"
)

// Options control a restructure run.
type Options struct {
	// DryRun plans the migration without touching any file.
	DryRun bool
	// NoBackup skips the pre-migration backup.
	NoBackup bool
}

// MoveItem is one planned file relocation.
type MoveItem struct {
	Hook string `json:"hook"`
	From string `json:"from"`
	To   string `json:"to"`
	Tier Tier   `json:"tier"`
}

// CreateItem is one planned directory creation.
type CreateItem struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// PreserveItem records a hook that needs no move and why.
type PreserveItem struct {
	Hook   string `json:"hook"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// PlanSummary counts hooks per tier. Total always equals moves plus
// preserves, since every discovered hook lands in exactly one of the two.
type PlanSummary struct {
	Tier1 int `json:"tier1"`
	Tier2 int `json:"tier2"`
	Tier3 int `json:"tier3"`
	Utils int `json:"utils"`
	Total int `json:"total"`
}

// MigrationPlan is the full description of what a restructure will do.
type MigrationPlan struct {
	Moves     []MoveItem     `json:"moves"`
	Creates   []CreateItem   `json:"creates"`
	Preserves []PreserveItem `json:"preserves"`
	Summary   PlanSummary    `json:"summary"`
}

// OperationError records one failed plan step. Failures are collected so a
// single bad file does not abort the rest of the migration.
type OperationError struct {
	Action string `json:"action"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

func (e OperationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Action, e.Target, e.Reason)
}

// Result reports what a restructure run did.
type Result struct {
	Plan       *MigrationPlan   `json:"plan"`
	DryRun     bool             `json:"dryRun"`
	BackupPath string           `json:"backupPath,omitempty"`
	Created    int              `json:"created"`
	Moved      int              `json:"moved"`
	Preserved  int              `json:"preserved"`
	Errors     []OperationError `json:"errors,omitempty"`
}

// VerifyResult reports structural health of an organized hooks tree.
type VerifyResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues,omitempty"`
}

// Restructurer migrates a flat or ad hoc hooks tree into the tiered
// layout: plan, back up, move, then regenerate registry, manifest and
// READMEs from the result.
type Restructurer struct {
	root      string
	backupDir string
	source    Source
	organizer *Organizer
}

// NewRestructurer wires a restructurer over an organizer's root. backupDir
// may be empty to place backups in a hooks-backup directory next to the
// root. source may be nil to scan the root directly.
func NewRestructurer(organizer *Organizer, source Source, backupDir string) *Restructurer {
	root := organizer.Root()
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(root), "hooks-backup")
	}
	if source == nil {
		source = NewDirSource(root, organizer.extensions)
	}
	return &Restructurer{
		root:      root,
		backupDir: backupDir,
		source:    source,
		organizer: organizer,
	}
}

// BackupDir returns where backups are written.
func (r *Restructurer) BackupDir() string {
	return r.backupDir
}

// Restructure runs the full migration. Dry runs stop after planning and
// write nothing. A failed backup aborts the run before any file moves.
func (r *Restructurer) Restructure(ctx context.Context, opts Options) (*Result, error) {
	records, err := r.source.LoadExistingHooks()
	if err != nil {
		return nil, fmt.Errorf("load hooks: %w", err)
	}
	categorized := NewCategorizer().Categorize(records)
	plan := r.GeneratePlan(categorized)

	result := &Result{
		Plan:      plan,
		DryRun:    opts.DryRun,
		Preserved: len(plan.Preserves),
	}
	if opts.DryRun {
		return result, nil
	}

	if !opts.NoBackup {
		backupPath, err := r.CreateBackup()
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupPath = backupPath
	}

	created, moved, opErrs, err := r.ExecutePlan(ctx, plan)
	result.Created = created
	result.Moved = moved
	result.Errors = opErrs
	if err != nil {
		return result, err
	}

	if err := r.organizer.CreateTierReadmeFiles(); err != nil {
		return result, err
	}
	if err := r.organizer.WriteManifest(); err != nil {
		return result, err
	}
	return result, nil
}

// CreateBackup copies the hooks root into the backup directory. An
// existing backup is rotated aside with a timestamp suffix instead of
// being overwritten.
func (r *Restructurer) CreateBackup() (string, error) {
	if info, err := os.Stat(r.backupDir); err == nil && info.IsDir() {
		stamp := strings.NewReplacer(":", "-", ".", "-").
			Replace(time.Now().UTC().Format(time.RFC3339))
		rotated := r.backupDir + "-" + stamp
		if err := os.Rename(r.backupDir, rotated); err != nil {
			return "", fmt.Errorf("rotate previous backup: %w", err)
		}
	}
	if _, err := safeio.CopyTree(r.root, r.backupDir); err != nil {
		return "", err
	}
	return r.backupDir, nil
}

// GeneratePlan computes the moves, directory creations and preserves that
// bring the categorized hooks into the tiered layout. All four tier
// directories are planned even when a tier currently has no hooks, so the
// layout is complete after every run.
func (r *Restructurer) GeneratePlan(c Categorized) *MigrationPlan {
	plan := &MigrationPlan{
		Moves:     []MoveItem{},
		Creates:   []CreateItem{},
		Preserves: []PreserveItem{},
	}

	plannedDirs := map[string]bool{}
	planDir := func(dir string) {
		if plannedDirs[dir] {
			return
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return
		}
		plannedDirs[dir] = true
		plan.Creates = append(plan.Creates, CreateItem{Type: "directory", Path: dir})
	}

	for _, tier := range AllTiers() {
		planDir(filepath.Join(r.root, string(tier)))
	}

	for _, tier := range AllTiers() {
		for _, h := range c[tier] {
			target := r.organizer.TargetPath(h)
			switch {
			case sameHookPath(h.CurrentPath, target):
				plan.Preserves = append(plan.Preserves, PreserveItem{
					Hook: h.Name, Path: h.CurrentPath, Reason: "already in correct location",
				})
			case tier == TierUtils && pathHasUtilsSegment(h.CurrentPath):
				plan.Preserves = append(plan.Preserves, PreserveItem{
					Hook: h.Name, Path: h.CurrentPath, Reason: "already in correct utils subdirectory",
				})
			default:
				planDir(filepath.Dir(target))
				plan.Moves = append(plan.Moves, MoveItem{
					Hook: h.Name, From: h.CurrentPath, To: target, Tier: tier,
				})
			}
		}
	}

	plan.Summary = PlanSummary{
		Tier1: len(c[Tier1]),
		Tier2: len(c[Tier2]),
		Tier3: len(c[Tier3]),
		Utils: len(c[TierUtils]),
		Total: len(plan.Moves) + len(plan.Preserves),
	}
	return plan
}

// ExecutePlan applies a plan: directories first, then file moves. Failures
// on individual items are collected and the rest of the plan continues;
// only context cancellation aborts. After the moves the registry is
// rebuilt from the tier directories so it reflects what actually happened.
func (r *Restructurer) ExecutePlan(ctx context.Context, plan *MigrationPlan) (created, moved int, opErrs []OperationError, err error) {
	for _, item := range plan.Creates {
		if err := ctx.Err(); err != nil {
			return created, moved, opErrs, err
		}
		if err := os.MkdirAll(item.Path, 0o750); err != nil {
			opErrs = append(opErrs, OperationError{Action: "create", Target: item.Path, Reason: err.Error()})
			continue
		}
		created++
	}

	for _, item := range plan.Moves {
		if err := ctx.Err(); err != nil {
			return created, moved, opErrs, err
		}
		if err := os.MkdirAll(filepath.Dir(item.To), 0o750); err != nil {
			opErrs = append(opErrs, OperationError{Action: "move", Target: item.Hook, Reason: err.Error()})
			continue
		}
		if err := safeio.MoveFile(item.From, item.To); err != nil {
			opErrs = append(opErrs, OperationError{Action: "move", Target: item.Hook, Reason: err.Error()})
			continue
		}
		moved++
	}

	scanned, err := r.organizer.scanTiers()
	if err != nil {
		return created, moved, opErrs, fmt.Errorf("rescan after migration: %w", err)
	}
	if _, err := r.organizer.Organize(scanned); err != nil {
		return created, moved, opErrs, fmt.Errorf("rebuild registry: %w", err)
	}
	return created, moved, opErrs, nil
}

// RestoreFromBackup replaces the hooks root with the backup's contents.
func (r *Restructurer) RestoreFromBackup() error {
	info, err := os.Stat(r.backupDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("no backup found at %s", r.backupDir)
	}

	if err := os.RemoveAll(r.root); err != nil {
		return fmt.Errorf("clear hooks root: %w", err)
	}
	if err := os.MkdirAll(r.root, 0o750); err != nil {
		return fmt.Errorf("recreate hooks root: %w", err)
	}
	if _, err := safeio.CopyTree(r.backupDir, r.root); err != nil {
		return fmt.Errorf("restore from backup: %w", err)
	}
	return nil
}

// Verify checks the structural shape of the hooks tree: all tier
// directories present, a registry on disk, and no hook files left directly
// at the root.
func (r *Restructurer) Verify() VerifyResult {
	var issues []string

	for _, tier := range AllTiers() {
		dir := filepath.Join(r.root, string(tier))
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			issues = append(issues, fmt.Sprintf("tier directory %s is missing", dir))
		}
	}

	if !r.organizer.Store().Exists() {
		issues = append(issues, fmt.Sprintf("registry %s is missing", r.organizer.Store().Path()))
	}

	rootFS := os.DirFS(r.root)
	for _, ext := range r.organizer.extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		matches, err := doublestar.Glob(rootFS, "*"+ext)
		if err != nil {
			issues = append(issues, fmt.Sprintf("scan root for stray hooks: %v", err))
			continue
		}
		for _, match := range matches {
			issues = append(issues, fmt.Sprintf("hook file %s sits directly at the root; run restructure to place it", match))
		}
	}

	return VerifyResult{Valid: len(issues) == 0, Issues: issues}
}

// VerifyDeep extends Verify with schema validation of the registry and
// manifest, registry integrity checks, and existence checks for every
// registered hook file.
func (r *Restructurer) VerifyDeep(ctx context.Context) (VerifyResult, error) {
	result := r.Verify()
	issues := result.Issues

	batchOpts := schema.BatchOptions{Timeout: 30 * time.Second}
	checkFile := func(path, schemaName, label string) error {
		if _, err := os.Stat(path); err != nil {
			return nil // absence already reported by Verify where it matters
		}
		batch, err := schema.ValidateFilesWithOptions(ctx, []string{path}, schemaName, batchOpts)
		if err != nil {
			return err
		}
		for _, fileResult := range batch.FileResults {
			for _, verr := range fileResult.Errors {
				issues = append(issues, fmt.Sprintf("%s: %s: %s", label, verr.Path, verr.Message))
			}
		}
		return nil
	}

	store := r.organizer.Store()
	before := len(issues)
	if err := checkFile(store.Path(), registrySchemaName, "registry"); err != nil {
		return VerifyResult{}, err
	}
	registrySchemaOK := len(issues) == before
	if err := checkFile(r.organizer.ManifestPath(), manifestSchemaName, "manifest"); err != nil {
		return VerifyResult{}, err
	}

	if store.Exists() && registrySchemaOK {
		reg, err := store.Load()
		if err != nil {
			issues = append(issues, fmt.Sprintf("registry: %v", err))
		} else {
			issues = append(issues, reg.Integrity()...)
			for _, tier := range AllTiers() {
				for _, name := range reg.Tiers[tier] {
					entry, ok := reg.Hooks[name]
					if !ok || entry.CurrentPath == "" {
						continue
					}
					if _, err := os.Stat(entry.CurrentPath); err != nil {
						issues = append(issues, fmt.Sprintf("hook %q is registered at %s but the file is missing", name, entry.CurrentPath))
					}
				}
			}
		}
	}

	return VerifyResult{Valid: len(issues) == 0, Issues: issues}, nil
}

// sameHookPath compares two paths after cleaning, tolerating ./ prefixes
// and separator differences.
func sameHookPath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
