package hooks

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fulmenhq/hooktier/pkg/safeio"
)

// maxContentBytes caps how much of a hook file is read for content
// analysis. Larger files are classified from name and path alone.
const maxContentBytes = 512 * 1024

// Source supplies the raw hook records a restructure starts from.
type Source interface {
	LoadExistingHooks() ([]HookRecord, error)
}

// DirSource discovers hook files by walking a directory tree.
type DirSource struct {
	root       string
	extensions []string
}

// NewDirSource returns a source over root. extensions may be nil to accept
// the default hook file extensions.
func NewDirSource(root string, extensions []string) *DirSource {
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}
	return &DirSource{root: root, extensions: extensions}
}

// LoadExistingHooks walks the tree and returns a record per hook file.
// Hidden files and directories are skipped, as are the registry, manifest
// and README artifacts this tool writes itself. A missing root yields no
// hooks rather than an error. Hook content is loaded for files small
// enough to analyze; unreadable content degrades to name-only
// classification instead of failing the walk.
func (s *DirSource) LoadExistingHooks() ([]HookRecord, error) {
	var records []HookRecord
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return filepath.SkipAll
			}
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") ||
			name == RegistryFileName || name == ManifestFileName || name == "README.md" {
			return nil
		}
		matched, err := matchesExtension(name, s.extensions)
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
		if pathHasUtilsSegment(path) {
			rec.SubPath = utilsSubPath(path)
		}
		if rec.Size > 0 && rec.Size <= maxContentBytes {
			if content, err := safeio.ReadFileContained(s.root, path); err == nil {
				rec.Content = string(content)
			}
		}

		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover hooks in %s: %w", s.root, err)
	}
	return records, nil
}

// StaticSource serves a fixed set of records, useful when hooks come from
// somewhere other than a directory walk.
type StaticSource []HookRecord

func (s StaticSource) LoadExistingHooks() ([]HookRecord, error) {
	return []HookRecord(s), nil
}
