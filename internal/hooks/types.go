// Package hooks implements the hook classification and tier-based
// organization pipeline: rule-based tier and category inference,
// project-aware hook selection, registry-backed layout management, and the
// migrate-with-verification workflow that restructures a flat hooks
// directory into the tiered one.
package hooks

import (
	"time"
)

// Tier identifies one of the four priority buckets hooks are laid out in.
type Tier string

const (
	Tier1     Tier = "tier1" // critical validation and security
	Tier2     Tier = "tier2" // important quality checks
	Tier3     Tier = "tier3" // optional convenience
	TierUtils Tier = "utils" // shared helpers
)

// AllTiers returns the tiers in display order.
func AllTiers() []Tier {
	return []Tier{Tier1, Tier2, Tier3, TierUtils}
}

// Valid reports whether t is one of the four known tiers.
func (t Tier) Valid() bool {
	switch t {
	case Tier1, Tier2, Tier3, TierUtils:
		return true
	}
	return false
}

// Description returns the fixed human-readable description for a tier.
func (t Tier) Description() string {
	switch t {
	case Tier1:
		return "Critical validation and security hooks that must always run"
	case Tier2:
		return "Important quality checks recommended for most projects"
	case Tier3:
		return "Optional convenience hooks enabled on demand"
	case TierUtils:
		return "Shared helper scripts used by hooks in other tiers"
	default:
		return "Unknown tier"
	}
}

// Title returns the display heading for a tier.
func (t Tier) Title() string {
	switch t {
	case Tier1:
		return "Tier 1: Critical Hooks"
	case Tier2:
		return "Tier 2: Quality Hooks"
	case Tier3:
		return "Tier 3: Convenience Hooks"
	case TierUtils:
		return "Shared Utilities"
	default:
		return "Unknown Tier"
	}
}

// Category classifies what a hook does, inferred from its name and content.
type Category string

const (
	CategoryValidation   Category = "validation"
	CategoryEnforcement  Category = "enforcement"
	CategoryChecking     Category = "checking"
	CategoryReporting    Category = "reporting"
	CategoryLinting      Category = "linting"
	CategoryOrganization Category = "organization"
	CategoryNotification Category = "notification"
	CategoryUtility      Category = "utility"
	CategoryLifecycle    Category = "lifecycle"
	CategoryGeneral      Category = "general"
)

// Importance ranks how essential a hook is to a project.
type Importance string

const (
	ImportanceCritical  Importance = "critical"
	ImportanceImportant Importance = "important"
	ImportanceOptional  Importance = "optional"
	ImportanceUtility   Importance = "utility"
)

// sortRank orders importances for display: critical first, unknown last.
func (i Importance) sortRank() int {
	switch i {
	case ImportanceCritical:
		return 0
	case ImportanceImportant:
		return 1
	case ImportanceOptional:
		return 2
	case ImportanceUtility:
		return 3
	default:
		return 4
	}
}

// level ranks importances for threshold comparison. Utility hooks are
// unranked (level 0) and never satisfy a minimum.
func (i Importance) level() int {
	switch i {
	case ImportanceCritical:
		return 3
	case ImportanceImportant:
		return 2
	case ImportanceOptional:
		return 1
	default:
		return 0
	}
}

// Meets reports whether i satisfies the given minimum importance.
func (i Importance) Meets(min Importance) bool {
	if min == "" {
		return true
	}
	return i.level() >= min.level() && i.level() > 0
}

// ImportanceForTier maps a tier to the importance of hooks living in it.
// Unknown tiers default to optional.
func ImportanceForTier(t Tier) Importance {
	switch t {
	case Tier1:
		return ImportanceCritical
	case Tier2:
		return ImportanceImportant
	case Tier3:
		return ImportanceOptional
	case TierUtils:
		return ImportanceUtility
	default:
		return ImportanceOptional
	}
}

// HookRecord represents one discovered automation script.
type HookRecord struct {
	Name     string    `json:"name"`               // file basename including extension
	Path     string    `json:"path,omitempty"`     // current absolute location
	Content  string    `json:"-"`                  // source text, optional
	Size     int64     `json:"size,omitempty"`     // bytes on disk
	Modified time.Time `json:"modified,omitempty"` // last modification time
	SubPath  string    `json:"subPath,omitempty"`  // relative directory under a tier, utils only
}

// Annotated is a HookRecord augmented with classification attributes.
// Categorization produces annotated copies; the input records are never
// mutated.
type Annotated struct {
	HookRecord
	Tier        Tier       `json:"tier"`
	Category    Category   `json:"category"`
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
	CurrentPath string     `json:"currentPath,omitempty"`
}

// Categorized maps each tier to its hooks in input order. Every categorized
// hook appears in exactly one bucket.
type Categorized map[Tier][]Annotated

// NewCategorized returns a Categorized with all four tier buckets present.
func NewCategorized() Categorized {
	c := make(Categorized, 4)
	for _, t := range AllTiers() {
		c[t] = []Annotated{}
	}
	return c
}

// Total counts the hooks across all buckets.
func (c Categorized) Total() int {
	n := 0
	for _, bucket := range c {
		n += len(bucket)
	}
	return n
}

// Find returns the first hook with the given name, searching tiers in
// display order.
func (c Categorized) Find(name string) (Annotated, bool) {
	for _, t := range AllTiers() {
		for _, h := range c[t] {
			if h.Name == name {
				return h, true
			}
		}
	}
	return Annotated{}, false
}

// Names returns every hook name across all buckets, tiers in display order.
func (c Categorized) Names() []string {
	names := make([]string, 0, c.Total())
	for _, t := range AllTiers() {
		for _, h := range c[t] {
			names = append(names, h.Name)
		}
	}
	return names
}
