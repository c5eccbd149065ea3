package hooks

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classification rules live in ordered tables so precedence stays explicit
// and testable independent of the matching code. All matching is
// case-insensitive; names are treated as literal substrings, never regexes,
// so special characters cannot break matching.

// tier1Names are well-known critical hook names matched by substring.
var tier1Names = []string{
	"commit-message-validator",
	"typescript-validator",
	"task-completion-enforcer",
	"pre_tool_use",
	"security-guard",
}

// tier2Patterns match important quality-check hooks by name fragment.
var tier2Patterns = []string{
	"checker",
	"linter",
	"formatter",
}

// tier3Patterns match optional convenience hooks by name fragment.
var tier3Patterns = []string{
	"notification",
	"notifier",
	"reminder",
}

// securityTerms promote a hook to tier1 when present in its content.
var securityTerms = []string{
	"security",
	"dangerous",
	"authentication",
	"credential",
	"secret",
	"permission denied",
}

// qualityTerms promote a hook to tier2 when present in its content.
var qualityTerms = []string{
	"quality",
	"standards",
	"lint",
	"code style",
	"convention",
}

// categoryRules map name fragments to categories in priority order.
var categoryRules = []struct {
	fragment string
	category Category
}{
	{"valid", CategoryValidation},
	{"enforc", CategoryEnforcement},
	{"check", CategoryChecking},
	{"report", CategoryReporting},
	{"lint", CategoryLinting},
	{"organiz", CategoryOrganization},
	{"notif", CategoryNotification},
}

// utilityFragments flag a hook as a utility, by name or content.
var utilityFragments = []string{"util", "helper"}

// knownDescriptions is the fixed lookup for well-known hook names.
var knownDescriptions = map[string]string{
	"commit-message-validator.py": "Validates commit message format and conventions",
	"typescript-validator.py":     "Validates TypeScript code quality and type safety",
	"task-completion-enforcer.py": "Enforces completion criteria before tasks close",
	"pre_tool_use.py":             "Guards tool invocations against dangerous commands",
	"api-standards-checker.py":    "Checks API implementations against team standards",
	"universal-linter.py":         "Runs language-appropriate linters on changed files",
	"security-guard.py":           "Blocks access to sensitive files and secrets",
	"workspace-organizer.py":      "Keeps workspace files sorted into their places",
}

// ContentFlags are independent, non-exclusive signals derived from a hook's
// source text by keyword presence. Empty content yields all-false flags.
type ContentFlags struct {
	HasSecurityChecks bool `json:"hasSecurityChecks"`
	HasValidation     bool `json:"hasValidation"`
	HasEnforcement    bool `json:"hasEnforcement"`
	HasReporting      bool `json:"hasReporting"`
	HasNotification   bool `json:"hasNotification"`
	IsAsync           bool `json:"isAsync"`
	UsesExternalAPI   bool `json:"usesExternalAPI"`
}

// AnalyzeContent computes feature flags from hook source text.
func AnalyzeContent(content string) ContentFlags {
	if content == "" {
		return ContentFlags{}
	}
	lower := strings.ToLower(content)
	containsAny := func(terms ...string) bool {
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
		return false
	}
	return ContentFlags{
		HasSecurityChecks: containsAny(securityTerms...),
		HasValidation:     containsAny("validate", "validation", "is_valid"),
		HasEnforcement:    containsAny("enforce", "block", "reject", "must "),
		HasReporting:      containsAny("report", "summary"),
		HasNotification:   containsAny("notify", "notification", "alert"),
		IsAsync:           containsAny("async ", "async\t", "await "),
		UsesExternalAPI:   containsAny("http://", "https://", "requests.", "fetch("),
	}
}

// Categorizer maps raw hook records to tiers, categories, descriptions and
// importances. The zero value is not usable; construct with NewCategorizer.
type Categorizer struct {
	titleCaser cases.Caser
}

// NewCategorizer returns a Categorizer backed by the package rule tables.
func NewCategorizer() *Categorizer {
	return &Categorizer{titleCaser: cases.Title(language.Und)}
}

// DetermineTier assigns a tier to a hook. Precedence, first match wins:
// utils path segment, tier1 name, tier2 name, tier3 name, content terms,
// then tier3 as the default.
func (c *Categorizer) DetermineTier(h HookRecord) Tier {
	if pathHasUtilsSegment(h.Path) {
		return TierUtils
	}

	name := strings.ToLower(h.Name)
	for _, known := range tier1Names {
		if strings.Contains(name, known) {
			return Tier1
		}
	}
	for _, pattern := range tier2Patterns {
		if strings.Contains(name, pattern) {
			return Tier2
		}
	}
	if strings.HasPrefix(name, "custom-") && strings.Contains(name, "check") {
		return Tier2
	}
	for _, pattern := range tier3Patterns {
		if strings.Contains(name, pattern) {
			return Tier3
		}
	}

	content := strings.ToLower(h.Content)
	if content != "" {
		for _, term := range securityTerms {
			if strings.Contains(content, term) {
				return Tier1
			}
		}
		for _, term := range qualityTerms {
			if strings.Contains(content, term) {
				return Tier2
			}
		}
	}

	return Tier3
}

// CategoryFor assigns a category from the hook's name, falling back to
// content for utilities and to the pre_/post_ lifecycle convention.
func (c *Categorizer) CategoryFor(h HookRecord) Category {
	name := strings.ToLower(h.Name)
	for _, rule := range categoryRules {
		if strings.Contains(name, rule.fragment) {
			return rule.category
		}
	}

	content := strings.ToLower(h.Content)
	for _, fragment := range utilityFragments {
		if strings.Contains(name, fragment) || strings.Contains(content, fragment) {
			return CategoryUtility
		}
	}

	if strings.HasPrefix(name, "pre_") || strings.HasPrefix(name, "post_") {
		return CategoryLifecycle
	}
	return CategoryGeneral
}

// DescriptionFor returns the well-known description for a hook, or
// synthesizes one from its file name ("data_processor.py" becomes
// "Data Processor hook").
func (c *Categorizer) DescriptionFor(h HookRecord) string {
	if desc, ok := knownDescriptions[strings.ToLower(h.Name)]; ok {
		return desc
	}

	base := h.Name
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	tokens := splitNameTokens(base)
	if len(tokens) == 0 {
		return "Hook"
	}
	for i, tok := range tokens {
		tokens[i] = c.titleCaser.String(tok)
	}
	return strings.Join(tokens, " ") + " hook"
}

// Categorize folds raw records into tier buckets, attaching classification
// attributes to a copy of each record. No hook is dropped or duplicated;
// records lacking content or path are still classified from what remains.
func (c *Categorizer) Categorize(records []HookRecord) Categorized {
	out := NewCategorized()
	for _, rec := range records {
		tier := c.DetermineTier(rec)
		annotated := Annotated{
			HookRecord:  rec,
			Tier:        tier,
			Category:    c.CategoryFor(rec),
			Description: c.DescriptionFor(rec),
			Importance:  ImportanceForTier(tier),
			CurrentPath: rec.Path,
		}
		out[tier] = append(out[tier], annotated)
	}
	return out
}

// pathHasUtilsSegment reports whether any directory segment of p is "utils".
func pathHasUtilsSegment(p string) bool {
	if p == "" {
		return false
	}
	for _, seg := range splitPathSegments(p) {
		if strings.EqualFold(seg, "utils") {
			return true
		}
	}
	return false
}

// splitPathSegments splits on both separator styles so Windows-style paths
// in registries written elsewhere still classify correctly.
func splitPathSegments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// splitNameTokens splits a hook base name on any non-alphanumeric runes.
func splitNameTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
}
