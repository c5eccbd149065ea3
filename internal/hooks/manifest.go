package hooks

// Manifest is the human-facing summary written next to the registry. It
// carries per-tier rollups rather than full entries; the registry remains
// the source of truth.
type Manifest struct {
	Version    string               `json:"version"`
	Generated  string               `json:"generated"`
	TotalHooks int                  `json:"totalHooks"`
	Tiers      map[Tier]TierSummary `json:"tiers"`
}

// TierSummary rolls up one tier for the manifest.
type TierSummary struct {
	Description string         `json:"description"`
	HookCount   int            `json:"hookCount"`
	Hooks       []ManifestHook `json:"hooks"`
}

// ManifestHook is the manifest's abbreviated view of a hook.
type ManifestHook struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description,omitempty"`
	Size        int64    `json:"size,omitempty"`
}
