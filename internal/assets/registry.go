package assets

// Registry lists embedded assets available at runtime.
// Update this when adding/removing curated assets.

type AssetInfo struct {
	Family  string // e.g., schema, template
	Version string // e.g., v1.0.0
	Path    string // embed path
}

var Registry = []AssetInfo{
	{
		Family:  "schema",
		Version: "v1.0.0",
		Path:    "embedded_schemas/schemas/hooks/v1.0.0/hook-registry.yaml",
	},
	{
		Family:  "schema",
		Version: "v1.0.0",
		Path:    "embedded_schemas/schemas/hooks/v1.0.0/hooks-manifest.yaml",
	},
	{
		Family:  "schema",
		Version: "v1.0.0",
		Path:    "embedded_schemas/schemas/config/v1.0.0/hooktier-config.yaml",
	},
	{
		Family:  "template",
		Version: "v1.0.0",
		Path:    "embedded_templates/templates/readme/tier-readme.md.hbs",
	},
}
