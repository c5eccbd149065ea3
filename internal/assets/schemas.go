package assets

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaInfo holds schema metadata.
type SchemaInfo struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Draft string `json:"draft"`
}

// Directory-based versioned schemas (v1.0.0 is current version)
var knownSchemas = map[string]string{
	"hook-registry-v1.0.0":   "embedded_schemas/schemas/hooks/v1.0.0/hook-registry.yaml",
	"hooks-manifest-v1.0.0":  "embedded_schemas/schemas/hooks/v1.0.0/hooks-manifest.yaml",
	"hooktier-config-v1.0.0": "embedded_schemas/schemas/config/v1.0.0/hooktier-config.yaml",
}

// GetSchema returns the embedded schema bytes by embed path
// (e.g., "embedded_schemas/schemas/hooks/v1.0.0/hook-registry.yaml").
func GetSchema(path string) ([]byte, bool) {
	data, err := Schemas.ReadFile(path)
	return data, err == nil
}

// SchemaPath maps a schema name (e.g., "hook-registry-v1.0.0") to its embed
// path. Returns "" for unknown names.
func SchemaPath(name string) string {
	return knownSchemas[name]
}

// GetSchemaNames returns the available schemas with metadata.
func GetSchemaNames() []SchemaInfo {
	var infos []SchemaInfo
	for name, path := range knownSchemas {
		// Verify the schema exists
		if _, ok := GetSchema(path); ok {
			infos = append(infos, SchemaInfo{Name: name, Path: path, Draft: detectDraft(path)})
		}
	}
	return infos
}

// detectDraft heuristically detects draft from schema bytes via $schema key.
func detectDraft(path string) string {
	bytes, ok := GetSchema(path)
	if !ok {
		return "Unknown (07/2020-12 supported)"
	}
	var doc interface{}
	err := yaml.Unmarshal(bytes, &doc)
	if err != nil {
		err = json.Unmarshal(bytes, &doc)
		if err != nil {
			return "Unknown (07/2020-12 supported)"
		}
	}
	if m, ok := doc.(map[string]interface{}); ok {
		if v, ok := m["$schema"].(string); ok {
			if strings.Contains(v, "draft-07") {
				return "Draft-07"
			}
			if strings.Contains(v, "2020-12") {
				return "Draft-2020-12"
			}
		}
	}
	return "Unknown (07/2020-12 supported)"
}
