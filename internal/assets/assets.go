package assets

import (
	"embed"
	"io/fs"
)

//go:embed embedded_templates
var Templates embed.FS

//go:embed embedded_schemas
var Schemas embed.FS

func GetTemplatesFS() fs.FS {
	if sub, err := fs.Sub(Templates, "embedded_templates"); err == nil {
		return sub
	}
	return Templates
}

func GetSchemasFS() fs.FS {
	if sub, err := fs.Sub(Schemas, "embedded_schemas"); err == nil {
		return sub
	}
	return Schemas
}

// GetEmbeddedAsset retrieves an embedded asset by path
func GetEmbeddedAsset(path string) ([]byte, error) {
	// Try templates first (embedded_templates is the root)
	if data, err := Templates.ReadFile(path); err == nil {
		return data, nil
	}

	// Try schemas (embedded_schemas is the root)
	if data, err := Schemas.ReadFile(path); err == nil {
		return data, nil
	}

	return nil, fs.ErrNotExist
}
