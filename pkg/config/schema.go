package config

import (
	"fmt"
	"strings"

	"github.com/fulmenhq/hooktier/pkg/schema"
)

// ConfigSchemaName is the embedded schema the hooktier config file validates against.
const ConfigSchemaName = "hooktier-config-v1.0.0"

// ValidateConfig validates raw config bytes (YAML or JSON) against the
// embedded config schema. Returns a descriptive error listing every
// violation, or nil when the document conforms.
func ValidateConfig(configData []byte) error {
	validator, err := schema.GetEmbeddedValidator(ConfigSchemaName)
	if err != nil {
		return fmt.Errorf("failed to load config schema: %v", err)
	}

	result, err := validator.ValidateBytes(configData)
	if err != nil {
		return fmt.Errorf("schema validation error: %v", err)
	}

	if !result.Valid {
		var errors []string
		for _, verr := range result.Errors {
			errors = append(errors, fmt.Sprintf("%s: %s", verr.Path, verr.Message))
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
