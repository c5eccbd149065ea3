package config

import (
	"strings"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	valid := []byte(`hooks:
  root: .claude/hooks
  extensions: [".py", ".sh"]
  project_type: python
  backup:
    enabled: true
  select:
    minimal: false
    exclude:
      - noisy-reporter.py
`)
	if err := ValidateConfig(valid); err != nil {
		t.Errorf("expected valid config, got: %v", err)
	}
}

func TestValidateConfigRejectsUnknownKeys(t *testing.T) {
	invalid := []byte(`hooks:
  root: .claude/hooks
  tier_count: 5
`)
	err := ValidateConfig(invalid)
	if err == nil {
		t.Fatal("expected validation error for unknown key")
	}
	if !strings.Contains(err.Error(), "tier_count") {
		t.Errorf("error should mention the offending key, got: %v", err)
	}
}

func TestValidateConfigRejectsBadProjectType(t *testing.T) {
	invalid := []byte(`hooks:
  project_type: cobol
`)
	if err := ValidateConfig(invalid); err == nil {
		t.Error("expected validation error for unsupported project type")
	}
}
