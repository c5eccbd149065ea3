// Package schema validates hooktier's JSON artifacts (registry, manifest)
// against the embedded JSON Schema definitions.
package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fulmenhq/hooktier/internal/assets"
	"github.com/fulmenhq/hooktier/pkg/safeio"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Result holds the validation result.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Source  string `json:"source,omitempty"` // file the data came from, when known
}

// BatchOptions configures batch validation behavior.
type BatchOptions struct {
	MaxConcurrency int           `json:"max_concurrency,omitempty"` // Default: runtime.NumCPU()
	Timeout        time.Duration `json:"timeout,omitempty"`         // Default: 30s
	MaxFileSize    int64         `json:"max_file_size,omitempty"`   // Default: 10MB
}

// BatchResult aggregates results from multiple validations.
type BatchResult struct {
	Valid        bool               `json:"valid"`
	TotalFiles   int                `json:"total_files"`
	ValidFiles   int                `json:"valid_files"`
	InvalidFiles int                `json:"invalid_files"`
	FileResults  map[string]*Result `json:"file_results"`
}

// registry caches compiled schemas by name for reuse
var (
	schemaRegistry = make(map[string]*gojsonschema.Schema)
	regMu          sync.RWMutex
)

// Validator wraps a compiled schema for repeated validation.
type Validator struct {
	schema *gojsonschema.Schema
}

func compileSchemaBytes(schemaBytes []byte) (*gojsonschema.Schema, error) {
	// Schemas are authored in YAML; convert to canonical JSON bytes for the loader.
	// JSON is a YAML subset, so raw JSON schema bytes take the same path.
	var tmp any
	if err := yaml.Unmarshal(schemaBytes, &tmp); err != nil {
		return nil, fmt.Errorf("invalid schema format (must be valid YAML or JSON): %w", err)
	}
	jb, err := json.Marshal(tmp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema to JSON: %w", err)
	}
	sch, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jb))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return sch, nil
}

// NewValidatorFromBytes compiles schema bytes (JSON or YAML) into a reusable validator.
func NewValidatorFromBytes(schemaBytes []byte) (*Validator, error) {
	if err := ensureSupportedDraft(schemaBytes); err != nil {
		return nil, err
	}
	sch, err := compileSchemaBytes(schemaBytes)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: sch}, nil
}

// GetEmbeddedValidator returns a validator for a named embedded schema
// (e.g., "hook-registry-v1.0.0"). Compiled schemas are cached across calls.
func GetEmbeddedValidator(schemaName string) (*Validator, error) {
	regMu.RLock()
	if sch, ok := schemaRegistry[schemaName]; ok {
		regMu.RUnlock()
		return &Validator{schema: sch}, nil
	}
	regMu.RUnlock()

	path := assets.SchemaPath(schemaName)
	if path == "" {
		return nil, fmt.Errorf("schema %s not found", schemaName)
	}
	data, ok := assets.GetSchema(path)
	if !ok || len(data) == 0 {
		return nil, fmt.Errorf("schema %s not found", schemaName)
	}

	sch, err := compileSchemaBytes(data)
	if err != nil {
		return nil, err
	}

	regMu.Lock()
	schemaRegistry[schemaName] = sch
	regMu.Unlock()

	return &Validator{schema: sch}, nil
}

// Validate applies the compiled schema to the provided data structure.
func (v *Validator) Validate(data interface{}) (*Result, error) {
	if v == nil || v.schema == nil {
		return nil, fmt.Errorf("validator not initialised")
	}
	return validateWithCompiled(v.schema, data)
}

// ValidateBytes parses YAML/JSON bytes and validates them against the compiled schema.
func (v *Validator) ValidateBytes(dataBytes []byte) (*Result, error) {
	if v == nil || v.schema == nil {
		return nil, fmt.Errorf("validator not initialised")
	}
	var data interface{}
	if err := yaml.Unmarshal(dataBytes, &data); err != nil {
		if err := json.Unmarshal(dataBytes, &data); err != nil {
			return nil, fmt.Errorf("failed to parse data bytes (YAML/JSON): %w", err)
		}
	}
	return validateWithCompiled(v.schema, data)
}

func validateWithCompiled(sch *gojsonschema.Schema, data interface{}) (*Result, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode data to JSON: %w", err)
	}
	result, err := sch.Validate(gojsonschema.NewBytesLoader(dataJSON))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	res := &Result{Valid: result.Valid()}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			field := verr.Field()
			if field == "" {
				field = "root"
			}
			res.Errors = append(res.Errors, ValidationError{
				Path:    field,
				Message: verr.Description(),
			})
		}
	}
	return res, nil
}

// Validate validates data against the named embedded schema.
func Validate(data interface{}, schemaName string) (*Result, error) {
	validator, err := GetEmbeddedValidator(schemaName)
	if err != nil {
		return nil, err
	}
	return validator.Validate(data)
}

// ValidateBytes validates raw YAML or JSON bytes against the named embedded schema.
func ValidateBytes(dataBytes []byte, schemaName string) (*Result, error) {
	validator, err := GetEmbeddedValidator(schemaName)
	if err != nil {
		return nil, err
	}
	return validator.ValidateBytes(dataBytes)
}

// ValidateFromBytes validates data against schema bytes (JSON or YAML).
func ValidateFromBytes(schemaBytes []byte, data interface{}) (*Result, error) {
	validator, err := NewValidatorFromBytes(schemaBytes)
	if err != nil {
		return nil, err
	}
	return validator.Validate(data)
}

// ValidateDataFromBytes validates raw data bytes (YAML or JSON) against schema bytes.
func ValidateDataFromBytes(schemaBytes, dataBytes []byte) (*Result, error) {
	var data interface{}
	if err := yaml.Unmarshal(dataBytes, &data); err != nil {
		if jerr := json.Unmarshal(dataBytes, &data); jerr != nil {
			return nil, fmt.Errorf("failed to parse data bytes (tried YAML then JSON): YAML err: %v, JSON err: %w", err, jerr)
		}
	}
	return ValidateFromBytes(schemaBytes, data)
}

// ValidateFile validates a file against the named embedded schema, sanitizing
// the path with safeio.CleanUserPath.
func ValidateFile(dataFilePath, schemaName string) (*Result, error) {
	cleanPath, err := safeio.CleanUserPath(dataFilePath)
	if err != nil {
		return nil, fmt.Errorf("path sanitization failed: %w", err)
	}

	dataBytes, err := os.ReadFile(cleanPath) // #nosec G304 -- cleanPath sanitized with safeio.CleanUserPath
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", cleanPath, err)
	}

	validator, err := GetEmbeddedValidator(schemaName)
	if err != nil {
		return nil, err
	}
	return validator.ValidateBytes(dataBytes)
}

// ValidateFiles validates multiple files against the named embedded schema
// with default batch options.
func ValidateFiles(dataFilePaths []string, schemaName string) (*BatchResult, error) {
	return ValidateFilesWithOptions(context.Background(), dataFilePaths, schemaName, BatchOptions{})
}

// ValidateFilesWithOptions validates multiple files concurrently. Individual
// file failures are reported in the batch result rather than aborting the run.
func ValidateFilesWithOptions(ctx context.Context, dataFilePaths []string, schemaName string, opts BatchOptions) (*BatchResult, error) {
	if opts.MaxConcurrency == 0 {
		opts.MaxConcurrency = runtime.NumCPU()
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxFileSize == 0 {
		opts.MaxFileSize = 10 * 1024 * 1024
	}

	validator, err := GetEmbeddedValidator(schemaName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrency)

	results := make(map[string]*Result, len(dataFilePaths))
	var mu sync.Mutex

	for _, path := range dataFilePaths {
		path := path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			res := validateOneFile(validator, path, opts.MaxFileSize)
			mu.Lock()
			results[path] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{
		Valid:       true,
		TotalFiles:  len(dataFilePaths),
		FileResults: results,
	}
	for _, res := range results {
		if res.Valid {
			batch.ValidFiles++
		} else {
			batch.InvalidFiles++
			batch.Valid = false
		}
	}
	return batch, nil
}

func validateOneFile(validator *Validator, path string, maxSize int64) *Result {
	cleanPath, err := safeio.CleanUserPath(path)
	if err != nil {
		return &Result{Valid: false, Errors: []ValidationError{{Path: "root", Message: err.Error(), Source: path}}}
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return &Result{Valid: false, Errors: []ValidationError{{Path: "root", Message: err.Error(), Source: path}}}
	}
	if info.Size() > maxSize {
		msg := fmt.Sprintf("file exceeds max size %d bytes (actual: %d)", maxSize, info.Size())
		return &Result{Valid: false, Errors: []ValidationError{{Path: "root", Message: msg, Source: path}}}
	}
	dataBytes, err := os.ReadFile(cleanPath) // #nosec G304 -- cleanPath sanitized with safeio.CleanUserPath
	if err != nil {
		return &Result{Valid: false, Errors: []ValidationError{{Path: "root", Message: err.Error(), Source: path}}}
	}
	res, err := validator.ValidateBytes(dataBytes)
	if err != nil {
		return &Result{Valid: false, Errors: []ValidationError{{Path: "root", Message: err.Error(), Source: path}}}
	}
	for i := range res.Errors {
		res.Errors[i].Source = cleanPath
	}
	return res
}

func ensureSupportedDraft(schemaBytes []byte) error {
	var schemaDoc map[string]interface{}
	if err := yaml.Unmarshal(schemaBytes, &schemaDoc); err != nil {
		if err := json.Unmarshal(schemaBytes, &schemaDoc); err != nil {
			return fmt.Errorf("invalid schema format (must be valid YAML or JSON): %w", err)
		}
	}
	if schemaDoc != nil {
		if v, ok := schemaDoc["$schema"].(string); ok {
			if !strings.Contains(v, "draft-07") && !strings.Contains(v, "2020-12") {
				return fmt.Errorf("unsupported $schema: only Draft-07 and Draft-2020-12 supported")
			}
		}
	}
	return nil
}
