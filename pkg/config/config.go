package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for hooktier
type Config struct {
	Hooks HooksConfig `mapstructure:"hooks"`
}

// HooksConfig holds hook organization settings
type HooksConfig struct {
	Root        string       `mapstructure:"root"`         // hooks root directory, relative to the project
	Extensions  []string     `mapstructure:"extensions"`   // recognized hook file extensions
	ProjectType string       `mapstructure:"project_type"` // "" = auto-detect from project files
	Backup      BackupConfig `mapstructure:"backup"`
	Select      SelectConfig `mapstructure:"select"`
}

// BackupConfig controls the pre-restructure backup.
type BackupConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"` // "" = hooks-backup sibling of the hooks root
}

// SelectConfig holds durable selection preferences. Command-line flags
// override these per invocation.
type SelectConfig struct {
	Minimal bool     `mapstructure:"minimal"`
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
}

var defaultConfig = Config{
	Hooks: HooksConfig{
		Root:        ".claude/hooks",
		Extensions:  []string{".py", ".sh", ".js", ".ts"},
		ProjectType: "",
		Backup: BackupConfig{
			Enabled: true,
			Dir:     "",
		},
		Select: SelectConfig{
			Minimal: false,
			Include: []string{},
			Exclude: []string{},
		},
	},
}

// LoadConfig loads configuration from various sources
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("hooks.root", defaultConfig.Hooks.Root)
	v.SetDefault("hooks.extensions", defaultConfig.Hooks.Extensions)
	v.SetDefault("hooks.project_type", defaultConfig.Hooks.ProjectType)
	v.SetDefault("hooks.backup.enabled", defaultConfig.Hooks.Backup.Enabled)
	v.SetDefault("hooks.backup.dir", defaultConfig.Hooks.Backup.Dir)
	v.SetDefault("hooks.select.minimal", defaultConfig.Hooks.Select.Minimal)
	v.SetDefault("hooks.select.include", defaultConfig.Hooks.Select.Include)
	v.SetDefault("hooks.select.exclude", defaultConfig.Hooks.Select.Exclude)

	// Configuration file search paths
	v.SetConfigName("hooktier")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // Current directory
	v.AddConfigPath("$HOME") // Home directory

	// Add hooktier home directory if available
	if configDir, err := GetConfigDir(); err == nil {
		v.AddConfigPath(configDir)
	}

	// Environment variables
	v.SetEnvPrefix("HOOKTIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to read config file (optional); ignore error to use defaults
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &config, nil
}

// LoadProjectConfig loads project-specific configuration layered over the
// global configuration.
func LoadProjectConfig() (*Config, error) {
	// First load global config
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	// Look for project-specific config files
	projectConfigs := []string{
		".hooktier.yaml",
		".hooktier.yml",
		".hooktier.json",
		"hooktier.yaml",
		"hooktier.yml",
		"hooktier.json",
	}

	for _, configFile := range projectConfigs {
		data, err := os.ReadFile(configFile) // #nosec G304 -- fixed set of well-known config file names
		if err != nil {
			continue // Try next config file
		}
		if err := ValidateConfig(data); err != nil {
			return nil, fmt.Errorf("project config %s: %w", configFile, err)
		}

		v := viper.New()
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			continue
		}

		// Merge project config with global config
		if err := v.Unmarshal(config); err != nil {
			continue
		}

		break
	}

	return config, nil
}

// GetHooksConfig returns hook organization configuration
func (c *Config) GetHooksConfig() HooksConfig { return c.Hooks }

// RecognizedExtensions returns the configured hook file extensions,
// lowercased and guaranteed to carry a leading dot.
func (c *Config) RecognizedExtensions() []string {
	exts := make([]string, 0, len(c.Hooks.Extensions))
	for _, ext := range c.Hooks.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		return append([]string(nil), defaultConfig.Hooks.Extensions...)
	}
	return exts
}

// BackupDir resolves the backup directory for a given hooks root. An empty
// configured dir means "hooks-backup next to the hooks root".
func (c *Config) BackupDir(hooksRoot string) string {
	if c.Hooks.Backup.Dir != "" {
		return c.Hooks.Backup.Dir
	}
	return filepath.Join(filepath.Dir(hooksRoot), "hooks-backup")
}

// GetHooktierHome returns the hooktier home directory
func GetHooktierHome() (string, error) {
	// Check environment variable first
	if home := os.Getenv("HOOKTIER_HOME"); home != "" {
		return home, nil
	}

	// Use standard dev tool convention: ~/.hooktier
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %v", err)
	}

	return filepath.Join(homeDir, ".hooktier"), nil
}

// EnsureHooktierHome creates the hooktier home directory if it doesn't exist
func EnsureHooktierHome() (string, error) {
	homeDir, err := GetHooktierHome()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(homeDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create hooktier home directory: %v", err)
	}

	return homeDir, nil
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	homeDir, err := EnsureHooktierHome()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, "config")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create config directory: %v", err)
	}
	return configDir, nil
}

// GetLogDir returns the log directory
func GetLogDir() (string, error) {
	homeDir, err := EnsureHooktierHome()
	if err != nil {
		return "", err
	}
	logDir := filepath.Join(homeDir, "logs")
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create log directory: %v", err)
	}
	return logDir, nil
}
