/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fulmenhq/hooktier/internal/hooks"
	"github.com/fulmenhq/hooktier/internal/ops"
	"github.com/fulmenhq/hooktier/pkg/logger"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Compute the hook set for a project",
	Long: `Compute which hooks a project should run.

The project type decides the required tiers and recommended hooks; flags
narrow or extend the result. The type is taken from --project-type, then
from configuration, then detected from files in the current directory
(package.json, tsconfig.json, pyproject.toml and friends).`,
	RunE: runSelect,
}

func init() {
	// Register command in ops registry with taxonomy
	if err := ops.RegisterCommandWithTaxonomy("select", ops.GroupHooks, ops.CategorySelection, selectCmd, "Compute the hook set for a project"); err != nil {
		panic(fmt.Sprintf("Failed to register select command: %v", err))
	}

	selectCmd.Flags().String("project-type", "", "Project type (node|typescript|react|python|monorepo|api|default)")
	selectCmd.Flags().Bool("minimal", false, "Keep only critical hooks plus explicit includes")
	selectCmd.Flags().Bool("no-critical", false, "Drop critical hooks from the selection")
	selectCmd.Flags().StringSlice("include", nil, "Hook names to force into the selection")
	selectCmd.Flags().StringSlice("exclude", nil, "Hook names to drop from the selection")
	selectCmd.Flags().StringSlice("categories", nil, "Only keep hooks in these categories")
	selectCmd.Flags().StringSlice("exclude-categories", nil, "Drop hooks in these categories")
	selectCmd.Flags().String("min-importance", "", "Minimum importance (critical|important|optional)")
	selectCmd.Flags().String("format", "text", "Output format (text|json|yaml)")
}

// selectedHook is the flat output shape for selected hooks.
type selectedHook struct {
	Name        string `json:"name" yaml:"name"`
	Tier        string `json:"tier" yaml:"tier"`
	Category    string `json:"category" yaml:"category"`
	Importance  string `json:"importance" yaml:"importance"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
}

type selection struct {
	ProjectType string         `json:"projectType" yaml:"projectType"`
	Count       int            `json:"count" yaml:"count"`
	Hooks       []selectedHook `json:"hooks" yaml:"hooks"`
}

func runSelect(cmd *cobra.Command, args []string) error {
	projectType, _ := cmd.Flags().GetString("project-type")
	format, _ := cmd.Flags().GetString("format")

	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (expected text, json or yaml)", format)
	}

	settings, err := loadHooksSettings(cmd)
	if err != nil {
		return err
	}

	prefs, err := selectionPreferences(cmd.Flags(), settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	// Flag wins over config, config over detection.
	if projectType == "" {
		projectType = settings.ProjectType
	}
	if projectType == "" {
		projectType = hooks.DetectProjectType(".")
		logger.Debug(fmt.Sprintf("Detected project type: %s", projectType))
	}

	organizer := hooks.NewOrganizer(settings.Root, settings.Extensions)
	pool, err := organizer.CategorizedHooks()
	if err != nil {
		return fmt.Errorf("failed to load hooks: %v", err)
	}

	selected := hooks.SelectHooks(pool, projectType, prefs)

	switch format {
	case "json":
		data, err := json.MarshalIndent(selectionPayload(projectType, selected), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal selection: %v", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(selectionPayload(projectType, selected))
		if err != nil {
			return fmt.Errorf("failed to marshal selection: %v", err)
		}
		fmt.Fprint(out, string(data))
	default:
		fmt.Fprintf(out, "🎯 Selected %d hook(s) for %s project:\n", len(selected), projectType)
		if len(selected) == 0 {
			fmt.Fprintln(out, "  (none)")
		}
		for _, h := range selected {
			fmt.Fprintf(out, "  %-32s [%s, %s] %s\n", h.Name, h.Tier, h.Importance, h.Description)
		}
	}

	return nil
}

// selectionPreferences merges the preference flags with the configured
// defaults. Flag values extend the configured include/exclude lists rather
// than replacing them.
func selectionPreferences(flags *pflag.FlagSet, settings hooksSettings) (hooks.Preferences, error) {
	minimal, _ := flags.GetBool("minimal")
	noCritical, _ := flags.GetBool("no-critical")
	include, _ := flags.GetStringSlice("include")
	exclude, _ := flags.GetStringSlice("exclude")
	categories, _ := flags.GetStringSlice("categories")
	excludeCategories, _ := flags.GetStringSlice("exclude-categories")
	minImportance, _ := flags.GetString("min-importance")

	minImportance = strings.ToLower(minImportance)
	if minImportance != "" {
		switch hooks.Importance(minImportance) {
		case hooks.ImportanceCritical, hooks.ImportanceImportant, hooks.ImportanceOptional:
		default:
			return hooks.Preferences{}, fmt.Errorf("unknown importance %q (expected critical, important or optional)", minImportance)
		}
	}

	prefs := hooks.Preferences{
		MinimalSetup:  minimal || settings.Minimal,
		NoCritical:    noCritical,
		IncludeHooks:  append(append([]string{}, settings.Include...), include...),
		ExcludeHooks:  append(append([]string{}, settings.Exclude...), exclude...),
		MinImportance: hooks.Importance(minImportance),
	}
	for _, c := range categories {
		prefs.Categories = append(prefs.Categories, hooks.Category(strings.ToLower(c)))
	}
	for _, c := range excludeCategories {
		prefs.ExcludeCategories = append(prefs.ExcludeCategories, hooks.Category(strings.ToLower(c)))
	}
	return prefs, nil
}

func selectionPayload(projectType string, selected []hooks.Annotated) selection {
	payload := selection{
		ProjectType: projectType,
		Count:       len(selected),
		Hooks:       make([]selectedHook, 0, len(selected)),
	}
	for _, h := range selected {
		payload.Hooks = append(payload.Hooks, selectedHook{
			Name:        h.Name,
			Tier:        string(h.Tier),
			Category:    string(h.Category),
			Importance:  string(h.Importance),
			Description: h.Description,
			Path:        h.CurrentPath,
		})
	}
	return payload
}
