/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package ops

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
)

// CommandGroup represents the operational classification of commands
type CommandGroup string

const (
	GroupSupport CommandGroup = "support" // version, home, help
	GroupHooks   CommandGroup = "hooks"   // organize, restructure, verify, select
)

// CommandCategory refines a group into a functional family
type CommandCategory string

const (
	CategoryOrganization  CommandCategory = "organization"  // layout-mutating operations
	CategorySelection     CommandCategory = "selection"     // hook set computation
	CategoryInspection    CommandCategory = "inspection"    // read-only reporting
	CategoryInformation   CommandCategory = "information"   // version and build info
	CategoryConfiguration CommandCategory = "configuration" // home and config paths
)

// Capabilities describes what a command may do to the workspace
type Capabilities struct {
	MutatesFilesystem bool
	SupportsDryRun    bool
	SupportsJSON      bool
}

// GetDefaultCapabilities returns the standard capabilities for a group/category pair
func GetDefaultCapabilities(group CommandGroup, category CommandCategory) Capabilities {
	switch category {
	case CategoryOrganization:
		return Capabilities{MutatesFilesystem: true, SupportsDryRun: true, SupportsJSON: true}
	case CategorySelection, CategoryInspection:
		return Capabilities{MutatesFilesystem: false, SupportsDryRun: false, SupportsJSON: true}
	default:
		return Capabilities{}
	}
}

// CommandRegistration represents a registered command with its classification
type CommandRegistration struct {
	Name         string
	Group        CommandGroup
	Category     CommandCategory
	Capabilities Capabilities
	Command      *cobra.Command
	Description  string
}

// Registry manages command classifications and registrations
type Registry struct {
	mu         sync.RWMutex
	commands   map[string]*CommandRegistration
	groupIndex map[CommandGroup][]*CommandRegistration
}

// NewRegistry returns an empty registry. Tests use this to build isolated
// command trees; production code goes through the global instance.
func NewRegistry() *Registry {
	return &Registry{
		commands:   make(map[string]*CommandRegistration),
		groupIndex: make(map[CommandGroup][]*CommandRegistration),
	}
}

// Global registry instance
var globalRegistry = NewRegistry()

// GetRegistry returns the global command registry
func GetRegistry() *Registry {
	return globalRegistry
}

// RegisterCommandWithTaxonomy registers a command with the global registry
func RegisterCommandWithTaxonomy(name string, group CommandGroup, category CommandCategory, cmd *cobra.Command, description string) error {
	return GetRegistry().RegisterWithTaxonomy(name, group, category, GetDefaultCapabilities(group, category), cmd, description)
}

// Register adds a command using the default capability set for its group
func (r *Registry) Register(name string, group CommandGroup, cmd *cobra.Command, description string) error {
	category := CategoryInformation
	if group == GroupHooks {
		category = CategoryInspection
	}
	return r.RegisterWithTaxonomy(name, group, category, GetDefaultCapabilities(group, category), cmd, description)
}

// RegisterWithTaxonomy adds a fully classified command to the registry
func (r *Registry) RegisterWithTaxonomy(name string, group CommandGroup, category CommandCategory, caps Capabilities, cmd *cobra.Command, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	registration := &CommandRegistration{
		Name:         name,
		Group:        group,
		Category:     category,
		Capabilities: caps,
		Command:      cmd,
		Description:  description,
	}

	r.commands[name] = registration
	r.groupIndex[group] = append(r.groupIndex[group], registration)

	return nil
}

// GetCommand returns a registered command by name
func (r *Registry) GetCommand(name string) (*CommandRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetCommandsByGroup returns all commands in a specific group
func (r *Registry) GetCommandsByGroup(group CommandGroup) []*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.groupIndex[group]
}

// GetAllCommands returns all registered commands
func (r *Registry) GetAllCommands() map[string]*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*CommandRegistration)
	for k, v := range r.commands {
		result[k] = v
	}
	return result
}

// ListGroups returns all command groups and their command counts
func (r *Registry) ListGroups() map[CommandGroup]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[CommandGroup]int)
	for group, commands := range r.groupIndex {
		result[group] = len(commands)
	}
	return result
}
