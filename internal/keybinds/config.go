package keybinds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration.
// Each section maps a key to an action name.
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Input   map[string]string `json:"input,omitempty"`
	Results map[string]string `json:"results,omitempty"`
	Help    map[string]string `json:"help,omitempty"`
}

// sections pairs each context with its config map
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:  c.Global,
		ContextInput:   c.Input,
		ContextResults: c.Results,
		ContextHelp:    c.Help,
	}
}

// ParseConfig decodes keybinds JSON. Comments and trailing commas are allowed.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}
	return &config, nil
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	header := []byte("// nlpbrowser keybindings: \"key\": \"action\" per context.\n// Bind a key to \"noop\" to disable a default.\n")
	return os.WriteFile(path, append(header, data...), 0644)
}

// ApplyConfig applies user configuration to a registry
// User bindings override default bindings
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for key, actionStr := range bindings {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("%s.%s: %w", context, key, err)
			}
			registry.Register(context, key, Action(actionStr))
		}
	}
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry.
// Warnings from validation are returned alongside a usable registry.
func LoadOrDefault(configPath string) (*Registry, *ValidationResult, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, &ValidationResult{}, nil
	}
	if _, err := os.Stat(configPath); err != nil {
		// If config doesn't exist, that's fine - use defaults
		return registry, &ValidationResult{}, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load keybinds.json: %w", err)
	}

	result := NewValidator().ValidateConfig(config)
	if result.HasErrors() {
		return nil, result, fmt.Errorf("invalid keybinds.json:\n%s", result.String())
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, result, fmt.Errorf("failed to apply keybinds config: %w", err)
	}
	return registry, result, nil
}

// ExportDefaults exports the default keybindings as a config
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{Version: "1.0"}
	for context, section := range map[Context]*map[string]string{
		ContextGlobal:  &config.Global,
		ContextInput:   &config.Input,
		ContextResults: &config.Results,
		ContextHelp:    &config.Help,
	} {
		*section = make(map[string]string, len(r.bindings[context]))
		for key, action := range r.bindings[context] {
			(*section)[key] = string(action)
		}
	}
	return config
}

// CreateExampleConfig writes the defaults to path so users can edit them
func CreateExampleConfig(path string) error {
	return SaveConfig(ExportDefaults(), path)
}
