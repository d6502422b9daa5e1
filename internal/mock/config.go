package mock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/nlpbrowser/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort = 8000
	DefaultHost = "localhost"
)

// DefaultDataset is the corpus served when the configuration has none
var DefaultDataset = []types.SimilarItem{
	{Text: "Adorei o atendimento, a equipe foi muito atenciosa", Category: "Elogio", Language: "pt"},
	{Text: "O produto chegou rápido e funciona perfeitamente", Category: "Elogio", Language: "pt"},
	{Text: "Excelente qualidade, recomendo a todos", Category: "Elogio", Language: "pt"},
	{Text: "The delivery was fast and the support team was great", Category: "Elogio", Language: "en"},
	{Text: "O produto chegou quebrado e ninguém respondeu meu contato", Category: "Reclamação", Language: "pt"},
	{Text: "Péssimo atendimento, esperei horas e não resolveram nada", Category: "Reclamação", Language: "pt"},
	{Text: "El pedido llegó tarde y la caja estaba dañada", Category: "Reclamação", Language: "es"},
	{Text: "Como faço para trocar o produto?", Category: "Dúvida", Language: "pt"},
	{Text: "Qual é o prazo de entrega para o nordeste?", Category: "Dúvida", Language: "pt"},
	{Text: "How can I track my order?", Category: "Dúvida", Language: "en"},
	{Text: "Seria ótimo se o aplicativo tivesse modo escuro", Category: "Sugestão", Language: "pt"},
	{Text: "Poderiam oferecer mais opções de pagamento", Category: "Sugestão", Language: "pt"},
}

// DefaultConfig returns a configuration that serves the built-in analyzer
// on the usual backend port
func DefaultConfig() *Config {
	dataset := make([]types.SimilarItem, len(DefaultDataset))
	copy(dataset, DefaultDataset)
	return &Config{
		Port:    DefaultPort,
		Host:    DefaultHost,
		Dataset: dataset,
		Logging: true,
	}
}

// LoadConfig loads a mock configuration from a file. Missing fields keep
// the defaults from DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	config.Dataset = nil

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if len(config.Dataset) == 0 {
		config.Dataset = DefaultConfig().Dataset
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// validateConfig validates the mock configuration
func validateConfig(config *Config) error {
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d out of range", config.Port)
	}

	for i, route := range config.Routes {
		if route.Method == "" {
			return fmt.Errorf("route %d: method is required", i)
		}
		if route.Path == "" {
			return fmt.Errorf("route %d: path is required", i)
		}
		if route.PathType != "" && route.PathType != "exact" && route.PathType != "prefix" && route.PathType != "regex" {
			return fmt.Errorf("route %d: pathType must be 'exact', 'prefix', or 'regex'", i)
		}
		if route.Status != 0 && (route.Status < 100 || route.Status > 599) {
			return fmt.Errorf("route %d: invalid status %d", i, route.Status)
		}
	}

	for i, item := range config.Dataset {
		if strings.TrimSpace(item.Text) == "" {
			return fmt.Errorf("dataset entry %d: texto is required", i)
		}
		if item.Category == "" {
			return fmt.Errorf("dataset entry %d: categoria is required", i)
		}
	}

	return nil
}

// SaveConfig saves a mock configuration to a file
func SaveConfig(config *Config, path string) error {
	var data []byte
	var err error

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
