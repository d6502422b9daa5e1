package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// EnvPrefix prefixes every environment override (NLPBROWSER_BASE_URL, ...)
	EnvPrefix = "NLPBROWSER"
)

var (
	// ConfigDir is the global configuration directory (~/.nlpbrowser)
	ConfigDir string

	// ConfigFile is the YAML settings file
	ConfigFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// DatabasePath is the SQLite database file for call analytics
	DatabasePath string

	// LogFile receives TUI logs so the alternate screen stays clean
	LogFile string
)

// Config holds every user-tunable setting
type Config struct {
	BaseURL          string          `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`
	DefaultTopK      int             `mapstructure:"default_top_k" yaml:"default_top_k" validate:"gtefield=TopKMin,ltefield=TopKMax"`
	TopKMin          int             `mapstructure:"top_k_min" yaml:"top_k_min" validate:"min=1"`
	TopKMax          int             `mapstructure:"top_k_max" yaml:"top_k_max" validate:"gtefield=TopKMin"`
	Output           string          `mapstructure:"output" yaml:"output" validate:"oneof=text json yaml html"`
	AnalyticsEnabled bool            `mapstructure:"analytics_enabled" yaml:"analytics_enabled"`
	MessageTimeout   int             `mapstructure:"message_timeout" yaml:"message_timeout" validate:"min=0"` // seconds, 0 keeps messages until replaced
	LogLevel         string          `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	TLS              types.TLSConfig `mapstructure:"tls" yaml:"tls"`
}

// Defaults
const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultTopK           = 5
	DefaultTopKMin        = 1
	DefaultTopKMax        = 20
	DefaultOutput         = "text"
	DefaultMessageTimeout = 5
	DefaultLogLevel       = "info"
)

const defaultConfigYAML = `# nlpbrowser settings
# Every key can also be set with an NLPBROWSER_* environment variable.
base_url: http://localhost:8000
default_top_k: 5
top_k_min: 1
top_k_max: 20
output: text
analytics_enabled: false
message_timeout: 5
log_level: info
tls:
  insecure_skip_verify: false
  cert_file: ""
  key_file: ""
  ca_file: ""
`

var validate = validator.New()

// Initialize sets up the configuration directory and files
// It creates ~/.nlpbrowser/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".nlpbrowser"))
}

// InitializeAt is Initialize with an explicit configuration directory
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	DatabasePath = filepath.Join(ConfigDir, "nlpbrowser.db")
	LogFile = filepath.Join(ConfigDir, "nlpbrowser.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default config file if it doesn't exist
	if _, err := os.Stat(ConfigFile); os.IsNotExist(err) {
		if err := os.WriteFile(ConfigFile, []byte(defaultConfigYAML), FilePermissions); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	return nil
}

// SetDefaults registers every key with its default value on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("default_top_k", DefaultTopK)
	v.SetDefault("top_k_min", DefaultTopKMin)
	v.SetDefault("top_k_max", DefaultTopKMax)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("analytics_enabled", false)
	v.SetDefault("message_timeout", DefaultMessageTimeout)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("tls.insecure_skip_verify", false)
	v.SetDefault("tls.cert_file", "")
	v.SetDefault("tls.key_file", "")
	v.SetDefault("tls.ca_file", "")
}

// Load resolves the configuration in order of increasing precedence:
// defaults, the YAML file, .env files, NLPBROWSER_* variables, then any
// flags already bound on v. path overrides the default config file location.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
	case ConfigFile != "":
		v.SetConfigFile(ConfigFile)
	default:
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path that does not exist surfaces as a PathError
		if !errors.As(err, &notFound) && !(path == "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ClampTopK bounds k to the configured top-k range
func (c *Config) ClampTopK(k int) int {
	return min(max(k, c.TopKMin), c.TopKMax)
}

// loadDotEnv reads .env from the working directory and the config directory.
// Variables already present in the environment win.
func loadDotEnv() error {
	candidates := []string{".env"}
	if ConfigDir != "" {
		candidates = append(candidates, filepath.Join(ConfigDir, ".env"))
	}
	for _, f := range candidates {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
