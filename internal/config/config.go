// Package config handles configuration loading for the Brighthouse
// proposal tool. It supports YAML config files with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Google  GoogleConfig  `mapstructure:"google"  yaml:"google"`
	NREL    NRELConfig    `mapstructure:"nrel"    yaml:"nrel"`
	Slides  SlidesConfig  `mapstructure:"slides"  yaml:"slides"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Solar   SolarConfig   `mapstructure:"solar"   yaml:"solar"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// GoogleConfig holds Google API credentials.
type GoogleConfig struct {
	MapsAPIKey      string `mapstructure:"maps_api_key"     yaml:"maps_api_key"`
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"` // service-account JSON
}

// NRELConfig holds the NREL developer API key.
type NRELConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

// SlidesConfig holds the proposal template settings.
type SlidesConfig struct {
	TemplateID string `mapstructure:"template_id" yaml:"template_id"` // presentation ID of the proposal deck
}

// StorageConfig holds local file storage settings.
type StorageConfig struct {
	TempDir string `mapstructure:"temp_dir" yaml:"temp_dir"` // exported PDFs land here
}

// SolarConfig holds the sizing constants.
type SolarConfig struct {
	PerformanceRatio float64 `mapstructure:"performance_ratio" yaml:"performance_ratio"` // derating factor
	PanelWatts       float64 `mapstructure:"panel_watts"       yaml:"panel_watts"`
	BatteryKWh       float64 `mapstructure:"battery_kwh"       yaml:"battery_kwh"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.brighthouse/config.yaml (home directory)
//  3. /etc/brighthouse/config.yaml (system)
//
// Environment variables override config file values.
// Format: BRIGHTHOUSE_<SECTION>_<KEY>, e.g., BRIGHTHOUSE_NREL_API_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".brighthouse"))
	v.AddConfigPath("/etc/brighthouse")

	v.SetEnvPrefix("BRIGHTHOUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("BRIGHTHOUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Google defaults
	v.SetDefault("google.credentials_file", "credentials.json")

	// Slides defaults — the shared proposal deck template
	v.SetDefault("slides.template_id", "1tZF_Ax-e2BBeL3H7ZELy_rtzOUDwBjxFSoqQl13ygQc")

	// Storage defaults
	v.SetDefault("storage.temp_dir", "./temp")

	// Sizing constants
	v.SetDefault("solar.performance_ratio", 0.70)
	v.SetDefault("solar.panel_watts", 400)
	v.SetDefault("solar.battery_kwh", 16)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 3000)
	v.SetDefault("api.cors_origins", []string{
		"http://localhost:3000",
		"http://localhost:5500",
		"http://127.0.0.1:5500",
	})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment
// variables. The bare names (GOOGLE_MAPS_API_KEY, NREL_API_KEY,
// GOOGLE_APPLICATION_CREDENTIALS, PORT) are kept for compatibility
// with existing deployments.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("BRIGHTHOUSE_GOOGLE_MAPS_API_KEY"); key != "" {
		cfg.Google.MapsAPIKey = key
	} else if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		cfg.Google.MapsAPIKey = key
	}
	if key := os.Getenv("BRIGHTHOUSE_NREL_API_KEY"); key != "" {
		cfg.NREL.APIKey = key
	} else if key := os.Getenv("NREL_API_KEY"); key != "" {
		cfg.NREL.APIKey = key
	}
	if path := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); path != "" {
		cfg.Google.CredentialsFile = path
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.API.Port = p
		}
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
