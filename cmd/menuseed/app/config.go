package app

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/menuseed"
	"github.com/agentstation/menuseed/internal/appcontext"
	"github.com/agentstation/menuseed/internal/appwrite"
	"github.com/agentstation/menuseed/internal/config"
	"github.com/agentstation/menuseed/pkg/constants"
	"github.com/agentstation/menuseed/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Remote backend
	Appwrite    appwrite.Config
	Collections menuseed.Collections

	// Seed settings
	Seed appcontext.SeedConfig

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	v *viper.Viper
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or ~/.menuseed.yaml / ./.menuseed.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first so viper sees them as environment
	loadEnvFiles()

	v := config.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".menuseed")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file must exist; the search locations are optional.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("file", "failed to read config", err)
		}
	}

	delay, err := config.GetDuration(v, config.KeyDelay)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigFile: v.ConfigFileUsed(),

		Appwrite: appwrite.Config{
			Endpoint:   config.GetString(v, config.KeyEndpoint),
			ProjectID:  config.GetString(v, config.KeyProjectID),
			APIKey:     config.GetString(v, config.KeyAPIKey),
			DatabaseID: config.GetString(v, config.KeyDatabaseID),
			BucketID:   config.GetString(v, config.KeyBucketID),
			Timeout:    constants.DefaultHTTPTimeout,
		},
		Collections: menuseed.Collections{
			Categories:         config.GetString(v, config.KeyCategories),
			Customizations:     config.GetString(v, config.KeyCustomizations),
			Menu:               config.GetString(v, config.KeyMenu),
			MenuCustomizations: config.GetString(v, config.KeyMenuCustomizations),
		},
		Seed: appcontext.SeedConfig{
			Delay:       delay,
			Strategy:    v.GetString(config.KeyStrategy),
			Burst:       v.GetInt(config.KeyBurst),
			Dataset:     config.GetString(v, config.KeyDataset),
			StrictReset: v.GetBool(config.KeyStrictReset),
			Concurrency: v.GetInt(config.KeyConcurrency),
		},

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),

		v: v,
	}

	// A relative dataset path set in a config file is relative to that file.
	if cfg.ConfigFile != "" && v.InConfig(config.KeyDataset) && !filepath.IsAbs(cfg.Seed.Dataset) {
		cfg.Seed.Dataset = filepath.Join(filepath.Dir(cfg.ConfigFile), cfg.Seed.Dataset)
	}

	return cfg, nil
}

// RequireRemote reports every missing setting needed to reach Appwrite.
func (c *Config) RequireRemote() error {
	if c.v == nil {
		return c.Appwrite.Validate()
	}
	return config.Required(c.v, config.RemoteKeys...)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first because godotenv never overrides a variable
// that is already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
