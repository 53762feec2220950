// Package config holds the configuration keys and the viper helpers shared by
// the CLI commands.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/agentstation/menuseed/pkg/constants"
	"github.com/agentstation/menuseed/pkg/errors"
)

// Configuration keys. The environment form replaces dots with underscores
// and upper-cases the result, e.g. APPWRITE_PROJECT_ID.
const (
	KeyEndpoint   = "appwrite.endpoint"
	KeyProjectID  = "appwrite.project_id"
	KeyAPIKey     = "appwrite.api_key"
	KeyDatabaseID = "appwrite.database_id"
	KeyBucketID   = "appwrite.bucket_id"

	KeyCategories         = "appwrite.collections.categories"
	KeyCustomizations     = "appwrite.collections.customizations"
	KeyMenu               = "appwrite.collections.menu"
	KeyMenuCustomizations = "appwrite.collections.menu_customizations"

	KeyDelay       = "seed.delay"
	KeyStrategy    = "seed.strategy"
	KeyBurst       = "seed.burst"
	KeyDataset     = "seed.dataset"
	KeyStrictReset = "seed.strict_reset"
	KeyConcurrency = "seed.concurrency"
)

// RemoteKeys are required whenever a command talks to Appwrite.
var RemoteKeys = []string{
	KeyEndpoint,
	KeyProjectID,
	KeyAPIKey,
	KeyDatabaseID,
	KeyBucketID,
	KeyCategories,
	KeyCustomizations,
	KeyMenu,
	KeyMenuCustomizations,
}

// EnvReplacer maps configuration keys to environment variable names.
var EnvReplacer = strings.NewReplacer(".", "_", "-", "_")

// EnvName returns the environment variable that backs key.
func EnvName(key string) string {
	return strings.ToUpper(EnvReplacer.Replace(key))
}

// New returns a viper instance with env binding and defaults applied.
func New() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(EnvReplacer)
	SetDefaults(v)
	return v
}

// SetDefaults installs the default seed settings.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEndpoint, "https://cloud.appwrite.io/v1")
	v.SetDefault(KeyDelay, constants.DefaultWriteDelay)
	v.SetDefault(KeyStrategy, constants.StrategyDelay)
	v.SetDefault(KeyBurst, constants.DefaultBurst)
	v.SetDefault(KeyConcurrency, constants.MaxConcurrentDeletes)
	v.SetDefault(KeyStrictReset, false)
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(v *viper.Viper, key string) string {
	viperValue := strings.TrimSpace(v.GetString(key))
	if viperValue != "" {
		return viperValue
	}
	return strings.TrimSpace(os.Getenv(EnvName(key)))
}

// GetDuration reads a duration, accepting plain integers as milliseconds.
func GetDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return v.GetDuration(key), nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	if ms, err := time.ParseDuration(raw + "ms"); err == nil {
		return ms, nil
	}
	return 0, errors.NewConfigError(key, "invalid duration "+raw, errors.ErrInvalidInput)
}

// Required checks that every key has a non-empty value and reports all
// missing keys together with their environment variable names.
func Required(v *viper.Viper, keys ...string) error {
	var missing []string
	for _, key := range keys {
		if GetString(v, key) == "" {
			missing = append(missing, key+" ("+EnvName(key)+")")
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.NewConfigError("appwrite", "missing "+strings.Join(missing, ", "), errors.ErrInvalidInput)
}
