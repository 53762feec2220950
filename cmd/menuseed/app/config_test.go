package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/menuseed/pkg/errors"
)

const testConfig = `appwrite:
  endpoint: http://localhost:8080/v1
  project_id: menu-project
  api_key: secret
  database_id: food
  bucket_id: images
  collections:
    categories: cats
    customizations: customs
    menu: menu
    menu_customizations: links
seed:
  delay: 250ms
  strategy: bucket
  burst: 3
  dataset: data/menu.yaml
`

// clearEnv blanks every variable that could leak into config loading.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"APPWRITE_ENDPOINT", "APPWRITE_PROJECT_ID", "APPWRITE_API_KEY",
		"APPWRITE_DATABASE_ID", "APPWRITE_BUCKET_ID",
		"APPWRITE_COLLECTIONS_CATEGORIES", "APPWRITE_COLLECTIONS_CUSTOMIZATIONS",
		"APPWRITE_COLLECTIONS_MENU", "APPWRITE_COLLECTIONS_MENU_CUSTOMIZATIONS",
		"SEED_DELAY", "SEED_STRATEGY", "SEED_BURST", "SEED_DATASET",
		"SEED_STRICT_RESET", "SEED_CONCURRENCY", "LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menuseed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	clearEnv(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.Appwrite.Endpoint != "https://cloud.appwrite.io/v1" {
		t.Errorf("Endpoint = %s, want the cloud default", config.Appwrite.Endpoint)
	}
	if config.Seed.Delay != 500*time.Millisecond {
		t.Errorf("Delay = %v, want 500ms", config.Seed.Delay)
	}
	if config.Seed.Strategy != "delay" {
		t.Errorf("Strategy = %s, want delay", config.Seed.Strategy)
	}
}

// TestLoadConfig_File verifies values read from an explicit config file.
func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, testConfig)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Appwrite.ProjectID != "menu-project" {
		t.Errorf("ProjectID = %s, want menu-project", config.Appwrite.ProjectID)
	}
	if config.Collections.MenuCustomizations != "links" {
		t.Errorf("MenuCustomizations = %s, want links", config.Collections.MenuCustomizations)
	}
	if config.Seed.Delay != 250*time.Millisecond {
		t.Errorf("Delay = %v, want 250ms", config.Seed.Delay)
	}
	if config.Seed.Burst != 3 {
		t.Errorf("Burst = %d, want 3", config.Seed.Burst)
	}
	want := filepath.Join(filepath.Dir(path), "data", "menu.yaml")
	if config.Seed.Dataset != want {
		t.Errorf("Dataset = %s, want %s", config.Seed.Dataset, want)
	}
	if err := config.RequireRemote(); err != nil {
		t.Errorf("RequireRemote() = %v, want nil", err)
	}
}

// TestLoadConfig_EnvironmentVariables verifies env vars override the file.
func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, testConfig)
	t.Setenv("APPWRITE_PROJECT_ID", "from-env")
	t.Setenv("SEED_DELAY", "1000")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Appwrite.ProjectID != "from-env" {
		t.Errorf("ProjectID = %s, want from-env", config.Appwrite.ProjectID)
	}
	if config.Seed.Delay != time.Second {
		t.Errorf("Delay = %v, want 1s", config.Seed.Delay)
	}
}

// TestLoadConfig_Errors verifies unreadable and invalid configuration.
func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() with a missing explicit file succeeded, want error")
	}

	t.Setenv("SEED_DELAY", "soon")
	if _, err := LoadConfig(""); err == nil {
		t.Error("LoadConfig() with an invalid delay succeeded, want error")
	}
}

// TestConfig_RequireRemote verifies every missing setting is reported.
func TestConfig_RequireRemote(t *testing.T) {
	clearEnv(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	err = config.RequireRemote()
	if err == nil {
		t.Fatal("RequireRemote() = nil, want error")
	}
	var cfgErr *errors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("RequireRemote() error type = %T, want *errors.ConfigError", err)
	}
	for _, env := range []string{"APPWRITE_PROJECT_ID", "APPWRITE_API_KEY", "APPWRITE_COLLECTIONS_MENU"} {
		if !strings.Contains(err.Error(), env) {
			t.Errorf("RequireRemote() error %q does not mention %s", err, env)
		}
	}
	if strings.Contains(err.Error(), "APPWRITE_ENDPOINT") {
		t.Error("RequireRemote() reports the endpoint, which has a default")
	}
}

// TestConfig_UpdateFromFlags verifies flag values take precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "table", LogLevel: "info"}
	config.UpdateFromFlags(true, false, true, "json", "")

	if !config.Verbose || !config.NoColor {
		t.Error("boolean flags not applied")
	}
	if config.Format != "json" {
		t.Errorf("Format = %s, want json", config.Format)
	}
	if config.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info to be kept", config.LogLevel)
	}
}
