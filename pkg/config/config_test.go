package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// yamlSafePath converts a filesystem path to a YAML-safe representation.
// On Windows, backslashes in double-quoted YAML strings are interpreted as
// escape sequences (e.g. \U -> Unicode escape), causing parse errors.
func yamlSafePath(p string) string {
	return filepath.ToSlash(p)
}

func TestLoad_DefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "INFO"

manifest_db:
  path: "` + yamlSafePath(tmpDir) + `/manifests.db"

universe:
  path: "` + yamlSafePath(tmpDir) + `/universe"

metrics:
  enabled: true
  port: 9091

stores:
  default:
    type: local
    local:
      base_path: "` + yamlSafePath(tmpDir) + `/objects"
      create_dir: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown_timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Metrics.Port != 9091 {
		t.Errorf("Expected metrics port 9091, got %d", cfg.Metrics.Port)
	}
	if cfg.Stores["default"].Local.BasePath == "" {
		t.Error("Expected default store base_path to be set")
	}
	if _, ok := cfg.Pools["neutrino"]; !ok {
		t.Error("Expected built-in 'neutrino' pool profile to be seeded")
	}
	if _, ok := cfg.Pools["long-haul"]; !ok {
		t.Error("Expected built-in 'long-haul' pool profile to be seeded")
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Loading with no config file returns a valid default config, so a
	// quick one-off transfer doesn't require a config file on disk.
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error when loading default config, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected default config to be returned")
	}
	if cfg.Stores["default"].Type != "local" {
		t.Errorf("Expected default store type 'local', got %q", cfg.Stores["default"].Type)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	configContent := `
logging:
  level: INFO
  invalid yaml here [[[
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected error with invalid YAML, got nil")
	}
}

func TestLoad_ByteSizeAndDurationDecoding(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
manifest_db:
  path: "` + yamlSafePath(tmpDir) + `/manifests.db"

universe:
  path: "` + yamlSafePath(tmpDir) + `/universe"

guardian:
  min_free_bytes: "2GiB"

pools:
  neutrino:
    max_connections: 16
    idle_timeout: 45s
    rate_limit_bytes_per_sec: "10MB"

stores:
  default:
    type: local
    local:
      base_path: "` + yamlSafePath(tmpDir) + `/objects"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Guardian.MinFreeBytes != 2*1024*1024*1024 {
		t.Errorf("Expected min_free_bytes 2GiB, got %d", cfg.Guardian.MinFreeBytes)
	}
	if cfg.Pools["neutrino"].IdleTimeout != 45*time.Second {
		t.Errorf("Expected idle_timeout 45s, got %v", cfg.Pools["neutrino"].IdleTimeout)
	}
	if cfg.Pools["neutrino"].RateLimitBytesPerSec != 10000000 {
		t.Errorf("Expected rate_limit_bytes_per_sec 10MB, got %d", cfg.Pools["neutrino"].RateLimitBytesPerSec)
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default log level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default log output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Delta.ChunkMode != "cdc" {
		t.Errorf("Expected default chunk mode 'cdc', got %q", cfg.Delta.ChunkMode)
	}
	if cfg.Beacon.Audience != "orbit-beacon" {
		t.Errorf("Expected default beacon audience 'orbit-beacon', got %q", cfg.Beacon.Audience)
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()

	if !filepath.IsAbs(path) {
		t.Errorf("Expected absolute path, got %q", path)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("Expected filename 'config.yaml', got %q", filepath.Base(path))
	}
}

func TestGetConfigDir(t *testing.T) {
	dir := GetConfigDir()

	if filepath.Base(dir) != "orbit" {
		t.Errorf("Expected directory name 'orbit', got %q", filepath.Base(dir))
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	_ = os.Setenv("ORBIT_LOGGING_LEVEL", "ERROR")
	_ = os.Setenv("ORBIT_METRICS_PORT", "9999")
	defer func() {
		_ = os.Unsetenv("ORBIT_LOGGING_LEVEL")
		_ = os.Unsetenv("ORBIT_METRICS_PORT")
	}()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "INFO"

manifest_db:
  path: "` + yamlSafePath(tmpDir) + `/manifests.db"

universe:
  path: "` + yamlSafePath(tmpDir) + `/universe"

metrics:
  enabled: true
  port: 9090

stores:
  default:
    type: local
    local:
      base_path: "` + yamlSafePath(tmpDir) + `/objects"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Expected level 'ERROR' from env var, got %q", cfg.Logging.Level)
	}
	if cfg.Metrics.Port != 9999 {
		t.Errorf("Expected port 9999 from env var, got %d", cfg.Metrics.Port)
	}
}
