package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents Orbit's static configuration.
//
// This structure captures everything a Flight Plan run needs outside of
// the plan itself: logging, telemetry, the embedded manifest database,
// pre-flight guardian thresholds, resilience profiles, delta-engine
// tuning, beacon signing, and the registered object stores a transfer
// can read from or write to.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (ORBIT_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// ShutdownTimeout is the maximum time to wait for an orchestrator
	// run to wind down cleanly after cancellation.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`

	// Metrics contains Prometheus metrics server configuration
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// ManifestDB configures the embedded database that tracks Flight
	// Plans, Cargo Manifests, and PartialManifest resume state.
	ManifestDB ManifestDBConfig `mapstructure:"manifest_db" yaml:"manifest_db"`

	// Universe configures the Universe Map content-hash index.
	Universe UniverseConfig `mapstructure:"universe" yaml:"universe"`

	// Guardian contains pre-flight check thresholds.
	Guardian GuardianConfig `mapstructure:"guardian" yaml:"guardian"`

	// Delta contains chunker and delta-engine tuning.
	Delta DeltaConfig `mapstructure:"delta" yaml:"delta"`

	// Pools maps a named resilience profile ("neutrino", "long-haul", ...)
	// to its pool/backoff/rate-limit settings. The orchestrator selects a
	// profile per star (destination) at plan time.
	Pools map[string]PoolConfig `mapstructure:"pools" yaml:"pools"`

	// Beacon configures the JWT-signed completion beacon emitted at the
	// end of a run.
	Beacon BeaconConfig `mapstructure:"beacon" yaml:"beacon"`

	// Stores registers the object stores a Flight Plan may reference by
	// name. capacity_vector in a Flight Plan is matched against entries
	// here at plan time.
	Stores map[string]StoreConfig `mapstructure:"stores" validate:"dive" yaml:"stores"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`

	// AuditPath is the path to the append-only audit.jsonl log consumed
	// by pkg/telemetry. Empty disables the audit trail.
	AuditPath string `mapstructure:"audit_path" yaml:"audit_path,omitempty"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing.
type TelemetryConfig struct {
	// Enabled controls whether distributed tracing is enabled
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP collector endpoint (host:port)
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Insecure controls whether to use insecure (non-TLS) connection
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// SampleRate controls the trace sampling rate (0.0 to 1.0)
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`

	// Profiling contains Pyroscope continuous profiling configuration
	Profiling ProfilingConfig `mapstructure:"profiling" yaml:"profiling"`
}

// ProfilingConfig controls Pyroscope continuous profiling.
type ProfilingConfig struct {
	Enabled      bool     `mapstructure:"enabled" yaml:"enabled"`
	Endpoint     string   `mapstructure:"endpoint" yaml:"endpoint"`
	ProfileTypes []string `mapstructure:"profile_types" yaml:"profile_types"`
}

// MetricsConfig configures the Prometheus metrics HTTP server.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// ManifestDBConfig configures the embedded GORM/SQLite database backing
// Flight Plan and Cargo Manifest bookkeeping.
type ManifestDBConfig struct {
	// Path is the SQLite database file path.
	Path string `mapstructure:"path" validate:"required" yaml:"path"`

	// MigrateOnStart runs pending golang-migrate migrations before opening
	// the GORM connection.
	MigrateOnStart bool `mapstructure:"migrate_on_start" yaml:"migrate_on_start"`
}

// UniverseConfig configures the Badger-backed Universe Map.
type UniverseConfig struct {
	// Path is the Badger database directory.
	Path string `mapstructure:"path" validate:"required" yaml:"path"`

	// GCIntervalSeconds controls how often Badger value-log GC runs.
	GCIntervalSeconds int `mapstructure:"gc_interval_seconds" yaml:"gc_interval_seconds"`
}

// GuardianConfig contains pre-flight check thresholds.
type GuardianConfig struct {
	// MinFreeBytes is the minimum free space required on the destination
	// before a run is allowed to start.
	MinFreeBytes uint64 `mapstructure:"min_free_bytes" yaml:"min_free_bytes"`

	// MinFreeRatio is the minimum fraction of the destination volume that
	// must remain free after the projected write completes.
	MinFreeRatio float64 `mapstructure:"min_free_ratio" validate:"omitempty,gte=0,lte=1" yaml:"min_free_ratio"`

	// IntegritySampleRate is the fraction of chunks re-verified by strong
	// hash after a Star Map build, as a cheap corruption tripwire.
	IntegritySampleRate float64 `mapstructure:"integrity_sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"integrity_sample_rate"`

	// WatchPaths are source paths watched live via fsnotify so a running
	// plan can detect concurrent mutation of files it has already signed.
	WatchPaths []string `mapstructure:"watch_paths" yaml:"watch_paths,omitempty"`
}

// DeltaConfig tunes the chunker and delta engine.
type DeltaConfig struct {
	// ChunkMode selects "fixed" or "cdc" (content-defined chunking).
	ChunkMode string `mapstructure:"chunk_mode" validate:"omitempty,oneof=fixed cdc" yaml:"chunk_mode"`

	// AvgChunkSize is the target average chunk size in bytes for CDC mode,
	// or the exact chunk size for fixed mode.
	AvgChunkSize uint64 `mapstructure:"avg_chunk_size" yaml:"avg_chunk_size"`

	// WindowSize is the number of chunks grouped into one Star Map window.
	WindowSize int `mapstructure:"window_size" validate:"omitempty,gt=0" yaml:"window_size"`

	// BloomFalsePositiveRate is the target false-positive rate for the
	// per-file bloom filter used to short-circuit signature lookups.
	BloomFalsePositiveRate float64 `mapstructure:"bloom_fpr" validate:"omitempty,gt=0,lt=1" yaml:"bloom_fpr"`
}

// PoolConfig describes a named resilience profile: connection pool sizing,
// retry/backoff behavior, and a token-bucket rate limit, applied per star.
type PoolConfig struct {
	// MaxConnections bounds the number of concurrent connections the pool
	// will hand out for this star.
	MaxConnections int `mapstructure:"max_connections" validate:"omitempty,gt=0" yaml:"max_connections"`

	// IdleTimeout closes pooled connections idle longer than this.
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	Backoff BackoffConfig `mapstructure:"backoff" yaml:"backoff"`

	// RateLimitBytesPerSec caps sustained transfer throughput for this
	// profile. Zero means unlimited.
	RateLimitBytesPerSec uint64 `mapstructure:"rate_limit_bytes_per_sec" yaml:"rate_limit_bytes_per_sec,omitempty"`

	// CircuitFailureThreshold is the number of consecutive failures that
	// trips the breaker for this star.
	CircuitFailureThreshold int `mapstructure:"circuit_failure_threshold" validate:"omitempty,gt=0" yaml:"circuit_failure_threshold"`

	// CircuitCooldown is how long the breaker stays open before probing.
	CircuitCooldown time.Duration `mapstructure:"circuit_cooldown" yaml:"circuit_cooldown"`
}

// BackoffConfig tunes exponential-backoff retry behavior.
type BackoffConfig struct {
	InitialInterval time.Duration `mapstructure:"initial_interval" yaml:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval" yaml:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier" validate:"omitempty,gt=1" yaml:"multiplier"`
	MaxAttempts     int           `mapstructure:"max_attempts" validate:"omitempty,gt=0" yaml:"max_attempts"`
	Jitter          bool          `mapstructure:"jitter" yaml:"jitter"`
}

// BeaconConfig configures the JWT-signed completion beacon.
type BeaconConfig struct {
	// Enabled controls whether a beacon is emitted at run completion.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// SigningKeyPath is the path to the HMAC signing secret. If the file
	// doesn't exist, `orbit init` generates one.
	SigningKeyPath string `mapstructure:"signing_key_path" yaml:"signing_key_path,omitempty"`

	// Audience is the JWT "aud" claim, identifying the beacon consumer.
	Audience string `mapstructure:"audience" yaml:"audience,omitempty"`

	// TTL bounds how long a beacon token is considered valid.
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl,omitempty"`
}

// StoreConfig describes a single registered object store backend.
type StoreConfig struct {
	// Type selects the backend implementation. Only "local" ships with
	// Orbit; remote backends are a documented non-goal.
	Type string `mapstructure:"type" validate:"required,oneof=local" yaml:"type"`

	// Local holds filesystem-backend-specific settings.
	Local *LocalStoreConfig `mapstructure:"local" yaml:"local,omitempty"`
}

// LocalStoreConfig configures the local filesystem object store backend.
type LocalStoreConfig struct {
	// BasePath is the root directory objects are written under.
	BasePath string `mapstructure:"base_path" validate:"required" yaml:"base_path"`

	// CreateDir creates BasePath (and parents) if it doesn't exist.
	CreateDir bool `mapstructure:"create_dir" yaml:"create_dir"`

	DirMode  uint32 `mapstructure:"dir_mode" yaml:"dir_mode,omitempty"`
	FileMode uint32 `mapstructure:"file_mode" yaml:"file_mode,omitempty"`
}

// Load loads configuration from file, environment, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		cfg := GetDefaultConfig()
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration with helpful error messages when no config
// file exists at the default location.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Please initialize a configuration file first:\n"+
				"  orbit init\n\n"+
				"Or specify a custom config file:\n"+
				"  orbit <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s\n\n"+
			"Please create the configuration file:\n"+
			"  orbit init --config %s",
			configPath, configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path as YAML.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("ORBIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		configDir := getConfigDir()
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

// configDecodeHooks returns a combined decode hook for human-readable byte
// sizes and durations.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		durationDecodeHook(),
	)
}

// byteSizeDecodeHook converts strings and numbers to a uint64 byte count
// via go-humanize, so config files can use "1GB", "512MiB", or plain
// integers for byte-count fields. It applies to every string decoded into
// a uint64 field, whatever the field's name or tag.
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from != reflect.String || to != reflect.Uint64 {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		n, err := humanize.ParseBytes(s)
		if err != nil {
			return data, nil
		}
		return n, nil
	}
}

// durationDecodeHook converts strings to time.Duration.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "orbit")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "orbit")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	path := GetDefaultConfigPath()
	_, err := os.Stat(path)
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for init command).
func GetConfigDir() string {
	return getConfigDir()
}
