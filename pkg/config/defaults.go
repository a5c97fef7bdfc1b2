package config

import (
	"path/filepath"
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyManifestDBDefaults(&cfg.ManifestDB)
	applyUniverseDefaults(&cfg.Universe)
	applyGuardianDefaults(&cfg.Guardian)
	applyDeltaDefaults(&cfg.Delta)
	applyBeaconDefaults(&cfg.Beacon)

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	applyPoolDefaults(cfg)

	// No defaults for Stores: the user must register at least one
	// destination before a plan can be run.
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
	applyProfilingDefaults(&cfg.Profiling)
}

func applyProfilingDefaults(cfg *ProfilingConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040"
	}
	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyManifestDBDefaults(cfg *ManifestDBConfig) {
	if cfg.Path == "" {
		cfg.Path = filepath.Join(GetConfigDir(), "manifests.db")
	}
}

func applyUniverseDefaults(cfg *UniverseConfig) {
	if cfg.Path == "" {
		cfg.Path = filepath.Join(GetConfigDir(), "universe")
	}
	if cfg.GCIntervalSeconds == 0 {
		cfg.GCIntervalSeconds = 300
	}
}

func applyGuardianDefaults(cfg *GuardianConfig) {
	if cfg.MinFreeBytes == 0 {
		cfg.MinFreeBytes = 1 << 30 // 1 GiB headroom
	}
	if cfg.MinFreeRatio == 0 {
		cfg.MinFreeRatio = 0.05
	}
	if cfg.IntegritySampleRate == 0 {
		cfg.IntegritySampleRate = 0.01
	}
}

func applyDeltaDefaults(cfg *DeltaConfig) {
	if cfg.ChunkMode == "" {
		cfg.ChunkMode = "cdc"
	}
	if cfg.AvgChunkSize == 0 {
		cfg.AvgChunkSize = 64 * 1024
	}
	if cfg.WindowSize == 0 {
		cfg.WindowSize = 256
	}
	if cfg.BloomFalsePositiveRate == 0 {
		cfg.BloomFalsePositiveRate = 0.01
	}
}

func applyBeaconDefaults(cfg *BeaconConfig) {
	if cfg.SigningKeyPath == "" {
		cfg.SigningKeyPath = filepath.Join(GetConfigDir(), "beacon.key")
	}
	if cfg.Audience == "" {
		cfg.Audience = "orbit-beacon"
	}
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
}

// applyPoolDefaults seeds each of the two built-in resilience profiles
// that the user hasn't defined under its own name. "neutrino" favors low
// latency over a small, fast pool (LAN or same-datacenter stars);
// "long-haul" favors resilience over raw throughput (WAN, high-RTT, or
// unreliable stars).
func applyPoolDefaults(cfg *Config) {
	if cfg.Pools == nil {
		cfg.Pools = make(map[string]PoolConfig)
	}

	if _, ok := cfg.Pools["neutrino"]; !ok {
		cfg.Pools["neutrino"] = PoolConfig{
			MaxConnections: 32,
			IdleTimeout:    30 * time.Second,
			Backoff: BackoffConfig{
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2.0,
				MaxAttempts:     5,
				Jitter:          true,
			},
			CircuitFailureThreshold: 5,
			CircuitCooldown:         10 * time.Second,
		}
	}

	if _, ok := cfg.Pools["long-haul"]; !ok {
		cfg.Pools["long-haul"] = PoolConfig{
			MaxConnections: 4,
			IdleTimeout:    5 * time.Minute,
			Backoff: BackoffConfig{
				InitialInterval: 1 * time.Second,
				MaxInterval:     2 * time.Minute,
				Multiplier:      2.5,
				MaxAttempts:     12,
				Jitter:          true,
			},
			CircuitFailureThreshold: 3,
			CircuitCooldown:         60 * time.Second,
		}
	}

	for name, pool := range cfg.Pools {
		if pool.Backoff.Multiplier == 0 {
			pool.Backoff.Multiplier = 2.0
		}
		if pool.Backoff.MaxAttempts == 0 {
			pool.Backoff.MaxAttempts = 8
		}
		if pool.Backoff.InitialInterval == 0 {
			pool.Backoff.InitialInterval = 500 * time.Millisecond
		}
		if pool.Backoff.MaxInterval == 0 {
			pool.Backoff.MaxInterval = 30 * time.Second
		}
		cfg.Pools[name] = pool
	}
}

// GetDefaultConfig returns a Config struct with all default values applied,
// suitable for generating a sample configuration file or running tests
// without a config file on disk.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Stores: map[string]StoreConfig{
			"default": {
				Type: "local",
				Local: &LocalStoreConfig{
					BasePath:  filepath.Join(GetConfigDir(), "objects"),
					CreateDir: true,
					DirMode:   0755,
					FileMode:  0644,
				},
			},
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
