package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a loaded configuration against its struct tags and a
// handful of cross-field rules that tags alone can't express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("struct validation: %w", err)
	}

	for name, store := range cfg.Stores {
		if store.Type == "local" && store.Local == nil {
			return fmt.Errorf("store %q: type is \"local\" but local config is missing", name)
		}
	}

	for name, pool := range cfg.Pools {
		if pool.Backoff.MaxInterval < pool.Backoff.InitialInterval {
			return fmt.Errorf("pool %q: backoff max_interval must be >= initial_interval", name)
		}
	}

	return nil
}
