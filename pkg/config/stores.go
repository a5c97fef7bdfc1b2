package config

import (
	"fmt"
	"os"

	"github.com/saworbit/orbit/pkg/store"
)

// CreateStore creates a registered ObjectStore instance from configuration.
func CreateStore(name string, cfg StoreConfig) (store.ObjectStore, error) {
	switch cfg.Type {
	case "local":
		if cfg.Local == nil {
			return nil, fmt.Errorf("store %q: local backend requires local configuration", name)
		}
		return store.NewLocal(store.LocalConfig{
			BasePath:  cfg.Local.BasePath,
			CreateDir: cfg.Local.CreateDir,
			DirMode:   os.FileMode(cfg.Local.DirMode),
			FileMode:  os.FileMode(cfg.Local.FileMode),
		})
	default:
		return nil, fmt.Errorf("store %q: unknown backend type %q", name, cfg.Type)
	}
}

// CreateStores builds every registered store in cfg.Stores, keyed by name.
func CreateStores(cfg *Config) (map[string]store.ObjectStore, error) {
	stores := make(map[string]store.ObjectStore, len(cfg.Stores))
	for name, storeCfg := range cfg.Stores {
		s, err := CreateStore(name, storeCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create store %q: %w", name, err)
		}
		stores[name] = s
	}
	return stores, nil
}
