package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// InitConfig creates a default configuration file at the default location.
// Returns the path to the created file, or an error if one already exists
// and force is false.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	return path, InitConfigToPath(path, force)
}

// InitConfigToPath creates a default configuration file at the given path,
// along with a freshly generated beacon signing key if one doesn't exist.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", path)
		}
	}

	cfg := GetDefaultConfig()

	if err := ensureBeaconKey(cfg.Beacon.SigningKeyPath); err != nil {
		return fmt.Errorf("failed to generate beacon signing key: %w", err)
	}

	if err := SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	return nil
}

// ensureBeaconKey writes a random 256-bit HMAC signing secret to path if
// one doesn't already exist. Generation, not validation, is the reason
// crypto/rand is used directly rather than through a library: this is a
// one-shot bootstrap secret, not a signing operation.
func ensureBeaconKey(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(hex.EncodeToString(secret)), 0600)
}
