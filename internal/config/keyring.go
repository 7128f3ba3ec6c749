package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name in the OS keychain
	KeyringService = "CongressMemberData"

	// KeyringAPIKeyItem is the key for the Congress.gov API key
	KeyringAPIKeyItem = "congress-api-key"
)

// KeyringManager handles secure credential storage in the OS keychain.
// On macOS this is Keychain Access, on Windows Credential Manager, and
// on Linux the Secret Service (requires libsecret).
type KeyringManager struct {
	logger *slog.Logger
}

// NewKeyringManager creates a new keyring manager
func NewKeyringManager() *KeyringManager {
	return &KeyringManager{
		logger: slog.Default().With("component", "keyring"),
	}
}

// SaveAPIKey stores the API key securely in the OS keychain
func (km *KeyringManager) SaveAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("api key cannot be empty")
	}

	err := keyring.Set(KeyringService, KeyringAPIKeyItem, apiKey)
	if err != nil {
		km.logger.Error("failed to save API key to keychain", "error", err)
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}

	km.logger.Info("api key saved to keychain", "service", KeyringService)
	return nil
}

// GetAPIKey retrieves the API key from the OS keychain
func (km *KeyringManager) GetAPIKey() (string, error) {
	apiKey, err := keyring.Get(KeyringService, KeyringAPIKeyItem)
	if err == keyring.ErrNotFound {
		// Not an error - just not set yet
		return "", nil
	}
	if err != nil {
		km.logger.Error("failed to get API key from keychain", "error", err)
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}

	km.logger.Debug("api key retrieved from keychain")
	return apiKey, nil
}

// DeleteAPIKey removes the API key from the OS keychain
func (km *KeyringManager) DeleteAPIKey() error {
	err := keyring.Delete(KeyringService, KeyringAPIKeyItem)
	if err == keyring.ErrNotFound {
		// Already deleted, not an error
		return nil
	}
	if err != nil {
		km.logger.Error("failed to delete API key from keychain", "error", err)
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}

	km.logger.Info("api key deleted from keychain")
	return nil
}

// IsAvailable checks if the OS keychain is available.
// Returns false on headless systems (CI) where no keychain backend runs.
func (km *KeyringManager) IsAvailable() bool {
	_, err := keyring.Get(KeyringService, "test-availability")

	// "not found" means the keychain answered, so it is available
	if err == keyring.ErrNotFound {
		return true
	}
	if err != nil {
		km.logger.Debug("keychain not available", "error", err)
		return false
	}

	return true
}

// KeySourceInfo returns information about where the API key is stored
type KeySourceInfo struct {
	Source      string // "env", "env_file", "keychain", "config", "none"
	Secure      bool   // true if stored securely (keychain or env var in CI)
	Recommended string // recommendation if not optimal
}

// GetAPIKeySource determines where the API key is coming from. The flag
// source is not reported here: an explicit --api-key argument never
// persists anywhere.
func (km *KeyringManager) GetAPIKeySource(cfg *Config) KeySourceInfo {
	if _, err := os.Stat(secretFile); err == nil {
		return KeySourceInfo{
			Source:      "env_file",
			Secure:      false,
			Recommended: "Using .env file (OK for CI, consider 'congress configure' for local use)",
		}
	}

	if os.Getenv(EnvAPIKey) != "" {
		return KeySourceInfo{
			Source:      "env",
			Secure:      true, // Acceptable for CI
			Recommended: "Using environment variable (good for CI)",
		}
	}

	if cfg != nil && cfg.API.Key != "" {
		return KeySourceInfo{
			Source:      "config",
			Secure:      false,
			Recommended: "Plaintext config storage detected. Run: congress configure",
		}
	}

	keychainKey, _ := km.GetAPIKey()
	if keychainKey != "" {
		return KeySourceInfo{
			Source:      "keychain",
			Secure:      true,
			Recommended: "Stored securely in OS keychain",
		}
	}

	return KeySourceInfo{
		Source:      "none",
		Secure:      false,
		Recommended: "No API key configured. Run: congress configure",
	}
}

// MaskAPIKey masks an API key for display.
// Shows the first 7 and last 4 characters: "abcdefg...wxyz"
func MaskAPIKey(apiKey string) string {
	if apiKey == "" {
		return "(not set)"
	}
	if len(apiKey) < 12 {
		return "***"
	}
	return fmt.Sprintf("%s...%s", apiKey[:7], apiKey[len(apiKey)-4:])
}
