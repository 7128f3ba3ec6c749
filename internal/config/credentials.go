package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/leveneer/congress-member-data/internal/errors"
)

// EnvAPIKey is the environment variable holding the Congress.gov API key.
const EnvAPIKey = "CONGRESS_API_KEY"

// secretFile is the local secret file checked for the API key.
const secretFile = ".env"

// ResolveAPIKey returns the Congress.gov API key from the first source
// that has one:
//
//  1. the explicit --api-key argument
//  2. the local .env secret file
//  3. the CONGRESS_API_KEY environment variable
//  4. the loaded config file
//  5. the OS keychain
//
// The .env file is read directly rather than through the process
// environment so that it wins over an inherited environment variable.
// Absence of all sources is a fatal configuration error.
func ResolveAPIKey(flagValue string, cfg *Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if values, err := godotenv.Read(secretFile); err == nil {
		if key := values[EnvAPIKey]; key != "" {
			return key, nil
		}
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		return key, nil
	}

	if cfg != nil && cfg.API.Key != "" {
		return cfg.API.Key, nil
	}

	km := NewKeyringManager()
	if km.IsAvailable() {
		if key, err := km.GetAPIKey(); err == nil && key != "" {
			return key, nil
		}
	}

	return "", errors.ConfigError("API key must be provided via --api-key argument, .env file, " +
		"or CONGRESS_API_KEY environment variable")
}
