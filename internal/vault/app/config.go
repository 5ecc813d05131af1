package app

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/passman/internal/vault/domain"
	"github.com/aussiebroadwan/passman/pkg/cryptox"
)

type Config struct {
	DatabaseFile  string `env:"PASSMAN_DATABASE_FILE" envDefault:"passman.db"` // ":memory:" for a throwaway vault
	PepperFile    string `env:"PASSMAN_PEPPER_FILE"`                           // Optional: empty disables the pepper
	HashAlgorithm string `env:"PASSMAN_HASH_ALGORITHM" envDefault:"argon2id"`  // argon2id or bcrypt
	BcryptCost    int    `env:"PASSMAN_BCRYPT_COST" envDefault:"12"`
	VaultScope    string `env:"PASSMAN_VAULT_SCOPE" envDefault:"owner"` // owner or shared
	LoginAttempts int    `env:"PASSMAN_LOGIN_ATTEMPTS" envDefault:"0"`  // per minute, 0 = unlimited

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"PASSMAN_LOG_FILE"` // Optional: empty logs to stderr
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DatabaseFile == "" {
		return fmt.Errorf("database file must not be empty")
	}
	switch cryptox.Algorithm(c.HashAlgorithm) {
	case cryptox.AlgorithmArgon2id, cryptox.AlgorithmBcrypt:
	default:
		return fmt.Errorf("unknown hash algorithm %q", c.HashAlgorithm)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if _, err := domain.ParseScope(c.VaultScope); err != nil {
		return err
	}
	if c.LoginAttempts < 0 {
		return fmt.Errorf("login attempts must not be negative")
	}
	return nil
}
