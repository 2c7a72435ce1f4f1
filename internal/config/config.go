package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Valores posibles de ENVIRONMENT.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port        string `conf:"default:8080,env:PORT"`
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// Lista separada por comas; "*" habilita todos los orígenes.
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	// Vacías = claves aleatorias por proceso (las cookies no sobreviven un reinicio).
	SessionAuthKey       string `conf:"env:SESSION_AUTH_KEY,noprint"`
	SessionEncryptionKey string `conf:"env:SESSION_ENCRYPTION_KEY,noprint"`

	MaxSessions int  `conf:"default:10000,env:MAX_SESSIONS"`
	SeedItems   bool `conf:"default:true,env:SEED_ITEMS"`
}

// IsProduction indica si corremos con ENVIRONMENT=production.
func (cfg Config) IsProduction() bool {
	return cfg.Environment == EnvProduction
}

// Load lee variables de entorno (y un .env opcional) y valida lo mínimo indispensable.
func Load() (Config, error) {
	var cfg Config
	_ = godotenv.Load()

	if _, err := conf.Parse("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	// Normalizamos por si alguien manda ":8080"
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")
	if cfg.Port == "" {
		return Config{}, errors.New("invalid env var: PORT must not be empty")
	}

	if cfg.MaxSessions < 1 {
		return Config{}, fmt.Errorf("invalid env var: MAX_SESSIONS must be positive (got %d)", cfg.MaxSessions)
	}

	return cfg, nil
}

// String devuelve la config imprimible, sin los campos noprint.
func (cfg Config) String() string {
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return out
}

// ValidateForProduction exige claves de sesión reales cuando ENVIRONMENT=production.
// En otros entornos no hace nada.
func ValidateForProduction(cfg Config) error {
	if !cfg.IsProduction() {
		return nil
	}

	var errs []string

	if len(cfg.SessionAuthKey) < 32 {
		errs = append(errs, fmt.Sprintf(
			"SESSION_AUTH_KEY must be at least 32 bytes (got %d); generate with: openssl rand -base64 32",
			len(cfg.SessionAuthKey),
		))
	}

	switch len(cfg.SessionEncryptionKey) {
	case 16, 24, 32:
	default:
		errs = append(errs, fmt.Sprintf(
			"SESSION_ENCRYPTION_KEY must be 16, 24 or 32 bytes (got %d)",
			len(cfg.SessionEncryptionKey),
		))
	}

	if strings.EqualFold(cfg.LogLevel, "debug") {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production")
	}

	if strings.TrimSpace(cfg.CORSAllowedOrigins) == "*" {
		errs = append(errs, "CORS_ALLOWED_ORIGINS must list explicit origins in production")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
