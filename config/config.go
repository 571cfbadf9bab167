// Package config reads server settings from the environment. A .env file is
// loaded first when present, so local development works without exporting
// anything by hand.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
	AppEnv    string
}

// Load builds the config from the environment. The JWT signing secret has no
// default: starting without one would leave every issued token forgeable, so
// Load fails instead.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "5000"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:    getEnv("DB_NAME", "todo_db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		AppEnv:    getEnv("APP_ENV", EnvDevelopment),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	return cfg, nil
}

// Production reports whether the server runs in production mode, which
// redacts internal error details and stops returning reset tokens in
// responses.
func (c *Config) Production() bool {
	return c.AppEnv == EnvProduction
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
