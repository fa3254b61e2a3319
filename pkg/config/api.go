package config

import "time"

// APIConfig holds runtime configuration for the API service.
type APIConfig struct {
	Environment             string
	Addr                    string
	DatabaseURL             string
	MigrationsDir           string
	JWTSecret               string
	TokenTTL                time.Duration
	EnforceProjectOwnership bool
}

// LoadAPIConfig constructs an APIConfig from environment variables.
func LoadAPIConfig() APIConfig {
	return APIConfig{
		Environment:             GetString("APP_ENV", "development"),
		Addr:                    GetString("API_ADDR", ":4000"),
		DatabaseURL:             GetString("DATABASE_URL", "postgres://uptask:uptask@db:5432/uptask?sslmode=disable"),
		MigrationsDir:           GetString("DB_MIGRATIONS_DIR", "db/migrations"),
		JWTSecret:               GetString("JWT_SECRET", "palabrasmusculosas"),
		TokenTTL:                time.Duration(GetInt("TOKEN_TTL_HOURS", 8)) * time.Hour,
		EnforceProjectOwnership: GetBool("ENFORCE_PROJECT_OWNERSHIP", false),
	}
}
