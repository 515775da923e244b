package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Import
		Maintenance
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	Auth struct {
		JWTSecret          string
		AccessTokenExpiry  time.Duration
		RefreshTokenExpiry time.Duration
		BcryptCost         int
	}

	Import struct {
		MaxUploadBytes int64
	}

	Maintenance struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8288)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_jwt_secret", "")
	v.SetDefault("auth_access_token_expiry", "15m")
	v.SetDefault("auth_refresh_token_expiry", "720h") // 30 days
	v.SetDefault("auth_bcrypt_cost", 12)

	// Import defaults
	v.SetDefault("import_max_upload_bytes", DefaultMaxUploadBytes)

	// Maintenance defaults
	v.SetDefault("maintenance_enabled", true)
	v.SetDefault("maintenance_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:          v.GetString("AUTH_JWT_SECRET"),
			AccessTokenExpiry:  v.GetDuration("AUTH_ACCESS_TOKEN_EXPIRY"),
			RefreshTokenExpiry: v.GetDuration("AUTH_REFRESH_TOKEN_EXPIRY"),
			BcryptCost:         v.GetInt("AUTH_BCRYPT_COST"),
		},
		Import: Import{
			MaxUploadBytes: v.GetInt64("IMPORT_MAX_UPLOAD_BYTES"),
		},
		Maintenance: Maintenance{
			Enabled:  v.GetBool("MAINTENANCE_ENABLED"),
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
		},
	}
}
