package config

import (
	"fmt"
	"strings"
	"time"

	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/spf13/viper"
)

// ServerConfig holds all configuration for the server.
// Tags use mapstructure for Viper unmarshalling.
type ServerConfig struct {
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogPretty   bool   `mapstructure:"LOG_PRETTY"`

	// Token signing. The two secrets are independent so a refresh-secret
	// compromise cannot forge access tokens, and vice versa. Both are
	// required at startup.
	AccessTokenSecret    string `mapstructure:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret   string `mapstructure:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTLHours  int    `mapstructure:"ACCESS_TOKEN_TTL_HOURS"`
	RefreshTokenTTLHours int    `mapstructure:"REFRESH_TOKEN_TTL_HOURS"`

	// Outbound mail. When SMTPHost is empty the server logs codes instead
	// of sending them (development mode).
	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort string `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	MailFrom string `mapstructure:"MAIL_FROM"`

	UploadDir string `mapstructure:"UPLOAD_DIR"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (c *ServerConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLHours) * time.Hour
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func (c *ServerConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLHours) * time.Hour
}

// Validate fails fast on an unusable signing setup. A missing secret must
// never degrade into per-request token errors.
func (c *ServerConfig) Validate() error {
	if c.AccessTokenSecret == "" {
		return &serrors.ConfigurationError{Field: "ACCESS_TOKEN_SECRET"}
	}
	if c.RefreshTokenSecret == "" {
		return &serrors.ConfigurationError{Field: "REFRESH_TOKEN_SECRET"}
	}
	return nil
}

// LoadConfig reads configuration from file, environment variables, and defaults.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/rugalika/")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB_NAME", "rugalika")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("ACCESS_TOKEN_TTL_HOURS", 24)
	v.SetDefault("REFRESH_TOKEN_TTL_HOURS", 24*7)
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("MAIL_FROM", "noreply@rugalika.gov.rw")
	v.SetDefault("UPLOAD_DIR", "./uploads")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, env vars and defaults take over.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
