package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// AppURL is the externally visible base URL, used to build the
	// registration links embedded in invitation emails.
	AppURL string `mapstructure:"APP_URL"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`

	// Session configuration
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Mailgun configuration for outbound invitation email
	MailgunAPIKey    string `mapstructure:"MAILGUN_API_KEY"`
	MailgunDomain    string `mapstructure:"MAILGUN_DOMAIN"`
	MailgunFromEmail string `mapstructure:"MAILGUN_FROM_EMAIL"`

	// Bootstrap super admin credentials
	SuperAdminEmail    string `mapstructure:"SUPER_ADMIN_EMAIL"`
	SuperAdminPassword string `mapstructure:"SUPER_ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_URL", "http://localhost:8080")

	// Database defaults
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "crm")
	viper.SetDefault("DB_SSL_MODE", "disable")

	// Session defaults
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("SESSION_TTL_HOURS", 24)

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"})

	// Mailgun defaults
	viper.SetDefault("MAILGUN_API_KEY", "")
	viper.SetDefault("MAILGUN_DOMAIN", "")
	viper.SetDefault("MAILGUN_FROM_EMAIL", "no-reply@example.com")

	// Seed defaults
	viper.SetDefault("SUPER_ADMIN_EMAIL", "")
	viper.SetDefault("SUPER_ADMIN_PASSWORD", "")
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if config.MailgunAPIKey == "" || config.MailgunDomain == "" {
			return fmt.Errorf("MAILGUN_API_KEY and MAILGUN_DOMAIN must be set in production")
		}
	}

	if config.DatabaseName == "" {
		return fmt.Errorf("database name is required")
	}

	if config.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
