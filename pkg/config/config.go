package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Public   PublicConfig   `mapstructure:"public"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// PublicConfig holds the externally visible base URL used to build survey
// share links.
type PublicConfig struct {
	URL string `mapstructure:"url"`
}

// DSN builds the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Best effort; env vars still win when no .env exists
	_ = godotenv.Load(".env")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	viper.SetDefault("database.host", getEnv("PG_HOST", "localhost"))
	viper.SetDefault("database.port", getEnvInt("PG_PORT", 5432))
	viper.SetDefault("database.user", getEnv("PG_USER", "postgres"))
	viper.SetDefault("database.password", getEnv("PG_PASSWORD", ""))
	viper.SetDefault("database.name", getEnv("PG_DATABASE", "formbricks_dev"))
	viper.SetDefault("database.ssl_mode", getEnv("PG_SSL_MODE", "disable"))
	viper.SetDefault("server.port", getEnvInt("SERVER_PORT", 8080))
	viper.SetDefault("server.host", getEnv("SERVER_HOST", "localhost"))
	viper.SetDefault("public.url", getEnv("PUBLIC_URL", "http://localhost:8080"))

	// Enable environment variable support
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we'll use defaults and env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
