package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Operator account
	AdminUsername string
	AdminPassword string // only used to bootstrap the credential file

	// Sessions
	SessionTTLMinutes int // Minutes before an idle session expires (default: 60)

	// Catalog
	ListLimit int // Max records returned by the list endpoint (default: 50)

	// Server
	ServerPort string

	// Paths
	CredentialFile string // $CONFIG_DIR/credentials.json
	DatabaseFile   string // $CONFIG_DIR/catarr.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("LIST_LIMIT", 50)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "catarr")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		// Operator account
		AdminUsername: viper.GetString("ADMIN_USERNAME"),
		AdminPassword: viper.GetString("ADMIN_PASSWORD"),

		// Sessions
		SessionTTLMinutes: viper.GetInt("SESSION_TTL_MINUTES"),

		// Catalog
		ListLimit: viper.GetInt("LIST_LIMIT"),

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		CredentialFile: filepath.Join(configDir, "credentials.json"),
		DatabaseFile:   filepath.Join(configDir, "catarr.db"),

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.AdminUsername == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME is required")
	}

	return config, nil
}
