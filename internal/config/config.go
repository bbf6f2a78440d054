package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	MongoDB      MongoDBConfig
	JWT          JWTConfig
	DrawEngine   RemoteServiceConfig
	WinnerLedger RemoteServiceConfig
	Orchestrator OrchestratorConfig
	Admin        AdminConfig
	LogLevel     string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// RemoteServiceConfig holds the connection settings for one of the remote
// collaborator services (draw engine, winner ledger)
type RemoteServiceConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// Timeout returns the request timeout as a duration
func (c RemoteServiceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OrchestratorConfig holds the orchestrator tunables
type OrchestratorConfig struct {
	// SettleDelaySeconds is the bounded wait between triggering execution
	// and the single winner fetch
	SettleDelaySeconds int
}

// SettleDelay returns the settling delay as a duration
func (c OrchestratorConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelaySeconds) * time.Second
}

// AdminConfig holds the first-run admin seed credentials
type AdminConfig struct {
	SeedEmail    string
	SeedPassword string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, environment variables take over
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "bridgetunes-draw-console")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("DrawEngine.BaseURL", "http://localhost:5000/api/v1/draws")
	viper.SetDefault("DrawEngine.TimeoutSeconds", 10)
	viper.SetDefault("WinnerLedger.BaseURL", "http://localhost:5001/api/v1/draws")
	viper.SetDefault("WinnerLedger.TimeoutSeconds", 10)
	viper.SetDefault("Orchestrator.SettleDelaySeconds", 5)
	viper.SetDefault("LogLevel", "info")
}
