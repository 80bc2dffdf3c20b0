package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Engine   EngineConfig
	LogLevel string
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

// EngineConfig holds the round lifecycle and settlement parameters.
// The basis-point shares apply to the four fixed stakeholders; the prize
// pool takes whatever remains of the deposits after those shares.
type EngineConfig struct {
	TicketFee       int64
	SaleDuration    int64 // seconds from round start until the sale may close
	RefundAvailTime int64 // seconds from round start until refunds open on a stalled round
	ClaimDuration   int64 // seconds from settlement until the round may end

	CommitterAddress string // signer the seed commitment must recover to
	VaultAddress     string // spender identity inside deposit permits

	DonateBps    int64
	CorporateBps int64
	OperationBps int64
	StakeBps     int64

	DonateAddress    string
	CorporateAddress string
	OperationAddress string
	StakeAddress     string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
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
	viper.SetDefault("MongoDB.Database", "playparts-lotto")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")

	viper.SetDefault("Engine.TicketFee", 1)
	viper.SetDefault("Engine.SaleDuration", 24*60*60)
	viper.SetDefault("Engine.RefundAvailTime", 7*24*60*60)
	viper.SetDefault("Engine.ClaimDuration", 14*24*60*60)
	viper.SetDefault("Engine.DonateBps", 500)
	viper.SetDefault("Engine.CorporateBps", 1000)
	viper.SetDefault("Engine.OperationBps", 1000)
	viper.SetDefault("Engine.StakeBps", 1500)
}
