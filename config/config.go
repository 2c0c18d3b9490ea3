package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a .env file and config.yaml.
// Environment variables override settings from the config file. Per-guild
// settings are not process configuration; they live in the database.
func LoadConfig() {
	// Load environment variables from .env, ignored if the file is missing.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, skipping.")
	}

	viper.SetConfigName("config")                          // config file name (no extension)
	viper.SetConfigType("yaml")                            // config file type
	viper.AddConfigPath(".")                               // look in the working directory
	viper.AutomaticEnv()                                   // read matching environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map config keys to env var names

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Config file not found, using environment variables and defaults.")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}

	viper.SetDefault("bot.dbPath", "data/freudbot.db")
}
