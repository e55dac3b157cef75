package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Flight marketplace (Duffel) configuration.
	DuffelAPIKey         string  `mapstructure:"DUFFEL_API_KEY"`
	DuffelBaseURL        string  `mapstructure:"DUFFEL_BASE_URL"`
	DuffelRequestsPerSec float64 `mapstructure:"DUFFEL_REQUESTS_PER_SEC"`

	// Language model configuration.
	GeminiAPIKey          string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel           string `mapstructure:"GEMINI_MODEL"`
	GeminiMaxOutputTokens int    `mapstructure:"GEMINI_MAX_OUTPUT_TOKENS"`

	// Fixed test traveler used for every booking.
	TravelerPhoneNumber string `mapstructure:"TRAVELER_PHONE_NUMBER"`
	TravelerEmail       string `mapstructure:"TRAVELER_EMAIL"`
	TravelerTitle       string `mapstructure:"TRAVELER_TITLE"`
	TravelerGender      string `mapstructure:"TRAVELER_GENDER"`
	TravelerFamilyName  string `mapstructure:"TRAVELER_FAMILY_NAME"`
	TravelerGivenName   string `mapstructure:"TRAVELER_GIVEN_NAME"`
	TravelerBornOn      string `mapstructure:"TRAVELER_BORN_ON"`
	TravelerType        string `mapstructure:"TRAVELER_TYPE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DUFFEL_API_KEY", "")
	viper.SetDefault("DUFFEL_BASE_URL", "https://api.duffel.com")
	viper.SetDefault("DUFFEL_REQUESTS_PER_SEC", 5)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("GEMINI_MAX_OUTPUT_TOKENS", 4096)
	viper.SetDefault("TRAVELER_PHONE_NUMBER", "+442080160508")
	viper.SetDefault("TRAVELER_EMAIL", "tony@example.com")
	viper.SetDefault("TRAVELER_TITLE", "mr")
	viper.SetDefault("TRAVELER_GENDER", "m")
	viper.SetDefault("TRAVELER_FAMILY_NAME", "Stark")
	viper.SetDefault("TRAVELER_GIVEN_NAME", "Tony")
	viper.SetDefault("TRAVELER_BORN_ON", "1987-07-24")
	viper.SetDefault("TRAVELER_TYPE", "adult")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
