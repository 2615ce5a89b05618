package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// BaseCurrencyCode is the reporting currency all foreign exposure is
	// revalued into. It must match the currency flagged is_base in the DB.
	BaseCurrencyCode string

	// Revaluation booking accounts. All three must be set for the
	// revaluation run to book its gain/loss journal entry.
	RevaluationGainAccountID       string
	RevaluationLossAccountID       string
	RevaluationAdjustmentAccountID string

	// RateLimit uses the limiter formatted syntax, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "gl-backend")
	viper.SetDefault("BASE_CURRENCY_CODE", "USD")
	viper.SetDefault("GAIN_ACCOUNT_ID", "")
	viper.SetDefault("LOSS_ACCOUNT_ID", "")
	viper.SetDefault("REVAL_ADJUSTMENT_ACCOUNT_ID", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.BaseCurrencyCode = strings.ToUpper(viper.GetString("BASE_CURRENCY_CODE"))

	cfg.RevaluationGainAccountID = viper.GetString("GAIN_ACCOUNT_ID")
	cfg.RevaluationLossAccountID = viper.GetString("LOSS_ACCOUNT_ID")
	cfg.RevaluationAdjustmentAccountID = viper.GetString("REVAL_ADJUSTMENT_ACCOUNT_ID")
	if cfg.RevaluationGainAccountID == "" || cfg.RevaluationLossAccountID == "" || cfg.RevaluationAdjustmentAccountID == "" {
		log.Println("Warning: revaluation booking accounts not fully configured. Revaluation runs will compute results without booking entries.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	origins := viper.GetString("CORS_ALLOWED_ORIGINS")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}
