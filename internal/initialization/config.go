package initialization

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the service configuration
type Config struct {
	HTTPAddress  string
	AllowOrigins []string

	// Storage. An empty DatabaseURL keeps everything in memory.
	DatabaseURL string
	RedisURL    string

	LinkedInClientID     string
	LinkedInClientSecret string
	LinkedInRedirectURI  string
	LinkedInAPIBaseURL   string
	LinkedInDailyQuota   int

	SessionJWTSecret string
	ServiceAPIKey    string

	ResendAPIKey      string
	DigestFromAddress string
	AppURL            string

	StripeSecretKey string

	DigestSchedule string
	SyncSchedule   string
}

var envMappings = map[string]string{
	"HTTPAddress":          "HTTP_ADDRESS",
	"AllowOrigins":         "ALLOW_ORIGINS",
	"DatabaseURL":          "DATABASE_URL",
	"RedisURL":             "REDIS_URL",
	"LinkedInClientID":     "LINKEDIN_CLIENT_ID",
	"LinkedInClientSecret": "LINKEDIN_CLIENT_SECRET",
	"LinkedInRedirectURI":  "LINKEDIN_REDIRECT_URI",
	"LinkedInAPIBaseURL":   "LINKEDIN_API_BASE_URL",
	"LinkedInDailyQuota":   "LINKEDIN_DAILY_QUOTA",
	"SessionJWTSecret":     "SESSION_JWT_SECRET",
	"ServiceAPIKey":        "SERVICE_API_KEY",
	"ResendAPIKey":         "RESEND_API_KEY",
	"DigestFromAddress":    "DIGEST_FROM_ADDRESS",
	"AppURL":               "APP_URL",
	"StripeSecretKey":      "STRIPE_SECRET_KEY",
	"DigestSchedule":       "DIGEST_SCHEDULE",
	"SyncSchedule":         "SYNC_SCHEDULE",
}

// LoadConfig reads defaults, an optional networknudge.yaml and the environment.
// configFile overrides the search paths when set.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("networknudge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.networknudge")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	log.Debug().
		Str("http_address", config.HTTPAddress).
		Bool("postgres", config.DatabaseURL != "").
		Bool("redis", config.RedisURL != "").
		Msg("Config loaded")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTPAddress", ":8080")
	v.SetDefault("LinkedInAPIBaseURL", "https://api.linkedin.com/v2")
	v.SetDefault("DigestFromAddress", "Network Nudge <nudges@networknudge.app>")
	v.SetDefault("AppURL", "https://networknudge.app")
	v.SetDefault("DigestSchedule", "0 8 * * *")
	v.SetDefault("SyncSchedule", "0 */6 * * *")
}

func validateConfig(config *Config) error {
	var missingVars []string

	if config.LinkedInClientID == "" {
		missingVars = append(missingVars, "LINKEDIN_CLIENT_ID")
	}

	if config.LinkedInRedirectURI == "" {
		missingVars = append(missingVars, "LINKEDIN_REDIRECT_URI")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	if config.LinkedInClientSecret == "" {
		log.Warn().Msg("LINKEDIN_CLIENT_SECRET is not set, code exchange and refresh will fail")
	}

	if config.LinkedInDailyQuota < 0 {
		return fmt.Errorf("LINKEDIN_DAILY_QUOTA must not be negative")
	}

	return nil
}

// ValidateServe checks the settings only the HTTP server needs.
func (c *Config) ValidateServe() error {
	var missingVars []string

	if c.SessionJWTSecret == "" {
		missingVars = append(missingVars, "SESSION_JWT_SECRET")
	}

	if c.ServiceAPIKey == "" {
		missingVars = append(missingVars, "SERVICE_API_KEY")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return nil
}
