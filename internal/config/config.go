package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"appointment-scheduler/internal/app"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Working-hours window, 0 <= start < end <= 23.
	WorkStartHour int `mapstructure:"WORK_START_HOUR"`
	WorkEndHour   int `mapstructure:"WORK_END_HOUR"`

	// Comma separated bearer tokens.
	StaticTokens      string `mapstructure:"STATIC_TOKENS"`
	JWTSecret         string `mapstructure:"JWT_HMAC_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

func SetDefaults(v *viper.Viper) {
	hours := app.DefaultWorkingHours()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("WORK_START_HOUR", hours.StartHour)
	v.SetDefault("WORK_END_HOUR", hours.EndHour)
	v.SetDefault("STATIC_TOKENS", "")
	v.SetDefault("JWT_HMAC_SECRET", "")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
}

// Load reads configFile if given, otherwise an optional config.yaml in the
// current or ./config directory, then overlays environment variables and any
// flags already bound to v.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.WorkingHours().Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) WorkingHours() app.WorkingHours {
	return app.WorkingHours{StartHour: c.WorkStartHour, EndHour: c.WorkEndHour}
}

func (c Config) Auth() app.AuthConfig {
	var tokens []string
	for _, t := range strings.Split(c.StaticTokens, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return app.AuthConfig{StaticTokens: tokens, JWTSecret: c.JWTSecret}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
