package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	LLM      LLMConfig
	LogLevel string `mapstructure:"log_level"`
}

// LLMConfig holds the completion endpoint configuration
type LLMConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Referer string `mapstructure:"referer"`
	Title   string `mapstructure:"title"`
}

const (
	// DefaultBaseURL targets OpenRouter's OpenAI-compatible API.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel is used when neither config file nor environment names one.
	DefaultModel = "cognitivecomputations/dolphin3.0-mistral-24b:free"
)

// ErrMissingAPIKey is returned when no credential is configured anywhere.
var ErrMissingAPIKey = errors.New("config: llm.api_key is required (set OPENROUTER_API_KEY)")

// Load loads the configuration from config.yaml (or the file named by
// CONFIG_PATH) and the environment. A missing config file is fine; the
// environment alone can carry everything. A missing credential is not.
func Load() (*Config, error) {
	v := viper.New()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("llm.base_url", DefaultBaseURL)
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("log_level", "info")

	// Environment names kept compatible with earlier versions of this tool.
	_ = v.BindEnv("llm.api_key", "OPENROUTER_API_KEY")
	_ = v.BindEnv("llm.base_url", "OPENROUTER_API_URL")
	_ = v.BindEnv("llm.model", "OPENROUTER_MODEL")
	_ = v.BindEnv("llm.referer", "HTTP_REFERER")
	_ = v.BindEnv("llm.title", "X_TITLE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.LLM.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &cfg, nil
}
