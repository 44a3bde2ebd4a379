// README: Config loader; .env via godotenv, env bindings and defaults via viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
	DefaultGeminiModel    = "gemini-2.0-flash"
)

// TariffConfig is the upstream price list in USD per million tokens.
type TariffConfig struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

type Config struct {
	HTTP struct {
		Addr    string
		GinMode string
	}
	AI struct {
		Provider         string
		Model            string
		AnthropicKey     string
		AnthropicBaseURL string
		GeminiKey        string
		Timeout          time.Duration
	}
	Tariff TariffConfig
	Log    struct {
		Level  string
		Format string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
}

// envKeys maps viper keys to the environment variables that feed them.
var envKeys = map[string]string{
	"port":               "PORT",
	"gin_mode":           "TRAVEL_GIN_MODE",
	"provider":           "TRAVEL_PROVIDER",
	"model":              "TRAVEL_MODEL",
	"anthropic_api_key":  "ANTHROPIC_API_KEY",
	"anthropic_base_url": "ANTHROPIC_BASE_URL",
	"gemini_api_key":     "GEMINI_API_KEY",
	"upstream_timeout":   "TRAVEL_UPSTREAM_TIMEOUT",
	"tariff_input":       "TRAVEL_TARIFF_INPUT_PER_MTOK",
	"tariff_output":      "TRAVEL_TARIFF_OUTPUT_PER_MTOK",
	"log_level":          "TRAVEL_LOG_LEVEL",
	"log_format":         "TRAVEL_LOG_FORMAT",
	"db_dsn":             "TRAVEL_DB_DSN",
	"redis_addr":         "TRAVEL_REDIS_ADDR",
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", "5000")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("provider", ProviderAnthropic)
	v.SetDefault("anthropic_base_url", "https://api.anthropic.com")
	v.SetDefault("upstream_timeout", "0s")
	v.SetDefault("tariff_input", 3.0)
	v.SetDefault("tariff_output", 15.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	for key, env := range envKeys {
		_ = v.BindEnv(key, env)
	}
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = ":" + strings.TrimPrefix(v.GetString("port"), ":")
	cfg.HTTP.GinMode = v.GetString("gin_mode")

	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(v.GetString("provider")))
	cfg.AI.AnthropicKey = v.GetString("anthropic_api_key")
	cfg.AI.AnthropicBaseURL = strings.TrimRight(v.GetString("anthropic_base_url"), "/")
	cfg.AI.GeminiKey = v.GetString("gemini_api_key")
	cfg.AI.Model = v.GetString("model")

	switch cfg.AI.Provider {
	case ProviderAnthropic:
		if cfg.AI.Model == "" {
			cfg.AI.Model = DefaultAnthropicModel
		}
	case ProviderGemini:
		if cfg.AI.Model == "" {
			cfg.AI.Model = DefaultGeminiModel
		}
	default:
		return Config{}, fmt.Errorf("config: unknown provider %q", cfg.AI.Provider)
	}

	timeout, err := time.ParseDuration(v.GetString("upstream_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("config: parse TRAVEL_UPSTREAM_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return Config{}, fmt.Errorf("config: negative upstream timeout %s", timeout)
	}
	cfg.AI.Timeout = timeout

	cfg.Tariff.InputPerMTok = v.GetFloat64("tariff_input")
	cfg.Tariff.OutputPerMTok = v.GetFloat64("tariff_output")
	if cfg.Tariff.InputPerMTok < 0 || cfg.Tariff.OutputPerMTok < 0 {
		return Config{}, fmt.Errorf("config: tariff must not be negative")
	}

	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")
	cfg.DB.DSN = v.GetString("db_dsn")
	cfg.Redis.Addr = v.GetString("redis_addr")
	return cfg, nil
}

// APIKey returns the credential for the configured provider.
func (c Config) APIKey() string {
	if c.AI.Provider == ProviderGemini {
		return c.AI.GeminiKey
	}
	return c.AI.AnthropicKey
}

// CredentialEnv names the environment variable holding the provider credential.
func (c Config) CredentialEnv() string {
	if c.AI.Provider == ProviderGemini {
		return envKeys["gemini_api_key"]
	}
	return envKeys["anthropic_api_key"]
}
