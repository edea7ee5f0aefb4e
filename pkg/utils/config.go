package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Recommend RecommendConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type RecommendConfig struct {
	APIURL                 string
	APIKey                 string
	TimeoutSeconds         int
	BreakerFailures        uint32
	BreakerCooldownSeconds int
}

type SessionConfig struct {
	TTLMinutes int
}

type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "movie-match")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("RECOMMEND_TIMEOUT_SECONDS", 10)
	viper.SetDefault("RECOMMEND_BREAKER_FAILURES", 5)
	viper.SetDefault("RECOMMEND_BREAKER_COOLDOWN_SECONDS", 30)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// A missing .env is fine, settings then come from the environment and
	// the defaults. Incomplete settings surface as a toast, not a crash.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Recommend: RecommendConfig{
			APIURL:                 viper.GetString("RECOMMEND_API_URL"),
			APIKey:                 viper.GetString("RECOMMEND_API_KEY"),
			TimeoutSeconds:         viper.GetInt("RECOMMEND_TIMEOUT_SECONDS"),
			BreakerFailures:        viper.GetUint32("RECOMMEND_BREAKER_FAILURES"),
			BreakerCooldownSeconds: viper.GetInt("RECOMMEND_BREAKER_COOLDOWN_SECONDS"),
		},
		Session: SessionConfig{
			TTLMinutes: viper.GetInt("SESSION_TTL_MINUTES"),
		},
		RateLimit: RateLimitConfig{
			Requests:      viper.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

// MissingKeys lists the required settings that are not set. The session
// layer turns a non-empty result into a warning toast.
func (c *Config) MissingKeys() []string {
	var missing []string
	if c.Recommend.APIURL == "" {
		missing = append(missing, "RECOMMEND_API_URL")
	}
	if c.Recommend.APIKey == "" {
		missing = append(missing, "RECOMMEND_API_KEY")
	}
	return missing
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
