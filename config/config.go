package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingToken is returned by Validate when no bot credential is configured.
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

// Config содержит конфигурацию бота
type Config struct {
	TelegramToken string
	// TelegramAPI is either a Bot API endpoint format ("https://host/bot%s/%s")
	// or the base URL of a local Bot API server. Empty means api.telegram.org.
	TelegramAPI string
	HTTPTimeout time.Duration
	DownloadDir string
	YtDlpPath   string

	Workers       int
	MaxFileSize   int64
	EngineTimeout time.Duration

	SweepInterval time.Duration
	SweepMaxAge   time.Duration

	MetadataSource     string
	RateLimitPerMinute int

	LogLevel  string
	LogFormat string
	Debug     bool

	Proxy *ProxyConfig
}

const (
	MetadataSourceEngine = "engine"
	MetadataSourceNative = "native"

	defaultBotAPIEndpoint = "https://api.telegram.org/bot%s/%s"

	// DefaultMaxFileSize is the Bot API upload ceiling.
	DefaultMaxFileSize int64 = 2 * 1024 * 1024 * 1024
)

// Load reads configuration from an optional dotenv-style file and the process
// environment. Environment variables win over file values.
func Load(filename string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			v.SetConfigFile(filename)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", filename, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TELEGRAM_API_ENDPOINT", "")
	v.SetDefault("HTTP_TIMEOUT", "0s") // 0 disables the client timeout
	v.SetDefault("DOWNLOAD_DIR", "./downloads")
	v.SetDefault("YTDLP_PATH", "")
	v.SetDefault("WORKERS", 3)
	v.SetDefault("MAX_FILE_SIZE", DefaultMaxFileSize)
	v.SetDefault("ENGINE_TIMEOUT", "0s")
	v.SetDefault("SWEEP_INTERVAL", "30m")
	v.SetDefault("SWEEP_MAX_AGE", "1h")
	v.SetDefault("METADATA_SOURCE", MetadataSourceEngine)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DEBUG", false)
	setProxyDefaults(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	token := strings.TrimSpace(v.GetString("TELEGRAM_BOT_TOKEN"))
	if token == "" {
		// legacy name used by older deployments
		token = strings.TrimSpace(v.GetString("BOT_TOKEN"))
	}

	cfg := &Config{
		TelegramToken:      token,
		TelegramAPI:        strings.TrimSpace(v.GetString("TELEGRAM_API_ENDPOINT")),
		HTTPTimeout:        v.GetDuration("HTTP_TIMEOUT"),
		DownloadDir:        v.GetString("DOWNLOAD_DIR"),
		YtDlpPath:          v.GetString("YTDLP_PATH"),
		Workers:            v.GetInt("WORKERS"),
		MaxFileSize:        v.GetInt64("MAX_FILE_SIZE"),
		EngineTimeout:      v.GetDuration("ENGINE_TIMEOUT"),
		SweepInterval:      v.GetDuration("SWEEP_INTERVAL"),
		SweepMaxAge:        v.GetDuration("SWEEP_MAX_AGE"),
		MetadataSource:     strings.ToLower(v.GetString("METADATA_SOURCE")),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          strings.ToLower(v.GetString("LOG_FORMAT")),
		Debug:              v.GetBool("DEBUG"),
		Proxy:              loadProxyConfig(v),
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("WORKERS must be at least 1, got %d", cfg.Workers)
	}
	if cfg.MaxFileSize <= 0 {
		return nil, fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", cfg.MaxFileSize)
	}
	switch cfg.MetadataSource {
	case MetadataSourceEngine, MetadataSourceNative:
	default:
		return nil, fmt.Errorf("unknown METADATA_SOURCE %q", cfg.MetadataSource)
	}

	return cfg, nil
}

// Validate reports configuration that must stop the process at startup.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return ErrMissingToken
	}
	return nil
}

// BotAPIEndpoint returns the endpoint format the Bot API client expects.
func (c *Config) BotAPIEndpoint() string {
	switch {
	case c.TelegramAPI == "":
		return defaultBotAPIEndpoint
	case strings.Contains(c.TelegramAPI, "%s"):
		return c.TelegramAPI
	default:
		return strings.TrimRight(c.TelegramAPI, "/") + "/bot%s/%s"
	}
}
