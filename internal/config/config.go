package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	yaml "go.yaml.in/yaml/v3"
)

type Config struct {
	HTTP   HTTPConfig   `yaml:"http" toml:"http"`
	Log    LogConfig    `yaml:"log" toml:"log"`
	Notify NotifyConfig `yaml:"notify" toml:"notify"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr" toml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	RateLimit       float64       `yaml:"rate_limit" toml:"rate_limit"` // requests per second, 0 disables
	RateBurst       int           `yaml:"rate_burst" toml:"rate_burst"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type NotifyConfig struct {
	Workers        int           `yaml:"workers" toml:"workers"`
	QueueSize      int           `yaml:"queue_size" toml:"queue_size"`
	WebhookURL     string        `yaml:"webhook_url" toml:"webhook_url"`
	WebhookRate    float64       `yaml:"webhook_rate" toml:"webhook_rate"`
	WebhookTimeout time.Duration `yaml:"webhook_timeout" toml:"webhook_timeout"`
}

// Environment overrides, applied after the file.
const (
	EnvHTTPAddr   = "SCHEDULE_HTTP_ADDR"
	EnvLogLevel   = "SCHEDULE_LOG_LEVEL"
	EnvWebhookURL = "SCHEDULE_WEBHOOK_URL"
	EnvRateLimit  = "SCHEDULE_RATE_LIMIT"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

func New() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: time.Second * 10,
			RateLimit:       20,
			RateBurst:       40,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Notify: NotifyConfig{
			Workers:        2,
			QueueSize:      64,
			WebhookRate:    1,
			WebhookTimeout: time.Second * 5,
		},
	}
}

// Load starts from defaults, overlays the file at path (if path is non-empty)
// and then the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := New()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode rejects unknown keys for both formats.
func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("yaml: %w", err)
		}
		return nil
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("toml: unknown field %q", undecoded[0].String())
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvHTTPAddr)); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvWebhookURL)); v != "" {
		cfg.Notify.WebhookURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRateLimit)); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
		cfg.HTTP.RateLimit = rps
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("http.shutdown_timeout must be positive"))
	}
	if c.HTTP.RateLimit < 0 {
		errs = append(errs, errors.New("http.rate_limit must not be negative"))
	}
	if c.HTTP.RateLimit > 0 && c.HTTP.RateBurst < 1 {
		errs = append(errs, errors.New("http.rate_burst must be at least 1 when rate limiting"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be console or json", c.Log.Format))
	}
	if c.Notify.Workers < 0 {
		errs = append(errs, errors.New("notify.workers must not be negative"))
	}
	if c.Notify.QueueSize < 1 {
		errs = append(errs, errors.New("notify.queue_size must be at least 1"))
	}
	if c.Notify.WebhookURL != "" {
		if !strings.HasPrefix(c.Notify.WebhookURL, "http://") && !strings.HasPrefix(c.Notify.WebhookURL, "https://") {
			errs = append(errs, fmt.Errorf("notify.webhook_url %q must be http(s)", c.Notify.WebhookURL))
		}
		if c.Notify.WebhookRate <= 0 {
			errs = append(errs, errors.New("notify.webhook_rate must be positive"))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
