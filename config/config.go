package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/octabyte/becas-client/enums"
)

// PathPrefix is prepended to every API route.
const PathPrefix = "/v1"

type Config struct {
	APIBaseURL string        `env:"BECAS_API_URL" envDefault:"http://localhost:3000/api" validate:"required,url"`
	APITimeout time.Duration `env:"BECAS_API_TIMEOUT" envDefault:"0s" validate:"gte=0"`

	Storage StorageConfig `envPrefix:"BECAS_STORAGE_"`
	Redis   RedisConfig   `envPrefix:"BECAS_REDIS_"`
	Log     LogConfig
	Otel    OtelConfig `envPrefix:"OTEL_"`
}

type StorageConfig struct {
	Driver string `env:"DRIVER" envDefault:"file" validate:"oneof=memory file redis"`
	Dir    string `env:"DIR" envDefault:".becas" validate:"required_if=Driver file"`
	Prefix string `env:"PREFIX"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0" validate:"gte=0"`
}

type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"becas-client"`
}

type OtelConfig struct {
	Enabled    bool              `env:"ENABLED" envDefault:"false"`
	Endpoint   string            `env:"ENDPOINT" validate:"required_if=Enabled true"`
	Headers    map[string]string `env:"HEADERS"`
	SampleRate float64           `env:"SAMPLE_RATE" envDefault:"1.0" validate:"gte=0,lte=1"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Storage.Driver == enums.StorageDriverRedis && cfg.Redis.Addr == "" {
		return fmt.Errorf("invalid configuration: redis storage requires BECAS_REDIS_ADDR")
	}
	return nil
}

// APIURL is the base URL every request is resolved against.
func (cfg *Config) APIURL() string {
	return strings.TrimRight(cfg.APIBaseURL, "/") + PathPrefix
}
