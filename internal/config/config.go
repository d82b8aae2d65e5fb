package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Weather WeatherConfig
	Model   ModelConfig
	Sampler SamplerConfig
	Worker  WorkerConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WeatherConfig struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type ModelConfig struct {
	Path string
}

type SamplerConfig struct {
	Enabled  bool
	Interval time.Duration
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Weather: WeatherConfig{
			BaseURL:  getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5"),
			APIKey:   getEnv("OPENWEATHER_API_KEY", ""),
			Timeout:  getEnvDuration("OPENWEATHER_TIMEOUT", 10*time.Second),
			CacheTTL: getEnvDuration("OBSERVATION_CACHE_TTL", 10*time.Minute),
		},
		Model: ModelConfig{
			Path: getEnv("FLOOD_MODEL_PATH", "./models/flood_model.json"),
		},
		Sampler: SamplerConfig{
			Enabled:  getEnvBool("SAMPLER_ENABLED", true),
			Interval: getEnvDuration("SAMPLER_INTERVAL", 3*time.Hour),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 60),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/flood-alerts.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Weather.Timeout < time.Second {
		return fmt.Errorf("weather timeout must be at least 1 second")
	}
	if c.Sampler.Enabled && c.Sampler.Interval < 10*time.Minute {
		return fmt.Errorf("sampler interval must be at least 10 minutes")
	}
	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
