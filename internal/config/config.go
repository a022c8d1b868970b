package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"FixNet"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"fixnet"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
		JWTSecret   string        `envconfig:"JWT_SECRET"`
	}

	Telegram struct {
		Token  string `envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID int64  `envconfig:"TELEGRAM_CHAT_ID"`
	}

	Tracing struct {
		// Exporter is "none" or "stdout".
		Exporter string `envconfig:"OTEL_EXPORTER" default:"none"`
	}

	Notify struct {
		Workers   int           `envconfig:"NOTIFY_WORKERS" default:"2"`
		QueueSize int           `envconfig:"NOTIFY_QUEUE_SIZE" default:"100"`
		Rate      float64       `envconfig:"NOTIFY_RATE" default:"1"`
		Timeout   time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// TelegramEnabled reports whether enough is configured to deliver notifications.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
