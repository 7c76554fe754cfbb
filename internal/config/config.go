package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting, parsed once at startup and passed
// into the components that need it.
type Config struct {
	Env  string `env:"ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"8080"`

	Redis  Redis
	OpenAI OpenAI
	Books  Books
}

// Redis configures the cache store connection. An empty Addr disables
// caching and feedback logging entirely.
type Redis struct {
	Addr         string        `env:"REDIS_ADDR"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// OpenAI configures the summarizer and image generation clients. An empty
// APIKey disables both endpoints.
type OpenAI struct {
	APIKey     string `env:"OPENAI_API_KEY"`
	ChatModel  string `env:"OPENAI_CHAT_MODEL" envDefault:"gpt-4o-mini"`
	ImageModel string `env:"OPENAI_IMAGE_MODEL" envDefault:"gpt-image-1"`
}

// Books configures the upstream book search client.
type Books struct {
	BaseURL string        `env:"BOOKS_API_URL" envDefault:"https://www.googleapis.com/books/v1"`
	Timeout time.Duration `env:"BOOKS_TIMEOUT" envDefault:"5s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
