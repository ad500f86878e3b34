package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8088/api"`
	Env        string `env:"ENV,          default=development"`
	LogLevel   string `env:"LOG_LEVEL,    default=info"`

	Tokens TokenStoreConfig
	Stub   StubConfig
}

// TokenStoreConfig selects where the credential pair is persisted.
// Backend "file" keeps a single local session; "redis" allows per-scope
// sessions for headless or multi-tenant embedding.
type TokenStoreConfig struct {
	Backend   string `env:"TOKEN_STORE,      default=file"`
	File      string `env:"TOKEN_FILE"`
	RedisAddr string `env:"TOKEN_REDIS_ADDR, default=localhost:6379"`
	RedisDB   int    `env:"TOKEN_REDIS_DB,   default=0"`
	Scope     string `env:"TOKEN_SCOPE,      default=default"`
}

// StubConfig configures the development API stub.
type StubConfig struct {
	Port      string `env:"STUB_PORT,       default=8088"`
	JWTSecret string `env:"STUB_JWT_SECRET, default=dev-only-secret"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
