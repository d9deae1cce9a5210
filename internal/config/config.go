package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/forge/internal/provider/claude"
	"github.com/davidbz/forge/internal/provider/gemini"
	"github.com/davidbz/forge/internal/provider/groq"
	"github.com/davidbz/forge/internal/provider/openai"
	"github.com/davidbz/forge/internal/provider/openrouter"
	"github.com/davidbz/forge/internal/provider/perplexity"
)

// Config represents the full application configuration.
type Config struct {
	Server     ServerConfig
	CORS       CORSConfig
	Core       CoreConfig
	Cache      CacheConfig
	Chains     ChainsConfig
	Gemini     gemini.Config
	Claude     claude.Config
	OpenAI     openai.Config
	Groq       groq.Config
	Perplexity perplexity.Config
	OpenRouter openrouter.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"600"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// CoreConfig contains generation behavior settings.
type CoreConfig struct {
	MaxRetries  int    `env:"MAX_RETRIES"   envDefault:"5"`
	APIDelayMS  int    `env:"API_DELAY_MS"  envDefault:"3000"`
	ProjectsDir string `env:"PROJECTS_DIR"  envDefault:"projects"`
	EchoEnabled bool   `env:"ECHO_PROVIDER" envDefault:"false"`
}

// CacheConfig contains prompt cache settings.
type CacheConfig struct {
	Backend       string `env:"CACHE_BACKEND"     envDefault:"memory"`
	TTLSeconds    int    `env:"CACHE_TTL"         envDefault:"3600"`
	MaxEntries    int    `env:"CACHE_MAX_ENTRIES" envDefault:"1024"`
	RedisAddr     string `env:"REDIS_ADDR"        envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"          envDefault:"0"`
}

// ChainsConfig declares provider priority per operation kind.
type ChainsConfig struct {
	Plan     []string `env:"PLAN_PROVIDERS"    envSeparator:"," envDefault:"openrouter,perplexity"`
	Generate []string `env:"FILE_PROVIDERS"    envSeparator:"," envDefault:"openai,claude,perplexity"`
	Refine   []string `env:"REFINE_PROVIDERS"  envSeparator:"," envDefault:"claude,groq,openrouter,perplexity"`
	Fallback string   `env:"FALLBACK_PROVIDER"                  envDefault:"gemini"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*CoreConfig
	*CacheConfig
	*ChainsConfig
	Gemini     *gemini.Config
	Claude     *claude.Config
	OpenAI     *openai.Config
	Groq       *groq.Config
	Perplexity *perplexity.Config
	OpenRouter *openrouter.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Core,
		&cfg.Cache,
		&cfg.Chains,
		&cfg.Gemini,
		&cfg.Claude,
		&cfg.OpenAI,
		&cfg.Groq,
		&cfg.Perplexity,
		&cfg.OpenRouter,
	}
}
