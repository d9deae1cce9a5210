package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/davidbz/forge/internal/cache"
	rediscache "github.com/davidbz/forge/internal/cache/redis"
	"github.com/davidbz/forge/internal/config"
	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/generator"
	forgehttp "github.com/davidbz/forge/internal/http"
	"github.com/davidbz/forge/internal/http/middleware"
	"github.com/davidbz/forge/internal/observability"
	"github.com/davidbz/forge/internal/planner"
	"github.com/davidbz/forge/internal/provider/claude"
	"github.com/davidbz/forge/internal/provider/echo"
	"github.com/davidbz/forge/internal/provider/gemini"
	"github.com/davidbz/forge/internal/provider/groq"
	"github.com/davidbz/forge/internal/provider/openai"
	"github.com/davidbz/forge/internal/provider/openrouter"
	"github.com/davidbz/forge/internal/provider/perplexity"
	"github.com/davidbz/forge/internal/provider/registry"
	"github.com/davidbz/forge/internal/resilience"
	"github.com/davidbz/forge/internal/routing"
)

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Retry policy shared by every provider client.
	if err := container.Provide(func(core *config.CoreConfig) resilience.Policy {
		return resilience.New(core.MaxRetries)
	}); err != nil {
		log.Fatalf("Failed to provide retry policy: %v", err)
	}

	// Provider Registry
	if err := container.Provide(func() domain.ProviderRegistry {
		return registry.NewRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Register every provider that holds a credential (invoked for side effects).
	if err := container.Invoke(registerProviders); err != nil {
		log.Fatalf("Failed to register providers: %v", err)
	}

	// Prompt Cache
	if err := container.Provide(func(cfg *config.CacheConfig) domain.PromptCache {
		ttl := time.Duration(cfg.TTLSeconds) * time.Second
		if cfg.Backend == "redis" {
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			return rediscache.NewPromptCache(client, ttl)
		}
		return cache.NewMemory(ttl, cfg.MaxEntries)
	}); err != nil {
		log.Fatalf("Failed to provide prompt cache: %v", err)
	}

	// Routing
	if err := container.Provide(func(reg domain.ProviderRegistry, chains *config.ChainsConfig) domain.Selector {
		return routing.NewSelector(reg, routing.Chains{
			Plan:     chains.Plan,
			Generate: chains.Generate,
			Refine:   chains.Refine,
			Fallback: chains.Fallback,
		})
	}); err != nil {
		log.Fatalf("Failed to provide selector: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewCompletionService); err != nil {
		log.Fatalf("Failed to provide completion service: %v", err)
	}
	if err := container.Provide(func(svc *domain.CompletionService) domain.Completer {
		return svc
	}); err != nil {
		log.Fatalf("Failed to provide completer: %v", err)
	}
	if err := container.Provide(planner.NewPlanner); err != nil {
		log.Fatalf("Failed to provide planner: %v", err)
	}
	if err := container.Provide(func(completer domain.Completer, core *config.CoreConfig) *generator.Generator {
		return generator.NewGenerator(completer, time.Duration(core.APIDelayMS)*time.Millisecond)
	}); err != nil {
		log.Fatalf("Failed to provide generator: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(func(corsCfg *config.CORSConfig) middleware.Middleware {
		return middleware.BuildMiddlewareChain(corsCfg)
	}); err != nil {
		log.Fatalf("Failed to provide middleware: %v", err)
	}
	if err := container.Provide(forgehttp.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(forgehttp.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// registerProviders constructs and registers every credentialed provider.
// Providers without a key are skipped, not errors: the selector only routes
// across what registers here.
func registerProviders(reg domain.ProviderRegistry, cfg *config.Config, policy resilience.Policy) error {
	ctx := context.Background()

	register := func(name string, provider domain.Provider, err error) error {
		if err != nil {
			return fmt.Errorf("failed to build %s provider: %w", name, err)
		}
		if regErr := reg.Register(ctx, provider); regErr != nil {
			return fmt.Errorf("failed to register %s provider: %w", name, regErr)
		}
		return nil
	}

	if cfg.Gemini.APIKey != "" {
		provider, err := gemini.NewProvider(cfg.Gemini, policy)
		if err := register("gemini", provider, err); err != nil {
			return err
		}
	}
	if cfg.Claude.APIKey != "" {
		provider, err := claude.NewProvider(cfg.Claude, policy)
		if err := register("claude", provider, err); err != nil {
			return err
		}
	}
	if cfg.OpenAI.APIKey != "" {
		provider, err := openai.NewProvider(cfg.OpenAI, policy)
		if err := register("openai", provider, err); err != nil {
			return err
		}
	}
	if cfg.Groq.APIKey != "" {
		provider, err := groq.NewProvider(cfg.Groq, policy)
		if err := register("groq", provider, err); err != nil {
			return err
		}
	}
	if cfg.Perplexity.APIKey != "" {
		provider, err := perplexity.NewProvider(cfg.Perplexity, policy)
		if err := register("perplexity", provider, err); err != nil {
			return err
		}
	}
	if cfg.OpenRouter.APIKey != "" {
		provider, err := openrouter.NewProvider(cfg.OpenRouter, policy)
		if err := register("openrouter", provider, err); err != nil {
			return err
		}
	}
	if cfg.Core.EchoEnabled {
		if err := register("echo", echo.NewProvider(), nil); err != nil {
			return err
		}
	}

	return nil
}
