package openrouter

// Config contains OpenRouter provider configuration.
type Config struct {
	APIKey    string `env:"OPEN_ROUTER_API_KEY"`
	BaseURL   string `env:"OPEN_ROUTER_BASE_URL"   envDefault:"https://openrouter.ai"`
	Model     string `env:"OPEN_ROUTER_MODEL"      envDefault:"meta-llama/llama-3.1-70b-instruct"`
	Timeout   int    `env:"OPEN_ROUTER_TIMEOUT"    envDefault:"90"`
	MaxTokens int    `env:"OPEN_ROUTER_MAX_TOKENS" envDefault:"4096"`
	SiteURL   string `env:"OPEN_ROUTER_SITE_URL"   envDefault:"http://localhost:3000"`
}
