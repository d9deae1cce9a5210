package claude

// Config contains Anthropic provider configuration.
type Config struct {
	APIKey    string `env:"CLAUDE_API_KEY"`
	BaseURL   string `env:"CLAUDE_BASE_URL"   envDefault:"https://api.anthropic.com"`
	Model     string `env:"CLAUDE_MODEL"      envDefault:"claude-3-5-sonnet-20240620"`
	Timeout   int    `env:"CLAUDE_TIMEOUT"    envDefault:"90"`
	MaxTokens int    `env:"CLAUDE_MAX_TOKENS" envDefault:"4096"`
}
