package openai

// Config contains OpenAI provider configuration.
type Config struct {
	APIKey    string `env:"OPENAI_API_KEY"`
	BaseURL   string `env:"OPENAI_BASE_URL"    envDefault:"https://api.openai.com"`
	Model     string `env:"OPENAI_MODEL"       envDefault:"gpt-4-turbo"`
	Timeout   int    `env:"OPENAI_TIMEOUT"     envDefault:"90"`
	MaxTokens int    `env:"OPENAI_MAX_TOKENS"  envDefault:"4096"`
}
