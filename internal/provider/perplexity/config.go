package perplexity

// Config contains Perplexity provider configuration.
type Config struct {
	APIKey  string `env:"PERPLEXITY_API_KEY"`
	BaseURL string `env:"PERPLEXITY_BASE_URL" envDefault:"https://api.perplexity.ai"`
	Model   string `env:"PERPLEXITY_MODEL"    envDefault:"llama-3-sonar-large-32k-chat"`
	Timeout int    `env:"PERPLEXITY_TIMEOUT"  envDefault:"90"`
}
