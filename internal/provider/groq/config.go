package groq

// Config contains Groq provider configuration.
type Config struct {
	APIKey    string `env:"GROQ_API_KEY"`
	BaseURL   string `env:"GROQ_BASE_URL"   envDefault:"https://api.groq.com"`
	Model     string `env:"GROQ_MODEL"      envDefault:"llama-3.3-70b-versatile"`
	Timeout   int    `env:"GROQ_TIMEOUT"    envDefault:"90"`
	MaxTokens int    `env:"GROQ_MAX_TOKENS" envDefault:"4096"`
}
