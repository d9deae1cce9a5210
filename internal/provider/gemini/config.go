package gemini

// Config contains Gemini provider configuration.
type Config struct {
	APIKey          string `env:"GEMINI_API_KEY"`
	BaseURL         string `env:"GEMINI_BASE_URL"           envDefault:"https://generativelanguage.googleapis.com"`
	Model           string `env:"GEMINI_MODEL"              envDefault:"gemini-2.5-flash"`
	Timeout         int    `env:"GEMINI_TIMEOUT"            envDefault:"30"`
	MaxOutputTokens int    `env:"GEMINI_MAX_OUTPUT_TOKENS"  envDefault:"2048"`
	ProjectID       string `env:"GOOGLE_PROJECT_ID"`
}
