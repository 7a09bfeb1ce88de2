package insights

// Config holds generation settings.
type Config struct {
	// TextMaxTokens bounds free-text answers (summaries, explanations).
	TextMaxTokens int

	// JSONMaxTokens bounds structured answers.
	JSONMaxTokens int

	Temperature float64
}

// DefaultConfig returns sensible defaults for insight generation.
func DefaultConfig() Config {
	return Config{
		TextMaxTokens: 1024,
		JSONMaxTokens: 512,
		Temperature:   0.7,
	}
}
