package tutor

// Config holds tutor generation settings.
type Config struct {
	ExplainMaxTokens int
	AdviceMaxTokens  int
	Temperature      float64
}

// DefaultConfig returns sensible defaults for tutor requests.
func DefaultConfig() Config {
	return Config{
		ExplainMaxTokens: 384,
		AdviceMaxTokens:  512,
		Temperature:      0.4,
	}
}
