package content

// Config bounds content generation requests.
type Config struct {
	// QuestionCount is the default assessment batch size.
	QuestionCount int `yaml:"question_count"`

	// ProblemCount is the default coding-problem batch size.
	ProblemCount int `yaml:"problem_count"`

	// MaxTokens caps each generation response.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature for generation calls. Question generation benefits
	// from a little variety.
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns the standard generation limits.
func DefaultConfig() Config {
	return Config{
		QuestionCount: 10,
		ProblemCount:  3,
		MaxTokens:     4096,
		Temperature:   0.4,
	}
}
