// Package llm wraps the generative model used by the optional LLM-backed
// collaborators (skill extraction and resource discovery).
package llm

// ModelTier selects a model by capability.
type ModelTier string

const (
	// TierLite suits extraction and short structured answers
	TierLite ModelTier = "lite"
	// TierStandard suits longer structured generation
	TierStandard ModelTier = "standard"
)

// Provider names an LLM backend.
type Provider string

// ProviderGemini is the only supported provider.
const ProviderGemini Provider = "gemini"

// Config holds model selection for a client.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	// MaxInputChars truncates prompt input text; 0 means no limit
	MaxInputChars int
}

// DefaultConfig returns the Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature:   0.1,
		MaxInputChars: 5000,
	}
}

// Model returns the model for tier, falling back to standard then lite.
func (c *Config) Model(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return c.Models[TierLite]
}

// Truncate cuts text to MaxInputChars runes.
func (c *Config) Truncate(text string) string {
	if c.MaxInputChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= c.MaxInputChars {
		return text
	}
	return string(runes[:c.MaxInputChars])
}
