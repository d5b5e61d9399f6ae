package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/skill-twin-engine/internal/llm"
	"github.com/jonathan/skill-twin-engine/internal/prompts"
)

// DefaultLabel describes the input document in the prompt.
const DefaultLabel = "resume"

// LLMExtractor asks the language model for the skills in a document.
type LLMExtractor struct {
	client llm.Client
	config *llm.Config
	label  string
}

// NewLLMExtractor returns an extractor backed by client. A nil config uses llm.DefaultConfig.
func NewLLMExtractor(client llm.Client, config *llm.Config, label string) *LLMExtractor {
	if config == nil {
		config = llm.DefaultConfig()
	}
	if label == "" {
		label = DefaultLabel
	}
	return &LLMExtractor{client: client, config: config, label: label}
}

type skillsResponse struct {
	TechnicalSkills []string `json:"technical_skills"`
}

// Extract returns the skills the model reports, trimmed and deduplicated
// case-insensitively in answer order.
func (e *LLMExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	prompt, err := prompts.Render(prompts.SkillsFile, prompts.KeyExtractSkills, map[string]string{
		"Label": e.label,
		"Text":  e.config.Truncate(CleanText(text)),
	})
	if err != nil {
		return nil, err
	}

	answer, err := e.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &ModelError{Label: e.label, Tier: llm.TierLite, Cause: err}
	}

	var resp skillsResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(answer)), &resp); err != nil {
		return nil, newAnswerError(e.label, answer, err)
	}

	skills := []string{}
	seen := make(map[string]bool)
	for _, s := range resp.TechnicalSkills {
		s = strings.Join(strings.Fields(s), " ")
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, s)
	}
	return skills, nil
}
