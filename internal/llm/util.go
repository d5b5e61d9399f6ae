package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// CleanJSONBlock strips markdown fences and any chatter before the first
// JSON object or array.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// drop a language tag such as json on the opening fence
		if idx := strings.Index(text, "\n"); idx >= 0 {
			if tag := text[:idx]; !strings.ContainsAny(tag, "{[ ") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if start := strings.IndexAny(text, "{["); start > 0 {
		text = text[start:]
	}
	return text
}

// GenerateInto runs prompt through client and decodes the JSON answer into out.
func GenerateInto(ctx context.Context, client Client, prompt string, tier ModelTier, out any) error {
	text, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(CleanJSONBlock(text)), out); err != nil {
		return fmt.Errorf("failed to decode model response: %w", err)
	}
	return nil
}
