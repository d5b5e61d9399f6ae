package extract

import (
	"fmt"

	"github.com/jonathan/skill-twin-engine/internal/llm"
)

// excerptLen bounds how much of a bad model answer is kept on AnswerError.
const excerptLen = 80

// ModelError is returned when the language model could not be reached or refused
// to answer for the document being extracted.
type ModelError struct {
	Label string
	Tier  llm.ModelTier
	Cause error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("extracting skills from %s: %s model call: %v", e.Label, e.Tier, e.Cause)
}

func (e *ModelError) Unwrap() error { return e.Cause }

// AnswerError is returned when the model replied with something other than a
// technical_skills list.
type AnswerError struct {
	Label   string
	Excerpt string
	Cause   error
}

func newAnswerError(label, answer string, cause error) *AnswerError {
	excerpt := []rune(answer)
	if len(excerpt) > excerptLen {
		excerpt = append(excerpt[:excerptLen], '…')
	}
	return &AnswerError{Label: label, Excerpt: string(excerpt), Cause: cause}
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("extracting skills from %s: unusable answer %q: %v", e.Label, e.Excerpt, e.Cause)
}

func (e *AnswerError) Unwrap() error { return e.Cause }
