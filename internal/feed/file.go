package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

// FileSource reads postings from a JSON file. The file holds either an array
// of postings or an object with a "postings" array.
type FileSource struct {
	Label string
	Path  string
	// Source overrides the source of every posting when set.
	Source string
}

// Name returns the label, or the path when no label is set.
func (s *FileSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Path
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) ([]types.RawPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &Error{Source: s.Name(), Message: "failed to read postings file", Cause: err}
	}
	postings, err := DecodePostings(data)
	if err != nil {
		return nil, &Error{Source: s.Name(), Message: "failed to decode postings", Cause: err}
	}
	if s.Source != "" {
		override := types.ParseSource(s.Source)
		for i := range postings {
			postings[i].Source = override
		}
	}
	return postings, nil
}

// DecodePostings decodes a JSON array of postings or a {"postings": [...]} envelope.
func DecodePostings(data []byte) ([]types.RawPosting, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Postings []types.RawPosting `json:"postings"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		return nonNil(envelope.Postings), nil
	}
	var postings []types.RawPosting
	if err := json.Unmarshal(trimmed, &postings); err != nil {
		return nil, err
	}
	return nonNil(postings), nil
}

func nonNil(p []types.RawPosting) []types.RawPosting {
	if p == nil {
		return []types.RawPosting{}
	}
	return p
}
