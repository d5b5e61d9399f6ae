package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/skill-twin-engine/internal/pipeline"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// handleTrendsStream scores a batch like POST /trends, reporting each stage
// as a "progress" event and the report as a final "complete" event.
func (s *Server) handleTrendsStream(w http.ResponseWriter, r *http.Request) {
	req, err := decode[types.TrendRequest](w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	engine := s.engine.WithProgress(func(ev pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", ev); err != nil {
			s.log.Warn("failed to write progress event", "error", err)
		}
	})

	report, err := engine.Trends(r.Context(), req.Postings, req.TopK)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteEvent("complete", report) //nolint:errcheck
}
