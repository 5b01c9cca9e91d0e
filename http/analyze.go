package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"github.com/fwojciec/furniq"
	"golang.org/x/sync/errgroup"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

type batchRequest struct {
	Texts []json.RawMessage `json:"texts"`
}

// itemError reports a batch entry that could not be analyzed.
type itemError struct {
	Error   string          `json:"error"`
	Text    json.RawMessage `json:"text"`
	Details string          `json:"details"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Text == "" {
		s.writeError(w, r, furniq.Errorf(furniq.EINVALID, "Missing required parameter: text"))
		return
	}

	analyzer := s.currentAnalyzer()
	if analyzer == nil {
		s.writeError(w, r, errNotReady)
		return
	}

	s.writeJSON(w, http.StatusOK, analyzer.Analyze(req.Text))
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Texts == nil {
		s.writeError(w, r, furniq.Errorf(furniq.EINVALID, "Missing or invalid parameter: texts must be an array"))
		return
	}

	analyzer := s.currentAnalyzer()
	if analyzer == nil {
		s.writeError(w, r, errNotReady)
		return
	}

	results := make([]any, len(req.Texts))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, raw := range req.Texts {
		g.Go(func() error {
			results[i] = analyzeItem(analyzer, raw)
			return nil
		})
	}
	_ = g.Wait()

	s.writeJSON(w, http.StatusOK, results)
}

// analyzeItem analyzes one raw batch entry, converting bad input and panics
// into an itemError so the rest of the batch still completes.
func analyzeItem(analyzer furniq.Analyzer, raw json.RawMessage) (out any) {
	defer func() {
		if p := recover(); p != nil {
			out = &itemError{Error: "Failed to analyze text", Text: raw, Details: fmt.Sprint(p)}
		}
	}()

	var text string
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '"' {
		return &itemError{Error: "Failed to analyze text", Text: raw, Details: "text must be a string"}
	}
	if err := json.Unmarshal(raw, &text); err != nil {
		return &itemError{Error: "Failed to analyze text", Text: raw, Details: "text must be a string"}
	}
	return analyzer.Analyze(text)
}

var errNotReady = furniq.Errorf(furniq.EUNAVAILABLE, "Analyzer service not initialized yet. Please try again later.")
