package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fwojciec/furniq"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

var codes = map[string]int{
	furniq.ECONFLICT:    http.StatusConflict,
	furniq.EINVALID:     http.StatusBadRequest,
	furniq.ENOTFOUND:    http.StatusNotFound,
	furniq.ERATELIMIT:   http.StatusTooManyRequests,
	furniq.EUNAVAILABLE: http.StatusServiceUnavailable,
	furniq.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode maps a furniq error code to an HTTP status code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := furniq.ErrorCode(err), furniq.ErrorMessage(err)
	if code == furniq.EINTERNAL {
		s.logger.Error("http error",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	s.writeJSON(w, ErrorStatusCode(code), &errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// decode reads a JSON body into v, reporting malformed input as EINVALID.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return furniq.Errorf(furniq.EINVALID, "Request body too large")
		case errors.Is(err, io.EOF):
			return furniq.Errorf(furniq.EINVALID, "Request body is empty")
		default:
			return furniq.Errorf(furniq.EINVALID, "Invalid JSON body")
		}
	}
	return nil
}
