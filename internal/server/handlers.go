package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/funnel/pkg/buildinfo"
	"github.com/matzehuels/funnel/pkg/errors"
	"github.com/matzehuels/funnel/pkg/pipeline"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	points, err := pipeline.Decode(r.Context(), http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Summarize(points))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.defaults
	opts.Formats = []string{format}
	opts.Logger = s.logger
	if err := applyQuery(&opts, r); err != nil {
		s.writeError(w, r, err)
		return
	}

	points, err := pipeline.Decode(r.Context(), http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Render(r.Context(), points, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if len(result.CacheInfo.Hits) > 0 {
		cacheStatus = "hit"
	}
	data := result.Artifacts[format]
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// applyQuery overrides opts with the width, height and gradient_base query
// parameters.
func applyQuery(opts *pipeline.Options, r *http.Request) error {
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"gradient_base", &opts.GradientBase},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a number", p.name, v)
		}
		*p.dst = f
	}
	return nil
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	id := RequestID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", id, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      errors.GetCode(err),
		RequestID: id,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
