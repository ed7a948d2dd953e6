// internal/adapters/http_server/handlers.go
package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"hotelavail/internal/adapters/observability"
	"hotelavail/internal/app"
	"hotelavail/internal/domain"
)

type Handlers struct{ Svc *app.AvailabilityService }

// maxBodyBytes bounds inbound documents; real AvailRQ payloads are a few KB.
const maxBodyBytes = 1 << 20

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/availability", h.availability)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// availability serves one AvailRQ document. Business-rule rejections are part
// of the wire contract and come back as 200 with an {"error": ...} body; only
// undecodable payloads and internal failures map to problem responses.
func (h *Handlers) availability(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "unable to read request body")
		return
	}
	if len(raw) > maxBodyBytes {
		writeProblem(w, http.StatusRequestEntityTooLarge, "Payload Too Large", "request document exceeds the size limit")
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "empty request body")
		return
	}

	body, err := h.Svc.AvailabilityJSON(r.Context(), raw)
	switch {
	case err == nil:
		observability.ObservePipeline("ok", "")
	case domain.IsRuleViolation(err):
		rule := domain.ViolationRule(err)
		observability.ObservePipeline("invalid", rule)
		log.Info().Str("rule", rule).Str("reason", err.Error()).Msg("availability request rejected")
	case errors.Is(err, domain.ErrMalformedDocument):
		observability.ObservePipeline("malformed", "")
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed availability document")
		return
	default:
		log.Error().Err(err).Msg("availability pipeline failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "unexpected error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write availability body")
	}
}
