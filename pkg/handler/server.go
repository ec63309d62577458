package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// NewServeMux exposes the handler over HTTP for long-running deployments:
// POST /run triggers one orchestration pass and returns the envelope's body
// with its status code; GET /healthz reports liveness.
func NewServeMux(h *Handler, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		event, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		resp := h.Handle(r.Context(), json.RawMessage(event))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if _, err := io.WriteString(w, resp.Body); err != nil {
			logger.Error("failed to write response", zap.Error(err))
		}
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	return mux
}
