// Package handler is the invocation surface of the coordinator: an opaque
// event in, a structured {statusCode, body} envelope out, with the JSON
// report as the body.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/agentscan/backup-orchestrator/pkg/backup"
)

// Response is the invocation result envelope.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Handler wraps the orchestrator behind the event entry point.
type Handler struct {
	orchestrator *backup.Orchestrator
	logger       *zap.Logger
}

// New creates a handler around an orchestrator.
func New(orchestrator *backup.Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{orchestrator: orchestrator, logger: logger}
}

// Handle runs one orchestration pass. The event payload is accepted but
// unused; scheduled invocations carry no parameters today. The status code
// is 200 for SUCCESS and WARNING runs, 500 for FAILED runs and orchestration
// errors.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) Response {
	rep := h.orchestrator.Run(ctx)

	body, err := json.Marshal(rep)
	if err != nil {
		// The report is built from plain values and marshals by
		// construction; reaching this means a programming error.
		h.logger.Error("failed to marshal report", zap.Error(err))
		return Response{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"error":"failed to serialize report"}`,
		}
	}

	code := http.StatusOK
	if rep.OverallStatus == backup.StatusFailed {
		code = http.StatusInternalServerError
	}

	return Response{StatusCode: code, Body: string(body)}
}
