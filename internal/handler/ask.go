package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/askbridge/askbridge/internal/models"
	"github.com/askbridge/askbridge/internal/service"
)

// QuestionHandler is the orchestration capability behind POST /api/v1/ask.
type QuestionHandler interface {
	Handle(ctx context.Context, question string) service.Outcome
}

// AskHandler handles POST /api/v1/ask
type AskHandler struct {
	orch              QuestionHandler
	maxQuestionLength int
}

func NewAskHandler(orch QuestionHandler, maxQuestionLength int) *AskHandler {
	return &AskHandler{orch: orch, maxQuestionLength: maxQuestionLength}
}

// Ask runs one question through the orchestrator. The response always carries
// the full ExecutionResult shape; fatal executor failures surface as ok=false
// with a readable message, never as a 5xx from this handler.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Question == "" {
		models.WriteError(w, http.StatusBadRequest, "question is required")
		return
	}
	if h.maxQuestionLength > 0 && len(req.Question) > h.maxQuestionLength {
		models.WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("question exceeds maximum length of %d characters", h.maxQuestionLength))
		return
	}

	out := h.orch.Handle(r.Context(), req.Question)

	models.WriteJSON(w, http.StatusOK, models.AskResponse{
		Question:          req.Question,
		Route:             string(out.Decision.Route),
		ExecutionResult:   out.Result,
		RoutingDiagnostic: out.Decision.Diagnostic,
	})
}
