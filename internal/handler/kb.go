package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/askbridge/askbridge/internal/models"
)

// Maximum accepted upload size, in bytes.
const maxUploadBytes = 10 << 20

// KnowledgeService is the ingestion/answering capability behind the
// knowledge-base endpoints.
type KnowledgeService interface {
	Ingest(ctx context.Context, name, content string) (int, error)
	Answer(ctx context.Context, query string) (string, error)
}

// KBHandler serves the retrieval-service contract: POST /chatbot and
// POST /ingestion-pipeline. Failures use non-2xx statuses with a JSON
// {detail} body.
type KBHandler struct {
	svc KnowledgeService
}

func NewKBHandler(svc KnowledgeService) *KBHandler {
	return &KBHandler{svc: svc}
}

// Chatbot handles POST /chatbot
func (h *KBHandler) Chatbot(w http.ResponseWriter, r *http.Request) {
	var req models.ChatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteDetail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		models.WriteDetail(w, http.StatusBadRequest, "Missing 'query' in request body")
		return
	}

	answer, err := h.svc.Answer(r.Context(), req.Query)
	if err != nil {
		models.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	models.WriteJSON(w, http.StatusOK, models.ChatbotResponse{Results: answer})
}

// Ingest handles POST /ingestion-pipeline
func (h *KBHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		models.WriteDetail(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "text/") && contentType != "" {
		models.WriteDetail(w, http.StatusBadRequest, "Only plain-text files are allowed.")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		models.WriteDetail(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	chunks, err := h.svc.Ingest(r.Context(), header.Filename, string(content))
	if err != nil {
		models.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	models.WriteJSON(w, http.StatusOK, models.IngestResponse{
		Message: "Data ingested into vector database successfully.",
		Chunks:  chunks,
	})
}
