package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/askbridge/askbridge/internal/models"
	"github.com/rs/zerolog/log"
)

// KBExecutor forwards questions to the external retrieval service. The raw
// question is sent as-is; enrichment applies only to the structured path.
type KBExecutor struct {
	endpoint string
	client   *http.Client
}

// NewKBExecutor creates an executor for the given retrieval endpoint. A nil
// client gets a default with a bounded timeout.
func NewKBExecutor(endpoint string, client *http.Client) *KBExecutor {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &KBExecutor{endpoint: endpoint, client: client}
}

type kbReply struct {
	Results string `json:"results"`
	Detail  string `json:"detail"`
}

// Run sends the question to the retrieval endpoint. Transport failures and
// non-2xx statuses are fatal for the request but never escape as errors or
// panics past this boundary.
func (x *KBExecutor) Run(ctx context.Context, question string) models.ExecutionResult {
	body, err := json.Marshal(models.ChatbotRequest{Query: question})
	if err != nil {
		return models.Failure("Error contacting knowledge service: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.Failure("Error contacting knowledge service: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", x.endpoint).Msg("knowledge service unreachable")
		return models.Failure("Error contacting knowledge service: " + err.Error())
	}
	defer resp.Body.Close()

	var reply kbReply
	decodeErr := json.NewDecoder(resp.Body).Decode(&reply)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := reply.Detail
		if detail == "" {
			detail = resp.Status
		}
		return models.Failure("Knowledge service error: " + detail)
	}
	if decodeErr != nil {
		return models.Failure("Error decoding knowledge service response: " + decodeErr.Error())
	}

	result := models.ExecutionResult{
		OK:              true,
		RawRows:         []map[string]interface{}{},
		NarrativeAnswer: reply.Results,
	}
	return result
}
