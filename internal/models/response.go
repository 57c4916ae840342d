package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// AskResponse is returned by POST /api/v1/ask. It carries the full
// ExecutionResult shape plus routing metadata.
type AskResponse struct {
	Question string `json:"question"`
	Route    string `json:"route"`
	ExecutionResult
	RoutingDiagnostic string `json:"routing_diagnostic,omitempty"`
}

// ChatbotResponse is returned by POST /chatbot on success.
type ChatbotResponse struct {
	Results string `json:"results"`
}

// IngestResponse is returned by POST /ingestion-pipeline on success.
type IngestResponse struct {
	Message string `json:"message"`
	Chunks  int    `json:"chunks"`
}
