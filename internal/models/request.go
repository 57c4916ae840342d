package models

// AskRequest for POST /api/v1/ask
type AskRequest struct {
	Question string `json:"question"`
}

// ChatbotRequest for POST /chatbot (retrieval-service contract)
type ChatbotRequest struct {
	Query string `json:"query"`
}
