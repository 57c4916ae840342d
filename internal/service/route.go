package service

import (
	"context"
	"fmt"

	"github.com/askbridge/askbridge/internal/schema"
	"github.com/rs/zerolog/log"
)

// Route identifies which executor answers a question.
type Route string

const (
	RouteDB Route = "db"
	RouteKB Route = "kb"
)

// Completer is the single-shot LLM capability the core consumes: one prompt
// pair in, one reply out, no conversation state.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SchemaSource provides a fresh relational schema projection per call.
type SchemaSource interface {
	Describe(ctx context.Context) (schema.Description, error)
}

// Decision is the classifier output. Diagnostic is populated when
// classification failed and the route fell back to the knowledge base.
type Decision struct {
	Route      Route
	Diagnostic string
}

const classifySystemPrompt = `You are an assistant that determines whether a given question is answerable from the following database schema.

Schema:
%s

Respond with only "db" if the question can be answered from the database, or "kb" if it cannot.`

// Classifier decides structured-vs-retrieval routing for a question.
type Classifier struct {
	llm    Completer
	schema SchemaSource
}

func NewClassifier(llm Completer, schemaSrc SchemaSource) *Classifier {
	return &Classifier{llm: llm, schema: schemaSrc}
}

// Classify never fails: any error on the way to a route falls back to the
// knowledge base with the cause recorded in the diagnostic. The knowledge
// base is the safe default because it cannot mutate data.
func (c *Classifier) Classify(ctx context.Context, question string) Decision {
	desc, err := c.schema.Describe(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("schema introspection failed, routing to knowledge base")
		return Decision{Route: RouteKB, Diagnostic: "routing error: " + err.Error()}
	}

	system := fmt.Sprintf(classifySystemPrompt, desc.String())
	reply, err := c.llm.Complete(ctx, system, "Question: "+question)
	if err != nil {
		log.Warn().Err(err).Msg("classification call failed, routing to knowledge base")
		return Decision{Route: RouteKB, Diagnostic: "routing error: " + err.Error()}
	}

	route, err := decodeRoute(reply)
	if err != nil {
		log.Warn().Err(err).Msg("unparseable classification, routing to knowledge base")
		return Decision{Route: RouteKB, Diagnostic: "routing error: " + err.Error()}
	}

	log.Debug().Str("route", string(route)).Msg("question classified")
	return Decision{Route: route}
}
