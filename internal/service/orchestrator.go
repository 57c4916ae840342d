package service

import (
	"context"
	"fmt"

	"github.com/askbridge/askbridge/internal/models"
	"github.com/rs/zerolog/log"
)

// Executor is an answer-producing backend. Implementations report failures on
// the result, never as errors or panics.
type Executor interface {
	Run(ctx context.Context, question string) models.ExecutionResult
}

// Orchestrator owns the single classify-then-dispatch interaction:
// START -> CLASSIFY -> {DB_EXEC | KB_EXEC} -> END. No state is revisited.
type Orchestrator struct {
	classifier *Classifier
	db         Executor
	kb         Executor
}

func NewOrchestrator(classifier *Classifier, db, kb Executor) *Orchestrator {
	return &Orchestrator{classifier: classifier, db: db, kb: kb}
}

// Outcome pairs the routing decision with the normalized executor result.
type Outcome struct {
	Decision Decision
	Result   models.ExecutionResult
}

// Handle classifies the question, dispatches to exactly one executor and
// normalizes the result. It never returns an error and never lets a panic
// cross the interaction boundary: an executor blowing past its own contract
// still yields ok=false with an error message.
func (o *Orchestrator) Handle(ctx context.Context, question string) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("executor panic recovered")
			if out.Decision.Route == "" {
				out.Decision = Decision{Route: RouteKB, Diagnostic: fmt.Sprintf("routing error: %v", rec)}
			}
			out.Result = models.Failure(fmt.Sprintf("internal error: %v", rec))
		}
	}()

	out.Decision = o.classifier.Classify(ctx, question)

	switch out.Decision.Route {
	case RouteDB:
		out.Result = o.db.Run(ctx, question)
	default:
		out.Result = o.kb.Run(ctx, question)
	}
	out.Result.Normalize()
	return out
}
