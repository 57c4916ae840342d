package server

import (
	"context"
	"net/http"

	"github.com/askbridge/askbridge/internal/handler"
	"github.com/askbridge/askbridge/internal/kb"
	"github.com/askbridge/askbridge/internal/llm"
	"github.com/askbridge/askbridge/internal/middleware"
	"github.com/askbridge/askbridge/internal/schema"
	"github.com/askbridge/askbridge/internal/service"
	"github.com/askbridge/askbridge/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// setupRoutes constructs every collaborator explicitly and wires the router.
// Nothing here is a process-wide singleton: collaborators are injected so
// tests can substitute fakes.
func (s *Server) setupRoutes() (http.Handler, error) {
	cfg := s.cfg
	ctx := context.Background()

	// ─── Collaborators ──────────────────────────────────────────────────────────
	var st *store.Store
	if cfg.DatabaseURL != "" {
		var dbErr error
		st, dbErr = store.Open(ctx, cfg.DatabaseURL)
		if dbErr != nil {
			log.Warn().Err(dbErr).Msg("relational store unavailable")
			st = nil
		}
	} else {
		log.Warn().Msg("DATABASE_URL not set - structured query path disabled")
	}
	s.store = st

	var llmClient *llm.Client
	if cfg.AnthropicAPIKey != "" {
		llmClient = llm.NewClient(cfg.AnthropicAPIKey, cfg.Model, cfg.AnthropicBaseURL)
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set - question answering disabled")
	}

	var index *kb.Index
	if cfg.ElasticsearchEnabled {
		var esErr error
		index, esErr = kb.NewIndex(kb.IndexConfig{
			Scheme:      cfg.ElasticsearchScheme,
			Host:        cfg.ElasticsearchHost,
			Port:        cfg.ElasticsearchPort,
			User:        cfg.ElasticsearchUser,
			Password:    cfg.ElasticsearchPassword,
			VerifyCerts: cfg.ElasticsearchVerifyCerts,
			MaxRetries:  cfg.ElasticsearchMaxRetries,
			Name:        cfg.ElasticsearchIndex,
		})
		if esErr != nil {
			log.Warn().Err(esErr).Msg("Elasticsearch unavailable - knowledge base disabled")
			index = nil
		}
	}

	log.Info().
		Bool("store_enabled", st != nil).
		Bool("llm_enabled", llmClient != nil).
		Bool("knowledge_base_enabled", index != nil).
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Msg("service configuration")

	// ─── Core pipeline ──────────────────────────────────────────────────────────
	var askH *handler.AskHandler
	if llmClient != nil && st != nil {
		inspector := schema.NewInspector(st.Pool())
		classifier := service.NewClassifier(llmClient, inspector)
		enricher := service.NewEnricher(cfg.Synonyms)
		dbExec := service.NewDBExecutor(llmClient, inspector, st, enricher)
		kbExec := service.NewKBExecutor(cfg.KBServiceURL, nil)
		orch := service.NewOrchestrator(classifier, dbExec, kbExec)
		askH = handler.NewAskHandler(orch, cfg.MaxQuestionLength)
	} else {
		log.Warn().Msg("WARNING: /ask requires both DATABASE_URL and ANTHROPIC_API_KEY - endpoint disabled")
	}

	// ─── Knowledge base ─────────────────────────────────────────────────────────
	var kbH *handler.KBHandler
	if index != nil && llmClient != nil {
		kbH = handler.NewKBHandler(kb.NewService(index, llmClient))
	}

	var storeCheck, indexCheck handler.HealthChecker
	if st != nil {
		storeCheck = st
	}
	if index != nil {
		indexCheck = index
	}
	healthH := handler.NewHealthHandler(storeCheck, indexCheck)

	// ─── Router ─────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	// Retrieval-service contract endpoints (public, like the service they
	// stand in for)
	if kbH != nil {
		r.Post("/chatbot", kbH.Chatbot)
		r.Post("/ingestion-pipeline", kbH.Ingest)
	}

	// Auth + rate limiting for API routes
	apiMiddleware := []func(http.Handler) http.Handler{
		middleware.RateLimit(cfg.RateLimitPerMinute),
	}
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		apiMiddleware = append(apiMiddleware, middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
	}

	r.Group(func(r chi.Router) {
		for _, m := range apiMiddleware {
			r.Use(m)
		}

		r.Route(cfg.APIPrefix, func(r chi.Router) {
			if askH != nil {
				r.Post("/ask", askH.Ask)
			}
		})
	})

	return r, nil
}
