package kb

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const answerSystemPrompt = `You are a helpful assistant. Answer the user's question using only the provided context passages.
If the context does not contain the answer, say you do not know.`

// Completer is the single-shot LLM capability used for answer synthesis.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Searcher is the chunk-store capability the service depends on.
type Searcher interface {
	EnsureIndex(ctx context.Context) error
	IndexChunks(ctx context.Context, source string, chunks []string) error
	Search(ctx context.Context, query string, size int) ([]string, error)
}

// Service answers questions from ingested documents.
type Service struct {
	index Searcher
	llm   Completer
}

func NewService(index Searcher, llm Completer) *Service {
	return &Service{index: index, llm: llm}
}

// Ingest splits a document into overlapping chunks and stores them.
// Returns the number of chunks indexed.
func (s *Service) Ingest(ctx context.Context, name, content string) (int, error) {
	chunks := SplitText(content, DefaultChunkSize, DefaultChunkOverlap)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document %q contains no text", name)
	}
	if err := s.index.EnsureIndex(ctx); err != nil {
		return 0, err
	}
	if err := s.index.IndexChunks(ctx, name, chunks); err != nil {
		return 0, err
	}
	log.Info().Str("document", name).Int("chunks", len(chunks)).Msg("document ingested")
	return len(chunks), nil
}

// Answer retrieves the chunks matching the query and synthesizes a reply.
func (s *Service) Answer(ctx context.Context, query string) (string, error) {
	passages, err := s.index.Search(ctx, query, 4)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}
	if len(passages) == 0 {
		return "No results found", nil
	}

	user := "Context:\n" + strings.Join(passages, "\n---\n") + "\n\nQuestion: " + query
	answer, err := s.llm.Complete(ctx, answerSystemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("answer synthesis: %w", err)
	}
	return answer, nil
}
