package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nbatyrova/mindmate/internal/model"
	"github.com/nbatyrova/mindmate/internal/store"
)

// ErrGeneration marks per-request retrieval or language-model failures.
// Recoverable: the HTTP layer turns it into a generic 500.
var ErrGeneration = errors.New("generation error")

// promptTemplate frames the model as a counselor and carries the retrieved
// context plus the user's question.
const promptTemplate = `You are a mental health professional - a psychologist. Use the following context to provide appropriate, helpful and empathetic responses to the user:

Context: {context}
Question: {question}
Answer:`

// RAGService answers a query by embedding it, retrieving the closest
// documents and asking the language model with those documents as context.
type RAGService struct {
	embedder Embedder
	llm      Completer
	store    store.VectorStore
	topK     int
	timeout  time.Duration
}

func NewRAGService(embedder Embedder, llm Completer, st store.VectorStore, topK int, timeout time.Duration) *RAGService {
	if topK <= 0 {
		topK = 3
	}
	return &RAGService{embedder: embedder, llm: llm, store: st, topK: topK, timeout: timeout}
}

// Ask runs the full retrieve-and-generate chain for one query. Every
// failure comes back wrapped in ErrGeneration and never as a partial
// result.
func (s *RAGService) Ask(ctx context.Context, query string) (*model.ChatResult, error) {
	vec, err := s.embedder.Embedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %v", ErrGeneration, err)
	}

	docs, err := s.store.Search(ctx, vec, s.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: searching index: %v", ErrGeneration, err)
	}

	prompt := renderPrompt(docs, query)

	llmCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		llmCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	answer, err := s.llm.Complete(llmCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: completing prompt: %v", ErrGeneration, err)
	}

	if docs == nil {
		docs = []model.Document{}
	}
	return &model.ChatResult{Response: answer, Sources: docs}, nil
}

// renderPrompt substitutes the retrieved content and the raw query into the
// template placeholders.
func renderPrompt(docs []model.Document, query string) string {
	parts := make([]string, len(docs))
	for i, d := range docs {
		parts[i] = d.Content
	}
	r := strings.NewReplacer(
		"{context}", strings.Join(parts, "\n\n"),
		"{question}", query,
	)
	return r.Replace(promptTemplate)
}
