package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/nbatyrova/mindmate/internal/config"
)

// Embedder converts text into a fixed-dimension vector. The same embedder
// must serve index builds and query-time retrieval, otherwise similarity
// scores silently degrade.
type Embedder interface {
	Embedding(ctx context.Context, text string) ([]float32, error)
}

// Completer produces a single non-streaming completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMClient talks to an OpenAI-compatible endpoint (Ollama, LM Studio or a
// hosted service) for both embeddings and chat completions.
type LLMClient struct {
	client     *openai.Client
	embedModel string
	chatModel  string
}

func NewLLMClient(cfg *config.Config) *LLMClient {
	oaiCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	oaiCfg.BaseURL = cfg.LLMBaseURL
	return &LLMClient{
		client:     openai.NewClientWithConfig(oaiCfg),
		embedModel: cfg.EmbedModel,
		chatModel:  cfg.ChatModel,
	}
}

func (l *LLMClient) Embedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := l.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(l.embedModel),
		Input: []string{text},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no vectors")
	}
	return resp.Data[0].Embedding, nil
}

func (l *LLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
