package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient provides access to OpenAI-compatible endpoints, including a
// local Ollama server exposing the v1 API.
type OpenAIClient struct {
	client  *openai.Client
	baseURL string
	model   string
	logger  *zap.Logger
}

// NewOpenAIClient creates a new OpenAI-compatible transport client.
func NewOpenAIClient(cfg *Config, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		logger:  logger.Named("llm"),
	}, nil
}

// GenerateResponse generates a single chat completion.
func (c *OpenAIClient) GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32(temperature),
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", NewError(ErrorTypeValidation, "no choices in response", false, nil)
	}

	c.logger.Info("LLM request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return resp.Choices[0].Message.Content, nil
}

// GenerateStream starts a streaming chat completion. Delta content arrives as
// plain-text chunks; the channel closes on end of stream, with a terminal
// ChunkError first if the transport fails mid-stream.
func (c *OpenAIClient) GenerateStream(ctx context.Context, prompt string, systemMessage string) (<-chan Chunk, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		c.logger.Error("Failed to create stream", zap.Error(err))
		return nil, ClassifyError(err)
	}

	chunks := make(chan Chunk)

	go func() {
		defer close(chunks)
		defer stream.Close()

		start := time.Now()
		fragments := 0

		for {
			response, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				c.logger.Debug("Stream completed",
					zap.Int("fragments", fragments),
					zap.Duration("elapsed", time.Since(start)))
				return
			}
			if err != nil {
				c.logger.Error("Stream receive error", zap.Error(err))
				select {
				case chunks <- Chunk{Kind: ChunkError, Err: ClassifyError(err)}:
				case <-ctx.Done():
				}
				return
			}

			if len(response.Choices) == 0 {
				continue
			}

			delta := response.Choices[0].Delta
			if delta.Content == "" {
				continue
			}

			select {
			case chunks <- TextChunk(delta.Content):
				fragments++
			case <-ctx.Done():
				return
			}
		}
	}()

	return chunks, nil
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}
