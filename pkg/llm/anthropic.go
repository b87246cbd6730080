package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

const anthropicMaxTokens = 4096

// AnthropicClient provides access to the Anthropic Messages API as an
// alternative generative transport, selected by configuration.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClient creates a new Anthropic transport client.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &AnthropicClient{
		client: anthropic.NewClient(cfg.APIKey),
		model:  cfg.Model,
		logger: logger.Named("llm"),
	}, nil
}

// GenerateResponse generates a single completion via the Messages API.
func (c *AnthropicClient) GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error) {
	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()
	temp := float32(temperature)

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		System:      systemMessage,
		MaxTokens:   anthropicMaxTokens,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	text := ""
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			text += *block.Text
		}
	}
	if text == "" {
		return "", NewError(ErrorTypeValidation, "no text content in response", false, nil)
	}

	c.logger.Info("LLM request completed",
		zap.Int("response_len", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	return text, nil
}

// GenerateStream starts a streaming completion. Content block deltas arrive
// as plain-text chunks. If a provider returns the full message without
// deltas, the final content blocks are delivered as one multi-part chunk.
func (c *AnthropicClient) GenerateStream(ctx context.Context, prompt string, systemMessage string) (<-chan Chunk, error) {
	chunks := make(chan Chunk)

	go func() {
		defer close(chunks)

		deltas := 0
		send := func(chunk Chunk) bool {
			select {
			case chunks <- chunk:
				return true
			case <-ctx.Done():
				return false
			}
		}

		resp, err := c.client.CreateMessagesStream(ctx, anthropic.MessagesStreamRequest{
			MessagesRequest: anthropic.MessagesRequest{
				Model:     anthropic.Model(c.model),
				System:    systemMessage,
				MaxTokens: anthropicMaxTokens,
				Messages: []anthropic.Message{
					{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
						{Type: "text", Text: &prompt},
					}},
				},
			},
			OnContentBlockDelta: func(data anthropic.MessagesEventContentBlockDeltaData) {
				text := data.Delta.GetText()
				if text == "" {
					return
				}
				if send(TextChunk(text)) {
					deltas++
				}
			},
		})
		if err != nil {
			c.logger.Error("Stream failed", zap.Error(err))
			send(Chunk{Kind: ChunkError, Err: ClassifyError(err)})
			return
		}

		if deltas == 0 && len(resp.Content) > 0 {
			parts := make([]Part, 0, len(resp.Content))
			for _, block := range resp.Content {
				if block.Type == "text" && block.Text != nil {
					parts = append(parts, Part{Text: *block.Text})
				}
			}
			send(Chunk{Kind: ChunkParts, Parts: parts})
		}
	}()

	return chunks, nil
}

// Model returns the configured model name.
func (c *AnthropicClient) Model() string {
	return c.model
}
