// Package llm provides the generative transport used by the plan, facts,
// article, and chat services.
package llm

import (
	"context"
)

// Client is the generative transport handle. It is constructed once at
// startup and passed to the services that need it; there is no process-wide
// singleton. Use this interface for dependency injection to enable mocking
// in tests.
//
// Both operations are black boxes to the caller: GenerateResponse returns
// model text or fails, GenerateStream yields zero or more chunks and then
// closes (clean end of stream) or delivers a terminal error chunk.
type Client interface {
	// GenerateResponse generates a single completion for the prompt.
	GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error)

	// GenerateStream starts a streaming completion. The returned channel is
	// closed when the stream ends; a transport failure is delivered as a
	// final ChunkError chunk before the close. Abandoning the context
	// releases the underlying connection.
	GenerateStream(ctx context.Context, prompt string, systemMessage string) (<-chan Chunk, error)

	// Model returns the configured model name.
	Model() string
}

// Config holds configuration for creating a transport client.
type Config struct {
	BaseURL string // e.g. "http://localhost:11434/v1" or "https://api.openai.com/v1"
	Model   string // e.g. "gemma3:4b"
	APIKey  string // Optional for local endpoints
}

// Compile-time interface checks.
var (
	_ Client = (*OpenAIClient)(nil)
	_ Client = (*AnthropicClient)(nil)
	_ Client = (*MockClient)(nil)
)
