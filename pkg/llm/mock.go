package llm

import (
	"context"
)

// MockClient is a configurable mock transport for tests. Set the function
// fields to control behavior.
type MockClient struct {
	// GenerateResponseFunc is called when GenerateResponse is invoked.
	// If nil, returns an empty string and nil error.
	GenerateResponseFunc func(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error)

	// GenerateStreamFunc is called when GenerateStream is invoked.
	// If nil, returns a channel that closes immediately (empty stream).
	GenerateStreamFunc func(ctx context.Context, prompt string, systemMessage string) (<-chan Chunk, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification
	GenerateResponseCalls int
	GenerateStreamCalls   int

	// Prompts records every prompt passed to GenerateResponse.
	Prompts []string
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

// GenerateResponse implements Client.
func (m *MockClient) GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error) {
	m.GenerateResponseCalls++
	m.Prompts = append(m.Prompts, prompt)
	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, prompt, systemMessage, temperature)
	}
	return "", nil
}

// GenerateStream implements Client.
func (m *MockClient) GenerateStream(ctx context.Context, prompt string, systemMessage string) (<-chan Chunk, error) {
	m.GenerateStreamCalls++
	if m.GenerateStreamFunc != nil {
		return m.GenerateStreamFunc(ctx, prompt, systemMessage)
	}
	ch := make(chan Chunk)
	close(ch)
	return ch, nil
}

// Model implements Client.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Reset clears call tracking.
func (m *MockClient) Reset() {
	m.GenerateResponseCalls = 0
	m.GenerateStreamCalls = 0
	m.Prompts = nil
}

// ChunkStream builds a mock stream that yields the given chunks then closes.
// If terminalErr is non-nil a ChunkError is delivered after the chunks.
func ChunkStream(chunks []Chunk, terminalErr error) <-chan Chunk {
	ch := make(chan Chunk, len(chunks)+1)
	for _, c := range chunks {
		ch <- c
	}
	if terminalErr != nil {
		ch <- Chunk{Kind: ChunkError, Err: terminalErr}
	}
	close(ch)
	return ch
}
