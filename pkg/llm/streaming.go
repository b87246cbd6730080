package llm

import (
	"context"
)

// ChunkKind tags the payload variant of a streamed chunk. Providers deliver
// stream units in different shapes; rather than probing fields at runtime,
// every transport reduces its native format to one of these variants before
// the chunk leaves the package boundary.
type ChunkKind int

const (
	// ChunkEmpty carries no extractable text and is skipped by normalization.
	ChunkEmpty ChunkKind = iota
	// ChunkText carries plain text in Chunk.Text.
	ChunkText
	// ChunkParts carries an ordered list of sub-parts, each contributing text.
	ChunkParts
	// ChunkError is terminal: the transport failed mid-stream. The channel
	// is closed immediately after.
	ChunkError
)

// Part is one element of a multi-part chunk.
type Part struct {
	Text string
}

// Chunk is one unit of a streamed generative response.
type Chunk struct {
	Kind  ChunkKind
	Text  string
	Parts []Part
	Err   error // set only for ChunkError
}

// TextChunk builds a plain-text chunk.
func TextChunk(text string) Chunk {
	return Chunk{Kind: ChunkText, Text: text}
}

// PlainText reduces the chunk to its text content according to its variant.
// Empty and error chunks contribute no text.
func (c Chunk) PlainText() string {
	switch c.Kind {
	case ChunkText:
		return c.Text
	case ChunkParts:
		var out string
		for _, p := range c.Parts {
			out += p.Text
		}
		return out
	default:
		return ""
	}
}

// StreamEventType defines the kinds of normalized stream events.
type StreamEventType string

const (
	StreamEventText  StreamEventType = "text"
	StreamEventDone  StreamEventType = "done"
	StreamEventError StreamEventType = "error"
)

// StreamEvent is one normalized output of a chat stream: a text fragment,
// a clean end of stream, or a terminal transport error. Text already
// delivered before an error event remains valid.
type StreamEvent struct {
	Type    StreamEventType
	Content string
	Err     error
}

// NormalizeStream consumes raw transport chunks and reduces each to plain
// text, delivering fragments on events as soon as they are produced. Chunks
// with no extractable text are skipped. A clean close of the chunk channel
// emits StreamEventDone; a ChunkError emits StreamEventError and stops.
// The events channel is closed before return. Cancelling the context always
// unblocks the call, even when the consumer has stopped draining events.
func NormalizeStream(ctx context.Context, chunks <-chan Chunk, events chan<- StreamEvent) {
	defer close(events)

	send := func(ev StreamEvent) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			// Best effort: deliver the terminal error if the consumer still
			// has room, but never block on a consumer that is gone.
			select {
			case events <- StreamEvent{Type: StreamEventError, Err: ctx.Err()}:
			default:
			}
			return
		case chunk, ok := <-chunks:
			if !ok {
				send(StreamEvent{Type: StreamEventDone})
				return
			}
			if chunk.Kind == ChunkError {
				send(StreamEvent{Type: StreamEventError, Err: chunk.Err})
				return
			}
			if text := chunk.PlainText(); text != "" {
				if !send(StreamEvent{Type: StreamEventText, Content: text}) {
					return
				}
			}
		}
	}
}
