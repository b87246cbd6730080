package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/llm"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/prompts"
)

// eventBuffer gives the normalizer headroom so a slow HTTP writer does not
// immediately stall the transport goroutine.
const eventBuffer = 16

// ChatService streams conversational replies grounded in patient data.
type ChatService interface {
	// StreamReply starts a streaming answer to the user message. The
	// returned channel delivers text fragments followed by a done or error
	// event, then closes. An error return means the stream never started;
	// fragments already received stay valid even if an error event follows.
	StreamReply(ctx context.Context, message string, history []models.ChatMessage, patientCtx *models.PatientContext) (<-chan llm.StreamEvent, error)
}

type chatService struct {
	client llm.Client
	logger *zap.Logger
}

// NewChatService creates a chat service backed by the given transport.
func NewChatService(client llm.Client, logger *zap.Logger) ChatService {
	return &chatService{
		client: client,
		logger: logger.Named("chat_service"),
	}
}

var _ ChatService = (*chatService)(nil)

func (s *chatService) StreamReply(ctx context.Context, message string, history []models.ChatMessage, patientCtx *models.PatientContext) (<-chan llm.StreamEvent, error) {
	prompt := prompts.BuildChatPrompt(message, history, patientCtx)

	chunks, err := s.client.GenerateStream(ctx, prompt, prompts.ChatSystemMessage)
	if err != nil {
		return nil, fmt.Errorf("start chat stream: %w", err)
	}

	s.logger.Debug("Chat stream started",
		zap.String("patient", patientCtx.Name),
		zap.String("model", s.client.Model()))

	events := make(chan llm.StreamEvent, eventBuffer)
	go llm.NormalizeStream(ctx, chunks, events)
	return events, nil
}
