package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/llm"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/logging"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/prompts"
)

// factsTemperature is high on purpose: facts pages should vary between
// requests for the same patient.
const factsTemperature = 0.9

// factsPerPage is how many facts one page asks for; fact IDs are derived
// from it so consecutive pages never collide.
const factsPerPage = 10

// FactsService generates pages of short health facts.
type FactsService interface {
	// ComputeFacts returns one page of facts for the patient. A transport or
	// parse failure yields an empty slice, never an error; there is no
	// deterministic fallback for facts.
	ComputeFacts(ctx context.Context, patient *models.Patient, language string, page int) []models.Fact
}

type factsService struct {
	client llm.Client
	logger *zap.Logger
}

// NewFactsService creates a facts service backed by the given transport.
func NewFactsService(client llm.Client, logger *zap.Logger) FactsService {
	return &factsService{
		client: client,
		logger: logger.Named("facts_service"),
	}
}

var _ FactsService = (*factsService)(nil)

// factsPayload is the mandated response shape.
type factsPayload struct {
	Facts []struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	} `json:"facts"`
}

func (s *factsService) ComputeFacts(ctx context.Context, patient *models.Patient, language string, page int) []models.Fact {
	prompt := prompts.BuildFactsPrompt(patient, language, page)

	response, err := s.client.GenerateResponse(ctx, prompt, prompts.FactsSystemMessage, factsTemperature)
	if err != nil {
		s.logger.Warn("Facts generation failed",
			zap.String("patient_id", patient.ID),
			zap.Int("page", page),
			zap.String("reason", logging.SanitizeError(err)))
		return []models.Fact{}
	}

	payload, err := llm.ParseJSONResponse[factsPayload](response)
	if err != nil {
		s.logger.Warn("Facts response unparseable",
			zap.String("patient_id", patient.ID),
			zap.Int("page", page),
			zap.String("reason", logging.SanitizeError(err)))
		return []models.Fact{}
	}

	facts := make([]models.Fact, 0, len(payload.Facts))
	for i, f := range payload.Facts {
		if f.Title == "" && f.Content == "" {
			continue
		}
		facts = append(facts, models.Fact{
			ID:      page*factsPerPage + i,
			Title:   f.Title,
			Content: f.Content,
			Tags:    f.Tags,
		})
	}
	return facts
}
