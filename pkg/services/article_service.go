package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/llm"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/logging"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/prompts"
)

const articlesTemperature = 0.8

// ArticleService generates batches of educational article drafts.
type ArticleService interface {
	// ComputeArticles returns new article drafts for the condition, steering
	// away from the given existing titles. A transport or parse failure
	// yields an empty slice, never an error.
	ComputeArticles(ctx context.Context, condition string, existingTitles []string, language string) []models.ArticleDraft
}

type articleService struct {
	client llm.Client
	logger *zap.Logger
}

// NewArticleService creates an article service backed by the given transport.
func NewArticleService(client llm.Client, logger *zap.Logger) ArticleService {
	return &articleService{
		client: client,
		logger: logger.Named("article_service"),
	}
}

var _ ArticleService = (*articleService)(nil)

type articlesPayload struct {
	Articles []models.ArticleDraft `json:"articles"`
}

func (s *articleService) ComputeArticles(ctx context.Context, condition string, existingTitles []string, language string) []models.ArticleDraft {
	prompt := prompts.BuildArticlesPrompt(condition, existingTitles, language)

	response, err := s.client.GenerateResponse(ctx, prompt, prompts.ArticlesSystemMessage, articlesTemperature)
	if err != nil {
		s.logger.Warn("Article generation failed",
			zap.String("condition", condition),
			zap.String("reason", logging.SanitizeError(err)))
		return []models.ArticleDraft{}
	}

	payload, err := llm.ParseJSONResponse[articlesPayload](response)
	if err != nil {
		s.logger.Warn("Article response unparseable",
			zap.String("condition", condition),
			zap.String("reason", logging.SanitizeError(err)))
		return []models.ArticleDraft{}
	}

	drafts := make([]models.ArticleDraft, 0, len(payload.Articles))
	for _, d := range payload.Articles {
		if d.Title == "" {
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts
}
