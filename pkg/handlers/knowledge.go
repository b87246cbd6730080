package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/repositories"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/services"
)

// KnowledgeHandler serves the Knowledge Hub article corpus: listing,
// caller-submitted articles, and generated batches.
type KnowledgeHandler struct {
	articles        repositories.ArticleRepository
	generator       services.ArticleService
	defaultLanguage string
	logger          *zap.Logger
}

// NewKnowledgeHandler creates a new KnowledgeHandler.
func NewKnowledgeHandler(articles repositories.ArticleRepository, generator services.ArticleService, defaultLanguage string, logger *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		articles:        articles,
		generator:       generator,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// RegisterRoutes registers the Knowledge Hub routes on the given mux.
func (h *KnowledgeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/articles", h.ListArticles)
	mux.HandleFunc("POST /api/articles", h.CreateArticle)
	mux.HandleFunc("POST /api/articles/generate", h.GenerateArticles)
}

// ListArticles handles GET /api/articles.
func (h *KnowledgeHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.GetArticles(r.Context())
	if err != nil {
		h.logger.Error("Failed to load articles", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to load articles")
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}

	if err := WriteJSON(w, http.StatusOK, articles); err != nil {
		h.logger.Error("Failed to encode articles response", zap.Error(err))
	}
}

// CreateArticle handles POST /api/articles. The caller assigns the numeric ID.
func (h *KnowledgeHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var article models.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_input", "malformed article")
		return
	}
	if article.ID <= 0 || article.Title == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_input", "article requires a positive id and a title")
		return
	}

	if err := h.articles.UpsertArticle(r.Context(), &article); err != nil {
		h.logger.Error("Failed to store article", zap.Int("id", article.ID), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to store article")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, article); err != nil {
		h.logger.Error("Failed to encode article response", zap.Error(err))
	}
}

// generateArticlesRequest is the body of POST /api/articles/generate.
type generateArticlesRequest struct {
	Condition string `json:"condition"`
	Language  string `json:"language"`
}

// GenerateArticles handles POST /api/articles/generate: it asks the
// generator for new drafts steering away from existing titles, assigns IDs
// past the current maximum, and persists the batch. A failed generation
// yields an empty list, not an error.
func (h *KnowledgeHandler) GenerateArticles(w http.ResponseWriter, r *http.Request) {
	var req generateArticlesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_input", "malformed request")
		return
	}
	if req.Condition == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_input", "condition is required")
		return
	}
	if req.Language == "" {
		req.Language = h.defaultLanguage
	}

	existing, err := h.articles.GetArticles(r.Context())
	if err != nil {
		h.logger.Error("Failed to load existing articles", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to load articles")
		return
	}

	titles := make([]string, len(existing))
	maxID := 0
	for i, a := range existing {
		titles[i] = a.Title
		if a.ID > maxID {
			maxID = a.ID
		}
	}

	drafts := h.generator.ComputeArticles(r.Context(), req.Condition, titles, req.Language)

	created := make([]models.Article, 0, len(drafts))
	for i, d := range drafts {
		article := models.Article{
			ID:       maxID + i + 1,
			Title:    d.Title,
			Category: d.Category,
			Summary:  d.Summary,
			Content:  d.Content,
		}
		if err := h.articles.UpsertArticle(r.Context(), &article); err != nil {
			h.logger.Error("Failed to store generated article",
				zap.Int("id", article.ID), zap.Error(err))
			_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to store generated article")
			return
		}
		created = append(created, article)
	}

	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to encode generated articles", zap.Error(err))
	}
}
