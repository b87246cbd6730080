package handlers

import (
	"context"
	"fmt"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/apperrors"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/llm"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/services"
)

// mockDashboardService is a configurable services.DashboardService.
type mockDashboardService struct {
	GetDashboardFunc      func(ctx context.Context, patientID, language string) (*services.Dashboard, error)
	SubmitLogFunc         func(ctx context.Context, entry *models.LogEntry) error
	GenerateSyntheticFunc func(ctx context.Context, patientID string) ([]models.LogEntry, error)

	LastLanguage string
}

func (m *mockDashboardService) GetDashboard(ctx context.Context, patientID, language string) (*services.Dashboard, error) {
	m.LastLanguage = language
	if m.GetDashboardFunc != nil {
		return m.GetDashboardFunc(ctx, patientID, language)
	}
	return &services.Dashboard{Profile: &models.Patient{ID: patientID}}, nil
}

func (m *mockDashboardService) SubmitLog(ctx context.Context, entry *models.LogEntry) error {
	if m.SubmitLogFunc != nil {
		return m.SubmitLogFunc(ctx, entry)
	}
	return nil
}

func (m *mockDashboardService) GenerateSynthetic(ctx context.Context, patientID string) ([]models.LogEntry, error) {
	if m.GenerateSyntheticFunc != nil {
		return m.GenerateSyntheticFunc(ctx, patientID)
	}
	return nil, nil
}

// mockChatService is a configurable services.ChatService.
type mockChatService struct {
	StreamReplyFunc func(ctx context.Context, message string, history []models.ChatMessage, patientCtx *models.PatientContext) (<-chan llm.StreamEvent, error)
}

func (m *mockChatService) StreamReply(ctx context.Context, message string, history []models.ChatMessage, patientCtx *models.PatientContext) (<-chan llm.StreamEvent, error) {
	if m.StreamReplyFunc != nil {
		return m.StreamReplyFunc(ctx, message, history, patientCtx)
	}
	ch := make(chan llm.StreamEvent)
	close(ch)
	return ch, nil
}

// mockFactsService is a configurable services.FactsService.
type mockFactsService struct {
	Facts    []models.Fact
	LastPage int
}

func (m *mockFactsService) ComputeFacts(ctx context.Context, patient *models.Patient, language string, page int) []models.Fact {
	m.LastPage = page
	return m.Facts
}

// mockArticleService is a configurable services.ArticleService.
type mockArticleService struct {
	Drafts     []models.ArticleDraft
	LastTitles []string
}

func (m *mockArticleService) ComputeArticles(ctx context.Context, condition string, existingTitles []string, language string) []models.ArticleDraft {
	m.LastTitles = existingTitles
	return m.Drafts
}

// mockPatientRepository is an in-memory repositories.PatientRepository.
type mockPatientRepository struct {
	patients map[string]*models.Patient
}

func newMockPatientRepository(patients ...*models.Patient) *mockPatientRepository {
	m := &mockPatientRepository{patients: make(map[string]*models.Patient)}
	for _, p := range patients {
		m.patients[p.ID] = p
	}
	return m
}

func (m *mockPatientRepository) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient %s: %w", id, apperrors.ErrNotFound)
	}
	return p, nil
}

func (m *mockPatientRepository) UpsertPatient(ctx context.Context, patient *models.Patient) error {
	m.patients[patient.ID] = patient
	return nil
}

// mockLogRepository is an in-memory repositories.LogRepository.
type mockLogRepository struct {
	logs []models.LogEntry
}

func (m *mockLogRepository) GetLogs(ctx context.Context, patientID string) ([]models.LogEntry, error) {
	var out []models.LogEntry
	for _, l := range m.logs {
		if l.PatientID == patientID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLogRepository) InsertLog(ctx context.Context, entry *models.LogEntry) error {
	m.logs = append(m.logs, *entry)
	return nil
}

// mockArticleRepository is an in-memory repositories.ArticleRepository.
type mockArticleRepository struct {
	articles []models.Article

	GetArticlesErr error
}

func (m *mockArticleRepository) GetArticles(ctx context.Context) ([]models.Article, error) {
	if m.GetArticlesErr != nil {
		return nil, m.GetArticlesErr
	}
	return m.articles, nil
}

func (m *mockArticleRepository) UpsertArticle(ctx context.Context, article *models.Article) error {
	for i, a := range m.articles {
		if a.ID == article.ID {
			m.articles[i] = *article
			return nil
		}
	}
	m.articles = append(m.articles, *article)
	return nil
}
