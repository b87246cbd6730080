package services

import (
	"context"
	"fmt"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/apperrors"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
)

// mockPatientRepository is an in-memory PatientRepository for tests.
type mockPatientRepository struct {
	patients map[string]*models.Patient

	GetPatientCalls int
}

func newMockPatientRepository(patients ...*models.Patient) *mockPatientRepository {
	m := &mockPatientRepository{patients: make(map[string]*models.Patient)}
	for _, p := range patients {
		m.patients[p.ID] = p
	}
	return m
}

func (m *mockPatientRepository) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	m.GetPatientCalls++
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

// mockLogRepository is an in-memory LogRepository for tests.
type mockLogRepository struct {
	logs []models.LogEntry

	GetLogsErr   error
	InsertLogErr error

	InsertLogCalls int
}

func (m *mockLogRepository) GetLogs(ctx context.Context, patientID string) ([]models.LogEntry, error) {
	if m.GetLogsErr != nil {
		return nil, m.GetLogsErr
	}
	var out []models.LogEntry
	for _, l := range m.logs {
		if l.PatientID == patientID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLogRepository) InsertLog(ctx context.Context, entry *models.LogEntry) error {
	m.InsertLogCalls++
	if m.InsertLogErr != nil {
		return m.InsertLogErr
	}
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("log-%d", m.InsertLogCalls)
	}
	m.logs = append(m.logs, *entry)
	return nil
}

// mockArticleRepository is an in-memory ArticleRepository for tests.
type mockArticleRepository struct {
	articles []models.Article

	GetArticlesErr error

	UpsertArticleCalls int
}

func (m *mockArticleRepository) GetArticles(ctx context.Context) ([]models.Article, error) {
	if m.GetArticlesErr != nil {
		return nil, m.GetArticlesErr
	}
	return m.articles, nil
}

func (m *mockArticleRepository) UpsertArticle(ctx context.Context, article *models.Article) error {
	m.UpsertArticleCalls++
	for i, a := range m.articles {
		if a.ID == article.ID {
			m.articles[i] = *article
			return nil
		}
	}
	m.articles = append(m.articles, *article)
	return nil
}

// mockPlanService returns a canned result without touching any transport.
type mockPlanService struct {
	Result *models.PlanResult

	ComputePlanCalls int
	LastLanguage     string
}

func (m *mockPlanService) ComputePlan(ctx context.Context, patient *models.Patient, logs []models.LogEntry, articles []models.Article, language string) *models.PlanResult {
	m.ComputePlanCalls++
	m.LastLanguage = language
	if m.Result != nil {
		return m.Result
	}
	return &models.PlanResult{
		Plan:   models.Plan{Message: "ok", Tasks: []models.Task{{Task: "Log Vitals", Time: "08:00 PM"}}},
		Trends: models.Trends{Insight: "stable"},
	}
}
