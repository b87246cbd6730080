package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/apperrors"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/repositories"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/vitals"
)

// syntheticCount is how many demo readings one generation round inserts.
const syntheticCount = 5

// Dashboard is the assembled per-patient view: profile, current plan,
// trends, and recent readings shaped for presentation.
type Dashboard struct {
	Profile    *models.Patient `json:"profile"`
	Plan       models.Plan     `json:"plan"`
	Trends     models.Trends   `json:"trends"`
	RecentLogs []RecentLog     `json:"recent_logs"`
}

// RecentLog is a log entry shaped for display. Type is normalized to a
// lowercase underscore key ("Blood Pressure" becomes "blood_pressure").
type RecentLog struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Value     float64        `json:"value"`
	Unit      string         `json:"unit"`
	Timestamp time.Time      `json:"timestamp"`
	ExtraData map[string]any `json:"extra_data,omitempty"`
}

// DashboardService assembles dashboards and manages vitals log intake.
type DashboardService interface {
	// GetDashboard loads the patient, runs the plan computation, and shapes
	// the response. Unknown patients surface apperrors.ErrNotFound.
	GetDashboard(ctx context.Context, patientID string, language string) (*Dashboard, error)

	// SubmitLog validates and persists one vitals reading.
	SubmitLog(ctx context.Context, entry *models.LogEntry) error

	// GenerateSynthetic inserts a batch of randomized recent readings for
	// demos, returning what was inserted.
	GenerateSynthetic(ctx context.Context, patientID string) ([]models.LogEntry, error)
}

type dashboardService struct {
	patients repositories.PatientRepository
	logs     repositories.LogRepository
	articles repositories.ArticleRepository
	plans    PlanService
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(
	patients repositories.PatientRepository,
	logs repositories.LogRepository,
	articles repositories.ArticleRepository,
	plans PlanService,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		patients: patients,
		logs:     logs,
		articles: articles,
		plans:    plans,
		logger:   logger.Named("dashboard_service"),
		now:      time.Now,
	}
}

var _ DashboardService = (*dashboardService)(nil)

func (s *dashboardService) GetDashboard(ctx context.Context, patientID string, language string) (*Dashboard, error) {
	patient, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logs.GetLogs(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}

	articles, err := s.articles.GetArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}

	result := s.plans.ComputePlan(ctx, patient, logs, articles, language)

	recent := vitals.MostRecentFirst(logs)
	recentLogs := make([]RecentLog, len(recent))
	for i, entry := range recent {
		recentLogs[i] = RecentLog{
			ID:        entry.ID,
			Type:      displayType(entry.Type),
			Value:     entry.Value,
			Unit:      entry.Unit,
			Timestamp: entry.Timestamp,
			ExtraData: entry.ExtraData,
		}
	}

	return &Dashboard{
		Profile:    patient,
		Plan:       result.Plan,
		Trends:     result.Trends,
		RecentLogs: recentLogs,
	}, nil
}

func (s *dashboardService) SubmitLog(ctx context.Context, entry *models.LogEntry) error {
	if entry.PatientID == "" {
		return fmt.Errorf("patient_id is required: %w", apperrors.ErrInvalidInput)
	}
	if entry.Type == "" {
		return fmt.Errorf("type is required: %w", apperrors.ErrInvalidInput)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}

	if err := s.logs.InsertLog(ctx, entry); err != nil {
		return fmt.Errorf("persist log: %w", err)
	}

	s.logger.Info("Log submitted",
		zap.String("patient_id", entry.PatientID),
		zap.String("type", entry.Type),
		zap.Float64("value", entry.Value))
	return nil
}

func (s *dashboardService) GenerateSynthetic(ctx context.Context, patientID string) ([]models.LogEntry, error) {
	if _, err := s.patients.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}

	now := s.now()
	entries := make([]models.LogEntry, 0, syntheticCount)
	for i := 0; i < syntheticCount; i++ {
		entry := syntheticEntry(patientID, now.Add(-time.Duration(i)*time.Hour))
		if err := s.logs.InsertLog(ctx, &entry); err != nil {
			return nil, fmt.Errorf("insert synthetic log: %w", err)
		}
		entries = append(entries, entry)
	}

	s.logger.Info("Generated synthetic logs",
		zap.String("patient_id", patientID),
		zap.Int("count", len(entries)))
	return entries, nil
}

// syntheticEntry produces one plausibly-ranged random reading. Values are
// whole numbers so demo data looks like meter output.
func syntheticEntry(patientID string, ts time.Time) models.LogEntry {
	entry := models.LogEntry{
		PatientID: patientID,
		Timestamp: ts,
	}

	switch rand.IntN(3) {
	case 0:
		entry.Type = models.ReadingGlucose
		entry.Value = float64(70 + rand.IntN(131)) // 70-200 mg/dL
		entry.Unit = "mg/dL"
	case 1:
		entry.Type = models.ReadingBloodPressure
		entry.Value = float64(110 + rand.IntN(41)) // 110-150 systolic
		entry.Unit = "mmHg"
		entry.ExtraData = map[string]any{
			"diastolic": float64(70 + rand.IntN(26)), // 70-95
		}
	default:
		entry.Type = models.ReadingHeartRate
		entry.Value = float64(60 + rand.IntN(41)) // 60-100 bpm
		entry.Unit = "bpm"
	}

	return entry
}

// displayType maps a reading type to its presentation key.
func displayType(readingType string) string {
	return strings.ReplaceAll(strings.ToLower(readingType), " ", "_")
}
