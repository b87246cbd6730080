package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/apperrors"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
)

func newTestDashboardService(
	patients *mockPatientRepository,
	logs *mockLogRepository,
	articles *mockArticleRepository,
	plans *mockPlanService,
) *dashboardService {
	return &dashboardService{
		patients: patients,
		logs:     logs,
		articles: articles,
		plans:    plans,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
}

func TestGetDashboard_AssemblesView(t *testing.T) {
	now := time.Now()
	patients := newMockPatientRepository(testPatient())
	logs := &mockLogRepository{logs: []models.LogEntry{
		{ID: "a", PatientID: "p1", Type: models.ReadingBloodPressure, Value: 130, Unit: "mmHg",
			Timestamp: now.Add(-2 * time.Hour), ExtraData: map[string]any{"diastolic": 85.0}},
		{ID: "b", PatientID: "p1", Type: models.ReadingGlucose, Value: 120, Unit: "mg/dL",
			Timestamp: now.Add(-time.Hour)},
	}}
	articles := &mockArticleRepository{articles: testCorpus()}
	plans := &mockPlanService{}

	svc := newTestDashboardService(patients, logs, articles, plans)

	dashboard, err := svc.GetDashboard(context.Background(), "p1", "English")
	require.NoError(t, err)

	assert.Equal(t, "Ravi", dashboard.Profile.Name)
	assert.Equal(t, 1, plans.ComputePlanCalls)
	assert.Equal(t, "English", plans.LastLanguage)
	assert.NotEmpty(t, dashboard.Plan.Tasks)

	require.Len(t, dashboard.RecentLogs, 2)
	assert.Equal(t, "glucose", dashboard.RecentLogs[0].Type, "newest reading first")
	assert.Equal(t, "blood_pressure", dashboard.RecentLogs[1].Type)
	assert.Equal(t, 85.0, dashboard.RecentLogs[1].ExtraData["diastolic"])
}

func TestGetDashboard_UnknownPatient(t *testing.T) {
	svc := newTestDashboardService(newMockPatientRepository(), &mockLogRepository{},
		&mockArticleRepository{}, &mockPlanService{})

	_, err := svc.GetDashboard(context.Background(), "nobody", "English")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubmitLog_Validation(t *testing.T) {
	cases := []struct {
		name    string
		entry   models.LogEntry
		wantErr bool
	}{
		{"valid", models.LogEntry{PatientID: "p1", Type: models.ReadingGlucose, Value: 110, Timestamp: time.Now()}, false},
		{"missing patient", models.LogEntry{Type: models.ReadingGlucose, Value: 110, Timestamp: time.Now()}, true},
		{"missing type", models.LogEntry{PatientID: "p1", Value: 110, Timestamp: time.Now()}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs := &mockLogRepository{}
			svc := newTestDashboardService(newMockPatientRepository(testPatient()), logs,
				&mockArticleRepository{}, &mockPlanService{})

			err := svc.SubmitLog(context.Background(), &tc.entry)

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				assert.Equal(t, 0, logs.InsertLogCalls)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, logs.InsertLogCalls)
			}
		})
	}
}

func TestSubmitLog_DefaultsTimestamp(t *testing.T) {
	logs := &mockLogRepository{}
	svc := newTestDashboardService(newMockPatientRepository(testPatient()), logs,
		&mockArticleRepository{}, &mockPlanService{})

	entry := models.LogEntry{PatientID: "p1", Type: models.ReadingHeartRate, Value: 72}
	require.NoError(t, svc.SubmitLog(context.Background(), &entry))

	assert.False(t, entry.Timestamp.IsZero())
}

func TestGenerateSynthetic_InsertsPlausibleReadings(t *testing.T) {
	logs := &mockLogRepository{}
	svc := newTestDashboardService(newMockPatientRepository(testPatient()), logs,
		&mockArticleRepository{}, &mockPlanService{})

	entries, err := svc.GenerateSynthetic(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, entries, syntheticCount)

	for i, entry := range entries {
		assert.Equal(t, "p1", entry.PatientID)
		if i > 0 {
			assert.Equal(t, time.Hour, entries[i-1].Timestamp.Sub(entry.Timestamp),
				"entries are one hour apart")
		}
		switch entry.Type {
		case models.ReadingGlucose:
			assert.GreaterOrEqual(t, entry.Value, 70.0)
			assert.LessOrEqual(t, entry.Value, 200.0)
		case models.ReadingBloodPressure:
			assert.GreaterOrEqual(t, entry.Value, 110.0)
			assert.LessOrEqual(t, entry.Value, 150.0)
			d, ok := entry.Diastolic()
			require.True(t, ok, "blood pressure readings carry a diastolic value")
			assert.GreaterOrEqual(t, d, 70.0)
			assert.LessOrEqual(t, d, 95.0)
		case models.ReadingHeartRate:
			assert.GreaterOrEqual(t, entry.Value, 60.0)
			assert.LessOrEqual(t, entry.Value, 100.0)
		default:
			t.Fatalf("unexpected reading type %q", entry.Type)
		}
	}
}

func TestGenerateSynthetic_UnknownPatient(t *testing.T) {
	logs := &mockLogRepository{}
	svc := newTestDashboardService(newMockPatientRepository(), logs,
		&mockArticleRepository{}, &mockPlanService{})

	_, err := svc.GenerateSynthetic(context.Background(), "nobody")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 0, logs.InsertLogCalls)
}
