package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/vitals"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func glucoseLogs(patientID string, values ...float64) []models.LogEntry {
	logs := make([]models.LogEntry, 0, len(values))
	for i, v := range values {
		logs = append(logs, models.LogEntry{
			PatientID: patientID,
			Timestamp: testNow.Add(-time.Duration(i+1) * time.Hour),
			Type:      models.ReadingGlucose,
			Value:     v,
			Unit:      "mg/dL",
		})
	}
	return logs
}

func testPatient() *models.Patient {
	return &models.Patient{
		ID:          "p1",
		Name:        "Ravi",
		Age:         54,
		Condition:   "Type 2 Diabetes",
		Medications: []string{"Metformin"},
	}
}

func testCorpus() []models.Article {
	return []models.Article{
		{ID: 1, Title: "Understanding Your A1C", Category: "Medical"},
		{ID: 2, Title: "Walking for Health", Category: "Exercise"},
		{ID: 3, Title: "Healthy Eating Patterns", Category: "Nutrition"},
	}
}

func taskNames(tasks []models.Task) []string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Task
	}
	return names
}

func TestGenerate_HighGlucoseEndToEnd(t *testing.T) {
	// Patient on Metformin averaging 190 mg/dL: the canonical High case.
	result := Generate(testPatient(), glucoseLogs("p1", 180, 190, 200), testCorpus(), testNow)

	assert.Contains(t, result.Plan.Message, "190")
	assert.Contains(t, result.Plan.Message, "high this week")
	assert.Equal(t, result.Plan.Message, result.Trends.Insight)

	names := taskNames(result.Plan.Tasks)
	assert.Equal(t, []string{
		"Morning Walk",
		"Take Metformin",
		"Check Ketones",
		"Drink 1L Water",
		"Log Vitals",
	}, names)
	assert.Equal(t, "08:00 PM", result.Plan.Tasks[len(result.Plan.Tasks)-1].Time)

	require.Len(t, result.Plan.Citations, 2)
	assert.Equal(t, "Understanding Your A1C", result.Plan.Citations[0].Title)
	assert.Equal(t, "Healthy Eating Patterns", result.Plan.Citations[1].Title)

	// 180 and 190/200: one of three in range.
	assert.Equal(t, 33, result.Trends.Stats.TIR)
	assert.Equal(t, placeholderStreak, result.Trends.Stats.Streak)
	assert.Equal(t, placeholderBPControl, result.Trends.Stats.BPControl)

	require.NotNil(t, result.Plan.Targets.GlucoseMin)
	require.NotNil(t, result.Plan.Targets.GlucoseMax)
	assert.Equal(t, 70.0, *result.Plan.Targets.GlucoseMin)
	assert.Equal(t, 180.0, *result.Plan.Targets.GlucoseMax)
	assert.Nil(t, result.Plan.Targets.BPSystolicMax)
}

func TestGenerate_LowGlucose(t *testing.T) {
	patient := testPatient()
	patient.Medications = nil

	result := Generate(patient, glucoseLogs("p1", 60, 65), testCorpus(), testNow)

	assert.Contains(t, result.Plan.Message, "62")
	assert.Contains(t, result.Plan.Message, "emergency snacks")
	assert.Equal(t, []string{
		"Morning Walk",
		"Check Glucose (Post-Meal)",
		"Log Vitals",
	}, taskNames(result.Plan.Tasks))
}

func TestGenerate_StableNoLogs(t *testing.T) {
	result := Generate(testPatient(), nil, testCorpus(), testNow)

	assert.Contains(t, result.Plan.Message, "stable")
	assert.Equal(t, 0, result.Trends.Stats.TIR)
	assert.Equal(t, []string{
		"Morning Walk",
		"Take Metformin",
		"Log Vitals",
	}, taskNames(result.Plan.Tasks))
}

func TestGenerate_AllInRangeTIRIs100(t *testing.T) {
	result := Generate(testPatient(), glucoseLogs("p1", 70, 120, 180), testCorpus(), testNow)
	assert.Equal(t, 100, result.Trends.Stats.TIR)
}

func TestGenerate_CriticalWindowInjectsEmergencyTask(t *testing.T) {
	tests := []struct {
		name string
		logs []models.LogEntry
	}{
		{"critical glucose", glucoseLogs("p1", 120, 260)},
		{"critical systolic", []models.LogEntry{{
			PatientID: "p1",
			Timestamp: testNow.Add(-time.Hour),
			Type:      models.ReadingBloodPressure,
			Value:     185,
			Unit:      "mmHg",
		}}},
		{"critical diastolic", []models.LogEntry{{
			PatientID: "p1",
			Timestamp: testNow.Add(-time.Hour),
			Type:      models.ReadingBloodPressure,
			Value:     150,
			Unit:      "mmHg",
			ExtraData: map[string]any{"diastolic": 125.0},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Generate(testPatient(), tt.logs, testCorpus(), testNow)

			names := taskNames(result.Plan.Tasks)
			require.NotEmpty(t, names)
			assert.Equal(t, EmergencyContactTask, names[0])
			assert.True(t, strings.HasPrefix(result.Trends.Insight, CriticalWarningPrefix))
			assert.True(t, strings.HasPrefix(result.Plan.Message, CriticalWarningPrefix))
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	patient := testPatient()
	logs := glucoseLogs("p1", 200, 190, 210)
	corpus := testCorpus()

	first := Generate(patient, logs, corpus, testNow)
	second := Generate(patient, logs, corpus, testNow)

	assert.Equal(t, first, second)
}

func TestGenerate_OldReadingsExcluded(t *testing.T) {
	logs := []models.LogEntry{{
		PatientID: "p1",
		Timestamp: testNow.AddDate(0, 0, -vitals.WindowDays-1),
		Type:      models.ReadingGlucose,
		Value:     400,
		Unit:      "mg/dL",
	}}

	result := Generate(testPatient(), logs, testCorpus(), testNow)
	assert.Contains(t, result.Plan.Message, "stable")
	assert.NotContains(t, taskNames(result.Plan.Tasks), EmergencyContactTask)
}

func TestSelectCitations(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		state     glucoseState
		articles  []models.Article
		wantIDs   []int
	}{
		{
			name:      "non-diabetic gets none",
			condition: "Hypertension",
			state:     stateHigh,
			articles:  testCorpus(),
			wantIDs:   nil,
		},
		{
			name:      "diabetic stable gets A1C article",
			condition: "Type 2 Diabetes",
			state:     stateStable,
			articles:  testCorpus(),
			wantIDs:   []int{1},
		},
		{
			name:      "diabetic high gets A1C and Eating",
			condition: "Type 2 Diabetes",
			state:     stateHigh,
			articles:  testCorpus(),
			wantIDs:   []int{1, 3},
		},
		{
			name:      "title miss falls back to positional",
			condition: "Diabetes",
			state:     stateHigh,
			articles: []models.Article{
				{ID: 10, Title: "Sleep"},
				{ID: 11, Title: "Stress"},
				{ID: 12, Title: "Salt"},
			},
			wantIDs: []int{10, 12},
		},
		{
			name:      "small corpus never panics",
			condition: "Diabetes",
			state:     stateHigh,
			articles:  []models.Article{{ID: 10, Title: "Sleep"}},
			wantIDs:   []int{10},
		},
		{
			name:      "empty corpus yields no citations",
			condition: "Diabetes",
			state:     stateHigh,
			articles:  nil,
			wantIDs:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patient := &models.Patient{ID: "p1", Condition: tt.condition}
			got := selectCitations(patient, tt.state, tt.articles)

			var ids []int
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
