// Package planner is the deterministic fallback: it derives a daily plan and
// trend summary purely from aggregated vitals and patient attributes, with no
// generative path involved.
package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/vitals"
)

// CriticalWarningPrefix is the fixed marker a trend insight must start with
// when any reading in the window is critical.
const CriticalWarningPrefix = "WARNING: CRITICAL VITALS DETECTED."

// EmergencyContactTask is the task injected into every plan computed over a
// critical window.
const EmergencyContactTask = "Contact Clinician IMMEDIATELY"

// Glucose state classification over the window mean.
type glucoseState string

const (
	stateStable glucoseState = "Stable"
	stateHigh   glucoseState = "High"
	stateLow    glucoseState = "Low"
)

// Placeholder stats pending real computation from historical windows. These
// are intentionally constant, not derived.
const (
	placeholderStreak    = 5
	placeholderBPControl = 85
)

// Medication that earns a reminder task when present in the patient's list.
const metformin = "Metformin"

// Generate computes a plan and trends for the patient from the trailing
// vitals window. It is a pure function of its inputs: identical inputs give
// byte-identical output, including task order and citation selection.
func Generate(patient *models.Patient, logs []models.LogEntry, articles []models.Article, now time.Time) *models.PlanResult {
	window := vitals.Aggregate(logs, patient.ID, now)

	mean := window.MeanGlucose()
	state := classify(mean)
	insight := insightFor(state, mean)

	critical := window.Critical()
	if critical {
		insight = CriticalWarningPrefix + " " + insight
	}

	tasks := buildSchedule(patient, state, critical)
	citations := selectCitations(patient, state, articles)

	return &models.PlanResult{
		Plan: models.Plan{
			Message: insight,
			Tasks:   tasks,
			Targets: models.Targets{
				GlucoseMin: floatPtr(vitals.GlucoseRangeMin),
				GlucoseMax: floatPtr(vitals.GlucoseRangeMax),
			},
			Citations: citations,
		},
		Trends: models.Trends{
			Insight: insight,
			Stats: models.Stats{
				TIR:       window.TimeInRange(),
				Streak:    placeholderStreak,
				BPControl: placeholderBPControl,
			},
		},
	}
}

func classify(meanGlucose float64) glucoseState {
	if meanGlucose > 180 {
		return stateHigh
	}
	if meanGlucose > 0 && meanGlucose < 70 {
		return stateLow
	}
	return stateStable
}

func insightFor(state glucoseState, meanGlucose float64) string {
	rounded := int(math.Floor(meanGlucose))
	switch state {
	case stateHigh:
		return fmt.Sprintf("Your average glucose (%d mg/dL) is high this week. Focus on low-carb meals.", rounded)
	case stateLow:
		return fmt.Sprintf("Your glucose has been low (%d mg/dL). Ensure you have emergency snacks ready.", rounded)
	default:
		return "Your vitals are stable. Keep up the good work!"
	}
}

// buildSchedule assembles the day's task list. Order is the schedule itself:
// the emergency task (if any) leads, the vitals-logging task always closes
// the day.
func buildSchedule(patient *models.Patient, state glucoseState, critical bool) []models.Task {
	var tasks []models.Task

	if critical {
		tasks = append(tasks, models.Task{Task: EmergencyContactTask, Time: "NOW"})
	}

	tasks = append(tasks, models.Task{Task: "Morning Walk", Time: "07:00 AM"})

	if patient.OnMedication(metformin) {
		tasks = append(tasks, models.Task{Task: "Take Metformin", Time: "08:00 AM"})
	}

	switch state {
	case stateHigh:
		tasks = append(tasks,
			models.Task{Task: "Check Ketones", Time: "10:00 AM"},
			models.Task{Task: "Drink 1L Water", Time: "02:00 PM"},
		)
	case stateLow:
		tasks = append(tasks, models.Task{Task: "Check Glucose (Post-Meal)", Time: "01:00 PM"})
	}

	tasks = append(tasks, models.Task{Task: "Log Vitals", Time: "08:00 PM"})
	return tasks
}

func floatPtr(v float64) *float64 {
	return &v
}
