// Package vitals windows and summarizes a patient's vitals log stream.
package vitals

import (
	"math"
	"sort"
	"time"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
)

// WindowDays is the trailing analysis period. Readings older than this are
// excluded entirely; there is no decay weighting.
const WindowDays = 7

// Clinically acceptable glucose band in mg/dL, inclusive.
const (
	GlucoseRangeMin = 70
	GlucoseRangeMax = 180
)

// Critical-vitals thresholds. Any reading beyond these makes the whole
// window critical and triggers emergency-task injection downstream.
const (
	CriticalGlucose     = 250 // mg/dL
	CriticalBPSystolic  = 180 // mmHg
	CriticalBPDiastolic = 120 // mmHg
)

// Window is the subset of a patient's logs within the trailing analysis
// period, partitioned by reading type. Partition ordering is unspecified;
// all aggregates are order-independent.
type Window struct {
	PatientID string
	From      time.Time
	To        time.Time

	All           []models.LogEntry
	Glucose       []models.LogEntry
	BloodPressure []models.LogEntry
	HeartRate     []models.LogEntry
	Other         []models.LogEntry
}

// Aggregate windows the log collection for one patient to [now-7d, now] and
// partitions it by reading type. An empty window is valid; every aggregate
// degrades to zero.
func Aggregate(logs []models.LogEntry, patientID string, now time.Time) Window {
	w := Window{
		PatientID: patientID,
		From:      now.AddDate(0, 0, -WindowDays),
		To:        now,
	}

	for _, entry := range logs {
		if entry.PatientID != patientID {
			continue
		}
		if entry.Timestamp.Before(w.From) || entry.Timestamp.After(w.To) {
			continue
		}

		w.All = append(w.All, entry)
		switch entry.Type {
		case models.ReadingGlucose:
			w.Glucose = append(w.Glucose, entry)
		case models.ReadingBloodPressure:
			w.BloodPressure = append(w.BloodPressure, entry)
		case models.ReadingHeartRate:
			w.HeartRate = append(w.HeartRate, entry)
		default:
			w.Other = append(w.Other, entry)
		}
	}

	return w
}

// MeanGlucose returns the mean glucose over the window, or 0 when the window
// has no glucose readings.
func (w Window) MeanGlucose() float64 {
	if len(w.Glucose) == 0 {
		return 0
	}
	sum := 0.0
	for _, entry := range w.Glucose {
		sum += entry.Value
	}
	return sum / float64(len(w.Glucose))
}

// TimeInRange returns the fraction of glucose readings inside
// [GlucoseRangeMin, GlucoseRangeMax] as a floored integer percentage.
// Zero glucose readings yields 0, never an error.
func (w Window) TimeInRange() int {
	if len(w.Glucose) == 0 {
		return 0
	}
	inRange := 0
	for _, entry := range w.Glucose {
		if entry.Value >= GlucoseRangeMin && entry.Value <= GlucoseRangeMax {
			inRange++
		}
	}
	return int(math.Floor(float64(inRange) / float64(len(w.Glucose)) * 100))
}

// Critical reports whether any reading in the window crosses a critical
// threshold: glucose above 250 mg/dL, or blood pressure above 180 systolic
// or 120 diastolic.
func (w Window) Critical() bool {
	for _, entry := range w.Glucose {
		if entry.Value > CriticalGlucose {
			return true
		}
	}
	for _, entry := range w.BloodPressure {
		if entry.Value > CriticalBPSystolic {
			return true
		}
		if d, ok := entry.Diastolic(); ok && d > CriticalBPDiastolic {
			return true
		}
	}
	return false
}

// MostRecentFirst returns a copy of the given logs sorted newest first, the
// display ordering for dashboards.
func MostRecentFirst(logs []models.LogEntry) []models.LogEntry {
	sorted := make([]models.LogEntry, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted
}
