package models

import "time"

// Reading type labels. The set is open-ended; these are the types the engine
// gives special treatment to.
const (
	ReadingGlucose       = "Glucose"
	ReadingBloodPressure = "Blood Pressure"
	ReadingHeartRate     = "Heart Rate"
)

// LogEntry is a single vitals reading. Entries are append-only per patient.
// For blood pressure the value is the systolic reading and the diastolic
// reading travels in ExtraData.
type LogEntry struct {
	ID        string         `json:"id,omitempty"`
	PatientID string         `json:"patient_id"`
	Timestamp time.Time      `json:"timestamp"`
	Type      string         `json:"type"`
	Value     float64        `json:"value"`
	Unit      string         `json:"unit"`
	ExtraData map[string]any `json:"extra_data,omitempty"`
}

// Diastolic returns the diastolic reading from ExtraData, if present.
// JSON decoding yields float64, YAML seeding yields int; both are accepted.
func (e *LogEntry) Diastolic() (float64, bool) {
	if e.ExtraData == nil {
		return 0, false
	}
	switch v := e.ExtraData["diastolic"].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
