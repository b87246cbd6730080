package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/database"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
)

// LogRepository defines vitals log data access. The collection is
// append-only per patient.
type LogRepository interface {
	// GetLogs returns all log entries for the patient, newest first.
	GetLogs(ctx context.Context, patientID string) ([]models.LogEntry, error)

	// InsertLog appends one entry, assigning an ID if the entry has none.
	InsertLog(ctx context.Context, entry *models.LogEntry) error
}

type logRepository struct {
	db *database.DB
}

// NewLogRepository creates a new log repository.
func NewLogRepository(db *database.DB) LogRepository {
	return &logRepository{db: db}
}

var _ LogRepository = (*logRepository)(nil)

func (r *logRepository) GetLogs(ctx context.Context, patientID string) ([]models.LogEntry, error) {
	query := `
		SELECT id, patient_id, ts, type, value, unit, extra_data
		FROM vitals_logs
		WHERE patient_id = $1
		ORDER BY ts DESC`

	rows, err := r.db.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	var logs []models.LogEntry
	for rows.Next() {
		var entry models.LogEntry
		var extraJSON []byte
		if err := rows.Scan(&entry.ID, &entry.PatientID, &entry.Timestamp,
			&entry.Type, &entry.Value, &entry.Unit, &extraJSON); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		if len(extraJSON) > 0 {
			if err := json.Unmarshal(extraJSON, &entry.ExtraData); err != nil {
				return nil, fmt.Errorf("unmarshal extra_data: %w", err)
			}
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logs: %w", err)
	}
	return logs, nil
}

func (r *logRepository) InsertLog(ctx context.Context, entry *models.LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	// A nil []byte would encode as SQL NULL and violate the NOT NULL
	// constraint; entries without extra data store an empty object.
	extraJSON := []byte("{}")
	if entry.ExtraData != nil {
		var err error
		extraJSON, err = json.Marshal(entry.ExtraData)
		if err != nil {
			return fmt.Errorf("marshal extra_data: %w", err)
		}
	}

	query := `
		INSERT INTO vitals_logs (id, patient_id, ts, type, value, unit, extra_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.PatientID, entry.Timestamp, entry.Type, entry.Value, entry.Unit, extraJSON)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}
