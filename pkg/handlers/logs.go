package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/services"
)

// LogsHandler handles vitals log submission and synthetic demo generation.
type LogsHandler struct {
	dashboards services.DashboardService
	logger     *zap.Logger
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(dashboards services.DashboardService, logger *zap.Logger) *LogsHandler {
	return &LogsHandler{dashboards: dashboards, logger: logger}
}

// RegisterRoutes registers the log intake routes on the given mux.
func (h *LogsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/logs", h.SubmitLog)
	mux.HandleFunc("POST /api/patients/{id}/synthetic", h.GenerateSynthetic)
}

// SubmitLog handles POST /api/logs.
func (h *LogsHandler) SubmitLog(w http.ResponseWriter, r *http.Request) {
	var entry models.LogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_input", "malformed log entry")
		return
	}

	if err := h.dashboards.SubmitLog(r.Context(), &entry); err != nil {
		status, code := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Log submission failed", zap.Error(err))
		}
		_ = ErrorResponse(w, status, code, err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusCreated, entry); err != nil {
		h.logger.Error("Failed to encode log response", zap.Error(err))
	}
}

// GenerateSynthetic handles POST /api/patients/{id}/synthetic.
func (h *LogsHandler) GenerateSynthetic(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")

	entries, err := h.dashboards.GenerateSynthetic(r.Context(), patientID)
	if err != nil {
		status, code := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Synthetic generation failed",
				zap.String("patient_id", patientID), zap.Error(err))
		}
		_ = ErrorResponse(w, status, code, err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusCreated, entries); err != nil {
		h.logger.Error("Failed to encode synthetic response", zap.Error(err))
	}
}
