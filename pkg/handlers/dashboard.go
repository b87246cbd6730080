package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/services"
)

// DashboardHandler serves the assembled per-patient dashboard.
type DashboardHandler struct {
	dashboards      services.DashboardService
	defaultLanguage string
	logger          *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboards services.DashboardService, defaultLanguage string, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboards:      dashboards,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// RegisterRoutes registers the dashboard routes on the given mux.
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dashboard/{id}", h.GetDashboard)
}

// GetDashboard handles GET /api/dashboard/{id}?language=L.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")

	language := r.URL.Query().Get("language")
	if language == "" {
		language = h.defaultLanguage
	}

	dashboard, err := h.dashboards.GetDashboard(r.Context(), patientID, language)
	if err != nil {
		status, code := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Dashboard assembly failed",
				zap.String("patient_id", patientID), zap.Error(err))
		}
		_ = ErrorResponse(w, status, code, err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, dashboard); err != nil {
		h.logger.Error("Failed to encode dashboard response", zap.Error(err))
	}
}
