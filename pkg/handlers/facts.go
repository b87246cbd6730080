package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/repositories"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/services"
)

// FactsHandler serves generated health-fact pages.
type FactsHandler struct {
	patients        repositories.PatientRepository
	facts           services.FactsService
	defaultLanguage string
	logger          *zap.Logger
}

// NewFactsHandler creates a new FactsHandler.
func NewFactsHandler(patients repositories.PatientRepository, facts services.FactsService, defaultLanguage string, logger *zap.Logger) *FactsHandler {
	return &FactsHandler{
		patients:        patients,
		facts:           facts,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// RegisterRoutes registers the facts routes on the given mux.
func (h *FactsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/facts", h.GetFacts)
}

// GetFacts handles GET /api/facts?patient_id=P&page=N&language=L. A failed
// generation returns an empty list with 200; the client treats it as
// "nothing new this time".
func (h *FactsHandler) GetFacts(w http.ResponseWriter, r *http.Request) {
	patientID := r.URL.Query().Get("patient_id")
	if patientID == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_input", "patient_id is required")
		return
	}

	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_input", "page must be a non-negative integer")
			return
		}
		page = parsed
	}

	language := r.URL.Query().Get("language")
	if language == "" {
		language = h.defaultLanguage
	}

	patient, err := h.patients.GetPatient(r.Context(), patientID)
	if err != nil {
		status, code := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to load patient for facts",
				zap.String("patient_id", patientID), zap.Error(err))
		}
		_ = ErrorResponse(w, status, code, err.Error())
		return
	}

	facts := h.facts.ComputeFacts(r.Context(), patient, language, page)

	if err := WriteJSON(w, http.StatusOK, facts); err != nil {
		h.logger.Error("Failed to encode facts response", zap.Error(err))
	}
}
