package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/llm"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/repositories"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/services"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/vitals"
)

// ApologeticMessage is sent verbatim when a chat stream cannot start at all.
const ApologeticMessage = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment."

// InterruptionNotice is appended after partial output when a stream fails
// midway. The partial answer above it stays valid.
const InterruptionNotice = "\n\n[Response interrupted. Please ask again.]"

// ChatHandler serves the streaming conversational endpoint.
type ChatHandler struct {
	patients repositories.PatientRepository
	logs     repositories.LogRepository
	chat     services.ChatService
	logger   *zap.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(patients repositories.PatientRepository, logs repositories.LogRepository, chat services.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		patients: patients,
		logs:     logs,
		chat:     chat,
		logger:   logger,
	}
}

// RegisterRoutes registers the chat route on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.Chat)
}

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	PatientID string               `json:"patient_id"`
	Message   string               `json:"message"`
	History   []models.ChatMessage `json:"history"`
}

// Chat handles POST /api/chat. The response is text/plain, flushed fragment
// by fragment as the model produces them.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_input", "malformed request")
		return
	}
	if req.PatientID == "" || req.Message == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_input", "patient_id and message are required")
		return
	}

	patient, err := h.patients.GetPatient(r.Context(), req.PatientID)
	if err != nil {
		status, code := statusForError(err)
		_ = ErrorResponse(w, status, code, err.Error())
		return
	}

	logs, err := h.logs.GetLogs(r.Context(), req.PatientID)
	if err != nil {
		h.logger.Error("Failed to load logs for chat",
			zap.String("patient_id", req.PatientID), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to load vitals")
		return
	}

	patientCtx := &models.PatientContext{
		Name:       patient.Name,
		Condition:  patient.Condition,
		RecentLogs: vitals.MostRecentFirst(logs),
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	flusher, _ := w.(http.Flusher)

	events, err := h.chat.StreamReply(r.Context(), req.Message, req.History, patientCtx)
	if err != nil {
		h.logger.Warn("Chat stream failed to start",
			zap.String("patient_id", req.PatientID), zap.Error(err))
		_, _ = w.Write([]byte(ApologeticMessage))
		return
	}

	for event := range events {
		switch event.Type {
		case llm.StreamEventText:
			if _, err := w.Write([]byte(event.Content)); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		case llm.StreamEventError:
			h.logger.Warn("Chat stream interrupted",
				zap.String("patient_id", req.PatientID), zap.Error(event.Err))
			_, _ = w.Write([]byte(InterruptionNotice))
			return
		case llm.StreamEventDone:
			return
		}
	}
}
