package adaptor

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"movie-match/internal/dto/request"
	"movie-match/internal/usecase"
	"movie-match/pkg/utils"
)

type SessionHandler struct {
	service usecase.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service usecase.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "session")),
	}
}

// CreateSession handles POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest

	// the body is optional, an anonymous session starts as a guest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	created, err := h.service.Create(&req)
	if err != nil {
		h.handleServiceError(w, err, "create session")
		return
	}

	utils.ResponseCreated(w, "Session created successfully", created)
}

// GetSession handles GET /api/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	state, err := h.service.Get(sessionID)
	if err != nil {
		h.handleServiceError(w, err, "get session")
		return
	}

	utils.ResponseSuccess(w, "Session retrieved successfully", state)
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	if err := h.service.Delete(sessionID); err != nil {
		h.handleServiceError(w, err, "delete session")
		return
	}

	utils.ResponseSuccess(w, "Session closed successfully", nil)
}

// SetIdentity handles PUT /api/sessions/{id}/identity
func (h *SessionHandler) SetIdentity(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	var req request.IdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.SetIdentity(sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "set identity")
		return
	}

	utils.ResponseSuccess(w, "Identity updated successfully", state)
}

// SetGenres handles PUT /api/sessions/{id}/genres
func (h *SessionHandler) SetGenres(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	var req request.SelectGenresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.SetGenres(sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "set genres")
		return
	}

	utils.ResponseSuccess(w, "Genres updated successfully", state)
}

// ToggleChip handles POST /api/sessions/{id}/chips/toggle
func (h *SessionHandler) ToggleChip(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	var req request.ToggleChipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.ToggleChip(sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "toggle chip")
		return
	}

	utils.ResponseSuccess(w, "Chip toggled successfully", state)
}

// SetGenrePicker handles PUT /api/sessions/{id}/genre-picker
func (h *SessionHandler) SetGenrePicker(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	var req request.GenrePickerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.SetGenrePicker(sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "set genre picker")
		return
	}

	utils.ResponseSuccess(w, "Genre picker updated successfully", state)
}

// Search handles POST /api/sessions/{id}/search. The call blocks until the
// recommendation settles; failures surface inside the returned state as a
// toast, not as an HTTP error.
func (h *SessionHandler) Search(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	state, err := h.service.Search(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "search")
		return
	}

	utils.ResponseSuccess(w, "Search finished", state)
}

// Confirm handles POST /api/sessions/{id}/confirm
func (h *SessionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	state, err := h.service.Confirm(sessionID)
	if err != nil {
		h.handleServiceError(w, err, "confirm")
		return
	}

	utils.ResponseSuccess(w, "Suggestion confirmed", state)
}

// Retry handles POST /api/sessions/{id}/retry. The new search runs in the
// background; clients watch the stream or poll for the outcome.
func (h *SessionHandler) Retry(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	state, err := h.service.Retry(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "retry search")
		return
	}

	utils.ResponseAccepted(w, "Search restarted", state)
}

// DismissToast handles POST /api/sessions/{id}/toast/dismiss
func (h *SessionHandler) DismissToast(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	state, err := h.service.DismissToast(sessionID)
	if err != nil {
		h.handleServiceError(w, err, "dismiss toast")
		return
	}

	utils.ResponseSuccess(w, "Toast dismissed", state)
}

// handleServiceError maps service errors for session operations
func (h *SessionHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnknownGenre):
		h.log.Warn(operation+" failed - unknown genre", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
