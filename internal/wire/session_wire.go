package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"movie-match/internal/adaptor"
	"movie-match/pkg/utils"
)

func wireSession(
	r chi.Router,
	sessionHandler *adaptor.SessionHandler,
	streamHandler *adaptor.StreamHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/sessions", func(r chi.Router) {
		// POST /api/sessions - Start a new session (body optional)
		r.Post("/", sessionHandler.CreateSession)

		r.Route("/{id}", func(r chi.Router) {
			// ==================== SESSION STATE ====================
			// GET /api/sessions/{id} - Current state snapshot
			r.Get("/", sessionHandler.GetSession)

			// DELETE /api/sessions/{id} - Close the session
			r.Delete("/", sessionHandler.DeleteSession)

			// PUT /api/sessions/{id}/identity - Rename the session owner
			r.Put("/identity", sessionHandler.SetIdentity)

			// PUT /api/sessions/{id}/genres - Replace the genre selection
			r.Put("/genres", sessionHandler.SetGenres)

			// POST /api/sessions/{id}/chips/toggle - Flip one genre chip
			r.Post("/chips/toggle", sessionHandler.ToggleChip)

			// PUT /api/sessions/{id}/genre-picker - Open or close the picker
			r.Put("/genre-picker", sessionHandler.SetGenrePicker)

			// POST /api/sessions/{id}/toast/dismiss - Clear the active toast
			r.Post("/toast/dismiss", sessionHandler.DismissToast)

			// ==================== SEARCH FLOW ====================
			// POST /api/sessions/{id}/search - Run a recommendation search
			r.Post("/search", sessionHandler.Search)

			// POST /api/sessions/{id}/confirm - Accept the suggested movie
			r.Post("/confirm", sessionHandler.Confirm)

			// POST /api/sessions/{id}/retry - Discard the suggestion, search again
			r.Post("/retry", sessionHandler.Retry)

			// ==================== LIVE UPDATES ====================
			// GET /api/sessions/{id}/stream - Websocket push of state changes
			r.Get("/stream", streamHandler.Stream)
		})
	})
}
