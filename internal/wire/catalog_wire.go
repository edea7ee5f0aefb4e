package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"movie-match/internal/adaptor"
	"movie-match/pkg/utils"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/genres - List the selectable genres (public)
	r.Get("/api/genres", catalogHandler.GetGenres)

	// GET /api/platforms - List the streaming platforms (public)
	r.Get("/api/platforms", catalogHandler.GetPlatforms)

	// POST /api/chips/layout - Compute chip row wrapping for a container
	r.Post("/api/chips/layout", catalogHandler.ChipLayout)
}
