package adaptor

import (
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"movie-match/internal/dto/request"
	"movie-match/internal/usecase"
	"movie-match/pkg/utils"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetGenres handles GET /api/genres
func (h *CatalogHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Genres retrieved successfully", h.service.Genres())
}

// GetPlatforms handles GET /api/platforms
func (h *CatalogHandler) GetPlatforms(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Platforms retrieved successfully", h.service.Platforms())
}

// ChipLayout handles POST /api/chips/layout
func (h *CatalogHandler) ChipLayout(w http.ResponseWriter, r *http.Request) {
	var req request.ChipLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	utils.ResponseSuccess(w, "Layout computed successfully", h.service.ChipLayout(&req))
}
