package adaptor

import (
	"go.uber.org/zap"

	"movie-match/internal/usecase"
	"movie-match/pkg/utils"
)

type Handler struct {
	Session *SessionHandler
	Catalog *CatalogHandler
	Stream  *StreamHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Session: NewSessionHandler(service.Session, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
		Stream:  NewStreamHandler(service.Session, config.CORS.AllowedOrigins, log),
	}
}
