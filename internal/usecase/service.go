package usecase

import (
	"go.uber.org/zap"

	"movie-match/internal/session"
	"movie-match/pkg/utils"
)

type Service struct {
	Session SessionService
	Catalog CatalogService
}

func NewService(
	recommender session.Recommender,
	checker session.ConfigChecker,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Session: NewSessionService(recommender, checker, config, log),
		Catalog: NewCatalogService(log),
	}
}
