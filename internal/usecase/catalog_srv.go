package usecase

import (
	"go.uber.org/zap"

	"movie-match/internal/data/entity"
	"movie-match/internal/dto/request"
	"movie-match/internal/dto/response"
	"movie-match/pkg/layout"
)

// defaultChipSpacing is the gap used when a layout request leaves spacing out.
const defaultChipSpacing = 10

type CatalogService interface {
	Genres() []response.GenreResponse
	Platforms() []response.PlatformResponse
	ChipLayout(req *request.ChipLayoutRequest) *response.ChipLayoutResponse
}

type catalogService struct {
	log *zap.Logger
}

func NewCatalogService(log *zap.Logger) CatalogService {
	return &catalogService{
		log: log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) Genres() []response.GenreResponse {
	return response.GenresToResponse(entity.Genres())
}

func (s *catalogService) Platforms() []response.PlatformResponse {
	return response.PlatformsToResponse(entity.Platforms())
}

// ChipLayout measures and places the given chips the way the genre picker
// lays them out, so clients can compute frames server-side.
func (s *catalogService) ChipLayout(req *request.ChipLayoutRequest) *response.ChipLayoutResponse {
	spacing := float64(defaultChipSpacing)
	if req.Spacing != nil {
		spacing = *req.Spacing
	}

	items := make([]layout.Item, len(req.Items))
	for i, chip := range req.Items {
		items[i] = layout.FixedItem{
			ItemTag: chip.Tag,
			Size:    layout.Size{Width: chip.Width, Height: chip.Height},
		}
	}

	flow := layout.Flow{Spacing: spacing}
	size := flow.Measure(items, req.ContainerWidth)
	placements := flow.Place(items, layout.Rect{Width: req.ContainerWidth, Height: size.Height})

	s.log.Debug("Chip layout computed",
		zap.Int("chips", len(items)),
		zap.Float64("container_width", req.ContainerWidth),
		zap.Float64("height", size.Height),
	)

	resp := response.ChipLayoutToResponse(size, placements)
	return &resp
}
