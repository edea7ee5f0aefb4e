package response

import (
	"movie-match/internal/data/entity"
)

type GenreResponse struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type PlatformResponse struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Helper converters
func GenresToResponse(genres []entity.MovieGenre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, GenreResponse{Label: g.Label(), Icon: g.Icon()})
	}
	return out
}

func PlatformsToResponse(platforms []entity.StreamingPlatform) []PlatformResponse {
	out := make([]PlatformResponse, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, PlatformResponse{Name: p.Label(), Icon: p.Icon()})
	}
	return out
}
