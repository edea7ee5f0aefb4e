package response

import (
	"movie-match/internal/data/entity"
)

type MovieResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Overview      *string  `json:"overview,omitempty"`
	PosterURL     *string  `json:"poster_url,omitempty"`
	ReleaseDate   *string  `json:"release_date,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Platforms     []string `json:"platforms,omitempty"`
	Director      *string  `json:"director,omitempty"`
	Actors        *string  `json:"actors,omitempty"`
	Runtime       *string  `json:"runtime,omitempty"`
	Rating        *string  `json:"rating,omitempty"`
	ExternalID    *string  `json:"external_id,omitempty"`
	Year          *string  `json:"year,omitempty"`
	Certification *string  `json:"certification,omitempty"`
	Awards        *string  `json:"awards,omitempty"`
}

// Helper converter
func MovieToResponse(movie *entity.Movie) *MovieResponse {
	if movie == nil {
		return nil
	}

	return &MovieResponse{
		ID:            movie.ID,
		Title:         movie.Title,
		Overview:      movie.Overview,
		PosterURL:     movie.PosterURL,
		ReleaseDate:   movie.ReleaseDate,
		Genres:        movie.Genres,
		Platforms:     movie.Platforms,
		Director:      movie.Director,
		Actors:        movie.Actors,
		Runtime:       movie.Runtime,
		Rating:        movie.Rating,
		ExternalID:    movie.ExternalID,
		Year:          movie.Year,
		Certification: movie.Certification,
		Awards:        movie.Awards,
	}
}
