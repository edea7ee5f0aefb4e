package response

import (
	"movie-match/internal/session"
)

type ToastResponse struct {
	Message string `json:"message"`
	Visible bool   `json:"visible"`
}

type StateResponse struct {
	FirstName             string         `json:"first_name"`
	IsLoading             bool           `json:"is_loading"`
	SelectedGenres        []string       `json:"selected_genres"`
	SuggestedMovie        *MovieResponse `json:"suggested_movie,omitempty"`
	SelectedMovie         *MovieResponse `json:"selected_movie,omitempty"`
	Toast                 ToastResponse  `json:"toast"`
	ShowMovieConfirmation bool           `json:"show_movie_confirmation"`
	ShowGenreSelection    bool           `json:"show_genre_selection"`
}

type SessionResponse struct {
	SessionID string        `json:"session_id"`
	State     StateResponse `json:"state"`
}

// Helper converters
func StateToResponse(state session.State) StateResponse {
	genres := make([]string, 0, len(state.SelectedGenres))
	for _, g := range state.SelectedGenres {
		genres = append(genres, g.Label())
	}

	return StateResponse{
		FirstName:             state.FirstName,
		IsLoading:             state.IsLoading,
		SelectedGenres:        genres,
		SuggestedMovie:        MovieToResponse(state.SuggestedMovie),
		SelectedMovie:         MovieToResponse(state.SelectedMovie),
		Toast:                 ToastResponse{Message: state.Toast.Message, Visible: state.Toast.Visible},
		ShowMovieConfirmation: state.ShowMovieConfirmation,
		ShowGenreSelection:    state.ShowGenreSelection,
	}
}

func SessionToResponse(sessionID string, state session.State) SessionResponse {
	return SessionResponse{
		SessionID: sessionID,
		State:     StateToResponse(state),
	}
}
