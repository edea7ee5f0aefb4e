package request

type CreateSessionRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=120"`
}

type IdentityRequest struct {
	// An empty name is allowed, the session falls back to its guest label.
	DisplayName string `json:"display_name" validate:"max=120"`
}

type SelectGenresRequest struct {
	// Labels outside the genre catalog are dropped, not rejected.
	Genres []string `json:"genres" validate:"max=20,dive,min=1,max=40"`
}

type ToggleChipRequest struct {
	Genre string `json:"genre" validate:"required,min=1,max=40"`
}

type GenrePickerRequest struct {
	Open *bool `json:"open" validate:"required"`
}
