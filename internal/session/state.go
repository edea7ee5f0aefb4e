package session

import (
	"movie-match/internal/data/entity"
)

// Toast is the transient status message shown to the user. Only one toast
// exists per session; whoever writes it last wins.
type Toast struct {
	Message string
	Visible bool
}

// State is everything the client renders for one picker session. The
// coordinator hands out copies, never its own struct, so listeners can
// hold on to a snapshot without racing the next mutation. Movie pointers
// are shared between snapshots; movies are immutable so that is safe.
type State struct {
	// FirstName greets the user, derived from the identity display name.
	FirstName string

	// IsLoading doubles as the single-flight guard: while true, Search is
	// a no-op.
	IsLoading bool

	// SelectedGenres keeps the user's picks in toggle order, no
	// duplicates.
	SelectedGenres []entity.MovieGenre

	// SuggestedMovie is the pending recommendation awaiting confirmation;
	// SelectedMovie is the one the user accepted.
	SuggestedMovie *entity.Movie
	SelectedMovie  *entity.Movie

	Toast Toast

	// Screen flags for the two overlay views.
	ShowMovieConfirmation bool
	ShowGenreSelection    bool
}

// clone copies the state deeply enough that the receiver can never reach
// back into coordinator-owned memory.
func (s State) clone() State {
	out := s
	if s.SelectedGenres != nil {
		out.SelectedGenres = make([]entity.MovieGenre, len(s.SelectedGenres))
		copy(out.SelectedGenres, s.SelectedGenres)
	}
	return out
}
