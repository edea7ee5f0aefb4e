package entity

// Movie is the normalized form of one recommendation result. The
// recommendation provider builds it once from the upstream payload; after
// that it is treated as read-only everywhere (session snapshots hand out
// the same pointer to every listener).
//
// Only Title is guaranteed. Everything else reflects whatever partial data
// the upstream source had, so optional fields stay nil instead of "".
type Movie struct {
	ID          string
	Title       string
	Overview    *string
	PosterURL   *string
	ReleaseDate *string

	// Ordered label lists as the upstream reported them
	Genres    []string
	Platforms []string

	// Optional metadata block
	Director      *string
	Actors        *string
	Runtime       *string
	Rating        *string
	ExternalID    *string
	Year          *string
	Certification *string
	Awards        *string
}
