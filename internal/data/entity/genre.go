package entity

import "strings"

// MovieGenre is a closed set: the genre chips in the app are fixed, so a
// value outside the catalog below never enters the system. GenreFromLabel
// is the only gate for external input.
type MovieGenre string

const (
	GenreAction      MovieGenre = "Action"
	GenreAdventure   MovieGenre = "Adventure"
	GenreAnimation   MovieGenre = "Animation"
	GenreComedy      MovieGenre = "Comedy"
	GenreCrime       MovieGenre = "Crime"
	GenreDocumentary MovieGenre = "Documentary"
	GenreDrama       MovieGenre = "Drama"
	GenreFantasy     MovieGenre = "Fantasy"
	GenreHorror      MovieGenre = "Horror"
	GenreMystery     MovieGenre = "Mystery"
	GenreRomance     MovieGenre = "Romance"
	GenreSciFi       MovieGenre = "Sci-Fi"
	GenreThriller    MovieGenre = "Thriller"
	GenreWar         MovieGenre = "War"
	GenreWestern     MovieGenre = "Western"
)

// genreCatalog keeps the display order used by the genre picker.
var genreCatalog = []MovieGenre{
	GenreAction,
	GenreAdventure,
	GenreAnimation,
	GenreComedy,
	GenreCrime,
	GenreDocumentary,
	GenreDrama,
	GenreFantasy,
	GenreHorror,
	GenreMystery,
	GenreRomance,
	GenreSciFi,
	GenreThriller,
	GenreWar,
	GenreWestern,
}

// genreIcons maps each genre to the symbol name the client renders next to
// the chip label.
var genreIcons = map[MovieGenre]string{
	GenreAction:      "flame",
	GenreAdventure:   "map",
	GenreAnimation:   "sparkles",
	GenreComedy:      "face.smiling",
	GenreCrime:       "magnifyingglass",
	GenreDocumentary: "doc.text",
	GenreDrama:       "theatermasks",
	GenreFantasy:     "wand.and.stars",
	GenreHorror:      "eye",
	GenreMystery:     "questionmark.circle",
	GenreRomance:     "heart",
	GenreSciFi:       "atom",
	GenreThriller:    "bolt",
	GenreWar:         "shield",
	GenreWestern:     "lasso",
}

// Label returns the user-facing chip text.
func (g MovieGenre) Label() string {
	return string(g)
}

// Icon returns the symbol name for the genre chip.
func (g MovieGenre) Icon() string {
	return genreIcons[g]
}

// Genres returns the full catalog in display order. The slice is a copy,
// callers can reorder it freely.
func Genres() []MovieGenre {
	out := make([]MovieGenre, len(genreCatalog))
	copy(out, genreCatalog)
	return out
}

// GenreFromLabel resolves a label coming from the API into a catalog genre.
// Matching is case-insensitive so clients don't have to care about casing.
func GenreFromLabel(label string) (MovieGenre, bool) {
	for _, g := range genreCatalog {
		if strings.EqualFold(label, string(g)) {
			return g, true
		}
	}
	return "", false
}

// GenresFromLabels maps a list of labels through GenreFromLabel, silently
// dropping anything outside the catalog. Order and duplicates are kept as
// given, the caller decides what to do about them.
func GenresFromLabels(labels []string) []MovieGenre {
	genres := make([]MovieGenre, 0, len(labels))
	for _, label := range labels {
		if g, ok := GenreFromLabel(label); ok {
			genres = append(genres, g)
		}
	}
	return genres
}
