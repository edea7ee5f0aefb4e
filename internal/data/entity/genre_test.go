package entity

import "testing"

func TestGenreCatalog(t *testing.T) {
	genres := Genres()

	if len(genres) != 15 {
		t.Fatalf("expected 15 genres, got %d", len(genres))
	}

	seen := make(map[MovieGenre]bool)
	for _, g := range genres {
		if seen[g] {
			t.Errorf("duplicate genre in catalog: %s", g)
		}
		seen[g] = true

		if g.Label() == "" {
			t.Errorf("genre %q has empty label", g)
		}
		if g.Icon() == "" {
			t.Errorf("genre %q has no icon", g)
		}
	}
}

func TestGenreCatalogIsACopy(t *testing.T) {
	first := Genres()
	first[0] = GenreWestern

	if got := Genres()[0]; got != GenreAction {
		t.Errorf("catalog mutated through returned slice: first genre is %s", got)
	}
}

func TestGenreFromLabel(t *testing.T) {
	t.Run("exact label", func(t *testing.T) {
		g, ok := GenreFromLabel("Comedy")
		if !ok || g != GenreComedy {
			t.Errorf("GenreFromLabel(Comedy) = %v, %v", g, ok)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		g, ok := GenreFromLabel("sci-fi")
		if !ok || g != GenreSciFi {
			t.Errorf("GenreFromLabel(sci-fi) = %v, %v", g, ok)
		}
	})

	t.Run("unknown label", func(t *testing.T) {
		if _, ok := GenreFromLabel("Telenovela"); ok {
			t.Error("expected unknown label to be rejected")
		}
	})

	t.Run("empty label", func(t *testing.T) {
		if _, ok := GenreFromLabel(""); ok {
			t.Error("expected empty label to be rejected")
		}
	})
}

func TestGenresFromLabels(t *testing.T) {
	genres := GenresFromLabels([]string{"Drama", "nope", "horror", ""})

	want := []MovieGenre{GenreDrama, GenreHorror}
	if len(genres) != len(want) {
		t.Fatalf("expected %d genres, got %d (%v)", len(want), len(genres), genres)
	}
	for i := range want {
		if genres[i] != want[i] {
			t.Errorf("genres[%d] = %s, want %s", i, genres[i], want[i])
		}
	}
}

func TestPlatformCatalog(t *testing.T) {
	platforms := Platforms()

	if len(platforms) != 10 {
		t.Fatalf("expected 10 platforms, got %d", len(platforms))
	}

	for _, p := range platforms {
		if p.Label() == "" {
			t.Errorf("platform %q has empty label", p)
		}
		if p.Icon() == "" {
			t.Errorf("platform %q has no icon", p)
		}
	}
}

func TestPlatformFromLabel(t *testing.T) {
	p, ok := PlatformFromLabel("netflix")
	if !ok || p != PlatformNetflix {
		t.Errorf("PlatformFromLabel(netflix) = %v, %v", p, ok)
	}

	if _, ok := PlatformFromLabel("Blockbuster"); ok {
		t.Error("expected unknown platform to be rejected")
	}
}
