package layout

import (
	"reflect"
	"testing"
)

func TestChipGroupToggleAppends(t *testing.T) {
	var reported [][]string
	group := NewChipGroup(func(selected []string) {
		reported = append(reported, selected)
	})

	group.Toggle("Comedy")
	group.Toggle("Horror")

	want := []string{"Comedy", "Horror"}
	if got := group.Selected(); !reflect.DeepEqual(got, want) {
		t.Errorf("Selected() = %v, want %v", got, want)
	}

	if len(reported) != 2 {
		t.Fatalf("callback ran %d times, want 2", len(reported))
	}
	if !reflect.DeepEqual(reported[1], want) {
		t.Errorf("callback saw %v, want %v", reported[1], want)
	}
}

func TestChipGroupToggleRemoves(t *testing.T) {
	group := NewChipGroup(nil)

	group.Toggle("Comedy")
	group.Toggle("Horror")
	group.Toggle("Comedy")

	want := []string{"Horror"}
	if got := group.Selected(); !reflect.DeepEqual(got, want) {
		t.Errorf("Selected() after re-toggle = %v, want %v", got, want)
	}
}

func TestChipGroupToggleNeverDuplicates(t *testing.T) {
	group := NewChipGroup(nil)

	group.Toggle("Drama")
	group.Toggle("Drama")
	group.Toggle("Drama")

	want := []string{"Drama"}
	if got := group.Selected(); !reflect.DeepEqual(got, want) {
		t.Errorf("Selected() after three toggles = %v, want %v", got, want)
	}
}

func TestChipGroupToggleReturnsUpdatedSelection(t *testing.T) {
	group := NewChipGroup(nil)

	got := group.Toggle("War")
	if !reflect.DeepEqual(got, []string{"War"}) {
		t.Errorf("Toggle returned %v, want [War]", got)
	}

	got = group.Toggle("War")
	if len(got) != 0 {
		t.Errorf("Toggle returned %v, want empty", got)
	}
}

func TestChipGroupSelectedIsACopy(t *testing.T) {
	group := NewChipGroup(nil)
	group.Toggle("Action")

	first := group.Selected()
	first[0] = "mutated"

	if got := group.Selected(); got[0] != "Action" {
		t.Errorf("selection mutated through returned slice: %v", got)
	}
}

func TestChipGroupReplace(t *testing.T) {
	var reported [][]string
	group := NewChipGroup(func(selected []string) {
		reported = append(reported, selected)
	})
	group.Toggle("Action")
	group.Toggle("Drama")

	got := group.Replace([]string{"Horror", "Western"})
	if !reflect.DeepEqual(got, []string{"Horror", "Western"}) {
		t.Fatalf("Replace returned %v", got)
	}
	if got := group.Selected(); !reflect.DeepEqual(got, []string{"Horror", "Western"}) {
		t.Errorf("Selected() = %v after Replace", got)
	}
	// two toggles plus one replace
	if len(reported) != 3 {
		t.Fatalf("callback fired %d times, want 3", len(reported))
	}
	if !reflect.DeepEqual(reported[2], []string{"Horror", "Western"}) {
		t.Errorf("callback saw %v", reported[2])
	}
}

func TestChipGroupReplaceEmptyClearsSelection(t *testing.T) {
	group := NewChipGroup(nil)
	group.Toggle("Action")

	if got := group.Replace(nil); len(got) != 0 {
		t.Fatalf("Replace(nil) returned %v", got)
	}
	if got := group.Selected(); len(got) != 0 {
		t.Errorf("Selected() = %v after clearing", got)
	}
}
