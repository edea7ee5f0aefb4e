package layout

import "sync"

// ChipGroup tracks which chips are selected. Every toggle reports the full
// updated selection to the callback, which is how the genre picker feeds
// the session coordinator: the group owns the toggle logic, the consumer
// only ever sees the resulting set.
type ChipGroup struct {
	mu       sync.Mutex
	selected []string
	onChange func(selected []string)
}

// NewChipGroup creates an empty group. onChange may be nil when nobody
// cares about updates (catalog previews).
func NewChipGroup(onChange func(selected []string)) *ChipGroup {
	return &ChipGroup{onChange: onChange}
}

// Toggle flips membership of tag in the selection: appended when absent,
// removed (all occurrences) when present. Returns the updated selection.
// The callback runs under the group lock so concurrent toggles arrive at
// the consumer in order; keep it light.
func (g *ChipGroup) Toggle(tag string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	found := false
	kept := g.selected[:0]
	for _, t := range g.selected {
		if t == tag {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	g.selected = kept

	if !found {
		g.selected = append(g.selected, tag)
	}

	updated := copyTags(g.selected)
	if g.onChange != nil {
		g.onChange(updated)
	}
	return updated
}

// Replace swaps the whole selection in one step and reports it to the
// callback once. Used when a client sends a complete selection instead of
// toggling chip by chip.
func (g *ChipGroup) Replace(tags []string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.selected = copyTags(tags)

	updated := copyTags(g.selected)
	if g.onChange != nil {
		g.onChange(updated)
	}
	return updated
}

// Selected returns a copy of the current selection in toggle order.
func (g *ChipGroup) Selected() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return copyTags(g.selected)
}

func copyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
