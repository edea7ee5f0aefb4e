package layout

import "math"

// Size is a width/height pair in points.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an origin plus a size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MaxX returns the right edge of the rect.
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// Item is one chip to lay out. Tag identifies the chip (the genre label in
// the picker); SizeThatFits reports the chip's natural size for a proposed
// container width.
type Item interface {
	Tag() string
	SizeThatFits(proposedWidth float64) Size
}

// FixedItem is an Item with a fixed size, which is all the chip picker
// needs: chips are measured by the client and sent over as plain numbers.
type FixedItem struct {
	ItemTag string
	Size    Size
}

func (it FixedItem) Tag() string { return it.ItemTag }

func (it FixedItem) SizeThatFits(_ float64) Size { return it.Size }

// Placement is one item's computed frame.
type Placement struct {
	Tag   string `json:"tag"`
	Frame Rect   `json:"frame"`
}

// Flow arranges chips left to right, wrapping to a new row when a chip
// would cross the container's right edge. It is stateless; Spacing is the
// gap between chips both horizontally and vertically.
//
// The wrap advances the cursor by the wrapping chip's own height, not by
// the tallest chip of the row. A chip taller than its row-mates therefore
// does not push the next row far enough down. Genre chips are all the same
// height so the picker never hits this, and the behavior is kept as is for
// compatibility with existing clients.
type Flow struct {
	Spacing float64
}

// Measure returns the bounding box for items laid out in containerWidth.
// Width echoes the proposed width, or 0 when the proposal is unconstrained
// (zero, negative or infinite). Height is the bottom edge reached by the
// placement cursor.
func (f Flow) Measure(items []Item, containerWidth float64) Size {
	if unconstrained(containerWidth) {
		_, height := f.arrange(items, containerWidth, math.Inf(1))
		return Size{Width: 0, Height: height}
	}

	_, height := f.arrange(items, containerWidth, containerWidth)
	return Size{Width: containerWidth, Height: height}
}

// Place assigns each item a frame inside bounds, in item order. The wrap
// check runs in bounds-relative coordinates so a shifted container behaves
// the same as one at the origin.
func (f Flow) Place(items []Item, bounds Rect) []Placement {
	rightEdge := bounds.Width
	if unconstrained(bounds.Width) {
		rightEdge = math.Inf(1)
	}

	offsets, _ := f.arrange(items, bounds.Width, rightEdge)

	placed := make([]Placement, len(items))
	for i, it := range items {
		sz := it.SizeThatFits(bounds.Width)
		placed[i] = Placement{
			Tag: it.Tag(),
			Frame: Rect{
				X:      bounds.X + offsets[i].x,
				Y:      bounds.Y + offsets[i].y,
				Width:  sz.Width,
				Height: sz.Height,
			},
		}
	}
	return placed
}

type offset struct {
	x, y float64
}

// arrange runs the single-pass cursor over the items: place at the cursor,
// advance right, wrap when the next chip would cross maxX. Offsets are
// relative to (0,0); the returned height is the lowest bottom edge the
// cursor produced.
func (f Flow) arrange(items []Item, proposedWidth, maxX float64) ([]offset, float64) {
	offsets := make([]offset, len(items))

	var curX, curY, bottom float64
	for i, it := range items {
		sz := it.SizeThatFits(proposedWidth)

		if curX+sz.Width > maxX {
			curX = 0
			curY += sz.Height + f.Spacing
		}

		offsets[i] = offset{x: curX, y: curY}
		if edge := curY + sz.Height; edge > bottom {
			bottom = edge
		}

		curX += sz.Width + f.Spacing
	}

	return offsets, bottom
}

func unconstrained(width float64) bool {
	return width <= 0 || math.IsInf(width, 1)
}
