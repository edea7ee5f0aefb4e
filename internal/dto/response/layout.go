package response

import (
	"movie-match/pkg/layout"
)

type ChipFrameResponse struct {
	Tag    string  `json:"tag"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ChipLayoutResponse struct {
	Width  float64             `json:"width"`
	Height float64             `json:"height"`
	Chips  []ChipFrameResponse `json:"chips"`
}

// Helper converter
func ChipLayoutToResponse(size layout.Size, placements []layout.Placement) ChipLayoutResponse {
	chips := make([]ChipFrameResponse, 0, len(placements))
	for _, p := range placements {
		chips = append(chips, ChipFrameResponse{
			Tag:    p.Tag,
			X:      p.Frame.X,
			Y:      p.Frame.Y,
			Width:  p.Frame.Width,
			Height: p.Frame.Height,
		})
	}

	return ChipLayoutResponse{
		Width:  size.Width,
		Height: size.Height,
		Chips:  chips,
	}
}
