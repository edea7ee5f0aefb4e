package request

type ChipItem struct {
	Tag    string  `json:"tag" validate:"required,max=60"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

type ChipLayoutRequest struct {
	// Zero means unconstrained, chips then stay on a single row.
	ContainerWidth float64 `json:"container_width" validate:"gte=0"`
	// Defaults to 10 when omitted.
	Spacing *float64   `json:"spacing,omitempty" validate:"omitempty,gte=0"`
	Items   []ChipItem `json:"items" validate:"dive"`
}
