package render

import "errors"

// Sentinel kinds for rendering errors.
var (
	ErrNoData        = errors.New("nothing to render")
	ErrUnknownFormat = errors.New("unknown image format")
	ErrRender        = errors.New("chart render failed")
)
