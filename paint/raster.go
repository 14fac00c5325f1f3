package paint

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"boxy/css"
)

// ErrEmptyCanvas is returned when canvas size is not positive.
var ErrEmptyCanvas = errors.New("canvas has no area")

// Rasterize paints display list onto new canvas of given size filled with
// background. Commands are clipped to the canvas, translucent colors are
// blended over what is already painted.
func Rasterize(list DisplayList, width, height int, background css.Color) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyCanvas, width, height)
	}

	canvas := imaging.New(width, height, background.NRGBA())
	bounds := canvas.Bounds()
	for _, cmd := range list {
		r := image.Rect(
			clampInt(cmd.Rect.X, 0, width),
			clampInt(cmd.Rect.Y, 0, height),
			clampInt(cmd.Rect.X+cmd.Rect.Width, 0, width),
			clampInt(cmd.Rect.Y+cmd.Rect.Height, 0, height),
		).Intersect(bounds)
		if r.Empty() || cmd.Color.A == 0 {
			continue
		}
		fill := imaging.New(r.Dx(), r.Dy(), cmd.Color.NRGBA())
		canvas = imaging.Overlay(canvas, fill, r.Min, 1.0)
	}
	return canvas, nil
}

func clampInt(v float64, lo, hi int) int {
	return int(math.Max(float64(lo), math.Min(float64(hi), math.Round(v))))
}
