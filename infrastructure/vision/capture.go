package vision

import (
	"fmt"
	"image"

	"auto_swiper/domain/entities"
	"auto_swiper/domain/interfaces"

	"github.com/kbinani/screenshot"
)

// Display captures snapshots of one physical display, the shared resource
// every marker search runs against.
type Display struct {
	index int
}

// NewDisplay - creates a capturer for the given display index.
func NewDisplay(index int) *Display {
	return &Display{index: index}
}

// Capture - grabs the region (zero rectangle = whole display) as an RGBA
// snapshot and reports the screen coordinate of its top-left pixel.
func (d *Display) Capture(region image.Rectangle) (*image.RGBA, image.Point, error) {
	if screenshot.NumActiveDisplays() <= d.index {
		return nil, image.Point{}, &entities.CaptureError{
			Cause: fmt.Errorf("display %d not available", d.index),
		}
	}

	bounds := screenshot.GetDisplayBounds(d.index)
	if !region.Empty() {
		bounds = bounds.Intersect(region)
		if bounds.Empty() {
			return nil, image.Point{}, &entities.CaptureError{
				Cause: fmt.Errorf("region %v is outside display %d", region, d.index),
			}
		}
	}

	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, image.Point{}, &entities.CaptureError{Cause: err}
	}
	return img, bounds.Min, nil
}

// Ensure Display implements the Screen interface
var _ interfaces.Screen = (*Display)(nil)
