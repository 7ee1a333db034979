package interfaces

import "image"

// Screen captures raster snapshots of the automation target.
type Screen interface {
	// Capture grabs the given region of the display, or the whole display
	// when the region is the zero rectangle. The returned origin is the
	// screen coordinate of the snapshot's top-left pixel.
	Capture(region image.Rectangle) (img *image.RGBA, origin image.Point, err error)
}
