package interfaces

import (
	"context"

	"auto_swiper/domain/entities"
)

// Matcher locates a reference marker on the current screen.
//
// The implementation is replaceable (classic template correlation, a learned
// detector, a fake in tests) as long as it honors the contract: the best
// match is accepted when its score is greater than or equal to confidence,
// and an inaccessible display surfaces as *entities.CaptureError.
type Matcher interface {
	// Locate searches the current screen for the marker and returns the
	// center coordinate of the best match, or an absent result.
	Locate(ctx context.Context, marker entities.Marker, confidence float64) (entities.MatchResult, error)
}
