package vision

import (
	"context"
	"image"
	"image/draw"

	"auto_swiper/domain/entities"
	"auto_swiper/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// TemplateMatcher locates markers by scanning a screen snapshot for the
// position with the smallest normalized per-pixel squared difference.
// Fixed scale and orientation only; the emulator window is assumed pinned.
type TemplateMatcher struct {
	screen interfaces.Screen
	logger *logrus.Logger
}

// NewTemplateMatcher - creates a matcher over the given screen source.
func NewTemplateMatcher(screen interfaces.Screen, logger *logrus.Logger) *TemplateMatcher {
	return &TemplateMatcher{screen: screen, logger: logger}
}

// Locate searches the current screen for the marker. The best candidate is
// accepted when its score is >= confidence; otherwise the result is absent
// and carries the best score seen, for logging.
func (m *TemplateMatcher) Locate(ctx context.Context, marker entities.Marker, confidence float64) (entities.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return entities.MatchResult{}, err
	}

	img, origin, err := m.screen.Capture(marker.Region)
	if err != nil {
		return entities.MatchResult{}, err
	}

	tmpl := toRGBA(marker.Image)
	pt, score := findBest(img, tmpl)

	result := entities.MatchResult{Score: score}
	if pt.X < 0 || score < confidence {
		m.logger.WithFields(logrus.Fields{
			"marker": marker.Name,
			"score":  score,
		}).Debug("Marker not found")
		return result, nil
	}

	result.Found = true
	result.X = origin.X + pt.X - img.Rect.Min.X + tmpl.Rect.Dx()/2
	result.Y = origin.Y + pt.Y - img.Rect.Min.Y + tmpl.Rect.Dy()/2
	m.logger.WithFields(logrus.Fields{
		"marker": marker.Name,
		"score":  score,
		"x":      result.X,
		"y":      result.Y,
	}).Debug("Marker found")
	return result, nil
}

// findBest returns the top-left corner of the best matching position and its
// normalized score in [0, 1]. Position (-1, -1) means the template does not
// fit inside the snapshot at all.
func findBest(img, tmpl *image.RGBA) (image.Point, float64) {
	tw, th := tmpl.Rect.Dx(), tmpl.Rect.Dy()
	if tw == 0 || th == 0 || tw > img.Rect.Dx() || th > img.Rect.Dy() {
		return image.Pt(-1, -1), 0
	}

	maxDiff := int64(tw*th) * 3 * 255 * 255
	min := maxDiff
	best := image.Pt(img.Rect.Min.X, img.Rect.Min.Y)

	endX := img.Rect.Max.X - tw
	endY := img.Rect.Max.Y - th
	for y := img.Rect.Min.Y; y <= endY; y++ {
		for x := img.Rect.Min.X; x <= endX; x++ {
			d := cmpAt(img, tmpl, x, y, min)
			if d < min {
				min = d
				best = image.Pt(x, y)
			}
		}
	}

	return best, 1 - float64(min)/float64(maxDiff)
}

// cmpAt accumulates the squared channel differences of the template placed at
// (offX, offY), aborting early once the running sum exceeds limit.
func cmpAt(img, tmpl *image.RGBA, offX, offY int, limit int64) int64 {
	var diff int64
	tw, th := tmpl.Rect.Dx(), tmpl.Rect.Dy()

	for y := 0; y < th; y++ {
		oi := img.PixOffset(offX, offY+y)
		si := tmpl.PixOffset(tmpl.Rect.Min.X, tmpl.Rect.Min.Y+y)
		for x := 0; x < tw; x++ {
			diff += sqDiff(img.Pix[oi+0], tmpl.Pix[si+0])
			diff += sqDiff(img.Pix[oi+1], tmpl.Pix[si+1])
			diff += sqDiff(img.Pix[oi+2], tmpl.Pix[si+2])
			if diff > limit {
				return diff
			}
			oi += 4
			si += 4
		}
	}
	return diff
}

func sqDiff(a, b uint8) int64 {
	d := int64(a) - int64(b)
	return d * d
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(dst, dst.Rect, src, src.Bounds().Min, draw.Src)
	return dst
}

// Ensure TemplateMatcher implements the Matcher interface
var _ interfaces.Matcher = (*TemplateMatcher)(nil)
