package vision

import (
	"fmt"
	"os"
	"path/filepath"

	"auto_swiper/domain/entities"

	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
	"github.com/vcaesar/imgo"
)

// markerFiles maps each marker to its bundled template image.
var markerFiles = map[entities.MarkerName]string{
	entities.MarkerNoMoreProfiles: "0_CHECK_FOR_ROSE.png",
	entities.MarkerHeart:          "1_HEART.png",
	entities.MarkerComment:        "2_ADD_COMMENT.png",
	entities.MarkerSend:           "3_SEND_LIKE.png",
	entities.MarkerLoading:        "4_LOADING.png",
	entities.MarkerDismiss:        "5_DISMISS_X.png",
}

// LoadMarkers reads the marker template set from dir. A missing template for
// a step the session performs (heart, send, comment when enabled) is a
// configuration error; other markers degrade to permanently absent with a
// warning. Scale != 1 pre-scales each template once for emulators rendered
// at a non-native size.
func LoadMarkers(dir string, confidence, scale float64, commentEnabled bool, logger *logrus.Logger) (map[entities.MarkerName]entities.Marker, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, &entities.ConfigurationError{Resource: fmt.Sprintf("images directory %q", dir), Cause: err}
	}

	required := map[entities.MarkerName]bool{
		entities.MarkerHeart: true,
		entities.MarkerSend:  true,
	}
	if commentEnabled {
		required[entities.MarkerComment] = true
	}

	markers := make(map[entities.MarkerName]entities.Marker, len(markerFiles))
	for name, file := range markerFiles {
		path := filepath.Join(dir, file)
		img, err := imgo.Read(path)
		if err != nil {
			if required[name] {
				return nil, &entities.ConfigurationError{Resource: fmt.Sprintf("marker image %q", path), Cause: err}
			}
			logger.WithError(err).Warnf("Marker %s has no template, treating as permanently absent", name)
			continue
		}

		if scale != 1.0 {
			w := uint(float64(img.Bounds().Dx()) * scale)
			h := uint(float64(img.Bounds().Dy()) * scale)
			img = resize.Resize(w, h, img, resize.Bicubic)
		}

		markers[name] = entities.Marker{
			Name:       name,
			Image:      toRGBA(img),
			Confidence: confidence,
		}
	}
	return markers, nil
}
