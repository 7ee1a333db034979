package entities

import "image"

// MarkerName identifies one recognizable on-screen state.
type MarkerName string

const (
	// MarkerLoading is the spinner shown while the next profile loads.
	MarkerLoading MarkerName = "loading"
	// MarkerNoMoreProfiles is the rose icon shown when the queue is exhausted.
	MarkerNoMoreProfiles MarkerName = "no_more_profiles"
	// MarkerHeart is the like trigger.
	MarkerHeart MarkerName = "heart"
	// MarkerComment is the add-comment entry field.
	MarkerComment MarkerName = "comment"
	// MarkerSend is the send/confirm button.
	MarkerSend MarkerName = "send"
	// MarkerDismiss is the out-of-band overlay close button, checked on every poll.
	MarkerDismiss MarkerName = "dismiss"
)

// Marker is an immutable named template representing one on-screen state.
// Created at startup from bundled assets and never mutated afterwards.
type Marker struct {
	Name       MarkerName
	Image      image.Image
	Confidence float64         // minimum accepted match score, in (0, 1]
	Region     image.Rectangle // optional search sub-region; zero means full screen
}
