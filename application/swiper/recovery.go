package swiper

// missTracker is the bounded escalation state behind skip-and-continue: any
// successful click resets the streak, and a streak of skipped steps reaching
// the threshold ends the session instead of letting it spin indefinitely.
type missTracker struct {
	threshold int
	streak    int
}

func newMissTracker(threshold int) *missTracker {
	return &missTracker{threshold: threshold}
}

// observeMiss - records one skipped step and reports whether the streak
// reached the escalation threshold.
func (t *missTracker) observeMiss() bool {
	t.streak++
	return t.streak >= t.threshold
}

// observeSuccess - resets the streak.
func (t *missTracker) observeSuccess() {
	t.streak = 0
}
