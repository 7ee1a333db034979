package entities

import "time"

// StopReason explains why a session reached its terminal state.
type StopReason string

const (
	StopBudgetReached  StopReason = "budget reached"
	StopNoMoreProfiles StopReason = "no more profiles"
	StopMissStreak     StopReason = "too many consecutive misses"
	StopInterrupted    StopReason = "interrupted"
	StopCaptureFailure StopReason = "capture failure"
)

// SessionStats is the running state of one automation session. It is mutated
// only by the loop controller and read after the session for the summary.
type SessionStats struct {
	Likes      int        `json:"likes"`  // completed send actions
	Clicks     int        `json:"clicks"` // successful clicks of any marker
	Skips      int        `json:"skips"`  // steps abandoned after retry exhaustion
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	StopReason StopReason `json:"stop_reason"`
}

// Elapsed returns the session duration, using the current time while the
// session is still running.
func (s SessionStats) Elapsed() time.Duration {
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
