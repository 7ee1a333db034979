package swiper

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"auto_swiper/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMatcher serves scripted results per marker, falling back to a default
// once the script is consumed.
type fakeMatcher struct {
	scripted map[entities.MarkerName][]entities.MatchResult
	fallback map[entities.MarkerName]entities.MatchResult
	err      error
	calls    []entities.MarkerName
}

func (m *fakeMatcher) Locate(_ context.Context, marker entities.Marker, _ float64) (entities.MatchResult, error) {
	m.calls = append(m.calls, marker.Name)
	if m.err != nil {
		return entities.MatchResult{}, m.err
	}
	if q := m.scripted[marker.Name]; len(q) > 0 {
		res := q[0]
		m.scripted[marker.Name] = q[1:]
		return res, nil
	}
	return m.fallback[marker.Name], nil
}

type click struct{ X, Y int }

type fakeInput struct {
	clicks   []click
	typed    []string
	clickErr error
}

func (i *fakeInput) MoveTo(x, y int) error { return nil }

func (i *fakeInput) Click(_ context.Context, x, y int) error {
	if i.clickErr != nil {
		return i.clickErr
	}
	i.clicks = append(i.clicks, click{x, y})
	return nil
}

func (i *fakeInput) TypeText(_ context.Context, text string) error {
	i.typed = append(i.typed, text)
	return nil
}

type fakePool struct{ msg string }

func (p *fakePool) Pick() string { return p.msg }
func (p *fakePool) Size() int    { return 1 }

func testMarkers() map[entities.MarkerName]entities.Marker {
	names := []entities.MarkerName{
		entities.MarkerLoading,
		entities.MarkerNoMoreProfiles,
		entities.MarkerHeart,
		entities.MarkerComment,
		entities.MarkerSend,
		entities.MarkerDismiss,
	}
	markers := make(map[entities.MarkerName]entities.Marker, len(names))
	for _, n := range names {
		markers[n] = entities.Marker{Name: n, Confidence: 0.8}
	}
	return markers
}

func newFakeMatcher() *fakeMatcher {
	return &fakeMatcher{
		scripted: make(map[entities.MarkerName][]entities.MatchResult),
		fallback: make(map[entities.MarkerName]entities.MatchResult),
	}
}

func foundAt(x, y int) entities.MatchResult {
	return entities.MatchResult{Found: true, X: x, Y: y, Score: 0.9}
}

func testOptions() Options {
	return Options{
		MaxLikes:             200,
		WaitTime:             0,
		MaxPollRetries:       0,
		MaxConsecutiveMisses: 3,
		CommentEnabled:       true,
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestController(m *fakeMatcher, in *fakeInput, opts Options) *Controller {
	return NewController(m, in, &fakePool{msg: "hi there"}, testMarkers(), opts, testLogger())
}

func TestTerminalMarkerStopsImmediately(t *testing.T) {
	matcher := newFakeMatcher()
	matcher.fallback[entities.MarkerNoMoreProfiles] = foundAt(40, 50)
	in := &fakeInput{}

	stats, err := newTestController(matcher, in, testOptions()).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.StopNoMoreProfiles, stats.StopReason)
	assert.Equal(t, 0, stats.Likes)
	assert.Empty(t, in.clicks)
}

func TestZeroBudgetFinishesWithoutActions(t *testing.T) {
	matcher := newFakeMatcher()
	matcher.fallback[entities.MarkerHeart] = foundAt(10, 20)
	in := &fakeInput{}

	opts := testOptions()
	opts.MaxLikes = 0
	stats, err := newTestController(matcher, in, opts).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.StopBudgetReached, stats.StopReason)
	assert.Equal(t, 0, stats.Likes)
	assert.Empty(t, in.clicks)
	assert.Empty(t, in.typed)
}

func TestSingleLikeStopsWithoutFurtherPolling(t *testing.T) {
	matcher := newFakeMatcher()
	matcher.fallback[entities.MarkerHeart] = foundAt(10, 20)
	matcher.fallback[entities.MarkerSend] = foundAt(30, 40)
	in := &fakeInput{}

	opts := testOptions()
	opts.MaxLikes = 1
	opts.CommentEnabled = false
	stats, err := newTestController(matcher, in, opts).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.StopBudgetReached, stats.StopReason)
	assert.Equal(t, 1, stats.Likes)
	assert.Equal(t, []click{{10, 20}, {30, 40}}, in.clicks)
	// One full cycle only: loading, terminal, heart, send, each preceded by
	// one overlay check. Budget exhaustion must not trigger another poll.
	assert.Len(t, matcher.calls, 8)
}

func TestBudgetIsNeverExceeded(t *testing.T) {
	matcher := newFakeMatcher()
	matcher.fallback[entities.MarkerHeart] = foundAt(10, 20)
	matcher.fallback[entities.MarkerComment] = foundAt(15, 25)
	matcher.fallback[entities.MarkerSend] = foundAt(30, 40)
	in := &fakeInput{}

	opts := testOptions()
	opts.MaxLikes = 3
	stats, err := newTestController(matcher, in, opts).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.StopBudgetReached, stats.StopReason)
	assert.Equal(t, 3, stats.Likes)
	assert.Equal(t, []string{"hi there", "hi there", "hi there"}, in.typed)
}

func TestOverlayInterruptRestartsCycle(t *testing.T) {
	matcher := newFakeMatcher()
	// Overlay pops up on the third poll, during the like step.
	matcher.scripted[entities.MarkerDismiss] = []entities.MatchResult{
		{}, {}, foundAt(500, 600),
	}
	matcher.fallback[entities.MarkerHeart] = foundAt(10, 20)
	matcher.fallback[entities.MarkerSend] = foundAt(30, 40)
	in := &fakeInput{}

	opts := testOptions()
	opts.MaxLikes = 1
	opts.CommentEnabled = false
	stats, err := newTestController(matcher, in, opts).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Likes)
	require.NotEmpty(t, in.clicks)
	// The overlay is clicked away before any like happens, then the cycle
	// restarts from the loading check.
	assert.Equal(t, click{500, 600}, in.clicks[0])
	assert.Equal(t, []click{{500, 600}, {10, 20}, {30, 40}}, in.clicks)
}

func TestLoadingWaitRepollsUntilClear(t *testing.T) {
	matcher := newFakeMatcher()
	// Loading stays on screen for two polls, then clears within the retry
	// budget and the cycle proceeds to a full like.
	matcher.scripted[entities.MarkerLoading] = []entities.MatchResult{
		foundAt(1, 1), foundAt(1, 1), {},
	}
	matcher.fallback[entities.MarkerHeart] = foundAt(10, 20)
	matcher.fallback[entities.MarkerSend] = foundAt(30, 40)
	in := &fakeInput{}

	opts := testOptions()
	opts.MaxLikes = 1
	opts.CommentEnabled = false
	opts.MaxPollRetries = 3
	stats, err := newTestController(matcher, in, opts).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.StopBudgetReached, stats.StopReason)
	assert.Equal(t, 1, stats.Likes)
	assert.Equal(t, 0, stats.Skips)
	loadingPolls := 0
	for _, name := range matcher.calls {
		if name == entities.MarkerLoading {
			loadingPolls++
		}
	}
	assert.Equal(t, 3, loadingPolls)
}

func TestLoadingNeverClearingFeedsMissStreak(t *testing.T) {
	matcher := newFakeMatcher()
	matcher.fallback[entities.MarkerLoading] = foundAt(1, 1)
	in := &fakeInput{}

	opts := testOptions()
	opts.MaxPollRetries = 1
	opts.MaxConsecutiveMisses = 1
	stats, err := newTestController(matcher, in, opts).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.StopMissStreak, stats.StopReason)
	assert.Equal(t, 1, stats.Skips)
	assert.Equal(t, 0, stats.Likes)
	assert.Empty(t, in.clicks)
}

func TestMissStreakEscalatesToFinished(t *testing.T) {
	matcher := newFakeMatcher() // every marker permanently absent
	in := &fakeInput{}

	stats, err := newTestController(matcher, in, testOptions()).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.StopMissStreak, stats.StopReason)
	assert.Equal(t, 3, stats.Skips)
	assert.Equal(t, 0, stats.Likes)
	assert.Empty(t, in.clicks)
}

func TestSuccessfulClickResetsMissStreak(t *testing.T) {
	matcher := newFakeMatcher()
	// Heart misses once per cycle, comment and send always work, so the
	// streak never accumulates to the threshold.
	matcher.fallback[entities.MarkerComment] = foundAt(15, 25)
	matcher.fallback[entities.MarkerSend] = foundAt(30, 40)
	in := &fakeInput{}

	opts := testOptions()
	opts.MaxLikes = 5
	stats, err := newTestController(matcher, in, opts).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.StopBudgetReached, stats.StopReason)
	assert.Equal(t, 5, stats.Likes)
	assert.Equal(t, 5, stats.Skips) // one heart miss per cycle
}

func TestCaptureErrorIsFatal(t *testing.T) {
	matcher := newFakeMatcher()
	matcher.err = &entities.CaptureError{Cause: fmt.Errorf("no display")}
	in := &fakeInput{}

	stats, err := newTestController(matcher, in, testOptions()).Run(context.Background())

	require.Error(t, err)
	var capErr *entities.CaptureError
	assert.True(t, errors.As(err, &capErr))
	assert.Equal(t, entities.StopCaptureFailure, stats.StopReason)
}

func TestInjectionErrorsCountAsSkips(t *testing.T) {
	matcher := newFakeMatcher()
	matcher.fallback[entities.MarkerHeart] = foundAt(10, 20)
	matcher.fallback[entities.MarkerSend] = foundAt(30, 40)
	in := &fakeInput{clickErr: &entities.InjectionError{Action: "click", Cause: fmt.Errorf("denied")}}

	opts := testOptions()
	opts.CommentEnabled = false
	opts.MaxConsecutiveMisses = 2
	stats, err := newTestController(matcher, in, opts).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.StopMissStreak, stats.StopReason)
	assert.Equal(t, 2, stats.Skips)
	assert.Equal(t, 0, stats.Likes)
}

func TestCancellationFinishesWithPartialSummary(t *testing.T) {
	matcher := newFakeMatcher()
	in := &fakeInput{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := newTestController(matcher, in, testOptions()).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, entities.StopInterrupted, stats.StopReason)
	assert.False(t, stats.FinishedAt.IsZero())
}
