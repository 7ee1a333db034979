package swiper

import (
	"context"
	"errors"
	"image"
	"time"

	"auto_swiper/domain/entities"
	"auto_swiper/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// errCycleRestart signals that an out-of-band overlay was dismissed and the
// cycle must restart from the loading check.
var errCycleRestart = errors.New("overlay dismissed, cycle restart")

// errMissStreak signals that the consecutive-miss streak escalated from
// inside the overlay interrupt path.
var errMissStreak = errors.New("miss streak escalated")

// Options configures one session. There are no ambient globals: independent
// controllers can run with independent options.
type Options struct {
	MaxLikes             int
	WaitTime             time.Duration
	MaxPollRetries       int
	MaxConsecutiveMisses int
	CommentEnabled       bool
	ParkPoint            image.Point // neutral cursor position between cycles
}

// Controller drives the repeated poll-act cycle until budget exhaustion, the
// terminal marker, an escalated miss streak, or a fatal capture error.
type Controller struct {
	matcher  interfaces.Matcher
	input    interfaces.Input
	messages interfaces.MessagePool
	markers  map[entities.MarkerName]entities.Marker
	opts     Options
	logger   *logrus.Logger

	stats  entities.SessionStats
	misses *missTracker
}

// NewController - creates a session controller over the injected collaborators.
func NewController(
	matcher interfaces.Matcher,
	input interfaces.Input,
	messages interfaces.MessagePool,
	markers map[entities.MarkerName]entities.Marker,
	opts Options,
	logger *logrus.Logger,
) *Controller {
	return &Controller{
		matcher:  matcher,
		input:    input,
		messages: messages,
		markers:  markers,
		opts:     opts,
		logger:   logger,
		misses:   newMissTracker(opts.MaxConsecutiveMisses),
	}
}

// Run executes the session until a terminal condition and returns the
// accumulated counters. Only capture failures return a non-nil error;
// cancellation ends the session cleanly with a partial summary.
func (c *Controller) Run(ctx context.Context) (entities.SessionStats, error) {
	c.stats = entities.SessionStats{StartedAt: time.Now()}
	c.misses = newMissTracker(c.opts.MaxConsecutiveMisses)

	st := stateAwaitLoading
	c.logger.WithField("max_likes", c.opts.MaxLikes).Info("Session started")

	for st != stateFinished {
		select {
		case <-ctx.Done():
			c.finish(entities.StopInterrupted)
			return c.stats, nil
		default:
		}

		next, err := c.step(ctx, st)
		if err != nil {
			if errors.Is(err, errCycleRestart) {
				st = stateAwaitLoading
				continue
			}
			if errors.Is(err, errMissStreak) {
				c.finish(entities.StopMissStreak)
				return c.stats, nil
			}
			if ctx.Err() != nil {
				c.finish(entities.StopInterrupted)
				return c.stats, nil
			}
			c.finish(entities.StopCaptureFailure)
			return c.stats, err
		}

		if next != st {
			c.logger.WithFields(logrus.Fields{"from": st.String(), "to": next.String()}).Debug("State transition")
		}
		st = next
	}

	return c.stats, nil
}

// Stats returns the counters accumulated so far.
func (c *Controller) Stats() entities.SessionStats {
	return c.stats
}

func (c *Controller) step(ctx context.Context, st state) (state, error) {
	switch st {
	case stateAwaitLoading:
		return c.awaitLoadingClear(ctx)
	case stateCheckExhausted:
		return c.checkTerminalMarker(ctx)
	case stateLike:
		return c.like(ctx)
	case stateComment:
		return c.comment(ctx)
	case stateSend:
		return c.send(ctx)
	}
	return stateFinished, nil
}

// awaitLoadingClear polls the loading marker until it disappears, bounded by
// the retry budget. The cursor is parked first so it never occludes a marker.
func (c *Controller) awaitLoadingClear(ctx context.Context) (state, error) {
	if err := c.input.MoveTo(c.opts.ParkPoint.X, c.opts.ParkPoint.Y); err != nil {
		c.logger.WithError(err).Warn("Could not park cursor")
	}

	marker, ok := c.markers[entities.MarkerLoading]
	if !ok {
		return stateCheckExhausted, nil
	}

	for attempt := 0; attempt <= c.opts.MaxPollRetries; attempt++ {
		if attempt > 0 {
			if err := c.pause(ctx); err != nil {
				return stateFinished, err
			}
		}
		if err := c.interruptCheck(ctx); err != nil {
			return stateFinished, err
		}
		res, err := c.matcher.Locate(ctx, marker, marker.Confidence)
		if err != nil {
			return stateFinished, err
		}
		if !res.Found {
			return stateCheckExhausted, nil
		}
		c.logger.WithField("score", res.Score).Debug("Still loading")
	}

	// The screen never settled; skip forward rather than wait forever.
	if c.missStep(entities.MarkerLoading) {
		return c.finish(entities.StopMissStreak), nil
	}
	return stateCheckExhausted, nil
}

// checkTerminalMarker looks once for the marker that means the interaction
// queue is exhausted. Absence is the normal case and is not a miss.
func (c *Controller) checkTerminalMarker(ctx context.Context) (state, error) {
	if err := c.interruptCheck(ctx); err != nil {
		return stateFinished, err
	}

	marker, ok := c.markers[entities.MarkerNoMoreProfiles]
	if !ok {
		return stateLike, nil
	}

	res, err := c.matcher.Locate(ctx, marker, marker.Confidence)
	if err != nil {
		return stateFinished, err
	}
	if res.Found {
		c.logger.WithField("score", res.Score).Info("No more profiles")
		return c.finish(entities.StopNoMoreProfiles), nil
	}
	return stateLike, nil
}

func (c *Controller) like(ctx context.Context) (state, error) {
	if c.stats.Likes >= c.opts.MaxLikes {
		return c.finish(entities.StopBudgetReached), nil
	}

	next := stateComment
	if !c.opts.CommentEnabled {
		next = stateSend
	}

	res, err := c.poll(ctx, entities.MarkerHeart)
	if err != nil {
		return stateFinished, err
	}
	if res.Found {
		clicked, err := c.act(ctx, entities.MarkerHeart, res)
		if err != nil {
			return stateFinished, err
		}
		if clicked {
			if err := c.pause(ctx); err != nil {
				return stateFinished, err
			}
			return next, nil
		}
	}

	if c.missStep(entities.MarkerHeart) {
		return c.finish(entities.StopMissStreak), nil
	}
	return next, nil
}

func (c *Controller) comment(ctx context.Context) (state, error) {
	res, err := c.poll(ctx, entities.MarkerComment)
	if err != nil {
		return stateFinished, err
	}
	if res.Found {
		clicked, err := c.act(ctx, entities.MarkerComment, res)
		if err != nil {
			return stateFinished, err
		}
		if clicked {
			if err := c.typeMessage(ctx); err != nil {
				return stateFinished, err
			}
			if err := c.pause(ctx); err != nil {
				return stateFinished, err
			}
			return stateSend, nil
		}
	}

	if c.missStep(entities.MarkerComment) {
		return c.finish(entities.StopMissStreak), nil
	}
	return stateSend, nil
}

// send completes one like: the success counter increments here and nowhere
// else, and the budget is re-checked immediately so the session never polls
// past its last permitted like.
func (c *Controller) send(ctx context.Context) (state, error) {
	res, err := c.poll(ctx, entities.MarkerSend)
	if err != nil {
		return stateFinished, err
	}
	if res.Found {
		clicked, err := c.act(ctx, entities.MarkerSend, res)
		if err != nil {
			return stateFinished, err
		}
		if clicked {
			c.stats.Likes++
			c.logger.WithField("likes", c.stats.Likes).Info("Like sent")
			if c.stats.Likes >= c.opts.MaxLikes {
				return c.finish(entities.StopBudgetReached), nil
			}
			if err := c.pause(ctx); err != nil {
				return stateFinished, err
			}
			return stateAwaitLoading, nil
		}
	}

	if c.missStep(entities.MarkerSend) {
		return c.finish(entities.StopMissStreak), nil
	}
	return stateAwaitLoading, nil
}

// poll looks for the marker with bounded retries, checking the dismiss
// overlay before every attempt. A marker without a template is permanently
// absent.
func (c *Controller) poll(ctx context.Context, name entities.MarkerName) (entities.MatchResult, error) {
	marker, ok := c.markers[name]
	if !ok {
		return entities.MatchResult{}, nil
	}

	var res entities.MatchResult
	for attempt := 0; attempt <= c.opts.MaxPollRetries; attempt++ {
		if attempt > 0 {
			if err := c.pause(ctx); err != nil {
				return res, err
			}
		}
		if err := c.interruptCheck(ctx); err != nil {
			return res, err
		}

		var err error
		res, err = c.matcher.Locate(ctx, marker, marker.Confidence)
		if err != nil {
			return res, err
		}
		if res.Found {
			return res, nil
		}
		c.logger.WithFields(logrus.Fields{
			"marker":  name,
			"score":   res.Score,
			"attempt": attempt,
		}).Debug("Marker miss")
	}
	return res, nil
}

// interruptCheck polls the dismiss overlay once. A hit takes precedence over
// whatever the current state was polling for: the overlay is clicked away and
// the cycle restarts via errCycleRestart.
func (c *Controller) interruptCheck(ctx context.Context) error {
	marker, ok := c.markers[entities.MarkerDismiss]
	if !ok {
		return nil
	}

	res, err := c.matcher.Locate(ctx, marker, marker.Confidence)
	if err != nil {
		return err
	}
	if !res.Found {
		return nil
	}

	c.logger.WithField("score", res.Score).Warn("Unexpected overlay, dismissing")
	clicked, err := c.act(ctx, entities.MarkerDismiss, res)
	if err != nil {
		return err
	}
	if !clicked && c.missStep(entities.MarkerDismiss) {
		return errMissStreak
	}
	return errCycleRestart
}

// act clicks the matched coordinate. A rejected injection counts as a
// not-clicked step, never a session failure; only cancellation propagates.
func (c *Controller) act(ctx context.Context, name entities.MarkerName, res entities.MatchResult) (bool, error) {
	if err := c.input.Click(ctx, res.X, res.Y); err != nil {
		var injErr *entities.InjectionError
		if errors.As(err, &injErr) {
			c.logger.WithError(err).Warnf("Click on %s rejected", name)
			return false, nil
		}
		return false, err
	}

	c.stats.Clicks++
	c.misses.observeSuccess()
	c.logger.WithFields(logrus.Fields{
		"marker": name,
		"x":      res.X,
		"y":      res.Y,
		"score":  res.Score,
	}).Info("Clicked marker")
	return true, nil
}

func (c *Controller) typeMessage(ctx context.Context) error {
	msg := c.messages.Pick()
	if msg == "" {
		return nil
	}
	c.logger.WithField("message", msg).Info("Typing comment")
	if err := c.input.TypeText(ctx, msg); err != nil {
		var injErr *entities.InjectionError
		if errors.As(err, &injErr) {
			c.logger.WithError(err).Warn("Text injection rejected")
			return nil
		}
		return err
	}
	return nil
}

// missStep records one skipped step and reports whether the consecutive-miss
// streak escalated.
func (c *Controller) missStep(name entities.MarkerName) bool {
	c.stats.Skips++
	escalate := c.misses.observeMiss()
	c.logger.WithFields(logrus.Fields{
		"marker": name,
		"streak": c.misses.streak,
	}).Warn("Step skipped")
	return escalate
}

func (c *Controller) finish(reason entities.StopReason) state {
	c.stats.StopReason = reason
	c.stats.FinishedAt = time.Now()
	c.logger.WithFields(logrus.Fields{
		"reason": string(reason),
		"likes":  c.stats.Likes,
		"skips":  c.stats.Skips,
	}).Info("Session finished")
	return stateFinished
}

func (c *Controller) pause(ctx context.Context) error {
	if c.opts.WaitTime <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.opts.WaitTime):
		return nil
	}
}
