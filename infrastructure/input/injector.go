package input

import (
	"context"
	"fmt"

	"auto_swiper/domain/entities"
	"auto_swiper/domain/interfaces"

	"github.com/go-vgo/robotgo"
	"github.com/sirupsen/logrus"
)

// typeIntervalMs paces injected keystrokes so the emulator's text field
// keeps up, matching human-speed typing.
const typeIntervalMs = 10

// Injector dispatches mouse and keyboard events through robotgo.
type Injector struct {
	logger *logrus.Logger
}

// NewInjector - creates a robotgo-backed input injector.
func NewInjector(logger *logrus.Logger) *Injector {
	return &Injector{logger: logger}
}

// MoveTo - parks the cursor without clicking.
func (i *Injector) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

// Click - moves to the coordinate and performs a left click.
func (i *Injector) Click(ctx context.Context, x, y int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := i.checkOnScreen("click", x, y); err != nil {
		return err
	}
	robotgo.Move(x, y)
	robotgo.Click()
	i.logger.WithFields(logrus.Fields{"x": x, "y": y}).Debug("Clicked")
	return nil
}

// TypeText - injects text into the focused field, one rune at a time.
func (i *Injector) TypeText(ctx context.Context, text string) error {
	for _, r := range text {
		if err := ctx.Err(); err != nil {
			return err
		}
		robotgo.TypeStr(string(r))
		robotgo.MilliSleep(typeIntervalMs)
	}
	return nil
}

// checkOnScreen rejects coordinates the display cannot receive; the only
// injection failure robotgo lets us observe directly.
func (i *Injector) checkOnScreen(action string, x, y int) error {
	w, h := robotgo.GetScreenSize()
	if x < 0 || y < 0 || x >= w || y >= h {
		return &entities.InjectionError{
			Action: action,
			Cause:  fmt.Errorf("coordinate (%d, %d) outside screen %dx%d", x, y, w, h),
		}
	}
	return nil
}

// Ensure Injector implements the Input interface
var _ interfaces.Input = (*Injector)(nil)
