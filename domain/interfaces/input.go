package interfaces

import "context"

// Input dispatches system-level mouse and keyboard events.
type Input interface {
	// MoveTo parks the cursor at a screen coordinate without clicking.
	MoveTo(x, y int) error

	// Click moves to the coordinate and performs a left click.
	Click(ctx context.Context, x, y int) error

	// TypeText injects text into the currently focused field.
	TypeText(ctx context.Context, text string) error
}
