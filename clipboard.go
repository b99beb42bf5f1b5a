package chatmsg

import "context"

// Clipboard writes text to the system clipboard. WriteText may block on an
// external process; cancellation flows through ctx.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}
