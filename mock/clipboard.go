// Package mock provides test doubles for chatmsg interfaces.
package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/chatmsg"
)

// Interface compliance check.
var _ chatmsg.Clipboard = (*Clipboard)(nil)

// Clipboard is a test double for chatmsg.Clipboard.
// Set WriteTextFn before calling WriteText.
type Clipboard struct {
	WriteTextFn func(ctx context.Context, text string) error

	mu     sync.Mutex
	writes []string
}

// WriteText records text and delegates to WriteTextFn.
func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	c.mu.Lock()
	c.writes = append(c.writes, text)
	c.mu.Unlock()
	return c.WriteTextFn(ctx, text)
}

// Writes returns every text passed to WriteText, in call order.
func (c *Clipboard) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}
