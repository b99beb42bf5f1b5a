package clipboard_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/fwojciec/chatmsg"
	"github.com/fwojciec/chatmsg/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestSystem_WriteText(t *testing.T) {
	t.Parallel()

	t.Run("native success skips osc52", func(t *testing.T) {
		t.Parallel()
		var term bytes.Buffer
		var got string
		cb := clipboard.NewWithNative(&term, func(s string) error {
			got = s
			return nil
		})
		require.NoError(t, cb.WriteText(context.Background(), "fmt.Println()"))
		assert.Equal(t, "fmt.Println()", got)
		assert.Zero(t, term.Len())
	})

	t.Run("native failure falls back to osc52", func(t *testing.T) {
		t.Parallel()
		var term bytes.Buffer
		cb := clipboard.NewWithNative(&term, func(string) error {
			return errors.New("no xclip")
		})
		require.NoError(t, cb.WriteText(context.Background(), "hello"))
		out := term.String()
		assert.Contains(t, out, "\x1b]52;c;")
		assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("hello")))
	})

	t.Run("both mechanisms failing wraps a sentinel", func(t *testing.T) {
		t.Parallel()
		nativeErr := errors.New("no xclip")
		cb := clipboard.NewWithNative(failingWriter{}, func(string) error { return nativeErr })
		err := cb.WriteText(context.Background(), "hello")
		require.Error(t, err)
		assert.ErrorIs(t, err, chatmsg.ErrClipboardUnavailable)
		assert.ErrorIs(t, err, nativeErr)
	})

	t.Run("cancelled context writes nothing", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		called := false
		var term bytes.Buffer
		cb := clipboard.NewWithNative(&term, func(string) error {
			called = true
			return nil
		})
		err := cb.WriteText(ctx, "hello")
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
		assert.Zero(t, term.Len())
	})
}
