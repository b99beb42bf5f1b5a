package bubbletea_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/chatmsg"
	bt "github.com/fwojciec/chatmsg/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longAnswer = strings.Repeat("lorem ", 20)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("last message starts selected", func(t *testing.T) {
		t.Parallel()
		m := bt.New(bt.Config{Messages: []chatmsg.Message{userMsg("q"), assistantMsg("a")}})
		t.Cleanup(m.Close)
		assert.Equal(t, 1, m.Selected())
		assert.False(t, m.InsertMode())
		bubbles := m.Bubbles()
		require.Len(t, bubbles, 2)
		assert.Equal(t, chatmsg.Props{Selected: true, Recent: true}, bubbles[1].Props())
		assert.Equal(t, chatmsg.Props{}, bubbles[0].Props())
	})

	t.Run("empty transcript has no selection", func(t *testing.T) {
		t.Parallel()
		m := bt.New(bt.Config{})
		assert.Equal(t, -1, m.Selected())
		assert.Empty(t, m.Messages())
	})

	t.Run("view before window size", func(t *testing.T) {
		t.Parallel()
		m := bt.New(bt.Config{})
		assert.Equal(t, "Initializing...", m.View())
	})
}

func TestModel_Update(t *testing.T) {
	t.Parallel()

	t.Run("window size resize updates viewport dimensions", func(t *testing.T) {
		t.Parallel()

		m := initModel(t, userMsg("hi"))
		assert.Equal(t, 80, m.Viewport.Width)
		assert.Equal(t, 20, m.Viewport.Height) // 24 - 1 - 1 - 2 = 20

		m = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
		assert.Equal(t, 120, m.Viewport.Width)
		// Height = 40 - inputHeight(1) - statusHeight(1) - borderHeight(2) = 36
		assert.Equal(t, 36, m.Viewport.Height)
	})

	t.Run("resize re-renders bubbles at the new width", func(t *testing.T) {
		t.Parallel()

		m := initModelWithSize(t, 40, 20, bt.Config{Messages: []chatmsg.Message{assistantMsg(longAnswer)}})
		m = updateModel(t, m, tea.WindowSizeMsg{Width: 200, Height: 20})

		found := false
		for _, line := range strings.Split(ansi.Strip(m.Viewport.View()), "\n") {
			if strings.Count(line, "lorem") == 20 {
				found = true
			}
		}
		assert.True(t, found, "expected the answer on one line after resize")
	})

	t.Run("j and k move the selection and expansion", func(t *testing.T) {
		t.Parallel()

		m := initModel(t, assistantMsg(longAnswer), assistantMsg(longAnswer))
		bubbles := m.Bubbles()
		assert.False(t, bubbles[0].Expanded())
		assert.True(t, bubbles[1].Expanded())

		m = updateModel(t, m, keyRunes("k"))
		assert.Equal(t, 0, m.Selected())
		assert.True(t, bubbles[0].Expanded())
		assert.False(t, bubbles[1].Expanded(), "recent message collapses outside insert mode")

		m = updateModel(t, m, keyRunes("k"))
		assert.Equal(t, 0, m.Selected(), "selection stops at the first message")

		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 1, m.Selected())
		m = updateModel(t, m, keyRunes("j"))
		assert.Equal(t, 1, m.Selected(), "selection stops at the last message")
	})

	t.Run("insert mode expands the recent message", func(t *testing.T) {
		t.Parallel()

		m := initModel(t, assistantMsg(longAnswer), assistantMsg(longAnswer))
		m = updateModel(t, m, keyRunes("k"))
		bubbles := m.Bubbles()
		require.False(t, bubbles[1].Expanded())

		m = updateModel(t, m, keyRunes("i"))
		assert.True(t, m.InsertMode())
		assert.True(t, bubbles[1].Expanded())
		assert.True(t, bubbles[0].Expanded(), "selection still expands")
		assert.Contains(t, ansi.Strip(m.View()), "INSERT")

		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.False(t, m.InsertMode())
		assert.False(t, bubbles[1].Expanded())
	})

	t.Run("keys type into the input in insert mode", func(t *testing.T) {
		t.Parallel()

		m := initModel(t, assistantMsg("a"))
		m = updateModel(t, m, keyRunes("i"))
		_, cmd := m.Update(keyRunes("q"))
		m = updateModel(t, m, keyRunes("q"))
		assert.Equal(t, "q", m.Input.Value())
		if cmd != nil {
			_, isQuit := cmd().(tea.QuitMsg)
			assert.False(t, isQuit)
		}
	})

	t.Run("enter appends a user message in memory", func(t *testing.T) {
		t.Parallel()

		m := initModel(t, assistantMsg("a"))
		m = updateModel(t, m, keyRunes("i"))
		m = updateModel(t, m, keyRunes("hello there"))
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		msgs := m.Messages()
		require.Len(t, msgs, 2)
		assert.True(t, msgs[1].IsUser)
		assert.Equal(t, "hello there", msgs[1].Text())
		assert.Equal(t, 1, m.Selected())
		assert.Empty(t, m.Input.Value())
		assert.Contains(t, ansi.Strip(bt.RenderContent(m)), "hello there")
	})

	t.Run("enter with empty input does nothing", func(t *testing.T) {
		t.Parallel()

		m := initModel(t, assistantMsg("a"))
		m = updateModel(t, m, keyRunes("i"))
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.Len(t, updated.(bt.Model).Messages(), 1)
	})

	t.Run("tab toggles reasoning of the selected message", func(t *testing.T) {
		t.Parallel()

		msg := assistantMsg("answer")
		msg.Reasoning = "thinking it over"
		m := initModelWithSize(t, 80, 24, bt.Config{
			Messages: []chatmsg.Message{msg},
			Bubble:   bt.Options{ShowReasoning: true},
		})
		assert.NotContains(t, ansi.Strip(m.View()), "thinking it over")

		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Contains(t, ansi.Strip(m.View()), "thinking it over")
	})

	t.Run("y copies the selected message's code", func(t *testing.T) {
		t.Parallel()

		cb := okClipboard()
		m := initModelWithSize(t, 80, 24, bt.Config{
			Messages: []chatmsg.Message{assistantMsg("```go\nx := 1\n```")},
			Bubble:   bt.Options{Clipboard: cb},
		})
		_, cmd := m.Update(keyRunes("y"))
		require.NotNil(t, cmd)
		copied := cmd()
		assert.IsType(t, bt.CopiedMsg{}, copied)
		assert.Equal(t, []string{"x := 1\n"}, cb.Writes())

		m = updateModel(t, m, copied)
		assert.True(t, m.Bubbles()[0].Copied(0))
		assert.Contains(t, ansi.Strip(m.View()), "✓ copied")
	})

	t.Run("brackets move code focus", func(t *testing.T) {
		t.Parallel()

		m := initModel(t, assistantMsg(twoBlocks))
		assert.Contains(t, ansi.Strip(m.View()), "▸ go [1]")
		m = updateModel(t, m, keyRunes("]"))
		assert.Contains(t, ansi.Strip(m.View()), "▸ sh [2]")
		m = updateModel(t, m, keyRunes("["))
		assert.Contains(t, ansi.Strip(m.View()), "▸ go [1]")
	})

	t.Run("loading shows placeholder on the final assistant message", func(t *testing.T) {
		t.Parallel()

		m := initModelWithSize(t, 80, 24, bt.Config{
			Messages: []chatmsg.Message{userMsg("question"), {Content: chatmsg.PlainContent("")}},
			Loading:  true,
		})
		assert.True(t, m.Bubbles()[1].Props().Loading)
		assert.False(t, m.Bubbles()[0].Props().Loading)
		assert.Contains(t, ansi.Strip(m.View()), "● ○ ○")
	})

	t.Run("loading ignores a final user message", func(t *testing.T) {
		t.Parallel()

		m := initModelWithSize(t, 80, 24, bt.Config{
			Messages: []chatmsg.Message{userMsg("question")},
			Loading:  true,
		})
		assert.False(t, m.Bubbles()[0].Props().Loading)
	})

	t.Run("selection scrolls into view", func(t *testing.T) {
		t.Parallel()

		var msgs []chatmsg.Message
		for range 12 {
			msgs = append(msgs, assistantMsg("message"))
		}
		m := initModelWithSize(t, 80, 10, bt.Config{Messages: msgs})
		require.Greater(t, m.Viewport.YOffset, 0)

		for range 11 {
			m = updateModel(t, m, keyRunes("k"))
		}
		assert.Equal(t, 0, m.Selected())
		assert.Equal(t, 0, m.Viewport.YOffset)

		m = updateModel(t, m, keyRunes("j"))
		offsets := bt.Offsets(m)
		assert.LessOrEqual(t, m.Viewport.YOffset, offsets[1])
	})

	t.Run("ctrl+c quits and closes bubbles", func(t *testing.T) {
		t.Parallel()

		m := initModel(t, assistantMsg("a"))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
		assert.True(t, m.Bubbles()[0].Closed())
	})

	t.Run("q quits in normal mode", func(t *testing.T) {
		t.Parallel()

		m := initModel(t, assistantMsg("a"))
		_, cmd := m.Update(keyRunes("q"))
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
	})
}

func TestModel_Program(t *testing.T) {
	t.Parallel()

	t.Run("transcript renders and typed message is appended", func(t *testing.T) {
		t.Parallel()

		m := bt.New(bt.Config{
			Messages: []chatmsg.Message{userMsg("hello there"), assistantMsg("Hi! How can I help?")},
			Theme:    chatmsg.DefaultTheme(),
			Bubble:   bt.Options{Clipboard: okClipboard()},
		})

		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(80, 24),
		)

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("Hi! How can I help?")) &&
				bytes.Contains(out, []byte("gpt-4o"))
		}, teatest.WithDuration(5*time.Second))

		tm.Type("i")
		tm.Type("thanks")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("thanks"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.Model)
		require.True(t, ok)
		msgs := final.Messages()
		require.Len(t, msgs, 3)
		assert.Equal(t, "thanks", msgs[2].Text())
		for _, b := range final.Bubbles() {
			assert.True(t, b.Closed())
		}
	})
}
