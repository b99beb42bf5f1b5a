package bubbletea_test

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmsg"
	bt "github.com/fwojciec/chatmsg/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

// initModel creates a viewer and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, msgs ...chatmsg.Message) bt.Model {
	t.Helper()
	return initModelWithSize(t, 80, 24, bt.Config{Messages: msgs})
}

// initModelWithSize creates a viewer with a custom terminal size.
func initModelWithSize(t *testing.T, width, height int, cfg bt.Config) bt.Model {
	t.Helper()
	cfg.Theme = chatmsg.DefaultTheme()
	if cfg.Bubble.Clipboard == nil {
		cfg.Bubble.Clipboard = okClipboard()
	}
	m := bt.New(cfg)
	t.Cleanup(m.Close)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func userMsg(text string) chatmsg.Message {
	return chatmsg.Message{Content: chatmsg.PlainContent(text), IsUser: true}
}

func assistantMsg(text string) chatmsg.Message {
	return chatmsg.Message{Content: chatmsg.PlainContent(text), Model: "gpt-4o"}
}
