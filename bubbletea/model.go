package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatmsg"
)

// tableStep is how many cells one table scroll key moves the window.
const tableStep = 4

var _ tea.Model = Model{}

// Config configures the transcript viewer.
type Config struct {
	Messages []chatmsg.Message
	Theme    chatmsg.Theme
	Bubble   Options
	// Loading marks the final assistant message as still being generated.
	Loading bool
}

// Model is the Bubble Tea model of the transcript viewer. It lays out one
// MessageBubble per message, tracks the selection and insert mode, and
// turns them into each bubble's Props.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	keys   KeyMap
	help   help.Model
	theme  chatmsg.Theme
	styles Styles
	opts   Options

	bubbles  []*MessageBubble
	offsets  []int // first content line of each bubble
	selected int
	insert   bool
	loading  bool
	ready    bool
}

// New creates a viewer for cfg.Messages. The last message starts selected.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Press i to type a message..."
	ti.Prompt = ""
	ti.CharLimit = 0

	m := Model{
		Input:   ti,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		theme:   cfg.Theme,
		styles:  NewStyles(cfg.Theme),
		opts:    cfg.Bubble.withDefaults(),
		loading: cfg.Loading,
	}
	for _, msg := range cfg.Messages {
		m.bubbles = append(m.bubbles, NewMessageBubble(msg, chatmsg.Props{}, m.theme, m.opts))
	}
	m.selected = len(m.bubbles) - 1
	m.propagate()
	return m
}

// Messages returns the displayed messages, including those typed in.
func (m Model) Messages() []chatmsg.Message {
	msgs := make([]chatmsg.Message, len(m.bubbles))
	for i, b := range m.bubbles {
		msgs[i] = b.Message()
	}
	return msgs
}

// Bubbles returns the message bubbles in display order.
func (m Model) Bubbles() []*MessageBubble { return m.bubbles }

// Selected returns the index of the selected message, -1 when there is none.
func (m Model) Selected() int { return m.selected }

// InsertMode reports whether keys go to the text input.
func (m Model) InsertMode() bool { return m.insert }

// Close closes every bubble.
func (m Model) Close() {
	for _, b := range m.bubbles {
		b.Close()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	for _, b := range m.bubbles {
		cmds = append(cmds, b.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case CopiedMsg, CopyFailedMsg, copyResetMsg, spinner.TickMsg:
		cmd := m.broadcast(msg)
		m = m.refresh()
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if m.insert {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	// Output area.
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")

	// Status line.
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	// Input area.
	b.WriteString(m.Input.View())

	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
		m = m.refresh()
		m.Viewport.GotoBottom()
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
		m = m.refresh()
	}

	m.Input.Width = msg.Width
	m.help.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.Close()
		return m, tea.Quit
	}
	if m.insert {
		return m.handleInsertKey(msg)
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		if m.selected < len(m.bubbles)-1 {
			m.selected++
			cmd = m.propagate()
			m = m.refresh().scrollToSelected()
		}
	case key.Matches(msg, m.keys.Prev):
		if m.selected > 0 {
			m.selected--
			cmd = m.propagate()
			m = m.refresh().scrollToSelected()
		}
	case key.Matches(msg, m.keys.Insert):
		m.insert = true
		cmd = tea.Batch(m.Input.Focus(), m.propagate())
		m = m.refresh()
		m.Viewport.GotoBottom()
	case key.Matches(msg, m.keys.Reasoning):
		cmd = m.send(ToggleMsg{})
		m = m.refresh()
	case key.Matches(msg, m.keys.Copy):
		cmd = m.send(CopyMsg{})
	case key.Matches(msg, m.keys.NextCode):
		cmd = m.send(FocusCodeMsg{Delta: 1})
		m = m.refresh()
	case key.Matches(msg, m.keys.PrevCode):
		cmd = m.send(FocusCodeMsg{Delta: -1})
		m = m.refresh()
	case key.Matches(msg, m.keys.ScrollLeft):
		cmd = m.send(ScrollTableMsg{Delta: -tableStep})
		m = m.refresh()
	case key.Matches(msg, m.keys.ScrollRight):
		cmd = m.send(ScrollTableMsg{Delta: tableStep})
		m = m.refresh()
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		m.Viewport, cmd = m.Viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) handleInsertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.insert = false
		m.Input.Blur()
		cmd := m.propagate()
		m = m.refresh()
		return m, cmd

	case key.Matches(msg, m.keys.Submit):
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// submitInput appends a user message. Typed messages are kept in memory only.
func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	userMsg := chatmsg.Message{Content: chatmsg.PlainContent(text), IsUser: true}
	m.bubbles = append(m.bubbles, NewMessageBubble(userMsg, chatmsg.Props{}, m.theme, m.opts))
	m.selected = len(m.bubbles) - 1
	cmd := m.propagate()
	m = m.refresh()
	m.Viewport.GotoBottom()
	return m, cmd
}

// propagate derives every bubble's Props from the viewer state.
func (m Model) propagate() tea.Cmd {
	last := len(m.bubbles) - 1
	var cmds []tea.Cmd
	for i, b := range m.bubbles {
		cmds = append(cmds, b.SetProps(chatmsg.Props{
			Selected:   i == m.selected,
			Recent:     i == last,
			InsertMode: m.insert,
			Loading:    m.loading && i == last && !b.Message().IsUser,
		}))
	}
	return tea.Batch(cmds...)
}

// send delivers msg to the selected bubble.
func (m Model) send(msg tea.Msg) tea.Cmd {
	if m.selected < 0 || m.selected >= len(m.bubbles) {
		return nil
	}
	_, cmd := m.bubbles[m.selected].Update(msg)
	return cmd
}

// broadcast delivers msg to every bubble. Bubbles ignore messages that
// carry another bubble's ID.
func (m Model) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, b := range m.bubbles {
		_, cmd := b.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	content, offsets := m.renderContent()
	m.offsets = offsets
	m.Viewport.SetContent(content)
	return m
}

func (m Model) renderContent() (string, []int) {
	if len(m.bubbles) == 0 {
		return "", nil
	}
	offsets := make([]int, len(m.bubbles))
	var b strings.Builder
	line := 0
	for i, bubble := range m.bubbles {
		if i > 0 {
			b.WriteString("\n")
		}
		offsets[i] = line
		bubble.SetWidth(m.Viewport.Width)
		view := bubble.View(m.Viewport.Width)
		b.WriteString(view)
		line += strings.Count(view, "\n") + 1
	}
	return b.String(), offsets
}

// scrollToSelected moves the viewport the least amount that shows the
// selected bubble, favouring its top when it is taller than the viewport.
func (m Model) scrollToSelected() Model {
	if m.selected < 0 || m.selected >= len(m.offsets) {
		return m
	}
	start := m.offsets[m.selected]
	end := m.Viewport.TotalLineCount()
	if m.selected+1 < len(m.offsets) {
		end = m.offsets[m.selected+1]
	}
	switch {
	case start < m.Viewport.YOffset:
		m.Viewport.SetYOffset(start)
	case end > m.Viewport.YOffset+m.Viewport.Height:
		m.Viewport.SetYOffset(min(start, end-m.Viewport.Height))
	}
	return m
}

func (m Model) statusLine() string {
	if m.insert {
		return m.styles.Accent.Render("INSERT") + " " + m.styles.Muted.Render("enter to send, esc to leave")
	}
	position := m.styles.Muted.Render(fmt.Sprintf("%d/%d", m.selected+1, len(m.bubbles)))
	return position + " " + m.help.View(m.keys)
}
