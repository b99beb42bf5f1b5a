package bubbletea

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmsg"
	"github.com/fwojciec/chatmsg/clipboard"
	"github.com/fwojciec/chatmsg/goldmark"
)

// DefaultCopyResetDelay is how long a copied code block shows the copied
// indicator.
const DefaultCopyResetDelay = 2 * time.Second

// Options configure a MessageBubble. Zero values select the defaults.
type Options struct {
	// ShowReasoning renders the message's reasoning above its content.
	ShowReasoning bool
	// PreviewLimit is the character limit of collapsed content.
	PreviewLimit int
	// CopyResetDelay is how long the copied indicator stays on.
	CopyResetDelay time.Duration
	// Clipboard receives copied code. Defaults to the system clipboard.
	Clipboard chatmsg.Clipboard
	// Logger records clipboard failures. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.PreviewLimit <= 0 {
		o.PreviewLimit = chatmsg.PreviewLimit
	}
	if o.CopyResetDelay <= 0 {
		o.CopyResetDelay = DefaultCopyResetDelay
	}
	if o.Clipboard == nil {
		o.Clipboard = clipboard.New()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// loadingDots pulses three dots while a reply has no text yet.
var loadingDots = spinner.Spinner{
	Frames: []string{"● ○ ○", "○ ● ○", "○ ○ ●"},
	FPS:    time.Second / 3,
}

var lastID atomic.Int64

var _ MessageBlock = (*MessageBubble)(nil)

// MessageBubble renders one chat message: model label, optional reasoning,
// image thumbnails and markdown content, framed and aligned by author.
//
// Whether the full content or its preview is shown follows from Props alone.
// Code blocks with a language can be copied; each shows a copied indicator
// for CopyResetDelay afterwards. Close ends the bubble's lifetime so pending
// copies and resets no longer touch it.
type MessageBubble struct {
	id     int
	msg    chatmsg.Message
	props  chatmsg.Props
	theme  chatmsg.Theme
	styles Styles
	opts   Options

	ctx    context.Context
	cancel context.CancelFunc

	expanded  bool
	reasoning *ReasoningBlock
	dots      spinner.Model

	// width is the last width passed to SetWidth. The focus and table
	// offset are clamped against the document rendered at that width.
	width         int
	focus         int
	tableOffset   int
	tableOverflow int

	// copied maps a code block index to the tag of the copy that set it.
	copied map[int]int
	tag    int
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg chatmsg.Message, props chatmsg.Props, theme chatmsg.Theme, opts Options) *MessageBubble {
	opts = opts.withDefaults()
	styles := NewStyles(theme)
	ctx, cancel := context.WithCancel(context.Background())

	dots := spinner.New()
	dots.Spinner = loadingDots
	dots.Style = styles.Dots

	b := &MessageBubble{
		id:     int(lastID.Add(1)),
		msg:    msg,
		theme:  theme,
		styles: styles,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		dots:   dots,
		copied: make(map[int]int),
	}
	if opts.ShowReasoning && msg.Reasoning != "" {
		b.reasoning = NewReasoningBlock(msg.Reasoning, opts.PreviewLimit, theme, styles)
	}
	b.SetProps(props)
	return b
}

// ID identifies the bubble in copy messages.
func (b *MessageBubble) ID() int { return b.id }

// Message returns the rendered message.
func (b *MessageBubble) Message() chatmsg.Message { return b.msg }

// Props returns the current display inputs.
func (b *MessageBubble) Props() chatmsg.Props { return b.props }

// Expanded reports whether the full content is shown.
func (b *MessageBubble) Expanded() bool { return b.expanded }

// Copied reports whether code block index shows the copied indicator.
func (b *MessageBubble) Copied(index int) bool {
	_, ok := b.copied[index]
	return ok
}

// Closed reports whether Close was called.
func (b *MessageBubble) Closed() bool { return b.ctx.Err() != nil }

// Close ends the bubble's lifetime. In-flight clipboard writes are
// cancelled and copy results or resets that arrive later are ignored.
func (b *MessageBubble) Close() {
	b.cancel()
}

// Init starts the loading animation when the placeholder is shown.
func (b *MessageBubble) Init() tea.Cmd {
	if b.placeholder() {
		return b.dots.Tick
	}
	return nil
}

// SetProps replaces the display inputs and recomputes the expanded state.
// The returned command restarts the loading animation when needed.
func (b *MessageBubble) SetProps(p chatmsg.Props) tea.Cmd {
	wasLoading, wasExpanded := b.placeholder(), b.expanded
	b.props = p
	b.expanded = chatmsg.Expanded(p)
	if b.reasoning != nil {
		b.reasoning.SetExpanded(b.expanded)
	}
	if wasLoading != b.placeholder() || wasExpanded != b.expanded {
		b.measure()
	}
	if !wasLoading && b.placeholder() {
		return b.dots.Tick
	}
	return nil
}

// SetWidth records the width the bubble will be viewed at and clamps the
// code focus and table offset to the document rendered at that width.
func (b *MessageBubble) SetWidth(width int) {
	if width == b.width {
		return
	}
	b.width = width
	b.measure()
}

func (b *MessageBubble) measure() {
	if b.width <= 0 || b.placeholder() {
		b.tableOverflow, b.tableOffset = 0, 0
		return
	}
	doc := goldmark.RenderDocument(b.text(), b.theme, goldmark.Options{
		Width:       b.innerWidth(b.width),
		FocusedCode: goldmark.NoFocus,
	})
	b.tableOverflow = doc.TableOverflow
	b.tableOffset = min(b.tableOffset, b.tableOverflow)
	if n := len(doc.CodeBlocks); n > 0 && b.focus >= n {
		b.focus = n - 1
	}
}

func (b *MessageBubble) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleMsg:
		if b.reasoning != nil {
			_, cmd := b.reasoning.Update(msg)
			return b, cmd
		}
	case CopyMsg:
		return b, b.copy()
	case FocusCodeMsg:
		if n := len(b.codeBlocks()); n > 0 {
			b.focus = ((b.focus+msg.Delta)%n + n) % n
		}
	case ScrollTableMsg:
		b.tableOffset = min(max(b.tableOffset+msg.Delta, 0), b.tableOverflow)
	case CopiedMsg:
		if msg.ID != b.id || b.Closed() {
			return b, nil
		}
		b.tag++
		b.copied[msg.Index] = b.tag
		id, index, tag := b.id, msg.Index, b.tag
		return b, tea.Tick(b.opts.CopyResetDelay, func(time.Time) tea.Msg {
			return copyResetMsg{id: id, index: index, tag: tag}
		})
	case CopyFailedMsg:
		if msg.ID != b.id {
			return b, nil
		}
		b.opts.Logger.Error("copy code block", "bubble", b.id, "index", msg.Index, "error", msg.Err)
	case copyResetMsg:
		if msg.id != b.id || b.Closed() {
			return b, nil
		}
		if b.copied[msg.index] == msg.tag {
			delete(b.copied, msg.index)
		}
	case spinner.TickMsg:
		if !b.placeholder() {
			return b, nil
		}
		var cmd tea.Cmd
		b.dots, cmd = b.dots.Update(msg)
		return b, cmd
	}
	return b, nil
}

// copy returns a command writing the focused code block to the clipboard.
// The code comes from the full text, so a block cut short by the preview
// is still copied whole.
func (b *MessageBubble) copy() tea.Cmd {
	shown := b.codeBlocks()
	if len(shown) == 0 || b.Closed() {
		return nil
	}
	index := min(b.focus, len(shown)-1)
	full := goldmark.CodeBlocks(b.msg.Text())
	if index >= len(full) {
		return nil
	}
	code := full[index].Code
	ctx, cb, id := b.ctx, b.opts.Clipboard, b.id
	return func() tea.Msg {
		if err := cb.WriteText(ctx, code); err != nil {
			return CopyFailedMsg{ID: id, Index: index, Err: err}
		}
		return CopiedMsg{ID: id, Index: index}
	}
}

// text is the markdown currently displayed: the full extracted text when
// expanded, otherwise its preview.
func (b *MessageBubble) text() string {
	text := b.msg.Text()
	if b.expanded {
		return text
	}
	return chatmsg.Truncate(text, b.opts.PreviewLimit)
}

func (b *MessageBubble) codeBlocks() []goldmark.CodeBlock {
	if b.placeholder() {
		return nil
	}
	return goldmark.CodeBlocks(b.text())
}

func (b *MessageBubble) placeholder() bool {
	return b.props.Loading && b.msg.Text() == ""
}

func (b *MessageBubble) frame() lipgloss.Style {
	style := b.styles.AssistantBubble
	if b.msg.IsUser {
		style = b.styles.UserBubble
	}
	if b.props.Selected {
		style = style.BorderForeground(b.styles.SelectedBorder)
	}
	return style
}

// innerWidth is the content width of a bubble viewed at width: at most 80
// percent of it, less the frame.
func (b *MessageBubble) innerWidth(width int) int {
	outer := min(max(width*8/10, 20), width)
	return max(outer-b.frame().GetHorizontalFrameSize(), 1)
}

func (b *MessageBubble) View(width int) string {
	style := b.frame()
	inner := b.innerWidth(width)

	var head, body []string
	if label := chatmsg.ModelLabel(b.msg); label != "" {
		head = append(head, b.styles.Muted.Render(label))
	}
	if b.reasoning != nil {
		head = append(head, b.reasoning.View(inner))
	}
	if images := renderImages(b.msg.Images(), inner, b.styles); images != "" {
		body = append(body, images)
	}
	body = append(body, b.renderBody(inner))

	if b.msg.Reasoning != "" {
		rule := b.styles.Muted.Render(strings.Repeat("─", max(widest(head), widest(body))))
		head = append(head, rule)
	}

	box := style.Render(strings.Join(append(head, body...), "\n"))
	if b.msg.IsUser {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, box)
	}
	return box
}

func (b *MessageBubble) renderBody(width int) string {
	if b.placeholder() {
		return b.dots.View()
	}
	focus := goldmark.NoFocus
	if b.props.Selected {
		focus = b.focus
	}
	doc := goldmark.RenderDocument(b.text(), b.theme, goldmark.Options{
		Width:       width,
		TableOffset: b.tableOffset,
		FocusedCode: focus,
		Copied:      b.Copied,
	})
	return doc.Text
}

func widest(sections []string) int {
	w := 1
	for _, s := range sections {
		w = max(w, lipgloss.Width(s))
	}
	return w
}
