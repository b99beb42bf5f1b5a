package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmsg"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SelectedBorder  lipgloss.TerminalColor
	Reasoning       lipgloss.Style
	Error           lipgloss.Style
	Success         lipgloss.Style
	Muted           lipgloss.Style
	Accent          lipgloss.Style
	Dots            lipgloss.Style
	ImageFrame      lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t chatmsg.Theme) Styles {
	bubble := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return Styles{
		UserBubble:      bubble.BorderForeground(ansiColor(t.UserMsg)),
		AssistantBubble: bubble.BorderForeground(ansiColor(t.Assistant)),
		SelectedBorder:  ansiColor(t.Accent),
		Reasoning:       lipgloss.NewStyle().Foreground(ansiColor(t.Reasoning)).Faint(true),
		Error:           lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:         lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:           lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:          lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Dots:            lipgloss.NewStyle().Foreground(ansiColor(t.Muted)),
		ImageFrame:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(ansiColor(t.Muted)).Padding(0, 1),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
