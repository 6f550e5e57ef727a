package render

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pricofy/voice-translator/internal/domain"
)

// LogReader is the read side of the conversation store.
type LogReader interface {
	Read(ctx context.Context) (domain.Log, error)
}

// Theme defines the colors of the terminal chat.
type Theme struct {
	Received lipgloss.Color
	Sent     lipgloss.Color
	Dim      lipgloss.Color
}

// DefaultTheme matches the web chat: grey bubbles for translations, green
// for the speaker.
var DefaultTheme = Theme{
	Received: lipgloss.Color("#e5e5ea"),
	Sent:     lipgloss.Color("#34c759"),
	Dim:      lipgloss.Color("#6e7681"),
}

// Terminal draws the conversation as left/right aligned bubbles.
type Terminal struct {
	w        io.Writer
	store    LogReader
	width    int
	received lipgloss.Style
	sent     lipgloss.Style
	empty    lipgloss.Style
}

// NewTerminal creates a terminal view of the log kept in store.
func NewTerminal(w io.Writer, store LogReader, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	bubble := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	return &Terminal{
		w:        w,
		store:    store,
		width:    width,
		received: bubble.BorderForeground(DefaultTheme.Received),
		sent:     bubble.BorderForeground(DefaultTheme.Sent),
		empty:    lipgloss.NewStyle().Foreground(DefaultTheme.Dim),
	}
}

// Render returns the drawn chat for log.
func (t *Terminal) Render(log domain.Log) string {
	msgs := Messages(log)
	if len(msgs) == 0 {
		return t.empty.Render("(no messages)") + "\n"
	}

	var b strings.Builder
	for _, m := range msgs {
		if m.Side == Received {
			b.WriteString(lipgloss.PlaceHorizontal(t.width, lipgloss.Left, t.bubble(t.received, m.Text)))
		} else {
			b.WriteString(lipgloss.PlaceHorizontal(t.width, lipgloss.Right, t.bubble(t.sent, m.Text)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// bubble draws text in style, wrapping it at three quarters of the chat
// width. Short text keeps a bubble that fits it.
func (t *Terminal) bubble(style lipgloss.Style, text string) string {
	frame := style.GetHorizontalFrameSize()
	limit := t.width*3/4 - frame
	if limit < 1 {
		limit = 1
	}
	inner := lipgloss.Width(text)
	if inner > limit {
		inner = limit
	}
	// Width counts padding but not the border.
	return style.Width(inner + style.GetHorizontalPadding()).Render(text)
}

// Refresh re-reads the log and redraws it.
func (t *Terminal) Refresh(ctx context.Context) error {
	log, err := t.store.Read(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(t.w, t.Render(log))
	return err
}
