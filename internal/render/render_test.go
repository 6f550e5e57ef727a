package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/pricofy/voice-translator/internal/conversation"
	"github.com/pricofy/voice-translator/internal/domain"
	"github.com/pricofy/voice-translator/internal/kv"
)

func TestMessages(t *testing.T) {
	tests := []struct {
		name     string
		log      domain.Log
		expected []Message
	}{
		{name: "empty", log: domain.Log{}, expected: []Message{}},
		{name: "nil", log: nil, expected: []Message{}},
		{name: "untranslated", log: domain.Log{{User: "你好"}}, expected: []Message{{Side: Sent, Text: "你好"}}},
		{name: "translated", log: domain.Log{{User: "hello", Computer: "你好"}}, expected: []Message{{Side: Received, Text: "你好"}}},
		{
			// side follows field presence, not the script of the text
			name:     "english user without translation",
			log:      domain.Log{{User: "hello"}},
			expected: []Message{{Side: Sent, Text: "hello"}},
		},
		{
			name: "ordered",
			log: domain.Log{
				{User: "hello", Computer: "你好"},
				{User: "谢谢"},
				{User: "bye", Computer: "再见"},
			},
			expected: []Message{
				{Side: Received, Text: "你好"},
				{Side: Sent, Text: "谢谢"},
				{Side: Received, Text: "再见"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Messages(tt.log))
		})
	}
}

func TestRoundTripThroughStore(t *testing.T) {
	ctx := context.Background()

	s := conversation.NewStore(kv.NewMemory())
	log, err := s.Append(ctx, domain.Turn{User: "你好"})
	require.NoError(t, err)
	require.Equal(t, []Message{{Side: Sent, Text: "你好"}}, Messages(log))

	s = conversation.NewStore(kv.NewMemory())
	log, err = s.Append(ctx, domain.Turn{User: "hello", Computer: "你好"})
	require.NoError(t, err)
	require.Equal(t, []Message{{Side: Received, Text: "你好"}}, Messages(log))
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, domain.Log{
		{User: "hello", Computer: "你好"},
		{User: "谢谢"},
	})
	require.NoError(t, err)
	require.Equal(t,
		`<div class="message computer"><div class="message-content">你好</div></div>`+"\n"+
			`<div class="message user"><div class="message-content">谢谢</div></div>`+"\n",
		buf.String())
}

func TestHTML_EscapesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, domain.Log{{User: `<script>alert(1)</script>`}}))
	require.NotContains(t, buf.String(), "<script>")
	require.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestHTML_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, nil))
	require.Empty(t, buf.String())
}

func TestRender_Idempotent(t *testing.T) {
	log := domain.Log{{User: "hello", Computer: "你好"}, {User: "谢谢"}}

	var a, b bytes.Buffer
	require.NoError(t, HTML(&a, log))
	require.NoError(t, HTML(&b, log))
	require.Equal(t, a.String(), b.String())

	term := NewTerminal(&bytes.Buffer{}, nil, 40)
	require.Equal(t, term.Render(log), term.Render(log))
}

func TestTerminal_Alignment(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, nil, 40)

	received := term.Render(domain.Log{{User: "hello", Computer: "hi there"}})
	require.Contains(t, received, "hi there")
	require.True(t, strings.HasPrefix(received, "╭"), "received bubble should be left aligned:\n%s", received)

	sent := term.Render(domain.Log{{User: "hey"}})
	require.Contains(t, sent, "hey")
	require.True(t, strings.HasPrefix(sent, " "), "sent bubble should be right aligned:\n%s", sent)
}

func TestTerminal_Refresh(t *testing.T) {
	ctx := context.Background()
	s := conversation.NewStore(kv.NewMemory())
	var out bytes.Buffer
	term := NewTerminal(&out, s, 40)

	_, err := s.Append(ctx, domain.Turn{User: "hello", Computer: "你好"})
	require.NoError(t, err)
	require.NoError(t, term.Refresh(ctx))
	require.Contains(t, out.String(), "你好")

	require.NoError(t, s.Clear(ctx))
	out.Reset()
	require.NoError(t, term.Refresh(ctx))
	require.NotContains(t, out.String(), "你好")
	require.Contains(t, out.String(), "no messages")
}

func TestTerminal_WrapsLongMessages(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, nil, 80)
	long := strings.Repeat("word ", 30) + "END"

	for _, log := range []domain.Log{
		{{User: long}},
		{{User: "hello", Computer: long}},
	} {
		out := term.Render(log)
		require.Contains(t, out, "END")
		require.Equal(t, len(strings.Fields(long)), strings.Count(out, "word")+strings.Count(out, "END"))

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Greater(t, len(lines), 3, "long text should wrap onto several lines:\n%s", out)
		for _, line := range lines {
			require.LessOrEqual(t, lipgloss.Width(line), 80)
			require.True(t, strings.HasSuffix(strings.TrimRight(line, " "), "│") ||
				strings.HasSuffix(strings.TrimRight(line, " "), "╮") ||
				strings.HasSuffix(strings.TrimRight(line, " "), "╯"),
				"bubble border cut off:\n%s", out)
		}
	}
}

func TestTerminal_ShortMessageKeepsNarrowBubble(t *testing.T) {
	out := NewTerminal(&bytes.Buffer{}, nil, 80).Render(domain.Log{{User: "hello", Computer: "hi"}})
	first := strings.Split(out, "\n")[0]
	require.Equal(t, "╭────╮", strings.TrimRight(first, " "))
}
