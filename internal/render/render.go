// Package render turns the conversation log into chat messages.
package render

import (
	"html/template"
	"io"

	"github.com/pricofy/voice-translator/internal/domain"
)

// Side is where a message is drawn in the chat.
type Side int

const (
	// Sent is an utterance shown as spoken, on the right.
	Sent Side = iota
	// Received is a translation, on the left.
	Received
)

func (s Side) String() string {
	if s == Received {
		return "computer"
	}
	return "user"
}

// Message is one rendered chat bubble.
type Message struct {
	Side Side
	Text string
}

// Messages maps each turn to a message. A turn with a translation renders
// only the translation as Received; any other turn renders its user text as
// Sent.
func Messages(log domain.Log) []Message {
	msgs := make([]Message, 0, len(log))
	for _, turn := range log {
		if turn.Translated() {
			msgs = append(msgs, Message{Side: Received, Text: turn.Computer})
			continue
		}
		msgs = append(msgs, Message{Side: Sent, Text: turn.User})
	}
	return msgs
}

var chatTemplate = template.Must(template.New("chat").Parse(
	`{{range .}}<div class="message {{.Side}}"><div class="message-content">{{.Text}}</div></div>
{{end}}`))

// HTML writes the chat container content for log. Text is escaped.
func HTML(w io.Writer, log domain.Log) error {
	return chatTemplate.Execute(w, Messages(log))
}
