package capture

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// LineRecognizer treats each line read from r as one recognized utterance.
// It stands in for a microphone when the flow runs in a terminal.
type LineRecognizer struct {
	r     io.Reader
	once  sync.Once
	lines chan string
}

var _ Recognizer = (*LineRecognizer)(nil)

// NewLineRecognizer creates a recognizer reading from r.
func NewLineRecognizer(r io.Reader) *LineRecognizer {
	return &LineRecognizer{r: r, lines: make(chan string)}
}

// pump reads lines until EOF. A line read while no session listens waits
// for the next session.
func (l *LineRecognizer) pump() {
	go func() {
		sc := bufio.NewScanner(l.r)
		for sc.Scan() {
			l.lines <- sc.Text()
		}
		close(l.lines)
	}()
}

// Start begins a session that ends with the next line, EOF or Stop.
func (l *LineRecognizer) Start(_ Options) (Session, error) {
	l.once.Do(l.pump)

	s := &lineSession{
		stop: make(chan struct{}),
		done: make(chan Result, 1),
	}
	go func() {
		select {
		case line, ok := <-l.lines:
			switch {
			case !ok:
				s.done <- Result{Err: &RecognitionError{Code: "aborted"}}
			case strings.TrimSpace(line) == "":
				s.done <- Result{Err: &RecognitionError{Code: "no-speech"}}
			default:
				s.done <- Result{Transcript: strings.TrimSpace(line)}
			}
		case <-s.stop:
			s.done <- Result{}
		}
	}()
	return s, nil
}

type lineSession struct {
	stopOnce sync.Once
	stop     chan struct{}
	done     chan Result
}

func (s *lineSession) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *lineSession) Done() <-chan Result {
	return s.done
}
