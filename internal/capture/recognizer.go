// Package capture runs the speech capture flow: record one utterance,
// classify its script, translate it when needed and append it to the
// conversation log.
package capture

import (
	"github.com/pricofy/voice-translator/internal/domain"
)

// Options configures a recognition session.
type Options struct {
	Lang           string
	Continuous     bool
	InterimResults bool
}

// DefaultOptions is the single-shot English recognition used by the flow.
func DefaultOptions() Options {
	return Options{Lang: domain.RecognitionLang}
}

// Result is the terminal event of a session. A zero Result means the session
// was stopped before anything was recognized.
type Result struct {
	Transcript string
	Err        error
}

// Session is one started recognition. Done delivers exactly one Result.
type Session interface {
	Stop()
	Done() <-chan Result
}

// Recognizer starts recognition sessions.
type Recognizer interface {
	Start(opts Options) (Session, error)
}

// RecognitionError is an error code reported by the recognition engine,
// such as "no-speech", "aborted" or "network".
type RecognitionError struct {
	Code string
}

func (e *RecognitionError) Error() string {
	return "speech recognition error: " + e.Code
}
