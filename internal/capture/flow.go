package capture

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pricofy/voice-translator/internal/domain"
	"github.com/pricofy/voice-translator/internal/script"
)

// State is the recording state of a Flow.
type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	if s == Recording {
		return "recording"
	}
	return "idle"
}

// unsupportedMessage is what the user sees when no recognizer is available.
const unsupportedMessage = "Speech Recognition API is not supported in this environment."

var (
	// ErrCapabilityUnavailable is returned when no recognizer is available.
	ErrCapabilityUnavailable = errors.New("capture: speech recognition is not available")

	// ErrAlreadyRecording is returned when a session is already in flight.
	ErrAlreadyRecording = errors.New("capture: already recording")
)

// Translator returns the translation of text into targetLang.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Store is the conversation log the flow writes to.
type Store interface {
	Append(ctx context.Context, turn domain.Turn) (domain.Log, error)
	Clear(ctx context.Context) error
}

// View is refreshed after the log changes.
type View interface {
	Refresh(ctx context.Context) error
}

// Notifier shows a human-readable message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// WriterNotifier prints each message on its own line.
func WriterNotifier(w io.Writer) Notifier {
	return NotifierFunc(func(msg string) { fmt.Fprintln(w, msg) })
}

// Flow is the Idle/Recording capture state machine. At most one session and
// one translation call are in flight at a time.
type Flow struct {
	rec        Recognizer
	translator Translator
	store      Store
	view       View
	notifier   Notifier
	logger     zerolog.Logger

	mu      sync.Mutex
	state   State
	session Session
	done    chan struct{}
}

// Option customizes a Flow.
type Option func(*Flow)

// WithView refreshes v after every append and clear.
func WithView(v View) Option { return func(f *Flow) { f.view = v } }

// WithNotifier sets where user-facing messages go.
func WithNotifier(n Notifier) Option { return func(f *Flow) { f.notifier = n } }

// WithLogger sets the flow logger.
func WithLogger(l zerolog.Logger) Option {
	return func(f *Flow) { f.logger = l.With().Str("component", "capture").Logger() }
}

// NewFlow creates a Flow. A nil recognizer fails with
// ErrCapabilityUnavailable, and the user is notified, before any recording
// can be attempted.
func NewFlow(rec Recognizer, tr Translator, store Store, opts ...Option) (*Flow, error) {
	f := &Flow{
		rec:        rec,
		translator: tr,
		store:      store,
		notifier:   NotifierFunc(func(string) {}),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if rec == nil {
		f.notifier.Notify(unsupportedMessage)
		return nil, ErrCapabilityUnavailable
	}
	if tr == nil || store == nil {
		return nil, errors.New("capture: translator and store are required")
	}
	return f, nil
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Capture records one utterance and processes it, blocking until the
// session ends. It returns the appended turn, or nil if nothing was
// appended. Cancelling ctx stops the session and drops its result.
func (f *Flow) Capture(ctx context.Context) (*domain.Turn, error) {
	sess, done, err := f.begin()
	if err != nil {
		return nil, err
	}
	return f.await(ctx, sess, done)
}

// Toggle starts a session when idle and stops the running one otherwise.
// A started session is processed in the background; use Wait to block on
// it.
func (f *Flow) Toggle(ctx context.Context) error {
	if f.State() == Recording {
		f.Stop()
		return nil
	}
	sess, done, err := f.begin()
	if err != nil {
		return err
	}
	go func() { _, _ = f.await(ctx, sess, done) }()
	return nil
}

// Stop asks the running session to end. It is a no-op when idle.
func (f *Flow) Stop() {
	f.mu.Lock()
	sess := f.session
	f.mu.Unlock()
	if sess != nil {
		sess.Stop()
	}
}

// Wait blocks until the in-flight session, if any, has been processed.
func (f *Flow) Wait() {
	f.mu.Lock()
	done := f.done
	f.mu.Unlock()
	if done != nil {
		<-done
	}
}

// ClearConversation deletes the log and refreshes the view.
func (f *Flow) ClearConversation(ctx context.Context) error {
	if err := f.store.Clear(ctx); err != nil {
		return err
	}
	f.refresh(ctx)
	return nil
}

func (f *Flow) begin() (Session, chan struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Recording {
		return nil, nil, ErrAlreadyRecording
	}
	sess, err := f.rec.Start(DefaultOptions())
	if err != nil {
		f.notifier.Notify("Speech recognition error: " + errorCode(err))
		return nil, nil, err
	}

	f.state = Recording
	f.session = sess
	f.done = make(chan struct{})
	f.logger.Debug().Msg("recording started")
	return sess, f.done, nil
}

func (f *Flow) await(ctx context.Context, sess Session, done chan struct{}) (*domain.Turn, error) {
	defer func() {
		f.mu.Lock()
		f.state = Idle
		f.session = nil
		f.done = nil
		f.mu.Unlock()
		close(done)
		f.logger.Debug().Msg("recording ended")
	}()

	var res Result
	select {
	case res = <-sess.Done():
	case <-ctx.Done():
		sess.Stop()
		res = <-sess.Done()
	}
	if err := ctx.Err(); err != nil {
		f.logger.Debug().Str("transcript", res.Transcript).Msg("session cancelled, result dropped")
		return nil, err
	}
	return f.process(ctx, res)
}

// process handles the terminal result of a session.
func (f *Flow) process(ctx context.Context, res Result) (*domain.Turn, error) {
	if res.Err != nil {
		f.logger.Warn().Err(res.Err).Msg("speech recognition error")
		f.notifier.Notify("Speech recognition error: " + errorCode(res.Err))
		return nil, res.Err
	}
	if res.Transcript == "" {
		return nil, nil
	}

	f.logger.Info().Str("transcript", res.Transcript).Msg("recognized text")

	turn := domain.Turn{User: res.Transcript}
	if !script.IsTarget(res.Transcript) {
		translated, err := f.translator.Translate(ctx, res.Transcript, domain.TargetLangChinese)
		if err != nil {
			f.logger.Error().Err(err).Msg("error during translation")
			f.notifier.Notify("Translation error: " + err.Error())
			return nil, errors.Wrap(err, "translation failed")
		}
		turn.Computer = translated
	}

	if _, err := f.store.Append(ctx, turn); err != nil {
		f.logger.Error().Err(err).Msg("failed to append turn")
		f.notifier.Notify("Failed to save conversation: " + err.Error())
		return nil, err
	}
	f.refresh(ctx)
	return &turn, nil
}

func (f *Flow) refresh(ctx context.Context) {
	if f.view == nil {
		return
	}
	if err := f.view.Refresh(ctx); err != nil {
		f.logger.Warn().Err(err).Msg("failed to refresh view")
	}
}

func errorCode(err error) string {
	var re *RecognitionError
	if errors.As(err, &re) {
		return re.Code
	}
	return err.Error()
}
