package speech

import (
	"context"
	"strings"
	"sync"
)

// RecognitionOpts fixes the session parameters: English (US), interim
// results on, single-shot, one alternative.
type RecognitionOpts struct {
	Lang            string
	InterimResults  bool
	Continuous      bool
	MaxAlternatives int
}

// defaultRecognitionOpts mirrors the capture settings of the web app.
var defaultRecognitionOpts = RecognitionOpts{
	Lang:            "en-US",
	InterimResults:  true,
	Continuous:      false,
	MaxAlternatives: 1,
}

// RecognitionEventKind discriminates capture session events.
type RecognitionEventKind int

const (
	// EventInterim carries a partial transcript while still listening.
	EventInterim RecognitionEventKind = iota
	// EventResult carries the final transcript and ends the session.
	EventResult
	// EventEnd closes the session without a final transcript.
	EventEnd
	// EventError closes the session with a capture failure.
	EventError
)

// RecognitionEvent is one event of a capture session.
type RecognitionEvent struct {
	Kind       RecognitionEventKind
	Transcript string
	Err        error
}

// RecognitionEngine is the platform speech-to-text capability. Listen starts
// one session and delivers its events on the returned channel; the channel
// closes when the session is over or ctx is canceled.
type RecognitionEngine interface {
	Available() bool
	Listen(ctx context.Context, opts RecognitionOpts) (<-chan RecognitionEvent, error)
}

// Recognizer drives voice query capture: idle → listening → (result | error
// | end) → idle. A final result triggers the navigate callback with the
// transcript as search term; error or end reset to idle silently. Only one
// session is active at a time; Start while listening restarts the session.
type Recognizer struct {
	engine   RecognitionEngine
	navigate func(term string)

	mu         sync.Mutex
	listening  bool
	transcript string
	cancel     context.CancelFunc
}

// NewRecognizer wires the engine to the search navigation callback.
func NewRecognizer(engine RecognitionEngine, navigate func(term string)) *Recognizer {
	return &Recognizer{engine: engine, navigate: navigate}
}

// Start begins a capture session, canceling any active one first. It fails
// fast with ErrUnsupported when the platform has no recognition capability.
func (r *Recognizer) Start() error {
	if r.engine == nil || !r.engine.Available() {
		return ErrUnsupported
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.transcript = ""
	r.mu.Unlock()

	events, err := r.engine.Listen(ctx, defaultRecognitionOpts)
	if err != nil {
		cancel()
		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	r.listening = true
	r.mu.Unlock()

	go r.consume(events, cancel)
	return nil
}

// consume drains one session's events and applies the state transitions.
func (r *Recognizer) consume(events <-chan RecognitionEvent, cancel context.CancelFunc) {
	defer cancel()

	for ev := range events {
		switch ev.Kind {
		case EventInterim:
			r.mu.Lock()
			r.transcript = ev.Transcript
			r.mu.Unlock()

		case EventResult:
			// Navigate before leaving the listening state: anyone who
			// observes the session as ended must already be able to see
			// the delivered term.
			term := strings.TrimSpace(ev.Transcript)
			r.mu.Lock()
			r.transcript = ev.Transcript
			r.mu.Unlock()
			if term != "" && r.navigate != nil {
				r.navigate(term)
			}
			r.mu.Lock()
			r.listening = false
			r.mu.Unlock()
			return

		case EventEnd, EventError:
			r.mu.Lock()
			r.listening = false
			r.mu.Unlock()
			return
		}
	}

	// Channel closed without a terminal event: treat as end.
	r.mu.Lock()
	r.listening = false
	r.mu.Unlock()
}

// Stop cancels the active session, if any.
func (r *Recognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
	r.listening = false
}

// Listening reports whether a capture session is active.
func (r *Recognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

// Transcript returns the latest transcript (interim or final).
func (r *Recognizer) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transcript
}
