package speech

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Navodith09/NewsSpeak/internal/news"
)

// Utterance is one synthesis request.
type Utterance struct {
	Text   string
	Voice  string // voice name; empty means platform default
	Lang   string
	Rate   float64 // 1.0 is normal speed
	Pitch  float64 // 1.0 is normal pitch
	Volume float64 // 0.0 to 1.0
}

// SynthesisEngine is the platform text-to-speech capability. Voices blocks
// until the catalog has been populated at least once. Speak returns when
// playback finishes, is canceled through ctx, or fails.
type SynthesisEngine interface {
	Voices(ctx context.Context) ([]Voice, error)
	Speak(ctx context.Context, u Utterance) error
}

const (
	narrationRate   = 0.9
	narrationPitch  = 1.2
	fallbackPitch   = 1.4 // applied when no female-sounding voice exists
	narrationVolume = 0.8
)

// Narrator reads articles aloud: idle → speaking → idle, toggle controlled.
// One narration session exists process-wide; starting a new one cancels the
// active one first.
type Narrator struct {
	engine    SynthesisEngine
	preferred []string

	mu       sync.Mutex
	speaking bool
	cancel   context.CancelFunc
}

// NewNarrator creates a Narrator with the given preferred voice names.
// A nil list falls back to DefaultPreferredVoices.
func NewNarrator(engine SynthesisEngine, preferred []string) *Narrator {
	if preferred == nil {
		preferred = DefaultPreferredVoices
	}
	return &Narrator{engine: engine, preferred: preferred}
}

// Toggle acts as a stop button while speaking: it cancels playback and
// returns nil. When idle it starts narrating the article and returns a
// channel that reports completion (a nil error) or failure; either way the
// narrator is back to idle once the channel delivers.
func (n *Narrator) Toggle(a news.Article) <-chan error {
	n.mu.Lock()
	if n.speaking {
		if n.cancel != nil {
			n.cancel()
		}
		n.speaking = false
		n.mu.Unlock()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	n.speaking = true
	n.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer cancel()
		err := n.speak(ctx, a)

		n.mu.Lock()
		n.speaking = false
		n.mu.Unlock()

		if ctx.Err() != nil {
			err = nil // user stop is not a failure
		}
		done <- err
	}()
	return done
}

func (n *Narrator) speak(ctx context.Context, a news.Article) error {
	// The voice catalog may load asynchronously; Voices blocks until it has
	// been populated once.
	voices, err := n.engine.Voices(ctx)
	if err != nil {
		return fmt.Errorf("loading voices: %w", err)
	}

	voice, pitch := pickVoice(voices, n.preferred)
	u := Utterance{
		Text:   NarrationText(a),
		Voice:  voice,
		Lang:   "en-US",
		Rate:   narrationRate,
		Pitch:  pitch,
		Volume: narrationVolume,
	}
	return n.engine.Speak(ctx, u)
}

// Stop cancels the active narration, if any.
func (n *Narrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.speaking && n.cancel != nil {
		n.cancel()
	}
	n.speaking = false
}

// Speaking reports whether a narration is playing.
func (n *Narrator) Speaking() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.speaking
}

// NarrationText composes the spoken form of an article: source (with a
// fallback), title, then description or a fixed phrase when absent.
func NarrationText(a news.Article) string {
	source := a.SourceName
	if source == "" {
		source = "unknown source"
	}
	description := a.Description
	if description == "" {
		description = "No additional details available."
	}
	return fmt.Sprintf("Breaking news from %s. %s. %s", source, a.Title, description)
}

// pickVoice applies the voice preference tiers: a configured preferred name
// restricted to English first, then any English voice whose name signals
// female or woman, then any English voice with the pitch raised to
// approximate the preferred timbre. Returns an empty name when the catalog
// has no English voice at all.
func pickVoice(voices []Voice, preferred []string) (name string, pitch float64) {
	for _, want := range preferred {
		for _, v := range voices {
			if english(v) && strings.Contains(v.Name, want) {
				return v.Name, narrationPitch
			}
		}
	}
	for _, v := range voices {
		lower := strings.ToLower(v.Name)
		if english(v) && (strings.Contains(lower, "female") || strings.Contains(lower, "woman")) {
			return v.Name, narrationPitch
		}
	}
	for _, v := range voices {
		if english(v) {
			return v.Name, fallbackPitch
		}
	}
	return "", narrationPitch
}
