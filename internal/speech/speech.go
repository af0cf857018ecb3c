// Package speech wraps the platform's speech capabilities behind two small
// state machines: a Recognizer turning spoken queries into search terms and
// a Narrator reading articles aloud. Engines are interfaces so tests (and
// platforms without the capability) can substitute fakes.
package speech

import "errors"

// ErrUnsupported signals that the platform offers no speech recognition
// capability. Callers fail fast on it instead of entering the listening
// state.
var ErrUnsupported = errors.New("speech recognition is not supported on this platform")

// Voice is one entry of the platform's synthesis voice catalog.
type Voice struct {
	Name string
	Lang string // BCP 47 style, e.g. "en-US"
}

// DefaultPreferredVoices is the priority list of known female voice names,
// most preferred first. It is configuration data, not a contract: the exact
// catalog differs per platform and users can override the list.
var DefaultPreferredVoices = []string{
	"Samantha",
	"Victoria",
	"Allison",
	"Ava",
	"Susan",
	"Vicki",
	"Microsoft Zira",
	"Microsoft Hazel",
	"Google UK English Female",
	"Google US English Female",
	"Karen",
	"Moira",
	"Tessa",
	"Veena",
	"Female",
	"Woman",
}

func english(v Voice) bool {
	return len(v.Lang) >= 2 && v.Lang[:2] == "en"
}
