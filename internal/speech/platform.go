package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// NewPlatformSynthesis returns the synthesis engine for the current OS:
// the say tool on macOS, espeak-ng elsewhere.
func NewPlatformSynthesis() SynthesisEngine {
	if runtime.GOOS == "darwin" {
		return &sayEngine{}
	}
	return &espeakEngine{}
}

// sayEngine synthesizes through macOS say(1).
type sayEngine struct {
	once   sync.Once
	voices []Voice
	err    error
}

func (e *sayEngine) Voices(ctx context.Context) ([]Voice, error) {
	e.once.Do(func() {
		out, err := exec.CommandContext(ctx, "say", "-v", "?").Output()
		if err != nil {
			e.err = fmt.Errorf("listing voices: %w", err)
			return
		}
		e.voices = parseSayVoices(out)
	})
	return e.voices, e.err
}

// parseSayVoices reads `say -v ?` output: "Samantha  en_US  # greeting".
func parseSayVoices(out []byte) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		comment := strings.Index(line, "#")
		if comment >= 0 {
			line = line[:comment]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		lang := strings.ReplaceAll(fields[len(fields)-1], "_", "-")
		name := strings.Join(fields[:len(fields)-1], " ")
		voices = append(voices, Voice{Name: name, Lang: lang})
	}
	return voices
}

func (e *sayEngine) Speak(ctx context.Context, u Utterance) error {
	// say has no pitch control; rate is words per minute, ~175 is normal.
	args := []string{"-r", strconv.Itoa(int(u.Rate * 175))}
	if u.Voice != "" {
		args = append(args, "-v", u.Voice)
	}
	args = append(args, u.Text)
	if err := exec.CommandContext(ctx, "say", args...).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("say: %w", err)
	}
	return nil
}

// espeakEngine synthesizes through espeak-ng.
type espeakEngine struct {
	once   sync.Once
	voices []Voice
	err    error
}

func (e *espeakEngine) Voices(ctx context.Context) ([]Voice, error) {
	e.once.Do(func() {
		out, err := exec.CommandContext(ctx, "espeak-ng", "--voices=en").Output()
		if err != nil {
			e.err = fmt.Errorf("listing voices: %w", err)
			return
		}
		e.voices = parseEspeakVoices(out)
	})
	return e.voices, e.err
}

// parseEspeakVoices reads `espeak-ng --voices=en` rows:
// "Pty Language       Age/Gender VoiceName         File canonical".
func parseEspeakVoices(out []byte) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for scanner.Scan() {
		if first { // header row
			first = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		name := fields[3]
		if strings.Contains(fields[2], "F") {
			// Keep the gender marker visible to the selection policy.
			name += " female"
		}
		voices = append(voices, Voice{Name: name, Lang: fields[1]})
	}
	return voices
}

func (e *espeakEngine) Speak(ctx context.Context, u Utterance) error {
	args := []string{
		"-s", strconv.Itoa(int(u.Rate * 175)),
		"-p", strconv.Itoa(int(u.Pitch * 50)), // espeak pitch: 0-99, 50 normal
		"-a", strconv.Itoa(int(u.Volume * 200)), // amplitude: 0-200, 100 normal
	}
	if u.Voice != "" {
		args = append(args, "-v", strings.TrimSuffix(u.Voice, " female"))
	}
	args = append(args, u.Text)
	if err := exec.CommandContext(ctx, "espeak-ng", args...).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("espeak-ng: %w", err)
	}
	return nil
}

// CommandRecognizer runs a user-configured capture command for speech
// recognition. The command is expected to record one utterance and print
// the transcript on stdout; a missing command means the capability is
// unavailable and Recognizer.Start fails fast.
type CommandRecognizer struct {
	Command []string
}

// NewCommandRecognizer splits the configured command line. An empty line
// yields an engine that reports itself unavailable.
func NewCommandRecognizer(commandLine string) *CommandRecognizer {
	return &CommandRecognizer{Command: strings.Fields(commandLine)}
}

func (c *CommandRecognizer) Available() bool {
	if len(c.Command) == 0 {
		return false
	}
	_, err := exec.LookPath(c.Command[0])
	return err == nil
}

// Listen runs one single-shot capture. The command gets the language as its
// last argument; stdout is the final transcript.
func (c *CommandRecognizer) Listen(ctx context.Context, opts RecognitionOpts) (<-chan RecognitionEvent, error) {
	if !c.Available() {
		return nil, ErrUnsupported
	}

	args := append(c.Command[1:], opts.Lang)
	cmd := exec.CommandContext(ctx, c.Command[0], args...)

	events := make(chan RecognitionEvent, 2)
	go func() {
		defer close(events)
		out, err := cmd.Output()
		if err != nil {
			events <- RecognitionEvent{Kind: EventError, Err: err}
			return
		}
		transcript := strings.TrimSpace(string(out))
		if transcript == "" {
			events <- RecognitionEvent{Kind: EventEnd}
			return
		}
		events <- RecognitionEvent{Kind: EventResult, Transcript: transcript}
	}()
	return events, nil
}
