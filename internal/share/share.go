// Package share hands an article link to the platform share facility, with
// a clipboard copy as the universal fallback.
package share

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// Result tells the UI what actually happened with the link.
type Result int

const (
	// Shared means a native share command handled the link.
	Shared Result = iota
	// Copied means the link was copied to the clipboard instead.
	Copied
)

// Sharer publishes an article link.
type Sharer interface {
	Share(title, url string) (Result, error)
}

// System shares through a configured share command when one exists and falls
// back to the clipboard otherwise (or when the command fails).
type System struct {
	// Command is the optional native share command; the title and URL are
	// appended as its final two arguments.
	Command []string
}

// New builds a System sharer from the configured command line. An empty line
// means clipboard only.
func New(commandLine string) *System {
	return &System{Command: strings.Fields(commandLine)}
}

func (s *System) Share(title, url string) (Result, error) {
	if len(s.Command) > 0 {
		if _, err := exec.LookPath(s.Command[0]); err == nil {
			args := append(s.Command[1:], title, url)
			if err := exec.Command(s.Command[0], args...).Run(); err == nil {
				return Shared, nil
			}
		}
	}
	if err := clipboard.WriteAll(url); err != nil {
		return Copied, fmt.Errorf("copying link: %w", err)
	}
	return Copied, nil
}
