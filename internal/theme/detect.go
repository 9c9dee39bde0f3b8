package theme

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DetectBackground asks the terminal whether its background is dark and
// returns the matching default theme name. The query goes over OSC 11
// and some terminals never answer, so the wait is bounded by timeout.
func DetectBackground(timeout time.Duration) (string, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return "", errors.New("stdout is not a terminal")
	}

	// Buffered so the probe goroutine can finish after a timeout.
	dark := make(chan bool, 1)
	go func() {
		dark <- lipgloss.HasDarkBackground()
	}()

	select {
	case isDark := <-dark:
		if isDark {
			return DefaultDark(), nil
		}
		return DefaultLight(), nil
	case <-time.After(timeout):
		return "", errors.New("terminal did not answer background query")
	}
}
