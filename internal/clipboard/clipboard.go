// Package clipboard copies chart deep links to the system clipboard.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/davidpaquet/sekai-chart-browser/internal/assets"
	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
)

// Manager handles clipboard operations
type Manager struct {
	write    func(string) error
	lookPath func(string) (string, error)
	run      func(name string, args []string, input string) error
	goos     string
}

// NewManager creates a new clipboard manager
func NewManager() *Manager {
	return &Manager{
		write:    clipboard.WriteAll,
		lookPath: exec.LookPath,
		run:      runCommand,
		goos:     runtime.GOOS,
	}
}

// Copy copies text to the clipboard
func (m *Manager) Copy(text string) error {
	err := m.write(text)
	if err == nil {
		return nil
	}
	logging.Debug().Err(err).Msg("Native clipboard unavailable, trying commands")
	return m.copyWithCommand(text)
}

// CopyLink copies a chart URL and returns the status line to show
func (m *Manager) CopyLink(l assets.Link) (string, error) {
	if err := m.Copy(l.URL); err != nil {
		return "", err
	}
	return fmt.Sprintf("Copied %s %d chart link", l.Tier.ShortName(), l.Level), nil
}

// command picks the platform clipboard command
func (m *Manager) command() (string, []string, error) {
	switch m.goos {
	case "darwin":
		return "pbcopy", nil, nil
	case "linux":
		candidates := []struct {
			name string
			args []string
		}{
			{"wl-copy", nil},
			{"xclip", []string{"-selection", "clipboard"}},
			{"xsel", []string{"--clipboard", "--input"}},
		}
		for _, c := range candidates {
			if _, err := m.lookPath(c.name); err == nil {
				return c.name, c.args, nil
			}
		}
		return "", nil, fmt.Errorf("no clipboard command found (install xclip, xsel, or wl-clipboard)")
	case "windows":
		return "clip.exe", nil, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", m.goos)
	}
}

func (m *Manager) copyWithCommand(text string) error {
	name, args, err := m.command()
	if err != nil {
		return err
	}
	if err := m.run(name, args, text); err != nil {
		return fmt.Errorf("clipboard command failed: %w", err)
	}
	return nil
}

func runCommand(name string, args []string, input string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	return cmd.Run()
}
