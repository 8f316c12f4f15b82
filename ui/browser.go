package ui

import (
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"peermind/config"
)

// urlOpenedMsg reports whether the system browser was launched.
type urlOpenedMsg struct {
	URL string
	Err error
}

// browserCommand returns the launcher for goos.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// openURL is swapped in tests.
var openURL = func(url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	return exec.Command(name, args...).Start()
}

func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		err := openURL(url)
		if err != nil {
			config.Log.Printf("[UI] Failed to open %s: %v", url, err)
		}
		return urlOpenedMsg{URL: url, Err: err}
	}
}
