package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorActive   = lipgloss.Color("#10B981")
	colorInactive = lipgloss.Color("#6B7280")
	colorError    = lipgloss.Color("#EF4444")
	colorWarning  = lipgloss.Color("#F59E0B")
	colorTitle    = lipgloss.Color("#7C3AED")
)

var (
	activeStyle   = lipgloss.NewStyle().Foreground(colorActive)
	inactiveStyle = lipgloss.NewStyle().Foreground(colorInactive)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
)

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
// NO_COLOR: if set (any value), color is disabled per https://no-color.org
func colorEnabled() bool {
	if settings.GetBool("no-color") {
		return false
	}
	return os.Getenv("NO_COLOR") == ""
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

// stateLabel renders a mod or profile state for table output.
func stateLabel(active bool) string {
	if active {
		return render(activeStyle, "active")
	}
	return render(inactiveStyle, "inactive")
}

// requiredLabel renders whether a dependency gap blocks a mod from loading.
func requiredLabel(required bool) string {
	if required {
		return render(errorStyle, "required")
	}
	return render(warningStyle, "optional")
}

func title(s string) string {
	return render(titleStyle, s)
}
