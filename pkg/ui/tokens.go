package ui

import "github.com/charmbracelet/lipgloss"

var tokenMap map[string]lipgloss.TerminalColor

func init() {
	tokenMap = map[string]lipgloss.TerminalColor{
		"severity.critical": lipgloss.AdaptiveColor{Light: "13", Dark: "5"},
		"severity.high":     lipgloss.AdaptiveColor{Light: "9", Dark: "1"},
		"severity.medium":   lipgloss.AdaptiveColor{Light: "9", Dark: "3"},
		"severity.low":      lipgloss.NoColor{},
		"severity.info":     lipgloss.NoColor{},
		"status.success":    lipgloss.AdaptiveColor{Light: "2", Dark: "2"},
		"status.failure":    lipgloss.AdaptiveColor{Light: "9", Dark: "1"},
		"chat.user":         lipgloss.AdaptiveColor{Light: "4", Dark: "6"},
		"chat.assistant":    lipgloss.NoColor{},
		"text.plain":        lipgloss.NoColor{},
		"text.muted":        lipgloss.AdaptiveColor{Light: "8", Dark: "7"},
		"border.plain":      lipgloss.NoColor{},
	}
}

func TokenColor(name string) lipgloss.TerminalColor {
	val, ok := tokenMap[name]
	if !ok {
		return lipgloss.NoColor{}
	}
	return val
}
