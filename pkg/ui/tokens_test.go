package ui_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
)

func TestTokenColorExistingToken(t *testing.T) {
	expectedColor := lipgloss.AdaptiveColor{Light: "13", Dark: "5"}
	actualColor := ui.TokenColor("severity.critical")
	assert.Equal(t, expectedColor, actualColor)
}

func TestTokenColorNonexistentToken(t *testing.T) {
	actualColor := ui.TokenColor("invalid.token")
	assert.Equal(t, lipgloss.NoColor{}, actualColor)
}
