package ui

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
)

func Test_ProgressBar_Spinner(t *testing.T) {
	writer := &bytes.Buffer{}

	bar := newProgressBar(writer, SpinnerType, false)
	bar.SetTitle("Scanning")

	assert.NoError(t, bar.UpdateProgress(0))
	assert.NoError(t, bar.UpdateProgress(0.3))
	assert.NoError(t, bar.UpdateProgress(1.2))
	assert.NoError(t, bar.Clear())
	assert.Error(t, bar.UpdateProgress(0.5))

	expected := "\r\033[K\\   0% Scanning\r\033[K|  30% Scanning\r\033[K/ 100% Scanning\r\033[K"
	assert.Equal(t, expected, writer.String())
}

func Test_ProgressBar_Spinner_Infinite(t *testing.T) {
	writer := &bytes.Buffer{}

	bar := newProgressBar(writer, SpinnerType, false)
	bar.SetTitle("Polling")

	for i := 0; i < 3; i++ {
		assert.NoError(t, bar.UpdateProgress(InfiniteProgress))
	}
	assert.NoError(t, bar.Clear())

	expected := "\r\033[K\\ Polling\r\033[K| Polling\r\033[K/ Polling\r\033[K"
	assert.Equal(t, expected, writer.String())
}

func Test_ProgressBar_Bar(t *testing.T) {
	writer := &bytes.Buffer{}

	bar := newProgressBar(writer, BarType, false)
	bar.SetTitle("Upload")

	assert.NoError(t, bar.UpdateProgress(0))
	assert.NoError(t, bar.UpdateProgress(0.5))
	assert.NoError(t, bar.UpdateProgress(7))
	assert.NoError(t, bar.Clear())

	expected := "\r\033[K[>" + spaces(39) + "]   0% Upload" +
		"\r\033[K[" + equals(20) + ">" + spaces(19) + "]  50% Upload" +
		"\r\033[K[" + equals(39) + ">] 100% Upload" +
		"\r\033[K"
	assert.Equal(t, expected, writer.String())
}

func Test_ProgressBar_Text(t *testing.T) {
	writer := &bytes.Buffer{}

	bar := newProgressBar(writer, "text", false)
	bar.SetTitle("Results")

	assert.NoError(t, bar.UpdateProgress(0.9))
	assert.NoError(t, bar.Clear())
	// a second clear does not write anything
	assert.NoError(t, bar.Clear())

	assert.Equal(t, "\r\033[K 90% Results\r\033[K", writer.String())
}

func Test_DefaultUi(t *testing.T) {
	stdin := &bytes.Buffer{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	stdin.WriteString("project-123\n")

	ui := newConsoleUi(stdin, stdout, stderr)

	// buffers are no terminal, the bar does not render
	bar := ui.NewProgressBar()
	bar.SetTitle("Hello")
	assert.NoError(t, bar.UpdateProgress(InfiniteProgress))
	assert.NoError(t, bar.Clear())

	assert.NoError(t, ui.Output("Hello"))

	in, err := ui.Input("Project id")
	require.NoError(t, err)
	assert.Equal(t, "project-123", in)

	assert.Equal(t, "Hello\nProject id: ", stdout.String())
	assert.Empty(t, stderr.String())
}

func Test_DefaultUi_InputSecretWithoutTerminal(t *testing.T) {
	stdin := bytes.NewBufferString("  my-secret-key  ")
	stdout := &bytes.Buffer{}

	ui := newConsoleUi(stdin, stdout, &bytes.Buffer{})

	secret, err := ui.InputSecret("API key")
	require.NoError(t, err)
	assert.Equal(t, "my-secret-key", secret)
}

func Test_OutputError(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	ui := newConsoleUi(&bytes.Buffer{}, stdout, stderr)

	t.Run("plain error", func(t *testing.T) {
		assert.NoError(t, ui.OutputError(fmt.Errorf("hello error world")))
		assert.Equal(t, "ERROR  hello error world\n", stderr.String())
		stderr.Reset()
	})

	t.Run("catalog error", func(t *testing.T) {
		err := errorcatalog.FromStatusCode("fetch scan status", 401, "")
		assert.NoError(t, ui.OutputError(fmt.Errorf("scan: %w", err)))
		assert.Equal(t, "ERROR  Authentication error (CD-AUTHENTICATION) HTTP 401\n       scan: fetch scan status failed: authentication failed, check your API key\n", stderr.String())
		stderr.Reset()
	})

	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, ui.OutputError(nil))
		assert.Empty(t, stderr.String())
	})

	assert.Empty(t, stdout.String())
}

func spaces(n int) string { return repeat(" ", n) }
func equals(n int) string { return repeat("=", n) }

func repeat(s string, n int) string {
	var b bytes.Buffer
	for i := 0; i < n; i++ {
		b.WriteString(s)
	}
	return b.String()
}
