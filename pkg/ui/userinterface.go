package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
)

//go:generate go tool github.com/golang/mock/mockgen -source=userinterface.go -destination ../mocks/userinterface.go -package mocks -self_package github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui/

type UserInterface interface {
	Output(output string) error
	OutputError(err error) error
	NewProgressBar() ProgressBar
	Input(prompt string) (string, error)
	// InputSecret reads a value without echoing it when connected to a terminal.
	InputSecret(prompt string) (string, error)
}

func DefaultUi() UserInterface {
	return newConsoleUi(os.Stdin, os.Stdout, os.Stderr)
}

func newConsoleUi(in io.Reader, out io.Writer, err io.Writer) *consoleUi {
	defaultUi := &consoleUi{
		writer:      out,
		errorWriter: err,
		input:       in,
		reader:      bufio.NewReader(in),
	}

	defaultUi.progressBarFactory = func() ProgressBar {
		if isTerminal(err) {
			return newProgressBar(err, SpinnerType, true)
		}
		return emptyProgressBar{}
	}

	return defaultUi
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type consoleUi struct {
	writer             io.Writer
	errorWriter        io.Writer
	input              io.Reader
	progressBarFactory func() ProgressBar
	reader             *bufio.Reader
}

func (ui *consoleUi) Output(output string) error {
	_, err := fmt.Fprintln(ui.writer, output)
	return err
}

func (ui *consoleUi) OutputError(err error) error {
	if err == nil {
		return nil
	}
	_, writeErr := fmt.Fprintln(ui.errorWriter, RenderError(err))
	return writeErr
}

// RenderError formats err for the terminal. Catalog errors show their title, code and status code.
func RenderError(err error) string {
	label := lipgloss.NewStyle().Bold(true).Foreground(TokenColor("status.failure")).Render("ERROR")

	var catalogErr *errorcatalog.Error
	if !errors.As(err, &catalogErr) {
		return label + "  " + err.Error()
	}

	described := catalogErr.Catalog()
	title := fmt.Sprintf("%s (%s)", described.Title, described.ErrorCode)
	if described.StatusCode > 0 {
		title = fmt.Sprintf("%s HTTP %d", title, described.StatusCode)
	}
	return label + "  " + title + "\n       " + err.Error()
}

func (ui *consoleUi) NewProgressBar() ProgressBar {
	return ui.progressBarFactory()
}

func (ui *consoleUi) Input(prompt string) (string, error) {
	if _, err := fmt.Fprint(ui.writer, prompt, ": "); err != nil {
		return "", err
	}

	input, err := ui.reader.ReadString('\n')
	if err != nil && (err != io.EOF || len(input) == 0) {
		return "", err
	}

	return strings.TrimSpace(input), nil
}

func (ui *consoleUi) InputSecret(prompt string) (string, error) {
	f, ok := ui.input.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return ui.Input(prompt)
	}

	if _, err := fmt.Fprint(ui.writer, prompt, ": "); err != nil {
		return "", err
	}

	secret, err := term.ReadPassword(int(f.Fd()))
	_, _ = fmt.Fprintln(ui.writer)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(secret)), nil
}
