package ui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"
)

//go:generate go tool github.com/golang/mock/mockgen -source=progressbar.go -destination ../mocks/progressbar.go -package mocks -self_package github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui/

type ProgressType string

const (
	barCharacter                  = "="
	currentPosition               = ">"
	barWidth                      = 40
	clearLine                     = "\r\033[K"
	InfiniteProgress              = -1.0 // show activity without a percentage
	SpinnerType      ProgressType = "spinner"
	BarType          ProgressType = "bar"
)

// ProgressBar renders the progress of a single long running task, for example a scan.
//
//	bar := ui.DefaultUi().NewProgressBar()
//	defer bar.Clear()
//	bar.SetTitle("Uploading archive")
//	_ = bar.UpdateProgress(0.3)
//
// The title can change while the bar is visible.
type ProgressBar interface {
	// UpdateProgress sets the completion between 0 and 1, values outside are clamped.
	// InfiniteProgress renders activity without a percentage.
	UpdateProgress(progress float64) error
	SetTitle(title string)
	// Clear removes the bar from the terminal, further updates fail.
	Clear() error
}

type emptyProgressBar struct{}

func (emptyProgressBar) UpdateProgress(float64) error { return nil }
func (emptyProgressBar) SetTitle(string)              {}
func (emptyProgressBar) Clear() error                 { return nil }

func newProgressBar(writer io.Writer, t ProgressType, animated bool) *consoleProgressBar {
	return &consoleProgressBar{
		writer:       writer,
		active:       true,
		progressType: t,
		animated:     animated,
		interval:     250 * time.Millisecond,
	}
}

type consoleProgressBar struct {
	mutex            sync.Mutex
	writer           io.Writer
	title            string
	state            int
	progress         float64
	active           bool
	animationRunning bool
	progressType     ProgressType
	animated         bool
	interval         time.Duration
}

func (p *consoleProgressBar) UpdateProgress(progress float64) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.active {
		return fmt.Errorf("progress not active")
	}

	if progress >= 0 {
		progress = math.Max(0, math.Min(1, progress))
	}
	p.progress = progress

	if !p.animated {
		return p.render()
	}

	if !p.animationRunning {
		p.animationRunning = true
		go p.animate()
	}
	return nil
}

func (p *consoleProgressBar) SetTitle(title string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.title = title
}

func (p *consoleProgressBar) Clear() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.active {
		return nil
	}
	p.active = false
	_, err := fmt.Fprint(p.writer, clearLine)
	return err
}

func (p *consoleProgressBar) animate() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.mutex.Lock()
		if !p.active {
			p.mutex.Unlock()
			return
		}
		err := p.render()
		p.mutex.Unlock()

		if err != nil {
			return
		}
		<-ticker.C
	}
}

// render expects the mutex to be held.
func (p *consoleProgressBar) render() error {
	var progressString string
	if p.progress >= 0 {
		progressString = fmt.Sprintf("%3.0f%% ", p.progress*100)
	}
	progressString += p.title

	p.state++

	switch p.progressType {
	case SpinnerType:
		return p.renderSpinner(progressString)
	case BarType:
		return p.renderBar(progressString)
	default:
		return p.renderText(progressString)
	}
}

func (p *consoleProgressBar) renderSpinner(progressString string) error {
	elementSet := []string{"-", "\\", "|", "/"}
	progressElement := elementSet[p.state%len(elementSet)]
	return p.renderText(progressElement + " " + progressString)
}

func (p *consoleProgressBar) renderBar(progressString string) error {
	progress := p.progress
	if progress < 0 {
		progress = float64((p.state*2)%100) / 100
	}

	pos := int(math.Min(progress*barWidth, barWidth-1))
	barCount := int(math.Max(0, float64(barWidth-pos-1)))
	bar := strings.Repeat(barCharacter, pos) + currentPosition + strings.Repeat(" ", barCount)
	return p.renderText("[" + bar + "] " + progressString)
}

func (p *consoleProgressBar) renderText(progressString string) error {
	_, err := fmt.Fprint(p.writer, clearLine, progressString)
	return err
}
