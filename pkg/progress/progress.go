// Package progress reports the completion of long running work, such as a scan, as a percentage
// between 0 and 100.
package progress

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
)

type WorkDoneProgressKind struct {
	Kind string `json:"kind"`
}

type WorkDoneProgressBegin struct {
	WorkDoneProgressKind
	Title      string  `json:"title"`
	Message    string  `json:"message,omitempty"`
	Percentage float64 `json:"percentage"`
}

type WorkDoneProgressReport struct {
	WorkDoneProgressKind
	Message    string  `json:"message,omitempty"`
	Percentage float64 `json:"percentage"`
}

type WorkDoneProgressEnd struct {
	WorkDoneProgressKind
	Message string `json:"message,omitempty"`
}

type ProgressParams struct {
	Token string `json:"token"`
	Value any    `json:"value"`
}

// Tracker receives progress updates. Totals are always clamped to [0, 100], increments that
// would leave this range are cut off.
type Tracker interface {
	Begin(title string)
	// Report adds increment to the current total.
	Report(increment float64, message string)
	// Set replaces the current total.
	Set(percentage float64, message string)
	End(message string)
}

func Clamp(percentage float64) float64 {
	if math.IsNaN(percentage) {
		return 0
	}
	return math.Max(0, math.Min(100, percentage))
}

type total struct {
	mutex      sync.Mutex
	percentage float64
	finished   bool
}

// apply returns the new clamped total and false if the tracker has already ended.
func (t *total) apply(f func(current float64) float64) (float64, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.finished {
		return t.percentage, false
	}
	t.percentage = Clamp(f(t.percentage))
	return t.percentage, true
}

func (t *total) finish() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.finished {
		return false
	}
	t.finished = true
	return true
}

func (t *total) Percentage() float64 {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.percentage
}

// ChannelTracker publishes every update as ProgressParams, for example to a view state store.
type ChannelTracker struct {
	total
	channel chan<- ProgressParams
	token   string
}

func NewTracker(channel chan<- ProgressParams) *ChannelTracker {
	return &ChannelTracker{channel: channel, token: uuid.NewString()}
}

func NewTestTracker(channel chan<- ProgressParams) *ChannelTracker {
	return &ChannelTracker{channel: channel, token: "token"}
}

func (t *ChannelTracker) Begin(title string) {
	t.BeginWithMessage(title, "")
}

func (t *ChannelTracker) BeginWithMessage(title, message string) {
	percentage, ok := t.apply(func(float64) float64 { return 0 })
	if !ok {
		return
	}
	t.channel <- ProgressParams{
		Token: t.token,
		Value: WorkDoneProgressBegin{
			WorkDoneProgressKind: WorkDoneProgressKind{Kind: "begin"},
			Title:                title,
			Message:              message,
			Percentage:           percentage,
		},
	}
}

func (t *ChannelTracker) Report(increment float64, message string) {
	if percentage, ok := t.apply(func(current float64) float64 { return current + increment }); ok {
		t.report(percentage, message)
	}
}

func (t *ChannelTracker) Set(percentage float64, message string) {
	if clamped, ok := t.apply(func(float64) float64 { return percentage }); ok {
		t.report(clamped, message)
	}
}

func (t *ChannelTracker) report(percentage float64, message string) {
	t.channel <- ProgressParams{
		Token: t.token,
		Value: WorkDoneProgressReport{
			WorkDoneProgressKind: WorkDoneProgressKind{Kind: "report"},
			Message:              message,
			Percentage:           percentage,
		},
	}
}

// End publishes the final message. Calls after the first are ignored.
func (t *ChannelTracker) End(message string) {
	if !t.finish() {
		return
	}
	t.channel <- ProgressParams{
		Token: t.token,
		Value: WorkDoneProgressEnd{
			WorkDoneProgressKind: WorkDoneProgressKind{Kind: "end"},
			Message:              message,
		},
	}
}

// BarTracker renders progress on a terminal progress bar.
type BarTracker struct {
	total
	bar   ui.ProgressBar
	title string
}

func NewBarTracker(bar ui.ProgressBar) *BarTracker {
	return &BarTracker{bar: bar}
}

func (t *BarTracker) Begin(title string) {
	t.title = title
	t.bar.SetTitle(title)
	t.render(t.apply(func(float64) float64 { return 0 }))
}

func (t *BarTracker) Report(increment float64, message string) {
	t.setMessage(message)
	t.render(t.apply(func(current float64) float64 { return current + increment }))
}

func (t *BarTracker) Set(percentage float64, message string) {
	t.setMessage(message)
	t.render(t.apply(func(float64) float64 { return percentage }))
}

func (t *BarTracker) End(string) {
	if t.finish() {
		_ = t.bar.Clear()
	}
}

func (t *BarTracker) setMessage(message string) {
	if len(message) == 0 {
		return
	}
	if len(t.title) == 0 {
		t.bar.SetTitle(message)
		return
	}
	t.bar.SetTitle(t.title + ": " + message)
}

func (t *BarTracker) render(percentage float64, ok bool) {
	if ok {
		_ = t.bar.UpdateProgress(percentage / 100)
	}
}

type discard struct{}

func (discard) Begin(string)           {}
func (discard) Report(float64, string) {}
func (discard) Set(float64, string)    {}
func (discard) End(string)             {}

// Discard drops all updates.
var Discard Tracker = discard{}

var _ Tracker = (*ChannelTracker)(nil)
var _ Tracker = (*BarTracker)(nil)

type multi []Tracker

// Multi forwards every update to all trackers.
func Multi(trackers ...Tracker) Tracker {
	return multi(trackers)
}

func (m multi) Begin(title string) {
	for _, t := range m {
		t.Begin(title)
	}
}

func (m multi) Report(increment float64, message string) {
	for _, t := range m {
		t.Report(increment, message)
	}
}

func (m multi) Set(percentage float64, message string) {
	for _, t := range m {
		t.Set(percentage, message)
	}
}

func (m multi) End(message string) {
	for _, t := range m {
		t.End(message)
	}
}
