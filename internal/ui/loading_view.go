package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/input"
	"github.com/netops-tools/dnac-console/internal/theme"
)

const (
	progressWidth = 40
	// pulseFrames is the length of one sweep of the bar when a job has no
	// expected duration.
	pulseFrames = 30
)

// loadingView animates while a background job runs. It advances one frame
// per timed-input tick.
type loadingView struct {
	title    string
	message  string
	seq      int
	cancel   context.CancelFunc
	expected time.Duration
	// status, when set, describes the job's progress; it is read on every
	// frame and must be safe to call from the render goroutine.
	status func() string

	spin       spinner.Model
	bar        progress.Model
	frames     int
	started    time.Time
	now        time.Time
	cancelling bool
}

func newLoadingView(styles *theme.Styles, title, message string, expected time.Duration, seq int, cancel context.CancelFunc) *loadingView {
	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	if styles.Spinner != nil {
		spin.Style = *styles.Spinner
	}
	bar := progress.New(
		progress.WithGradient(styles.ProgressStart, styles.ProgressEnd),
		progress.WithWidth(progressWidth),
		progress.WithoutPercentage(),
	)
	now := time.Now()
	return &loadingView{
		title:    title,
		message:  message,
		seq:      seq,
		cancel:   cancel,
		expected: expected,
		spin:     spin,
		bar:      bar,
		started:  now,
		now:      now,
	}
}

func (v *loadingView) Title() string { return v.title }

func (v *loadingView) Init(*Context) tea.Cmd { return nil }

func (v *loadingView) InputMode() input.Mode { return input.Timed }

func (v *loadingView) Help() string {
	if v.cancelling {
		return ""
	}
	return "esc cancel  q quit"
}

func (v *loadingView) Handle(ctx *Context, ev input.Event) tea.Cmd {
	if ev.Kind == input.Escape {
		v.Cancel()
	}
	return nil
}

// Cancel asks the job to stop. The view stays until the job reports back.
func (v *loadingView) Cancel() {
	if v.cancelling {
		return
	}
	v.cancelling = true
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *loadingView) Receive(_ *Context, msg tea.Msg) tea.Cmd {
	tick, ok := msg.(input.TickMsg)
	if !ok {
		return nil
	}
	v.frames++
	if !tick.Time.IsZero() {
		v.now = tick.Time
	} else {
		v.now = time.Now()
	}
	// The spinner's own tick command is dropped; frames follow the input
	// ticks so animation stops as soon as the view is gone.
	v.spin, _ = v.spin.Update(spinner.TickMsg{ID: v.spin.ID(), Time: v.now})
	return nil
}

func (v *loadingView) elapsed() time.Duration {
	d := v.now.Sub(v.started)
	if d < 0 {
		return 0
	}
	return d.Truncate(100 * time.Millisecond)
}

// percent follows elapsed time when the job has an expected duration and
// otherwise sweeps back and forth.
func (v *loadingView) percent() float64 {
	if v.expected > 0 {
		pct := float64(v.elapsed()) / float64(v.expected)
		if pct > 1 {
			pct = 1
		}
		return pct
	}
	pos := v.frames % (2 * pulseFrames)
	if pos > pulseFrames {
		pos = 2*pulseFrames - pos
	}
	return float64(pos) / pulseFrames
}

func (v *loadingView) Render(ctx *Context) []styledLine {
	styles := ctx.Styles
	message := v.message
	if v.cancelling {
		message = "Cancelling…"
	}
	lines := []styledLine{
		{text: v.spin.View() + " " + theme.Paint(styles.Loading, message), raw: true},
		{},
		{text: v.bar.ViewAs(v.percent()), raw: true},
		{text: fmt.Sprintf("Elapsed %s", v.elapsed()), style: styles.Footer},
	}
	if v.status != nil {
		if status := v.status(); status != "" {
			lines = append(lines, styledLine{text: status, style: styles.Footer})
		}
	}
	return lines
}
