package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/input"
)

// Harness drives the UI model programmatically for integration tests.
// Commands run synchronously; batches are expanded in order and timed-input
// ticks are dropped so animation never blocks a test. Use Tick to advance a
// loading view explicitly.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Init runs the model's Init command.
func (h *Harness) Init() {
	if h.model == nil {
		return
	}
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Tick delivers the timed-input tick the model is waiting for.
func (h *Harness) Tick() {
	if h.model == nil {
		return
	}
	h.model.ticking = true
	h.Send(input.TickMsg{Seq: h.model.tickSeq})
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
	case tea.QuitMsg:
		h.quit = true
	case input.TickMsg:
		// Dropped as if it had fired while nothing animated.
		h.model.ticking = false
	default:
		h.Send(msg)
	}
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
