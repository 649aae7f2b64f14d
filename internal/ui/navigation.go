package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/input"
	"github.com/netops-tools/dnac-console/internal/logging"
	"github.com/netops-tools/dnac-console/internal/logging/events"
	"github.com/netops-tools/dnac-console/internal/menu"
	"github.com/netops-tools/dnac-console/internal/ui/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	current := m.stack.Current()
	typing := false
	if t, ok := current.(textEntry); ok {
		typing = t.TextEntry()
	}
	ev, ok := input.Translate(keyMsg, typing)
	if !ok {
		return nil
	}
	if ev.Kind == input.Quit {
		return m.requestQuit("key")
	}
	m.clearInfo()
	return current.Handle(m.context(), ev)
}

// requestQuit ends the program. A running job is cancelled first and the
// program exits once it has reported back.
func (m *Model) requestQuit(reason string) tea.Cmd {
	if m.jobCancel != nil {
		m.quitting = true
		if lv, ok := m.stack.Current().(*loadingView); ok {
			lv.Cancel()
		} else {
			m.jobCancel()
		}
		return nil
	}
	m.quitting = true
	events.UI.Quit(reason)
	return tea.Quit
}

func (m *Model) push(v View) tea.Cmd {
	m.stack.Push(v)
	m.errMsg = ""
	events.UI.Push(v.Title(), m.stack.Depth())
	return v.Init(m.context())
}

func (m *Model) pop() {
	popped, ok := m.stack.Pop()
	if !ok {
		return
	}
	events.UI.Pop(popped.Title(), m.stack.Depth())
	m.errMsg = ""
	if mv, ok := m.stack.Current().(*menuView); ok {
		mv.restore()
	}
}

func (m *Model) execute(item menu.Item) tea.Cmd {
	return m.bus.Execute(m.deps.Menu, command.Request{Item: item, Caps: m.caps})
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	if res.Err != nil {
		logging.Error(res.Err)
		events.Action.Error(res.Err)
		m.setError(res.Err)
		return nil
	}
	if res.Info != "" {
		events.Action.Success(res.Info)
		m.setInfo(res.Info)
	}
	return nil
}

func (m *Model) handleFormRequestMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(menu.FormRequest)
	if !ok {
		return nil
	}
	if m.backend == nil && formNeedsBackend(req.Form) {
		m.setError(errNotConnected)
		return nil
	}
	return m.push(newFormView(req.Form, m.styles))
}

func formNeedsBackend(f menu.Form) bool {
	for _, field := range f.Fields {
		if field.Source != "" {
			return true
		}
	}
	return false
}

func (m *Model) handleEditConfigRequestMsg(tea.Msg) tea.Cmd {
	return m.push(newConfigView(m.settings, m.styles))
}

func (m *Model) handleExitRequestMsg(tea.Msg) tea.Cmd {
	return m.requestQuit("menu")
}

var errNotConnected = errors.New("not connected to DNAC")
