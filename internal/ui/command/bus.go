// Package command turns menu actions into Bubble Tea commands.
package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/logging/events"
	"github.com/netops-tools/dnac-console/internal/menu"
)

// Request is one activation of a menu item against the capabilities detected
// on the controller.
type Request struct {
	Item menu.Item
	Caps menu.Capabilities
}

// Bus gates menu items on capabilities and runs their actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute returns the command for req. Items whose capability is missing
// yield an informational result instead of running; so do items without an
// action.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	item := req.Item
	if !item.Enabled(req.Caps) {
		events.UI.MenuDisabled(item.ID, string(item.Requires))
		return result(fmt.Sprintf("%s requires %s support on the controller.", item.Label, item.Requires))
	}
	if item.Action == nil {
		events.Command.Skip(item.ID, item.Label)
		return result(fmt.Sprintf("Selected %s (no action defined yet)", item.Label))
	}
	events.Command.Queue(item.ID, item.Label, ctx.ScriptsDir)
	return func() tea.Msg {
		cmd := item.Action(ctx, item)
		if cmd == nil {
			events.Command.NoOp(item.ID, item.Label)
			return nil
		}
		msg := cmd()
		events.Command.Result(item.ID, item.Label, Describe(msg))
		return msg
	}
}

// Describe summarises what an action asked the UI to do.
func Describe(msg tea.Msg) string {
	switch m := msg.(type) {
	case menu.ScriptRequest:
		return "script " + m.Mode.String() + " " + m.Command.Path
	case menu.FormRequest:
		return "form " + m.Form.ID
	case menu.PollRequest:
		return "poll " + m.OperationID
	case menu.ActionResult:
		if m.Err != nil {
			return "error"
		}
		return "info"
	case nil:
		return "none"
	}
	return fmt.Sprintf("%T", msg)
}

func result(info string) tea.Cmd {
	return func() tea.Msg { return menu.ActionResult{Info: info} }
}
