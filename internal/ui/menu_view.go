package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/input"
	"github.com/netops-tools/dnac-console/internal/logging/events"
	"github.com/netops-tools/dnac-console/internal/menu"
	uistate "github.com/netops-tools/dnac-console/internal/ui/state"
)

type menuView struct {
	level *uistate.Level
}

func newMenuView(item menu.Item) *menuView {
	return &menuView{level: uistate.NewLevel(item.ID, item.Label, item.Submenu)}
}

func (v *menuView) Title() string { return v.level.Title }

func (v *menuView) Init(*Context) tea.Cmd { return nil }

func (v *menuView) InputMode() input.Mode { return input.Blocking }

func (v *menuView) Help() string {
	return "↑/↓ move  enter select  esc back  q quit"
}

func (v *menuView) Render(ctx *Context) []styledLine {
	l := v.level
	if len(l.Items) == 0 {
		return []styledLine{{text: "(no entries)", style: ctx.Styles.Info}}
	}
	start, end := uistate.Window(l.Cursor, ctx.Rows, len(l.Items))
	lines := make([]styledLine, 0, end-start)
	for i := start; i < end; i++ {
		item := l.Items[i]
		lines = append(lines, buildItemLine(ctx.Styles, item.Label, i == l.Cursor, !item.Enabled(ctx.Caps), ctx.Width))
	}
	return lines
}

func (v *menuView) Handle(ctx *Context, ev input.Event) tea.Cmd {
	l := v.level
	moved := false
	switch ev.Kind {
	case input.Up:
		moved = l.MoveCursorUp()
	case input.Down:
		moved = l.MoveCursorDown()
	case input.PageUp:
		moved = l.MoveCursorPageUp(ctx.Rows)
	case input.PageDown:
		moved = l.MoveCursorPageDown(ctx.Rows)
	case input.Home:
		moved = l.MoveCursorHome()
	case input.End:
		moved = l.MoveCursorEnd()
	case input.Enter:
		return v.enter(ctx)
	case input.Escape, input.Backspace:
		ctx.Pop()
	}
	if moved {
		events.UI.MenuCursor(l.ID, l.Cursor)
	}
	return nil
}

func (v *menuView) enter(ctx *Context) tea.Cmd {
	item, ok := v.level.Selected()
	if !ok {
		return nil
	}
	events.UI.MenuEnter(v.level.ID, item.ID, item.Label)
	if item.HasSubmenu() && item.Enabled(ctx.Caps) {
		v.level.Remember()
		return ctx.Push(newMenuView(item))
	}
	return ctx.Execute(item)
}

// restore puts the cursor back where it was before a child view was pushed.
func (v *menuView) restore() {
	v.level.Restore()
}
