package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/input"
	uistate "github.com/netops-tools/dnac-console/internal/ui/state"
)

// outputView shows read-only text.
type outputView struct {
	title  string
	lines  []string
	scroll uistate.Scroll
}

func newOutputView(title string, lines []string) *outputView {
	return &outputView{title: title, lines: lines, scroll: uistate.Scroll{Total: len(lines)}}
}

// splitOutput turns process output into display lines, dropping the final
// empty line left by a trailing newline and expanding tabs.
func splitOutput(text string) []string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, "\t", "    ")
	}
	return lines
}

func lineCounter(pos, total int) string {
	return fmt.Sprintf("(line %d/%d)", pos, total)
}

func (v *outputView) Title() string { return v.title }

func (v *outputView) Init(*Context) tea.Cmd { return nil }

func (v *outputView) InputMode() input.Mode { return input.Blocking }

func (v *outputView) Help() string {
	return "↑/↓ scroll  pgup/pgdn page  home/end jump  esc back"
}

func (v *outputView) visible(ctx *Context) int {
	if ctx.Rows < 0 {
		return len(v.lines)
	}
	if ctx.Rows <= 1 {
		return 1
	}
	return ctx.Rows - 1
}

func (v *outputView) Render(ctx *Context) []styledLine {
	if len(v.lines) == 0 {
		return []styledLine{
			{text: v.title + " " + lineCounter(0, 0), style: ctx.Styles.Header},
			{text: "(no output)", style: ctx.Styles.Info},
		}
	}
	return scrollLines(ctx.Styles, v.title, v.lines, &v.scroll, ctx.Rows)
}

func (v *outputView) Handle(ctx *Context, ev input.Event) tea.Cmd {
	visible := v.visible(ctx)
	switch ev.Kind {
	case input.Up:
		v.scroll.By(-1, visible)
	case input.Down:
		v.scroll.By(1, visible)
	case input.PageUp:
		v.scroll.PageUp(visible)
	case input.PageDown:
		v.scroll.PageDown(visible)
	case input.Home:
		v.scroll.Home()
	case input.End:
		v.scroll.End(visible)
	case input.Escape, input.Backspace:
		ctx.Pop()
	}
	return nil
}
