package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/netops-tools/dnac-console/internal/input"
	"github.com/netops-tools/dnac-console/internal/menu"
	"github.com/netops-tools/dnac-console/internal/theme"
	uistate "github.com/netops-tools/dnac-console/internal/ui/state"
)

// View is one screen on the navigation stack.
type View interface {
	Title() string
	Init(ctx *Context) tea.Cmd
	Render(ctx *Context) []styledLine
	Handle(ctx *Context, ev input.Event) tea.Cmd
	InputMode() input.Mode
	Help() string
}

// textEntry is implemented by views that sometimes take free text, so that
// single letter shortcuts can be typed.
type textEntry interface {
	TextEntry() bool
}

// receiver is implemented by views that consume messages other than keys.
type receiver interface {
	Receive(ctx *Context, msg tea.Msg) tea.Cmd
}

const (
	breadcrumbSeparator = " → "
	itemIndicator       = "▌"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	ctx := m.context()
	current := m.stack.Current()
	lines := make([]styledLine, 0, 24)
	lines = append(lines, styledLine{text: m.stack.Breadcrumb(breadcrumbSeparator), style: m.styles.Title})
	if status, ok := m.statusLine(); ok {
		lines = append(lines, status)
	}
	lines = append(lines, styledLine{})
	lines = append(lines, current.Render(ctx)...)
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: m.styles.Info})
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{text: "Error: " + m.errMsg, style: m.styles.Error})
	}
	if help := current.Help(); help != "" {
		lines = append(lines, styledLine{}, styledLine{text: help, style: m.styles.Footer})
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) statusLine() (styledLine, bool) {
	if !m.capsKnown {
		return styledLine{}, false
	}
	if m.caps.Has(menu.Fabric) {
		return styledLine{text: "● FABRIC ENABLED", style: m.styles.Enabled}, true
	}
	return styledLine{text: "○ FABRIC DISABLED", style: m.styles.Disabled}, true
}

// bodyRows is the number of rows left for the current view after the header,
// status, info, error and help lines.
func (m *Model) bodyRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // breadcrumb + blank
	if m.capsKnown {
		used++
	}
	if m.currentInfo() != "" {
		used += 2
	}
	if m.errMsg != "" {
		used++
	}
	if m.stack.Current().Help() != "" {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

// buildItemLine constructs a single styledLine for a list entry.
// width is the target column width; when > 0 the text is padded so that
// the selected item's background spans the full container.
func buildItemLine(styles *theme.Styles, label string, selected, disabled bool, width int) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if disabled {
		lineStyle = styles.Disabled
		label += " (disabled)"
	}
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := itemIndicator + " " + label
	if width > 0 {
		if pad := width - runewidth.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// scrollLines renders a slice of body text through a Scroll, prefixed by a
// position header.
func scrollLines(styles *theme.Styles, title string, body []string, scroll *uistate.Scroll, rows int) []styledLine {
	visible := rows - 1
	if rows < 0 {
		visible = -1
	}
	scroll.Total = len(body)
	start, end := scroll.Visible(visible)
	pos := 0
	if len(body) > 0 {
		pos = start + 1
	}
	lines := make([]styledLine, 0, end-start+1)
	lines = append(lines, styledLine{text: title + " " + lineCounter(pos, len(body)), style: styles.Header})
	for _, text := range body[start:end] {
		lines = append(lines, styledLine{text: text, style: styles.Item})
	}
	return lines
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if w := lipgloss.Width(text); w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := theme.Paint(line.prefixStyle, string(runes[:line.highlightFrom]))
			tail := theme.Paint(line.style, string(runes[line.highlightFrom:]))
			text = head + tail
		} else {
			text = theme.Paint(line.style, text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return runewidth.Truncate(text, width, "…")
}
