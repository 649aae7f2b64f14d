package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/input"
	"github.com/netops-tools/dnac-console/internal/logging/events"
	"github.com/netops-tools/dnac-console/internal/settings"
	"github.com/netops-tools/dnac-console/internal/theme"
)

const configTitle = "Configuration"

// configView edits a working copy of the settings. Nothing is persisted until
// the user saves.
type configView struct {
	sections   []settings.Section
	cfg        settings.Config
	section    int
	field      int
	editing    bool
	editBuffer string
	dirty      bool
	caret      cursor.Model
}

func newConfigView(cfg settings.Config, styles *theme.Styles) *configView {
	return &configView{
		sections: settings.Sections(),
		cfg:      cfg,
		caret:    newCaret(styles),
	}
}

// newCaret returns a non-blinking block cursor for text fields.
func newCaret(styles *theme.Styles) cursor.Model {
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.FieldEditing != nil {
		c.TextStyle = *styles.FieldEditing
	}
	c.SetChar(" ")
	c.SetMode(cursor.CursorStatic)
	c.Focus()
	return c
}

func (v *configView) Title() string { return configTitle }

func (v *configView) Init(*Context) tea.Cmd { return nil }

func (v *configView) InputMode() input.Mode { return input.Blocking }

func (v *configView) TextEntry() bool { return v.editing }

func (v *configView) Help() string {
	if v.editing {
		return "type to edit  enter apply  esc cancel"
	}
	return "↑/↓ move  enter edit  s save  esc back"
}

func (v *configView) current() settings.Field {
	return v.sections[v.section].Fields[v.field]
}

func (v *configView) Handle(ctx *Context, ev input.Event) tea.Cmd {
	if v.editing {
		v.handleEdit(ev)
		return nil
	}
	switch ev.Kind {
	case input.Up:
		v.move(-1)
	case input.Down:
		v.move(1)
	case input.Enter:
		f := v.current()
		value, _ := v.cfg.Get(f.Section, f.Key)
		v.editing = true
		v.editBuffer = value
		events.Config.EditStart(f.Section, f.Key)
	case input.PrintableChar:
		if ev.Char == 's' || ev.Char == 'S' {
			return ctx.SaveSettings(v.cfg)
		}
	case input.Escape, input.Backspace:
		if v.dirty {
			ctx.SetInfo("Unsaved changes discarded.")
		}
		ctx.Pop()
	}
	return nil
}

// saved clears the unsaved marker once cfg has been written, unless the
// editor has moved on since the save was requested.
func (v *configView) saved(cfg settings.Config) {
	if v.cfg == cfg {
		v.dirty = false
	}
}

func (v *configView) handleEdit(ev input.Event) {
	f := v.current()
	switch ev.Kind {
	case input.Enter:
		v.editing = false
		// A value that does not coerce is dropped and the old value stays.
		if err := v.cfg.Set(f.Section, f.Key, v.editBuffer); err != nil {
			events.Config.Discard(f.Section, f.Key, err)
		} else {
			v.dirty = true
			events.Config.Commit(f.Section, f.Key)
		}
		v.editBuffer = ""
	case input.Escape:
		v.editing = false
		v.editBuffer = ""
		events.Config.Discard(f.Section, f.Key, nil)
	case input.Backspace:
		if r := []rune(v.editBuffer); len(r) > 0 {
			v.editBuffer = string(r[:len(r)-1])
		}
	case input.PrintableChar:
		v.editBuffer += string(ev.Char)
	}
}

// move steps through fields, crossing section boundaries and stopping at
// both ends.
func (v *configView) move(delta int) {
	sec, field := v.section, v.field+delta
	for field < 0 {
		if sec == 0 {
			return
		}
		sec--
		field += len(v.sections[sec].Fields)
	}
	for field >= len(v.sections[sec].Fields) {
		if sec == len(v.sections)-1 {
			return
		}
		field -= len(v.sections[sec].Fields)
		sec++
	}
	v.section, v.field = sec, field
}

func (v *configView) Render(ctx *Context) []styledLine {
	styles := ctx.Styles
	lines := make([]styledLine, 0, 16)
	selectedRow := 0
	for si, sec := range v.sections {
		if si > 0 {
			lines = append(lines, styledLine{})
		}
		lines = append(lines, styledLine{text: "[" + sec.Name + "]", style: styles.Section})
		for fi, f := range sec.Fields {
			selected := si == v.section && fi == v.field
			if selected {
				selectedRow = len(lines)
			}
			lines = append(lines, v.fieldLine(styles, f, selected))
		}
	}
	if ctx.Rows > 0 && len(lines) > ctx.Rows {
		start := selectedRow - ctx.Rows/2
		if start < 0 {
			start = 0
		}
		if start > len(lines)-ctx.Rows {
			start = len(lines) - ctx.Rows
		}
		lines = lines[start : start+ctx.Rows]
	}
	return lines
}

func (v *configView) fieldLine(styles *theme.Styles, f settings.Field, selected bool) styledLine {
	value, _ := v.cfg.Get(f.Section, f.Key)
	editing := selected && v.editing
	if editing {
		value = v.editBuffer
	}
	if f.Secret {
		value = strings.Repeat("*", len([]rune(value)))
	}
	indicator := theme.Paint(styles.ItemIndicator, itemIndicator)
	labelStyle := styles.FieldLabel
	valueStyle := styles.FieldValue
	if selected {
		indicator = theme.Paint(styles.SelectedItemIndicator, itemIndicator)
		labelStyle = styles.SelectedItem
	}
	text := indicator + " " + theme.Paint(labelStyle, f.Key+":") + " "
	if editing {
		text += theme.Paint(styles.FieldEditing, value) + v.caret.View()
	} else {
		text += theme.Paint(valueStyle, value)
	}
	return styledLine{text: text, raw: true}
}
