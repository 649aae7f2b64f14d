package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/netops-tools/dnac-console/internal/input"
	"github.com/netops-tools/dnac-console/internal/menu"
	"github.com/netops-tools/dnac-console/internal/theme"
	uistate "github.com/netops-tools/dnac-console/internal/ui/state"
)

// maxOptionRows bounds the option list drawn under a select field.
const maxOptionRows = 6

type optionsLoadedMsg struct {
	formID  string
	key     string
	options []string
	err     error
}

// formView collects values for a menu.Form. The cursor ranges over the
// fields plus a trailing submit row.
type formView struct {
	form    menu.Form
	values  map[string]string
	options map[string][]string
	cursor  int
	editing bool
	buffer  string
	choice  int
	loading map[string]bool
	errMsg  string
	caret   cursor.Model
}

func newFormView(form menu.Form, styles *theme.Styles) *formView {
	v := &formView{
		form:    form,
		values:  make(map[string]string, len(form.Fields)),
		options: make(map[string][]string),
		loading: make(map[string]bool),
		caret:   newCaret(styles),
	}
	for _, f := range form.Fields {
		v.values[f.Key] = f.Default
		if len(f.Options) > 0 {
			v.options[f.Key] = append([]string(nil), f.Options...)
		}
	}
	return v
}

func (v *formView) Title() string { return v.form.Title }

func (v *formView) Init(ctx *Context) tea.Cmd {
	var cmds []tea.Cmd
	for _, f := range v.form.Fields {
		if f.Source == "" {
			continue
		}
		v.loading[f.Key] = true
		cmds = append(cmds, ctx.LoadOptions(v.form.ID, f.Key, f.Source))
	}
	return tea.Batch(cmds...)
}

func (v *formView) InputMode() input.Mode { return input.Blocking }

func (v *formView) TextEntry() bool { return v.editing }

func (v *formView) Help() string {
	if v.editing {
		if v.field().Kind == menu.FieldSelect {
			return "type to filter  ↑/↓ choose  enter pick  esc cancel"
		}
		return "type to edit  enter apply  esc cancel"
	}
	return "↑/↓ move  enter edit/submit  esc back"
}

func (v *formView) onSubmitRow() bool {
	return v.cursor == len(v.form.Fields)
}

func (v *formView) field() menu.Field {
	if v.onSubmitRow() {
		return menu.Field{}
	}
	return v.form.Fields[v.cursor]
}

// filtered returns the options of the field being edited that match the
// typed text.
func (v *formView) filtered() []string {
	opts := v.options[v.field().Key]
	query := strings.TrimSpace(v.buffer)
	if query == "" {
		return opts
	}
	return fuzzy.FindFold(query, opts)
}

func (v *formView) Receive(_ *Context, msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(optionsLoadedMsg)
	if !ok || loaded.formID != v.form.ID {
		return nil
	}
	delete(v.loading, loaded.key)
	if loaded.err != nil {
		v.errMsg = fmt.Sprintf("Could not load %s options: %v", loaded.key, loaded.err)
		return nil
	}
	v.options[loaded.key] = loaded.options
	return nil
}

func (v *formView) Handle(ctx *Context, ev input.Event) tea.Cmd {
	if v.editing {
		v.handleEdit(ev)
		return nil
	}
	switch ev.Kind {
	case input.Up:
		if v.cursor > 0 {
			v.cursor--
		}
	case input.Down:
		if v.cursor < len(v.form.Fields) {
			v.cursor++
		}
	case input.Home:
		v.cursor = 0
	case input.End:
		v.cursor = len(v.form.Fields)
	case input.Enter:
		if v.onSubmitRow() {
			return v.submit(ctx)
		}
		v.startEdit()
	case input.Escape, input.Backspace:
		ctx.Pop()
	}
	return nil
}

func (v *formView) startEdit() {
	f := v.field()
	v.editing = true
	v.errMsg = ""
	v.choice = 0
	if f.Kind == menu.FieldSelect {
		v.buffer = ""
		for i, opt := range v.options[f.Key] {
			if opt == v.values[f.Key] {
				v.choice = i
				break
			}
		}
		return
	}
	v.buffer = v.values[f.Key]
}

func (v *formView) handleEdit(ev input.Event) {
	f := v.field()
	switch ev.Kind {
	case input.Escape:
		v.editing = false
		v.buffer = ""
	case input.Enter:
		v.commit(f)
	case input.Backspace:
		if r := []rune(v.buffer); len(r) > 0 {
			v.buffer = string(r[:len(r)-1])
			v.choice = 0
		}
	case input.Up:
		if f.Kind == menu.FieldSelect && v.choice > 0 {
			v.choice--
		}
	case input.Down:
		if f.Kind == menu.FieldSelect && v.choice < len(v.filtered())-1 {
			v.choice++
		}
	case input.PrintableChar:
		if f.Kind == menu.FieldNumber && !strings.ContainsRune("0123456789.-+", ev.Char) {
			return
		}
		v.buffer += string(ev.Char)
		if f.Kind == menu.FieldSelect {
			v.choice = 0
		}
	}
}

// commit stores the edit. Input that does not fit the field is dropped and
// the previous value stays.
func (v *formView) commit(f menu.Field) {
	v.editing = false
	defer func() { v.buffer = "" }()
	switch f.Kind {
	case menu.FieldSelect:
		matches := v.filtered()
		if v.choice >= 0 && v.choice < len(matches) {
			v.values[f.Key] = matches[v.choice]
		}
	case menu.FieldNumber:
		raw := strings.TrimSpace(v.buffer)
		if raw != "" {
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return
			}
		}
		v.values[f.Key] = raw
	default:
		v.values[f.Key] = strings.TrimSpace(v.buffer)
	}
}

func (v *formView) submit(ctx *Context) tea.Cmd {
	for _, f := range v.form.Fields {
		if f.Required && strings.TrimSpace(v.values[f.Key]) == "" {
			v.errMsg = f.Label + " is required"
			return nil
		}
	}
	if v.form.Submit == nil {
		ctx.Pop()
		return nil
	}
	msg, err := v.form.Submit(v.values)
	if err != nil {
		v.errMsg = err.Error()
		return nil
	}
	if msg == nil {
		ctx.SetError(errors.New("form produced no request"))
		return nil
	}
	ctx.Pop()
	return func() tea.Msg { return msg }
}

func (v *formView) Render(ctx *Context) []styledLine {
	styles := ctx.Styles
	lines := make([]styledLine, 0, len(v.form.Fields)+maxOptionRows+4)
	for i, f := range v.form.Fields {
		selected := i == v.cursor
		lines = append(lines, v.fieldLine(styles, f, selected))
		if selected && v.editing && f.Kind == menu.FieldSelect {
			lines = append(lines, v.optionLines(ctx)...)
		}
	}
	lines = append(lines, styledLine{})
	lines = append(lines, buildItemLine(styles, "[ Submit ]", v.onSubmitRow(), false, 0))
	if v.errMsg != "" {
		lines = append(lines, styledLine{}, styledLine{text: v.errMsg, style: styles.Error})
	}
	return lines
}

func (v *formView) fieldLine(styles *theme.Styles, f menu.Field, selected bool) styledLine {
	indicator := theme.Paint(styles.ItemIndicator, itemIndicator)
	labelStyle := styles.FieldLabel
	if selected {
		indicator = theme.Paint(styles.SelectedItemIndicator, itemIndicator)
		labelStyle = styles.SelectedItem
	}
	label := theme.Paint(labelStyle, f.Label)
	if f.Required {
		label += theme.Paint(styles.Required, "*")
	}
	text := indicator + " " + label + ": "
	switch {
	case selected && v.editing:
		text += theme.Paint(styles.FieldEditing, v.buffer) + v.caret.View()
	case v.loading[f.Key]:
		text += theme.Paint(styles.Loading, "loading…")
	default:
		text += theme.Paint(styles.FieldValue, v.values[f.Key])
	}
	return styledLine{text: text, raw: true}
}

func (v *formView) optionLines(ctx *Context) []styledLine {
	matches := v.filtered()
	if len(matches) == 0 {
		return []styledLine{{text: "    (no matches)", style: ctx.Styles.Info}}
	}
	start, end := uistate.Window(v.choice, maxOptionRows, len(matches))
	lines := make([]styledLine, 0, end-start)
	for i := start; i < end; i++ {
		line := buildItemLine(ctx.Styles, matches[i], i == v.choice, false, 0)
		line.text = "   " + line.text
		line.highlightFrom += 3
		lines = append(lines, line)
	}
	return lines
}
