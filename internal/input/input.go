// Package input maps raw key messages onto the closed set of navigation
// events understood by the views.
package input

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind enumerates logical events.
type Kind int

const (
	None Kind = iota
	Up
	Down
	Enter
	Escape
	Backspace
	Quit
	PrintableChar
	PageUp
	PageDown
	Home
	End
)

var kindNames = map[Kind]string{
	None:          "none",
	Up:            "up",
	Down:          "down",
	Enter:         "enter",
	Escape:        "escape",
	Backspace:     "backspace",
	Quit:          "quit",
	PrintableChar: "char",
	PageUp:        "pgup",
	PageDown:      "pgdown",
	Home:          "home",
	End:           "end",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is one logical input event. Char is set for PrintableChar only.
type Event struct {
	Kind Kind
	Char rune
}

func (e Event) String() string {
	if e.Kind == PrintableChar {
		return fmt.Sprintf("char(%q)", e.Char)
	}
	return e.Kind.String()
}

// Char builds a PrintableChar event.
func Char(r rune) Event {
	return Event{Kind: PrintableChar, Char: r}
}

// Mode says whether the current view waits for keys or needs animation ticks.
type Mode int

const (
	Blocking Mode = iota
	Timed
)

// TickInterval is the timed-mode poll period.
const TickInterval = 100 * time.Millisecond

// TickMsg is the "no key pressed" event delivered in timed mode. Seq lets
// the receiver drop ticks scheduled for a view that is no longer current.
type TickMsg struct {
	Seq  int
	Time time.Time
}

// Tick schedules the next timed-mode tick.
func Tick(seq int) tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Seq: seq, Time: t}
	})
}

// Translate maps a key message to an event. textEntry disables the single
// letter shortcuts so they can be typed. Unrecognised keys report false.
func Translate(msg tea.KeyMsg, textEntry bool) (Event, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return Event{Kind: Quit}, true
	case tea.KeyUp:
		return Event{Kind: Up}, true
	case tea.KeyDown:
		return Event{Kind: Down}, true
	case tea.KeyEnter:
		return Event{Kind: Enter}, true
	case tea.KeyEsc:
		return Event{Kind: Escape}, true
	case tea.KeyBackspace, tea.KeyCtrlH:
		return Event{Kind: Backspace}, true
	case tea.KeyPgUp:
		return Event{Kind: PageUp}, true
	case tea.KeyPgDown:
		return Event{Kind: PageDown}, true
	case tea.KeyHome:
		return Event{Kind: Home}, true
	case tea.KeyEnd:
		return Event{Kind: End}, true
	case tea.KeySpace:
		return Char(' '), true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) != 1 {
			return Event{}, false
		}
		return translateRune(msg.Runes[0], textEntry)
	}
	return Event{}, false
}

func translateRune(r rune, textEntry bool) (Event, bool) {
	if !textEntry {
		switch r {
		case 'q':
			return Event{Kind: Quit}, true
		case 'k':
			return Event{Kind: Up}, true
		case 'j':
			return Event{Kind: Down}, true
		}
	}
	if r >= 32 && r <= 126 {
		return Char(r), true
	}
	return Event{}, false
}
