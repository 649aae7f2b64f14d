package ui

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/input"
	"github.com/netops-tools/dnac-console/internal/menu"
	"github.com/netops-tools/dnac-console/internal/poller"
	"github.com/netops-tools/dnac-console/internal/settings"
	"github.com/netops-tools/dnac-console/internal/theme"
	"github.com/netops-tools/dnac-console/internal/ui/command"
	uistate "github.com/netops-tools/dnac-console/internal/ui/state"
)

type msgHandler func(tea.Msg) tea.Cmd

// Deps wires the model to its collaborators. Every field is optional; missing
// collaborators turn the matching actions into errors on screen.
type Deps struct {
	Settings settings.Config
	Store    SettingsStore
	// Connect builds a backend session for the given settings. It is called
	// at start-up and again after the settings are saved.
	Connect       func(settings.Config) Backend
	Runner        ScriptRunner
	Menu          menu.Context
	Root          *menu.Item
	RootMenu      string
	Poll          poller.Options
	PollerOptions []poller.Option
	Styles        *theme.Styles
	// Width and Height pin the frame size; zero follows the terminal.
	Width  int
	Height int
}

// Model implements the Bubble Tea model for the console.
type Model struct {
	deps     Deps
	styles   *theme.Styles
	stack    *uistate.Stack[View]
	registry *menu.Registry
	bus      *command.Bus

	settings settings.Config
	backend  Backend
	poller   *poller.Poller
	// pollState is written by the poll goroutine and read while rendering.
	pollState atomic.Pointer[poller.State]

	caps      menu.Capabilities
	capsKnown bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	ticking bool
	tickSeq int

	jobSeq    int
	jobCancel context.CancelFunc
	quitting  bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI with the root menu.
func NewModel(deps Deps) *Model {
	styles := deps.Styles
	if styles == nil {
		styles = theme.Default()
	}
	root := menu.Root()
	if deps.Root != nil {
		root = *deps.Root
	}
	if deps.Poll.Timeout <= 0 {
		deps.Poll.Timeout = poller.DefaultTimeout
	}
	m := &Model{
		deps:     deps,
		styles:   styles,
		registry: menu.BuildRegistry(root),
		bus:      command.New(),
		settings: deps.Settings,
		caps:     menu.Capabilities{},
	}
	m.stack = uistate.NewStack[View](newMenuView(root))
	if deps.Width > 0 {
		m.width = deps.Width
		m.fixedWidth = true
	}
	if deps.Height > 0 {
		m.height = deps.Height
		m.fixedHeight = true
	}
	m.connect(deps.Settings)
	m.applyRootMenuOverride(deps.RootMenu)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It detects the controller
// capabilities behind a loading view.
func (m *Model) Init() tea.Cmd {
	return m.finishUpdate(m.detectCapabilities("Connecting to DNAC..."))
}

// Close cancels any job still running. It is safe to call after the program
// has exited.
func (m *Model) Close() {
	if m.jobCancel != nil {
		m.jobCancel()
		m.jobCancel = nil
	}
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, m.finishUpdate(handler(msg))
	}
	return m, m.finishUpdate(m.deliver(msg))
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):             m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):      m.handleWindowSizeMsg,
		reflect.TypeOf(input.TickMsg{}):          m.handleTickMsg,
		reflect.TypeOf(jobDoneMsg{}):             m.handleJobDoneMsg,
		reflect.TypeOf(capabilitiesMsg{}):        m.handleCapabilitiesMsg,
		reflect.TypeOf(pollDoneMsg{}):            m.handlePollDoneMsg,
		reflect.TypeOf(scriptDoneMsg{}):          m.handleScriptDoneMsg,
		reflect.TypeOf(settingsSavedMsg{}):       m.handleSettingsSavedMsg,
		reflect.TypeOf(menu.ActionResult{}):      m.handleActionResultMsg,
		reflect.TypeOf(menu.FormRequest{}):       m.handleFormRequestMsg,
		reflect.TypeOf(menu.PollRequest{}):       m.handlePollRequestMsg,
		reflect.TypeOf(menu.CreateSiteRequest{}): m.handleCreateSiteRequestMsg,
		reflect.TypeOf(menu.ScriptRequest{}):     m.handleScriptRequestMsg,
		reflect.TypeOf(menu.EditConfigRequest{}): m.handleEditConfigRequestMsg,
		reflect.TypeOf(menu.ExitRequest{}):       m.handleExitRequestMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// dispatch routes msg as if it had arrived through Update.
func (m *Model) dispatch(msg tea.Msg) tea.Cmd {
	if handler := m.handlerFor(msg); handler != nil {
		return handler(msg)
	}
	return m.deliver(msg)
}

// deliver hands an unrouted message to the current view.
func (m *Model) deliver(msg tea.Msg) tea.Cmd {
	if r, ok := m.stack.Current().(receiver); ok {
		return r.Receive(m.context(), msg)
	}
	return nil
}

// finishUpdate keeps a tick outstanding while the current view needs timed
// input.
func (m *Model) finishUpdate(cmds ...tea.Cmd) tea.Cmd {
	if m.stack.Current().InputMode() == input.Timed && !m.ticking && !m.quitting {
		m.ticking = true
		m.tickSeq++
		cmds = append(cmds, input.Tick(m.tickSeq))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(input.TickMsg)
	if !ok || tick.Seq != m.tickSeq {
		return nil
	}
	m.ticking = false
	if m.stack.Current().InputMode() != input.Timed {
		return nil
	}
	return m.deliver(tick)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) applyRootMenuOverride(requested string) {
	id := strings.ToLower(strings.TrimSpace(requested))
	if id == "" {
		return
	}
	item, ok := m.registry.Find(id)
	if !ok || !item.HasSubmenu() {
		m.errMsg = fmt.Sprintf("Unknown root menu %q", requested)
		return
	}
	path := m.registry.Path(item.ID)
	views := make([]*menuView, len(path))
	for i, p := range path {
		views[i] = newMenuView(p)
	}
	// Each ancestor points at the child that was opened from it, so Escape
	// walks back up the way the user would have come down.
	for i, v := range views[:len(views)-1] {
		if idx := v.level.IndexOf(path[i+1].ID); idx >= 0 {
			v.level.Cursor = idx
			v.level.Remember()
		}
	}
	m.stack = uistate.NewStack[View](views[0])
	for _, v := range views[1:] {
		m.stack.Push(v)
	}
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.forceClearInfo()
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func (m *Model) setError(err error) {
	if err == nil {
		m.errMsg = ""
		return
	}
	m.errMsg = err.Error()
}
