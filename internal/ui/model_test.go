package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/dnac"
	"github.com/netops-tools/dnac-console/internal/menu"
	"github.com/netops-tools/dnac-console/internal/poller"
	"github.com/netops-tools/dnac-console/internal/process"
	"github.com/netops-tools/dnac-console/internal/settings"
)

type fakeBackend struct {
	mu        sync.Mutex
	fabric    bool
	fabricErr error
	sites     []dnac.Site
	created   []dnac.SiteRequest
	statuses  map[string]poller.Status
	fetches   int
}

func (f *fakeBackend) FabricEnabled(context.Context) (bool, error) {
	return f.fabric, f.fabricErr
}

func (f *fakeBackend) ListSites(context.Context) ([]dnac.Site, error) {
	return f.sites, nil
}

func (f *fakeBackend) CreateSite(_ context.Context, req dnac.SiteRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	return "task-site", nil
}

func (f *fakeBackend) FetchOperationStatus(_ context.Context, id string) (poller.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if st, ok := f.statuses[id]; ok {
		return st, nil
	}
	return poller.Status{Completed: true}, nil
}

type fakeStore struct {
	saved []settings.Config
	err   error
}

func (s *fakeStore) Save(cfg settings.Config) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, cfg)
	return nil
}

func (s *fakeStore) Path() string { return "test.yaml" }

type fakeRunner struct {
	calls  []process.Command
	modes  []process.Mode
	result process.Result
}

func (r *fakeRunner) Run(_ context.Context, cmd process.Command, mode process.Mode) process.Result {
	r.calls = append(r.calls, cmd)
	r.modes = append(r.modes, mode)
	return r.result
}

func newTestHarness(t *testing.T, backend *fakeBackend, configure func(*Deps)) *Harness {
	t.Helper()
	deps := Deps{
		Settings: settings.Default(),
		Width:    80,
		Height:   24,
	}
	if backend != nil {
		deps.Connect = func(settings.Config) Backend { return backend }
	}
	if configure != nil {
		configure(&deps)
	}
	h := NewHarness(NewModel(deps))
	h.Init()
	return h
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(h *Harness, text string) {
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(h *Harness, keys ...tea.KeyType) {
	for _, k := range keys {
		h.Send(key(k))
	}
}

func TestInitDetectsCapabilities(t *testing.T) {
	h := newTestHarness(t, &fakeBackend{fabric: true}, nil)
	view := h.View()
	for _, want := range []string{"Cisco Catalyst Centre Tools", "● FABRIC ENABLED", "Initialization complete!", "Inventory", "Exit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "(disabled)") {
		t.Fatalf("no entry should be disabled with fabric support:\n%s", view)
	}
}

func TestCapabilityCheckFailureDisablesFabric(t *testing.T) {
	h := newTestHarness(t, &fakeBackend{fabric: true, fabricErr: errors.New("connection refused")}, nil)
	view := h.View()
	if !strings.Contains(view, "○ FABRIC DISABLED") {
		t.Fatalf("expected disabled status line:\n%s", view)
	}
	if !strings.Contains(view, "Could not reach DNAC") {
		t.Fatalf("expected capability failure info:\n%s", view)
	}
}

func TestNavigateIntoSubmenuAndBack(t *testing.T) {
	h := newTestHarness(t, &fakeBackend{fabric: true}, nil)
	press(h, tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	view := h.View()
	if !strings.Contains(view, "Cisco Catalyst Centre Tools → Sites") {
		t.Fatalf("expected breadcrumb for Sites:\n%s", view)
	}
	if !strings.Contains(view, "Add Site (guided)") {
		t.Fatalf("expected Sites entries:\n%s", view)
	}
	press(h, tea.KeyEsc)
	m := h.Model()
	if m.stack.Depth() != 1 {
		t.Fatalf("expected root after escape, depth %d", m.stack.Depth())
	}
	mv, ok := m.stack.Current().(*menuView)
	if !ok {
		t.Fatalf("expected menu view at root, got %T", m.stack.Current())
	}
	if mv.level.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", mv.level.Cursor)
	}
}

func TestEscapeAtRootIsNoOp(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	press(h, tea.KeyEsc, tea.KeyBackspace)
	if h.Quit() {
		t.Fatal("escape at root must not quit")
	}
	if depth := h.Model().stack.Depth(); depth != 1 {
		t.Fatalf("expected depth 1, got %d", depth)
	}
}

func TestQuitKey(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	typeText(h, "q")
	if !h.Quit() {
		t.Fatal("expected q to quit")
	}
}

func TestExitMenuEntryQuits(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	press(h, tea.KeyEnd, tea.KeyEnter)
	if !h.Quit() {
		t.Fatal("expected Exit entry to quit")
	}
}

func TestDisabledItemIsInert(t *testing.T) {
	h := newTestHarness(t, &fakeBackend{fabric: false}, nil)
	press(h, tea.KeyDown, tea.KeyEnter)
	if !strings.Contains(h.View(), "List SDA Segments (disabled)") {
		t.Fatalf("expected disabled marker:\n%s", h.View())
	}
	press(h, tea.KeyEnter)
	m := h.Model()
	if m.stack.Depth() != 2 {
		t.Fatalf("disabled entry must not navigate, depth %d", m.stack.Depth())
	}
	if !strings.Contains(h.View(), "List SDA Segments requires fabric support on the controller.") {
		t.Fatalf("expected capability info:\n%s", h.View())
	}
}

func TestRootMenuOverride(t *testing.T) {
	h := newTestHarness(t, nil, func(d *Deps) { d.RootMenu = "Sites" })
	if title := h.Model().stack.Current().Title(); title != "Sites" {
		t.Fatalf("expected Sites as root, got %q", title)
	}
	if !strings.Contains(h.View(), "Cisco Catalyst Centre Tools → Sites") {
		t.Fatalf("expected full breadcrumb for Sites:\n%s", h.View())
	}
	press(h, tea.KeyEsc)
	mv, ok := h.Model().stack.Current().(*menuView)
	if !ok || mv.level.ID != menu.RootID {
		t.Fatalf("escape should return to the main menu, got %T", h.Model().stack.Current())
	}
	if mv.level.Cursor != 2 {
		t.Fatalf("expected cursor on Sites after escape, got %d", mv.level.Cursor)
	}
	h = newTestHarness(t, nil, func(d *Deps) { d.RootMenu = "bogus" })
	if !strings.Contains(h.View(), `Error: Unknown root menu "bogus"`) {
		t.Fatalf("expected unknown root error:\n%s", h.View())
	}
}

func TestMenuWindowFollowsCursor(t *testing.T) {
	h := newTestHarness(t, nil, func(d *Deps) { d.Height = 8 })
	view := h.View()
	if lines := strings.Split(view, "\n"); len(lines) > 8 {
		t.Fatalf("view exceeds height: %d lines\n%s", len(lines), view)
	}
	if strings.Contains(view, "Exit") {
		t.Fatalf("last entry should be off screen:\n%s", view)
	}
	press(h, tea.KeyEnd)
	view = h.View()
	if !strings.Contains(view, "Exit") || strings.Contains(view, "Inventory") {
		t.Fatalf("expected window to scroll to the end:\n%s", view)
	}
}

func TestCapturedScriptShowsOutput(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "devices.py"), []byte("print('x')\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	runner := &fakeRunner{result: process.Result{Stdout: "switch-1\nswitch-2\n"}}
	h := newTestHarness(t, nil, func(d *Deps) {
		d.Runner = runner
		d.Menu = menu.Context{ScriptsDir: dir, Python: "python3"}
	})
	press(h, tea.KeyEnter, tea.KeyEnter)
	if len(runner.calls) != 1 {
		t.Fatalf("expected one run, got %d", len(runner.calls))
	}
	if runner.modes[0] != process.Captured {
		t.Fatalf("expected captured mode, got %v", runner.modes[0])
	}
	if got := runner.calls[0].Args[0]; got != filepath.Join(dir, "devices.py") {
		t.Fatalf("unexpected script path %q", got)
	}
	view := h.View()
	for _, want := range []string{"List Network Devices (line 1/2)", "switch-1", "switch-2"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestFailedScriptTitleCarriesExitCode(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "devices.py"), nil, 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	runner := &fakeRunner{result: process.Result{ExitCode: 2, Stderr: "boom\n"}}
	h := newTestHarness(t, nil, func(d *Deps) {
		d.Runner = runner
		d.Menu = menu.Context{ScriptsDir: dir}
	})
	press(h, tea.KeyEnter, tea.KeyEnter)
	view := h.View()
	if !strings.Contains(view, "List Network Devices [exit 2]") {
		t.Fatalf("expected exit code in title:\n%s", view)
	}
	if !strings.Contains(view, "--- stderr ---") || !strings.Contains(view, "boom") {
		t.Fatalf("expected stderr section:\n%s", view)
	}
}

func TestMissingScriptReportsError(t *testing.T) {
	h := newTestHarness(t, nil, func(d *Deps) {
		d.Runner = &fakeRunner{}
		d.Menu = menu.Context{ScriptsDir: t.TempDir()}
	})
	press(h, tea.KeyEnter, tea.KeyEnter)
	if !strings.Contains(h.View(), "Error: List Network Devices: script not available") {
		t.Fatalf("expected missing script error:\n%s", h.View())
	}
	if h.Model().stack.Depth() != 2 {
		t.Fatalf("expected to stay on the submenu")
	}
}

func TestInteractiveScriptPushesNoView(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "add_site_curses.py"), nil, 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	runner := &fakeRunner{}
	h := newTestHarness(t, nil, func(d *Deps) {
		d.Runner = runner
		d.Menu = menu.Context{ScriptsDir: dir}
	})
	press(h, tea.KeyDown, tea.KeyDown, tea.KeyEnter, tea.KeyDown, tea.KeyEnter)
	if len(runner.modes) != 1 || runner.modes[0] != process.Interactive {
		t.Fatalf("expected one interactive run, got %v", runner.modes)
	}
	if depth := h.Model().stack.Depth(); depth != 2 {
		t.Fatalf("expected to return to the Sites menu, depth %d", depth)
	}
	if !strings.Contains(h.View(), "Add Site (guided) finished.") {
		t.Fatalf("expected completion info:\n%s", h.View())
	}
}

func TestTaskStatusFormPollsAndReports(t *testing.T) {
	backend := &fakeBackend{statuses: map[string]poller.Status{
		"abc123": {Completed: true, Progress: "Provisioned"},
	}}
	h := newTestHarness(t, backend, nil)
	press(h, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	if _, ok := h.Model().stack.Current().(*formView); !ok {
		t.Fatalf("expected form view, got %T", h.Model().stack.Current())
	}
	// Submit without a task id.
	press(h, tea.KeyDown, tea.KeyEnter)
	if !strings.Contains(h.View(), "Task ID is required") {
		t.Fatalf("expected required field error:\n%s", h.View())
	}
	press(h, tea.KeyUp, tea.KeyEnter)
	typeText(h, "abc123")
	press(h, tea.KeyEnter, tea.KeyDown, tea.KeyEnter)

	view := h.View()
	for _, want := range []string{"Task abc123 (line", "succeeded", "Provisioned", "Task abc123 completed."} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if backend.fetches != 1 {
		t.Fatalf("expected one status fetch, got %d", backend.fetches)
	}
}

func TestFailedTaskShowsReason(t *testing.T) {
	backend := &fakeBackend{statuses: map[string]poller.Status{
		"t9": {Completed: true, IsError: true, FailureReason: "Site exists"},
	}}
	h := newTestHarness(t, backend, nil)
	h.Send(menu.PollRequest{OperationID: "t9", Label: "Task t9"})
	view := h.View()
	if !strings.Contains(view, "Error: Task t9 failed: Site exists") {
		t.Fatalf("expected failure reason:\n%s", view)
	}
}

func TestAddSiteFormCreatesSite(t *testing.T) {
	backend := &fakeBackend{
		fabric: true,
		sites: []dnac.Site{
			dnac.GlobalSite,
			{ID: "a1", Name: "Area51", SiteNameHierarchy: "Global/Area51"},
		},
	}
	h := newTestHarness(t, backend, nil)
	press(h, tea.KeyDown, tea.KeyDown, tea.KeyEnter, tea.KeyEnter)
	form, ok := h.Model().stack.Current().(*formView)
	if !ok {
		t.Fatalf("expected form view, got %T", h.Model().stack.Current())
	}
	if got := form.options["parent"]; len(got) != 2 || got[1] != "Global/Area51" {
		t.Fatalf("expected loaded parent options, got %v", got)
	}

	press(h, tea.KeyDown, tea.KeyEnter)
	typeText(h, "HQ")
	press(h, tea.KeyEnter, tea.KeyDown, tea.KeyEnter)
	typeText(h, "area51")
	press(h, tea.KeyEnter, tea.KeyEnd, tea.KeyEnter)

	if len(backend.created) != 1 {
		t.Fatalf("expected one site request, got %d", len(backend.created))
	}
	req := backend.created[0]
	if req.Type != dnac.SiteArea || req.Name != "HQ" || req.ParentName != "Global/Area51" {
		t.Fatalf("unexpected site request %+v", req)
	}
	if !strings.Contains(h.View(), "Add area HQ completed.") {
		t.Fatalf("expected completion info:\n%s", h.View())
	}
}

func openAddSiteForm(t *testing.T, backend *fakeBackend) (*Harness, *formView) {
	t.Helper()
	h := newTestHarness(t, backend, nil)
	press(h, tea.KeyDown, tea.KeyDown, tea.KeyEnter, tea.KeyEnter)
	form, ok := h.Model().stack.Current().(*formView)
	if !ok {
		t.Fatalf("expected form view, got %T", h.Model().stack.Current())
	}
	return h, form
}

func TestFormRejectsMissingRequiredField(t *testing.T) {
	backend := &fakeBackend{fabric: true, sites: []dnac.Site{dnac.GlobalSite}}
	h, form := openAddSiteForm(t, backend)

	press(h, tea.KeyEnd, tea.KeyEnter)

	if len(backend.created) != 0 {
		t.Fatalf("expected no site request, got %d", len(backend.created))
	}
	if h.Model().stack.Current() != View(form) {
		t.Fatalf("form must stay open, got %T", h.Model().stack.Current())
	}
	if form.errMsg != "Site Name is required" {
		t.Fatalf("unexpected form error %q", form.errMsg)
	}
	if !strings.Contains(h.View(), "Site Name is required") {
		t.Fatalf("expected required-field error:\n%s", h.View())
	}
}

func TestFormInvalidNumberKeepsPreviousValue(t *testing.T) {
	backend := &fakeBackend{fabric: true, sites: []dnac.Site{dnac.GlobalSite}}
	h, form := openAddSiteForm(t, backend)

	press(h, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	typeText(h, "51.5")
	press(h, tea.KeyEnter)
	if got := form.values["latitude"]; got != "51.5" {
		t.Fatalf("expected latitude 51.5, got %q", got)
	}

	press(h, tea.KeyEnter)
	typeText(h, ".2.3")
	press(h, tea.KeyEnter)
	if got := form.values["latitude"]; got != "51.5" {
		t.Fatalf("invalid number must keep the previous value, got %q", got)
	}
	if form.editing {
		t.Fatal("commit should leave edit mode even when the input is dropped")
	}
	if !strings.Contains(h.View(), "Latitude: 51.5") {
		t.Fatalf("expected previous latitude on screen:\n%s", h.View())
	}
}

func TestFormNeedingBackendWithoutConnection(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Send(menu.FormRequest{Form: menu.AddSiteForm()})
	if !strings.Contains(h.View(), "Error: not connected to DNAC") {
		t.Fatalf("expected connection error:\n%s", h.View())
	}
}

func TestCancelPollFromLoadingView(t *testing.T) {
	backend := &fakeBackend{}
	h := newTestHarness(t, backend, nil)
	m := h.Model()
	_, cmd := m.Update(menu.PollRequest{OperationID: "slow", Label: "Task slow"})
	if _, ok := m.stack.Current().(*loadingView); !ok {
		t.Fatalf("expected loading view, got %T", m.stack.Current())
	}
	m.Update(key(tea.KeyEsc))
	if !strings.Contains(h.View(), "Cancelling…") {
		t.Fatalf("expected cancelling message:\n%s", h.View())
	}
	h.processCmd(cmd)

	if backend.fetches != 0 {
		t.Fatalf("cancelled poll must not fetch, got %d", backend.fetches)
	}
	view := h.View()
	if !strings.Contains(view, "Task slow cancelled.") || !strings.Contains(view, "cancelled") {
		t.Fatalf("expected cancelled report:\n%s", view)
	}
	if h.Quit() {
		t.Fatal("cancel must not quit")
	}
}

func TestQuitDuringJobWaitsForJob(t *testing.T) {
	h := newTestHarness(t, &fakeBackend{}, nil)
	m := h.Model()
	_, cmd := m.Update(menu.PollRequest{OperationID: "slow"})
	_, quit := m.Update(key(tea.KeyCtrlC))
	if quit != nil {
		if msg := quit(); msg != nil {
			if _, ok := msg.(tea.QuitMsg); ok {
				t.Fatal("quit must wait for the running job")
			}
		}
	}
	h.processCmd(cmd)
	if !h.Quit() {
		t.Fatal("expected quit once the job reported back")
	}
}

func TestLoadingViewAnimatesOnTick(t *testing.T) {
	h := newTestHarness(t, &fakeBackend{}, nil)
	m := h.Model()
	m.Update(menu.PollRequest{OperationID: "slow"})
	lv, ok := m.stack.Current().(*loadingView)
	if !ok {
		t.Fatalf("expected loading view, got %T", m.stack.Current())
	}
	h.Tick()
	h.Tick()
	if lv.frames != 2 {
		t.Fatalf("expected two frames, got %d", lv.frames)
	}
	if !strings.Contains(h.View(), "Waiting for task slow...") {
		t.Fatalf("expected loading message:\n%s", h.View())
	}
	m.Close()
}

func TestOutputViewScrolls(t *testing.T) {
	h := newTestHarness(t, nil, func(d *Deps) { d.Height = 10 })
	body := make([]string, 50)
	for i := range body {
		body[i] = fmt.Sprintf("row %02d", i+1)
	}
	h.Model().push(newOutputView("Report", body))
	if !strings.Contains(h.View(), "Report (line 1/50)") {
		t.Fatalf("expected first line counter:\n%s", h.View())
	}
	press(h, tea.KeyDown)
	if !strings.Contains(h.View(), "Report (line 2/50)") {
		t.Fatalf("expected counter after scrolling:\n%s", h.View())
	}
	press(h, tea.KeyEnd)
	view := h.View()
	if !strings.Contains(view, "row 50") || strings.Contains(view, "row 01") {
		t.Fatalf("expected last page:\n%s", view)
	}
	if lines := strings.Split(view, "\n"); len(lines) > 10 {
		t.Fatalf("view exceeds height: %d lines", len(lines))
	}
	press(h, tea.KeyHome, tea.KeyEsc)
	if h.Model().stack.Depth() != 1 {
		t.Fatalf("expected escape to leave the output view")
	}
}

func openConfig(h *Harness) *configView {
	press(h, tea.KeyEnd, tea.KeyUp, tea.KeyEnter)
	cv, _ := h.Model().stack.Current().(*configView)
	return cv
}

func TestConfigEditorRejectsBadPort(t *testing.T) {
	h := newTestHarness(t, nil, func(d *Deps) { d.Store = &fakeStore{} })
	cv := openConfig(h)
	if cv == nil {
		t.Fatalf("expected config view, got %T", h.Model().stack.Current())
	}
	view := h.View()
	if !strings.Contains(view, "[server]") || !strings.Contains(view, "[auth]") {
		t.Fatalf("expected section headers:\n%s", view)
	}
	if strings.Contains(view, settings.Default().Auth.Password) {
		t.Fatalf("password must be masked:\n%s", view)
	}
	press(h, tea.KeyDown, tea.KeyEnter, tea.KeyBackspace, tea.KeyBackspace, tea.KeyBackspace)
	typeText(h, "abc")
	press(h, tea.KeyEnter)
	if cv.cfg.Server.Port != 443 {
		t.Fatalf("expected port unchanged, got %d", cv.cfg.Server.Port)
	}
	if cv.dirty {
		t.Fatal("rejected edit must not mark the form dirty")
	}
}

func TestConfigEditorSaves(t *testing.T) {
	store := &fakeStore{}
	h := newTestHarness(t, nil, func(d *Deps) { d.Store = store })
	cv := openConfig(h)
	if cv == nil {
		t.Fatalf("expected config view")
	}
	press(h, tea.KeyDown, tea.KeyEnter, tea.KeyBackspace, tea.KeyBackspace, tea.KeyBackspace)
	typeText(h, "8443")
	press(h, tea.KeyEnter)
	if !cv.dirty {
		t.Fatal("expected dirty after a valid edit")
	}
	typeText(h, "s")
	if len(store.saved) != 1 || store.saved[0].Server.Port != 8443 {
		t.Fatalf("expected saved port 8443, got %+v", store.saved)
	}
	if h.Model().settings.Server.Port != 8443 {
		t.Fatalf("expected settings updated in the model")
	}
	if !strings.Contains(h.View(), "Configuration saved!") {
		t.Fatalf("expected save info:\n%s", h.View())
	}
	if cv.dirty {
		t.Fatal("a successful save should clear the unsaved marker")
	}
}

func TestConfigEditorSaveError(t *testing.T) {
	h := newTestHarness(t, nil, func(d *Deps) { d.Store = &fakeStore{err: errors.New("read-only file system")} })
	openConfig(h)
	typeText(h, "s")
	if !strings.Contains(h.View(), "Error: save configuration: read-only file system") {
		t.Fatalf("expected save error:\n%s", h.View())
	}
}

func TestConfigEditorFailedSaveKeepsUnsavedWarning(t *testing.T) {
	h := newTestHarness(t, nil, func(d *Deps) { d.Store = &fakeStore{err: errors.New("read-only file system")} })
	cv := openConfig(h)
	press(h, tea.KeyEnter)
	typeText(h, "x")
	press(h, tea.KeyEnter)
	typeText(h, "s")
	if !cv.dirty {
		t.Fatal("a failed save must leave the edits marked unsaved")
	}
	press(h, tea.KeyEsc)
	if !strings.Contains(h.View(), "Unsaved changes discarded.") {
		t.Fatalf("expected discard info after failed save:\n%s", h.View())
	}
}

func TestConfigEditorDiscardsOnEscape(t *testing.T) {
	store := &fakeStore{}
	h := newTestHarness(t, nil, func(d *Deps) { d.Store = store })
	openConfig(h)
	press(h, tea.KeyEnter)
	typeText(h, "x")
	press(h, tea.KeyEnter, tea.KeyEsc)
	if len(store.saved) != 0 {
		t.Fatal("escape must not save")
	}
	if h.Model().settings.Server.Host != settings.Default().Server.Host {
		t.Fatalf("expected settings unchanged, got %q", h.Model().settings.Server.Host)
	}
	if !strings.Contains(h.View(), "Unsaved changes discarded.") {
		t.Fatalf("expected discard info:\n%s", h.View())
	}
}

func TestConfigEditorTypesShortcutLetters(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	cv := openConfig(h)
	press(h, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	typeText(h, "qjk")
	if h.Quit() {
		t.Fatal("q while editing must be typed, not quit")
	}
	if !strings.HasSuffix(cv.editBuffer, "qjk") {
		t.Fatalf("expected typed letters in buffer, got %q", cv.editBuffer)
	}
}
