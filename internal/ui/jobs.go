package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/format/table"
	"github.com/netops-tools/dnac-console/internal/logging"
	"github.com/netops-tools/dnac-console/internal/logging/events"
	"github.com/netops-tools/dnac-console/internal/menu"
	"github.com/netops-tools/dnac-console/internal/poller"
	"github.com/netops-tools/dnac-console/internal/process"
	"github.com/netops-tools/dnac-console/internal/settings"
)

type jobDoneMsg struct {
	seq int
	msg tea.Msg
}

type capabilitiesMsg struct {
	fabric bool
	err    error
}

type pollDoneMsg struct {
	label   string
	outcome poller.Outcome
}

type scriptDoneMsg struct {
	req    menu.ScriptRequest
	result process.Result
}

type settingsSavedMsg struct {
	cfg settings.Config
	err error
}

// startJob pushes a loading view and runs fn in a command goroutine. fn must
// return promptly once ctx is cancelled.
func (m *Model) startJob(v *loadingView, fn func(ctx context.Context) tea.Msg) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.jobSeq++
	v.seq = m.jobSeq
	v.cancel = cancel
	m.jobCancel = cancel
	seq := v.seq
	return tea.Batch(m.push(v), func() tea.Msg {
		return jobDoneMsg{seq: seq, msg: fn(ctx)}
	})
}

func (m *Model) newLoading(title, message string) *loadingView {
	return newLoadingView(m.styles, title, message, 0, 0, nil)
}

func (m *Model) handleJobDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(jobDoneMsg)
	if !ok || done.seq != m.jobSeq {
		return nil
	}
	if m.jobCancel != nil {
		m.jobCancel()
		m.jobCancel = nil
	}
	if lv, ok := m.stack.Current().(*loadingView); ok && lv.seq == done.seq {
		m.pop()
	}
	if m.quitting {
		events.UI.Quit("cancelled")
		return tea.Quit
	}
	if done.msg == nil {
		return nil
	}
	return m.dispatch(done.msg)
}

// connect replaces the backend session and the poller bound to it.
func (m *Model) connect(cfg settings.Config) {
	m.backend = nil
	m.poller = nil
	if m.deps.Connect == nil {
		return
	}
	m.backend = m.deps.Connect(cfg)
	if m.backend == nil {
		return
	}
	opts := append([]poller.Option{}, m.deps.PollerOptions...)
	opts = append(opts, poller.WithAttemptHook(func(s poller.State) {
		m.pollState.Store(&s)
	}))
	m.poller = poller.New(m.backend, opts...)
}

func (m *Model) detectCapabilities(title string) tea.Cmd {
	backend := m.backend
	if backend == nil {
		return nil
	}
	v := m.newLoading(title, "Checking SDA fabric capability...")
	return m.startJob(v, func(ctx context.Context) tea.Msg {
		fabric, err := backend.FabricEnabled(ctx)
		return capabilitiesMsg{fabric: fabric, err: err}
	})
}

func (m *Model) handleCapabilitiesMsg(msg tea.Msg) tea.Cmd {
	caps, ok := msg.(capabilitiesMsg)
	if !ok {
		return nil
	}
	events.App.Capabilities(caps.fabric, caps.err)
	m.caps = menu.Capabilities{menu.Fabric: caps.fabric && caps.err == nil}
	m.capsKnown = true
	if caps.err != nil {
		logging.Error(fmt.Errorf("capability check: %w", caps.err))
		m.setInfo("Could not reach DNAC; fabric features are disabled.")
		return nil
	}
	m.setInfo("Initialization complete!")
	return nil
}

func (m *Model) pollStatus() string {
	s := m.pollState.Load()
	if s == nil {
		return ""
	}
	return fmt.Sprintf("Attempt %d, next wait %s", s.Attempt, s.Interval)
}

func (m *Model) pollJob(title, message string, run func(ctx context.Context) tea.Msg) tea.Cmd {
	m.pollState.Store(nil)
	v := m.newLoading(title, message)
	v.expected = m.deps.Poll.Timeout
	v.status = m.pollStatus
	return m.startJob(v, run)
}

func (m *Model) handlePollRequestMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(menu.PollRequest)
	if !ok {
		return nil
	}
	if m.poller == nil {
		m.setError(errNotConnected)
		return nil
	}
	if req.OperationID == "" {
		m.setError(errors.New("task id is empty"))
		return nil
	}
	p, opts := m.poller, m.deps.Poll
	label := req.Label
	if label == "" {
		label = "Task " + req.OperationID
	}
	return m.pollJob(label, "Waiting for task "+req.OperationID+"...", func(ctx context.Context) tea.Msg {
		return pollDoneMsg{label: label, outcome: p.Poll(ctx, req.OperationID, opts)}
	})
}

func (m *Model) handleCreateSiteRequestMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(menu.CreateSiteRequest)
	if !ok {
		return nil
	}
	if m.poller == nil {
		m.setError(errNotConnected)
		return nil
	}
	backend, p, opts := m.backend, m.poller, m.deps.Poll
	site := req.Site
	label := fmt.Sprintf("Add %s %s", site.Type, site.Name)
	return m.pollJob("Add Site", fmt.Sprintf("Creating %s %q...", site.Type, site.Name), func(ctx context.Context) tea.Msg {
		taskID, err := backend.CreateSite(ctx, site)
		if err != nil {
			return menu.ActionResult{Err: fmt.Errorf("create site: %w", err)}
		}
		return pollDoneMsg{label: label, outcome: p.Poll(ctx, taskID, opts)}
	})
}

func (m *Model) handlePollDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(pollDoneMsg)
	if !ok {
		return nil
	}
	out := done.outcome
	cmd := m.push(newOutputView(done.label, pollReport(out)))
	switch out.Kind {
	case poller.Succeeded:
		m.setInfo(fmt.Sprintf("%s completed.", done.label))
	case poller.Failed:
		m.setError(fmt.Errorf("%s failed: %s", done.label, out.Reason))
	case poller.TimedOut:
		m.setError(fmt.Errorf("%s timed out after %s", done.label, out.Elapsed.Round(time.Second)))
	case poller.Cancelled:
		m.setInfo(fmt.Sprintf("%s cancelled.", done.label))
	}
	return cmd
}

// pollReport renders an outcome as aligned key/value rows.
func pollReport(out poller.Outcome) []string {
	rows := [][]string{
		{"Task", out.OperationID},
		{"Outcome", out.Kind.String()},
		{"Attempts", strconv.Itoa(out.Attempts)},
		{"Elapsed", out.Elapsed.Round(time.Millisecond).String()},
	}
	if out.Reason != "" {
		rows = append(rows, []string{"Reason", out.Reason})
	}
	if out.Status.Progress != "" {
		rows = append(rows, []string{"Progress", out.Status.Progress})
	}
	if out.LastErr != nil && out.Kind != poller.Succeeded {
		rows = append(rows, []string{"Last error", out.LastErr.Error()})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	if payload := strings.TrimSpace(out.Status.Payload); payload != "" {
		lines = append(lines, "", "Data:")
		lines = append(lines, splitOutput(payload)...)
	}
	return lines
}

func (m *Model) handleScriptRequestMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(menu.ScriptRequest)
	if !ok {
		return nil
	}
	runner := m.deps.Runner
	if runner == nil {
		m.setError(fmt.Errorf("%s: no script runner configured", req.Label))
		return nil
	}
	if req.Mode == process.Interactive {
		// The runner hands the terminal to the child, so no view is pushed.
		return func() tea.Msg {
			return scriptDoneMsg{req: req, result: runner.Run(context.Background(), req.Command, req.Mode)}
		}
	}
	v := m.newLoading(req.Label, "Running "+req.Command.String())
	return m.startJob(v, func(ctx context.Context) tea.Msg {
		return scriptDoneMsg{req: req, result: runner.Run(ctx, req.Command, req.Mode)}
	})
}

func (m *Model) handleScriptDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(scriptDoneMsg)
	if !ok {
		return nil
	}
	req, res := done.req, done.result
	if res.Err != nil {
		logging.Error(fmt.Errorf("%s: %w", req.Command, res.Err))
		m.setError(fmt.Errorf("%s: %w", req.Label, res.Err))
		return nil
	}
	if req.Mode == process.Interactive {
		if res.ExitCode != 0 {
			m.setError(fmt.Errorf("%s exited with status %d", req.Label, res.ExitCode))
		} else {
			m.setInfo(req.Label + " finished.")
		}
		return nil
	}
	title := req.Label
	if res.ExitCode != 0 {
		title = fmt.Sprintf("%s [exit %d]", req.Label, res.ExitCode)
	}
	lines := splitOutput(res.Stdout)
	if stderr := splitOutput(res.Stderr); len(stderr) > 0 {
		lines = append(lines, "", "--- stderr ---")
		lines = append(lines, stderr...)
	}
	return m.push(newOutputView(title, lines))
}

func (m *Model) loadOptions(formID, key string, source menu.OptionSource) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		if source != menu.SourceSites {
			return optionsLoadedMsg{formID: formID, key: key, err: fmt.Errorf("unknown option source %q", source)}
		}
		if backend == nil {
			return optionsLoadedMsg{formID: formID, key: key, err: errNotConnected}
		}
		sites, err := backend.ListSites(context.Background())
		if err != nil {
			return optionsLoadedMsg{formID: formID, key: key, err: err}
		}
		names := make([]string, 0, len(sites))
		for _, s := range sites {
			names = append(names, s.Path())
		}
		return optionsLoadedMsg{formID: formID, key: key, options: names}
	}
}

func (m *Model) saveSettings(cfg settings.Config) tea.Cmd {
	store := m.deps.Store
	if store == nil {
		m.setError(errors.New("no settings store configured"))
		return nil
	}
	return func() tea.Msg {
		return settingsSavedMsg{cfg: cfg, err: store.Save(cfg)}
	}
}

func (m *Model) handleSettingsSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(settingsSavedMsg)
	if !ok {
		return nil
	}
	path := ""
	if m.deps.Store != nil {
		path = m.deps.Store.Path()
	}
	events.Config.Save(path, saved.err)
	if saved.err != nil {
		logging.Error(saved.err)
		m.setError(fmt.Errorf("save configuration: %w", saved.err))
		return nil
	}
	if cv, ok := m.stack.Current().(*configView); ok {
		cv.saved(saved.cfg)
	}
	m.settings = saved.cfg
	m.connect(saved.cfg)
	m.setInfo("Configuration saved!")
	if m.backend == nil {
		return nil
	}
	m.capsKnown = false
	m.caps = menu.Capabilities{}
	return m.detectCapabilities("Reconnecting to DNAC...")
}
