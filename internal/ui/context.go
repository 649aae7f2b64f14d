package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/dnac"
	"github.com/netops-tools/dnac-console/internal/menu"
	"github.com/netops-tools/dnac-console/internal/poller"
	"github.com/netops-tools/dnac-console/internal/process"
	"github.com/netops-tools/dnac-console/internal/settings"
	"github.com/netops-tools/dnac-console/internal/theme"
)

// Backend is the remote API session used by the views.
type Backend interface {
	poller.StatusFetcher
	FabricEnabled(ctx context.Context) (bool, error)
	ListSites(ctx context.Context) ([]dnac.Site, error)
	CreateSite(ctx context.Context, req dnac.SiteRequest) (string, error)
}

// SettingsStore persists the API settings.
type SettingsStore interface {
	Save(settings.Config) error
	Path() string
}

// ScriptRunner launches helper scripts.
type ScriptRunner interface {
	Run(ctx context.Context, cmd process.Command, mode process.Mode) process.Result
}

// Context is handed to every Render and Handle call. It carries the palette,
// the frame geometry and the operations a view may perform on the session.
type Context struct {
	Styles *theme.Styles
	Width  int
	// Rows is the number of body rows available to the view, or -1 when the
	// terminal height is unknown.
	Rows int
	Caps menu.Capabilities

	m *Model
}

func (m *Model) context() *Context {
	return &Context{
		Styles: m.styles,
		Width:  m.width,
		Rows:   m.bodyRows(),
		Caps:   m.caps,
		m:      m,
	}
}

// Push makes v the current view.
func (c *Context) Push(v View) tea.Cmd {
	return c.m.push(v)
}

// Pop returns to the previous view. At the root it does nothing.
func (c *Context) Pop() {
	c.m.pop()
}

// SetInfo shows a transient message under the view.
func (c *Context) SetInfo(msg string) {
	c.m.setInfo(msg)
}

// SetError shows err until the next navigation.
func (c *Context) SetError(err error) {
	c.m.setError(err)
}

// Execute runs the action of a leaf menu item.
func (c *Context) Execute(item menu.Item) tea.Cmd {
	return c.m.execute(item)
}

// Settings returns the settings currently in effect.
func (c *Context) Settings() settings.Config {
	return c.m.settings
}

// SaveSettings persists cfg and reconnects with it.
func (c *Context) SaveSettings(cfg settings.Config) tea.Cmd {
	return c.m.saveSettings(cfg)
}

// LoadOptions fetches the choices of a select field in the background. The
// result arrives as an optionsLoadedMsg.
func (c *Context) LoadOptions(formID, key string, source menu.OptionSource) tea.Cmd {
	return c.m.loadOptions(formID, key, source)
}
