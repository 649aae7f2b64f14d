package menu

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Capability names a backend feature that gates menu entries.
type Capability string

// Fabric is present when the controller has SDA virtual networks.
const Fabric Capability = "fabric"

// Capabilities is the set of features detected on the controller.
type Capabilities map[Capability]bool

// Has reports whether c contains capability. The empty capability is always
// present.
func (c Capabilities) Has(capability Capability) bool {
	if capability == "" {
		return true
	}
	return c[capability]
}

// Context carries runtime data needed by actions.
type Context struct {
	ScriptsDir  string
	ProjectRoot string
	Python      string
}

// Action produces the command run when a leaf item is entered.
type Action func(Context, Item) tea.Cmd

// Item represents a selectable menu entry. Exactly one of Action and Submenu
// is meaningful.
type Item struct {
	ID       string
	Label    string
	Action   Action
	Requires Capability
	Submenu  []Item
}

// HasSubmenu reports whether entering the item opens another menu.
func (i Item) HasSubmenu() bool {
	return len(i.Submenu) > 0
}

// Enabled reports whether the item's capability requirement is met.
func (i Item) Enabled(caps Capabilities) bool {
	return caps.Has(i.Requires)
}

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
}

const (
	RootID    = "root"
	RootTitle = "Cisco Catalyst Centre Tools"
)

// Root returns the full menu tree.
func Root() Item {
	return Item{
		ID:    RootID,
		Label: RootTitle,
		Submenu: []Item{
			{
				ID:    "inventory",
				Label: "Inventory",
				Submenu: []Item{
					scriptItem(scriptByID("inventory:devices")),
					scriptItem(scriptByID("inventory:hierarchy")),
				},
			},
			{
				ID:    "fabric",
				Label: "SDA Fabric",
				Submenu: []Item{
					scriptItem(scriptByID("fabric:segments")),
				},
			},
			{
				ID:    "sites",
				Label: "Sites",
				Submenu: []Item{
					{ID: "sites:add", Label: "Add Site", Action: openForm(AddSiteForm)},
					scriptItem(scriptByID("sites:add-interactive")),
				},
			},
			{ID: "task", Label: "Check Task Status", Action: openForm(TaskStatusForm)},
			{ID: "config", Label: "Edit Configuration", Action: editConfig},
			{ID: "exit", Label: "Exit", Action: exit},
		},
	}
}

// EditConfigRequest asks the UI to open the configuration editor.
type EditConfigRequest struct{}

// ExitRequest asks the UI to quit.
type ExitRequest struct{}

func editConfig(Context, Item) tea.Cmd {
	return func() tea.Msg { return EditConfigRequest{} }
}

func exit(Context, Item) tea.Cmd {
	return func() tea.Msg { return ExitRequest{} }
}
