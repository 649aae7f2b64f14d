package menu

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/process"
)

// DefaultPython is the interpreter used when none is configured.
const DefaultPython = "python3"

// Script is a helper program shipped in the scripts directory.
type Script struct {
	ID       string
	Label    string
	File     string
	Mode     process.Mode
	Requires Capability
}

var scripts = []Script{
	{ID: "inventory:devices", Label: "List Network Devices", File: "devices.py", Mode: process.Captured},
	{ID: "inventory:hierarchy", Label: "Show Site Hierarchy", File: "hierarchy.py", Mode: process.Captured},
	{ID: "fabric:segments", Label: "List SDA Segments", File: "segment.py", Mode: process.Captured, Requires: Fabric},
	{ID: "sites:add-interactive", Label: "Add Site (guided)", File: "add_site_curses.py", Mode: process.Interactive},
}

// Scripts returns the catalogue of helper scripts.
func Scripts() []Script {
	return append([]Script(nil), scripts...)
}

func scriptByID(id string) Script {
	for _, s := range scripts {
		if s.ID == id {
			return s
		}
	}
	panic("menu: unknown script " + id)
}

// Command builds the interpreter invocation for s.
func (s Script) Command(ctx Context) process.Command {
	python := ctx.Python
	if python == "" {
		python = DefaultPython
	}
	return process.Command{
		Path: python,
		Args: []string{filepath.Join(ctx.ScriptsDir, s.File)},
		Dir:  ctx.ProjectRoot,
	}
}

// ScriptRequest asks the UI to run a script.
type ScriptRequest struct {
	ID      string
	Label   string
	Command process.Command
	Mode    process.Mode
}

func scriptItem(s Script) Item {
	return Item{ID: s.ID, Label: s.Label, Requires: s.Requires, Action: runScript(s)}
}

func runScript(s Script) Action {
	return func(ctx Context, item Item) tea.Cmd {
		return func() tea.Msg {
			path := filepath.Join(ctx.ScriptsDir, s.File)
			if _, err := os.Stat(path); err != nil {
				return ActionResult{Err: fmt.Errorf("%s: script not available: %w", item.Label, err)}
			}
			return ScriptRequest{ID: s.ID, Label: item.Label, Command: s.Command(ctx), Mode: s.Mode}
		}
	}
}
