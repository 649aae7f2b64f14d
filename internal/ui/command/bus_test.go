package command

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/menu"
	"github.com/netops-tools/dnac-console/internal/process"
)

func TestExecutePassesContextAndItem(t *testing.T) {
	var gotCtx menu.Context
	var gotItem menu.Item
	handler := func(ctx menu.Context, item menu.Item) tea.Cmd {
		gotCtx, gotItem = ctx, item
		return func() tea.Msg { return menu.ActionResult{Info: "done"} }
	}
	item := menu.Item{ID: "inventory:devices", Label: "List Network Devices", Action: handler}
	cmd := New().Execute(menu.Context{ScriptsDir: "scripts"}, Request{Item: item})
	msg := cmd()
	res, ok := msg.(menu.ActionResult)
	if !ok || res.Info != "done" {
		t.Fatalf("expected ActionResult done, got %#v", msg)
	}
	if gotCtx.ScriptsDir != "scripts" || gotItem.ID != item.ID {
		t.Fatalf("unexpected handler arguments %#v %#v", gotCtx, gotItem)
	}
}

func TestExecuteWithoutHandler(t *testing.T) {
	msg := New().Execute(menu.Context{}, Request{Item: menu.Item{ID: "x", Label: "Later"}})()
	res, ok := msg.(menu.ActionResult)
	if !ok || res.Info != "Selected Later (no action defined yet)" {
		t.Fatalf("expected placeholder info, got %#v", msg)
	}
	noop := func(menu.Context, menu.Item) tea.Cmd { return nil }
	if msg := New().Execute(menu.Context{}, Request{Item: menu.Item{ID: "x", Action: noop}})(); msg != nil {
		t.Fatalf("expected nil message for no-op handler, got %#v", msg)
	}
}

func TestExecuteGatesOnCapability(t *testing.T) {
	ran := false
	item := menu.Item{
		ID:       "fabric:segments",
		Label:    "List SDA Segments",
		Requires: menu.Fabric,
		Action: func(menu.Context, menu.Item) tea.Cmd {
			ran = true
			return nil
		},
	}
	msg := New().Execute(menu.Context{}, Request{Item: item, Caps: menu.Capabilities{}})()
	res, ok := msg.(menu.ActionResult)
	if !ok || !strings.Contains(res.Info, "requires fabric support") {
		t.Fatalf("expected capability notice, got %#v", msg)
	}
	if ran {
		t.Fatal("gated action must not run")
	}

	New().Execute(menu.Context{}, Request{Item: item, Caps: menu.Capabilities{menu.Fabric: true}})()
	if !ran {
		t.Fatal("action should run once the capability is present")
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		msg  tea.Msg
		want string
	}{
		{menu.ScriptRequest{Mode: process.Interactive, Command: process.Command{Path: "python3"}}, "script interactive python3"},
		{menu.FormRequest{Form: menu.Form{ID: "task-status"}}, "form task-status"},
		{menu.PollRequest{OperationID: "abc"}, "poll abc"},
		{menu.ActionResult{Err: errors.New("x")}, "error"},
		{menu.ActionResult{Info: "ok"}, "info"},
		{nil, "none"},
		{menu.ExitRequest{}, "menu.ExitRequest"},
	}
	for _, tc := range cases {
		if got := Describe(tc.msg); got != tc.want {
			t.Fatalf("Describe(%#v) = %q, want %q", tc.msg, got, tc.want)
		}
	}
}
