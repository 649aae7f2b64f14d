package terminal

import (
	"errors"
	"os"
	"testing"

	"github.com/netops-tools/dnac-console/internal/process"
	"github.com/netops-tools/dnac-console/internal/theme"
)

type fakeProgram struct {
	releases   int
	restores   int
	releaseErr error
}

func (f *fakeProgram) ReleaseTerminal() error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.releases++
	return nil
}

func (f *fakeProgram) RestoreTerminal() error {
	f.restores++
	return nil
}

func TestReleaseAcquireIdempotent(t *testing.T) {
	prog := &fakeProgram{}
	c := New(nil)
	c.Bind(prog)
	if !c.Held() {
		t.Fatalf("expected terminal held after bind")
	}

	for i := 0; i < 2; i++ {
		if err := c.Release(); err != nil {
			t.Fatalf("release %d: %v", i, err)
		}
	}
	if prog.releases != 1 {
		t.Fatalf("expected 1 release, got %d", prog.releases)
	}
	if c.Held() {
		t.Fatalf("expected terminal released")
	}

	for i := 0; i < 2; i++ {
		if err := c.Acquire(); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	if prog.restores != 1 {
		t.Fatalf("expected 1 restore, got %d", prog.restores)
	}
	if !c.Held() {
		t.Fatalf("expected terminal held again")
	}
}

func TestReleaseErrorKeepsOwnership(t *testing.T) {
	prog := &fakeProgram{releaseErr: errors.New("ioctl failed")}
	c := New(nil)
	c.Bind(prog)
	if err := c.Release(); err == nil {
		t.Fatalf("expected release error")
	}
	if !c.Held() {
		t.Fatalf("expected controller to keep ownership after failed release")
	}
}

func TestUnboundControllerIsNoOp(t *testing.T) {
	c := New(nil)
	if err := c.Release(); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
	if err := c.Acquire(); err != nil {
		t.Fatalf("unexpected acquire error: %v", err)
	}
	if c.Held() {
		t.Fatalf("unbound controller must not report held")
	}
}

func TestInteractiveRunHandsTerminalBack(t *testing.T) {
	prog := &fakeProgram{}
	c := New(theme.Default())
	c.Bind(prog)
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("open devnull: %v", err)
	}
	defer devNull.Close()

	r := process.NewRunner(c, "", process.WithBaseEnv(nil), process.WithStdio(devNull, devNull, devNull))
	res := r.Run(t.Context(), process.Command{Path: "/bin/sh", Args: []string{"-c", "exit 4"}}, process.Interactive)

	if res.ExitCode != 4 {
		t.Fatalf("expected exit code 4, got %d (err=%v)", res.ExitCode, res.Err)
	}
	if !c.Held() {
		t.Fatalf("expected terminal back under controller ownership")
	}
	if prog.releases != 1 || prog.restores != 1 {
		t.Fatalf("expected one release and one restore, got %d/%d", prog.releases, prog.restores)
	}
	if got := theme.Paint(c.Styles().Title, "Cisco Catalyst Centre Tools"); got == "" {
		t.Fatalf("expected render to succeed after hand-back")
	}
}

func TestCheckRejectsNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer f.Close()
	err = Check(int(f.Fd()))
	if !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
}
