// Package terminal owns the interactive terminal for the lifetime of the UI
// and lends it to child processes.
package terminal

import (
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/theme"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the process is not attached to an
// interactive terminal. It is the only fatal terminal condition.
var ErrNotTerminal = errors.New("not an interactive terminal")

// Program is the part of a running Bubble Tea program the controller needs.
type Program interface {
	ReleaseTerminal() error
	RestoreTerminal() error
}

// Controller tracks who owns the terminal. Release and Acquire are idempotent
// and safe to call from any goroutine.
type Controller struct {
	mu      sync.Mutex
	program Program
	held    bool
	styles  *theme.Styles
}

// New returns a controller that renders with styles.
func New(styles *theme.Styles) *Controller {
	if styles == nil {
		styles = theme.Default()
	}
	return &Controller{styles: styles}
}

// Check verifies every descriptor is a terminal.
func Check(fds ...int) error {
	for _, fd := range fds {
		if !term.IsTerminal(fd) {
			return fmt.Errorf("%w (fd %d)", ErrNotTerminal, fd)
		}
	}
	return nil
}

// Styles returns the palette initialised for this session.
func (c *Controller) Styles() *theme.Styles {
	return c.styles
}

// Bind attaches a running program; the terminal is considered held from now on.
func (c *Controller) Bind(p Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = p
	c.held = p != nil
}

func (c *Controller) unbind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = nil
	c.held = false
}

// Held reports whether the UI currently owns the terminal.
func (c *Controller) Held() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held
}

// Release restores cooked mode and shows the cursor. Calling it while the
// terminal is already released does nothing.
func (c *Controller) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.held || c.program == nil {
		return nil
	}
	if err := c.program.ReleaseTerminal(); err != nil {
		return err
	}
	c.held = false
	return nil
}

// Acquire puts the terminal back into raw mode for the UI. Calling it while
// already held does nothing.
func (c *Controller) Acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.held || c.program == nil {
		return nil
	}
	if err := c.program.RestoreTerminal(); err != nil {
		return err
	}
	c.held = true
	return nil
}

// Run initialises the palette, starts model on the alternate screen and
// blocks until it exits. The terminal is restored by the program on every
// return path, including panics inside the model.
func (c *Controller) Run(model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	theme.InitPalette()
	options := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	program := tea.NewProgram(model, options...)
	c.Bind(program)
	defer c.unbind()
	return program.Run()
}
