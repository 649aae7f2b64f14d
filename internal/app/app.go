package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/dnac"
	"github.com/netops-tools/dnac-console/internal/menu"
	"github.com/netops-tools/dnac-console/internal/poller"
	"github.com/netops-tools/dnac-console/internal/process"
	"github.com/netops-tools/dnac-console/internal/settings"
	"github.com/netops-tools/dnac-console/internal/terminal"
	"github.com/netops-tools/dnac-console/internal/theme"
	"github.com/netops-tools/dnac-console/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	SettingsPath string
	ScriptsDir   string
	ProjectRoot  string
	Python       string
	Verbose      bool
	Width        int
	Height       int
	RootMenu     string
	RateLimit    float64
	Poll         poller.Options
}

// Run bootstraps and executes the Bubble Tea program. It returns once the
// user quits or ctx is cancelled; the terminal is restored in both cases.
func Run(ctx context.Context, cfg Config) error {
	if err := terminal.Check(int(os.Stdin.Fd()), int(os.Stdout.Fd())); err != nil {
		return err
	}
	store := settings.NewStore(cfg.SettingsPath)
	current, err := store.Load()
	if err != nil {
		return err
	}
	root, err := projectRoot(cfg.ProjectRoot)
	if err != nil {
		return err
	}

	ctrl := terminal.New(theme.Default())
	runner := process.NewRunner(ctrl, root, process.WithEnv(scriptEnv(store.Path(), cfg.Verbose)...))
	model := ui.NewModel(ui.Deps{
		Settings: current,
		Store:    store,
		Connect:  connector(cfg.RateLimit),
		Runner:   runner,
		Menu: menu.Context{
			ScriptsDir:  scriptsDir(root, cfg.ScriptsDir),
			ProjectRoot: root,
			Python:      cfg.Python,
		},
		RootMenu: cfg.RootMenu,
		Poll:     cfg.Poll,
		Styles:   ctrl.Styles(),
		Width:    cfg.Width,
		Height:   cfg.Height,
	})
	defer model.Close()

	_, err = ctrl.Run(model, tea.WithContext(ctx))
	return programError(ctx, err)
}

// programError maps the error bubbletea returns on exit. A kill caused by ctx
// cancellation is a normal shutdown; a recovered panic is also reported as a
// kill and must still surface.
func programError(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, tea.ErrProgramPanic) {
		return err
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// connector opens a REST session for each settings revision.
func connector(rateLimit float64) func(settings.Config) ui.Backend {
	return func(cfg settings.Config) ui.Backend {
		var opts []dnac.Option
		if rateLimit > 0 {
			opts = append(opts, dnac.WithRateLimit(rateLimit))
		}
		return dnac.NewClient(cfg, opts...)
	}
}

func projectRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve project root: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve project root: %w", err)
	}
	return abs, nil
}

func scriptsDir(root, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// scriptEnv is exported to every helper script so they read the same settings
// file as the console. DNAC_VERBOSE is only set when verbose output is on.
func scriptEnv(settingsPath string, verbose bool) []string {
	if abs, err := filepath.Abs(settingsPath); err == nil {
		settingsPath = abs
	}
	env := []string{"DNAC_CONFIG_PATH=" + settingsPath}
	if verbose {
		env = append(env, "DNAC_VERBOSE=1")
	}
	return env
}
