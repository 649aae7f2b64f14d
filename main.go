package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/netops-tools/dnac-console/internal/app"
	"github.com/netops-tools/dnac-console/internal/config"
	"github.com/netops-tools/dnac-console/internal/logging"
	"github.com/netops-tools/dnac-console/internal/logging/events"
	"github.com/netops-tools/dnac-console/internal/menu"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)
	logging.SetVerbose(runtimeCfg.Logging.Verbose)

	traceStartup(runtimeCfg)

	os.Exit(run(runtimeCfg))
}

// run executes the UI and maps its result to an exit code. The terminal has
// been restored by the time it returns.
func run(cfg config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	defer logging.Close()

	err := app.Run(ctx, cfg.App)
	if err != nil {
		logging.Error(err)
		events.App.Exit(1, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	events.App.Exit(0, nil)
	return 0
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload records where the console will read settings and
// scripts from and how it will poll.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	a := cfg.App
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"settings": a.SettingsPath,
		"python":   a.Python,
		"menu":     a.RootMenu,
		"poll": map[string]interface{}{
			"timeout":  a.Poll.Timeout.String(),
			"interval": a.Poll.InitialInterval.String(),
			"backoff":  a.Poll.BackoffFactor,
		},
		"logFile": cfg.Logging.FilePath,
		"scripts": scriptInventory(a.ScriptsDir),
		"tty":     detectTerminal(),
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

// scriptInventory lists which helper scripts are present in dir.
func scriptInventory(dir string) map[string]bool {
	found := make(map[string]bool)
	for _, s := range menu.Scripts() {
		_, err := os.Stat(filepath.Join(dir, s.File))
		found[s.File] = err == nil
	}
	return found
}

type terminalInfo struct {
	Stdin  bool `json:"stdin"`
	Stdout bool `json:"stdout"`
	Width  int  `json:"width,omitempty"`
	Height int  `json:"height,omitempty"`
}

// detectTerminal reports whether the console can take over the terminal and
// at what size.
func detectTerminal() terminalInfo {
	out := int(os.Stdout.Fd())
	info := terminalInfo{
		Stdin:  term.IsTerminal(int(os.Stdin.Fd())),
		Stdout: term.IsTerminal(out),
	}
	if info.Stdout {
		if w, h, err := term.GetSize(out); err == nil {
			info.Width, info.Height = w, h
		}
	}
	return info
}
