package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/netops-tools/dnac-console/internal/app"
	"github.com/netops-tools/dnac-console/internal/menu"
	"github.com/netops-tools/dnac-console/internal/poller"
	"github.com/netops-tools/dnac-console/internal/settings"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
	Verbose  bool
}

const (
	envConfigPath   = "DNAC_CONFIG_PATH"
	envVerbose      = "DNAC_VERBOSE"
	envTrace        = "DNAC_TRACE"
	envLogFile      = "DNAC_LOG_FILE"
	envScriptsDir   = "DNAC_SCRIPTS_DIR"
	envPython       = "DNAC_PYTHON"
	envPollTimeout  = "DNAC_POLL_TIMEOUT"
	envPollInterval = "DNAC_POLL_INTERVAL"
	envPollBackoff  = "DNAC_POLL_BACKOFF"
	envRateLimit    = "DNAC_RATE_LIMIT"
	envWidth        = "DNAC_WIDTH"
	envHeight       = "DNAC_HEIGHT"
	envMenu         = "DNAC_MENU"
)

const defaultScriptsDir = "scripts"

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	var usage strings.Builder
	fs := flag.NewFlagSet("dnac-console", flag.ContinueOnError)
	fs.SetOutput(&usage)

	var settingsPath string
	var verbose bool
	fs.StringVar(&settingsPath, "config", envOrDefault(env, envConfigPath, settings.DefaultPath), "path to the API settings file (.yaml or .toml)")
	fs.StringVar(&settingsPath, "c", envOrDefault(env, envConfigPath, settings.DefaultPath), "shorthand for --config")
	fs.BoolVar(&verbose, "verbose", envOrBool(env, envVerbose, false), "verbose output from helper scripts")
	fs.BoolVar(&verbose, "v", envOrBool(env, envVerbose, false), "shorthand for --verbose")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	scriptsDir := fs.String("scripts-dir", envOrDefault(env, envScriptsDir, defaultScriptsDir), "directory holding the helper scripts")
	python := fs.String("python", envOrDefault(env, envPython, menu.DefaultPython), "interpreter used to run helper scripts")
	pollTimeout := fs.Duration("poll-timeout", envOrDuration(env, envPollTimeout, poller.DefaultTimeout), "give up waiting on a task after this long")
	pollInterval := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, poller.DefaultInitialInterval), "first wait between task status checks")
	pollBackoff := fs.Float64("poll-backoff", envOrFloat(env, envPollBackoff, poller.DefaultBackoffFactor), "growth factor applied to the wait after each check")
	rateLimit := fs.Float64("rate-limit", envOrFloat(env, envRateLimit, 0), "maximum API requests per second (0 keeps the client default)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	rootMenu := fs.String("menu", envOrDefault(env, envMenu, ""), "open this submenu instead of the main menu")

	if err := fs.Parse(args); err != nil {
		return Config{}, &UsageError{Err: err, Usage: usage.String()}
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := Config{
		App: app.Config{
			SettingsPath: settingsPath,
			ScriptsDir:   *scriptsDir,
			Python:       *python,
			Verbose:      verbose,
			Width:        *width,
			Height:       *height,
			RootMenu:     *rootMenu,
			RateLimit:    *rateLimit,
			Poll: poller.Options{
				Timeout:         *pollTimeout,
				InitialInterval: *pollInterval,
				BackoffFactor:   *pollBackoff,
			},
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
			Verbose:  verbose,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

// envOrDuration accepts Go durations ("90s") or a bare number of seconds.
func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}

// UsageError is a command line parse failure together with the flag
// summary printed by the parser.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// MustLoad returns configuration or exits. -h prints the flag summary and
// exits cleanly.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			if errors.Is(err, flag.ErrHelp) {
				fmt.Fprint(os.Stdout, usageErr.Usage)
				os.Exit(0)
			}
			fmt.Fprint(os.Stderr, usageErr.Usage)
		}
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the poller or the renderer cannot work with.
func Validate(cfg Config) error {
	a := cfg.App
	if strings.TrimSpace(a.SettingsPath) == "" {
		return errors.New("config path must not be empty")
	}
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.Poll.Timeout <= 0 {
		return fmt.Errorf("poll timeout must be positive (got %s)", a.Poll.Timeout)
	}
	if a.Poll.InitialInterval <= 0 {
		return fmt.Errorf("poll interval must be positive (got %s)", a.Poll.InitialInterval)
	}
	if a.Poll.BackoffFactor < 1 {
		return fmt.Errorf("poll backoff must be >= 1 (got %g)", a.Poll.BackoffFactor)
	}
	if a.RateLimit < 0 {
		return fmt.Errorf("rate limit must be >= 0 (got %g)", a.RateLimit)
	}
	return nil
}
