// Package config resolves the launcher's runtime options from command-line
// flags, TMUX_POPUP_LAUNCHER_* environment variables and XDG defaults, in
// that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-popup-launcher/internal/app"
	"github.com/atomicstack/tmux-popup-launcher/internal/theme"
)

const (
	appDirName = "tmux-popup-launcher"
	envPrefix  = "TMUX_POPUP_LAUNCHER_"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	// Flags holds the effective value of every flag, keyed by flag name.
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
	Watch   bool
	ViaTmux bool
}

// environment is a parsed environ slice. Each lookup takes the suffix after
// envPrefix; unset, blank or unparsable values fall back.
type environment map[string]string

func parseEnv(environ []string) environment {
	env := make(environment, len(environ))
	for _, entry := range environ {
		if key, value, ok := strings.Cut(entry, "="); ok && key != "" {
			env[key] = value
		}
	}
	return env
}

func (e environment) str(name, fallback string) string {
	if v, ok := e[envPrefix+name]; ok {
		return v
	}
	return fallback
}

func (e environment) num(name string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(e[envPrefix+name])); err == nil {
		return n
	}
	return fallback
}

func (e environment) boolean(name string, fallback bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(e[envPrefix+name])); err == nil {
		return b
	}
	return fallback
}

// xdgPath joins elem under $<xdgVar>, or under $HOME/<homeRel> when the
// XDG variable is unset. It returns "" when neither is known.
func (e environment) xdgPath(xdgVar, homeRel string, elem ...string) string {
	base := e[xdgVar]
	if base == "" {
		if e["HOME"] == "" {
			return ""
		}
		base = filepath.Join(e["HOME"], homeRel)
	}
	return filepath.Join(append([]string{base, appDirName}, elem...)...)
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	fs := flag.NewFlagSet(appDirName, flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	var a app.Config
	var trace, noWatch bool
	fs.StringVar(&a.ConfigPath, "config", env.str("CONFIG", env.xdgPath("XDG_CONFIG_HOME", ".config", "launcher.ini")), "path to the launcher INI file")
	fs.StringVar(&a.SocketPath, "socket", env.str("SOCKET", ""), "path to the tmux socket (overrides environment detection)")
	fs.IntVar(&a.Width, "width", env.num("WIDTH", 0), "popup width in cells (0 follows the terminal)")
	fs.IntVar(&a.Height, "height", env.num("HEIGHT", 0), "popup height in rows (0 follows the terminal)")
	fs.BoolVar(&a.ShowFooter, "footer", env.boolean("FOOTER", false), "show the key hint row")
	fs.BoolVar(&a.Verbose, "verbose", env.boolean("VERBOSE", false), "print the result of the chosen action after the popup closes")
	fs.StringVar(&a.LogFile, "log-file", env.str("LOG_FILE", ""), "path to the log file")
	fs.StringVar(&a.RecentDB, "recent-db", env.str("RECENT_DB", env.xdgPath("XDG_STATE_HOME", filepath.Join(".local", "state"), "recent.db")), "path to the recent items database")
	fs.StringVar(&a.MetricsFile, "metrics-file", env.str("METRICS_FILE", ""), "write prometheus metrics to this textfile on exit")
	fs.StringVar(&a.Theme, "theme", env.str("THEME", ""), "auto, dark or light (defaults to the INI Theme key)")
	fs.BoolVar(&a.WriteDefault, "write-default", false, "write the default INI file and exit")
	fs.BoolVar(&a.ViaTmux, "via-tmux", env.boolean("VIA_TMUX", false), "start programs with tmux run-shell -b")
	fs.BoolVar(&noWatch, "no-watch", env.boolean("NO_WATCH", false), "do not reload the menu when the INI file changes")
	fs.BoolVar(&trace, "trace", env.boolean("TRACE", false), "enable verbose JSON trace logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	a.Watch = !noWatch
	if err := check(a); err != nil {
		return Config{}, err
	}

	flags := make(map[string]string)
	fs.VisitAll(func(f *flag.Flag) { flags[f.Name] = f.Value.String() })

	return Config{
		App:      a,
		Logging:  Logging{FilePath: a.LogFile, Trace: trace},
		Features: Features{Verbose: a.Verbose, Watch: a.Watch, ViaTmux: a.ViaTmux},
		Flags:    flags,
		Args:     append([]string(nil), args...),
	}, nil
}

func check(a app.Config) error {
	var errs []error
	if a.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", a.Width))
	}
	if a.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", a.Height))
	}
	if strings.TrimSpace(a.ConfigPath) == "" {
		errs = append(errs, fmt.Errorf("config path required (set --config or %sCONFIG)", envPrefix))
	}
	if strings.TrimSpace(a.Theme) != "" {
		if _, err := theme.ParseMode(a.Theme); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks settings that depend on the filesystem.
func Validate(cfg Config) error {
	if info, err := os.Stat(cfg.App.ConfigPath); err == nil && info.IsDir() {
		return fmt.Errorf("config path %s is a directory", cfg.App.ConfigPath)
	}
	return nil
}
