package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/tmux-popup-launcher/internal/app"
	"github.com/atomicstack/tmux-popup-launcher/internal/config"
	"github.com/atomicstack/tmux-popup-launcher/internal/logging"
	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	events.App.Start(startupTrace(cfg))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		logging.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.App.WriteDefault {
		fmt.Printf("Wrote default configuration to %s\n", cfg.App.ConfigPath)
	}
	logging.Sync()
}

// startupTrace describes how the launcher was started: arguments, the
// effective flag values, the resolved configuration and the terminal it
// runs in.
func startupTrace(cfg config.Config) map[string]any {
	flags := map[string]any{
		"trace":   cfg.Logging.Trace,
		"logFile": cfg.Logging.FilePath,
	}
	for name, value := range cfg.Flags {
		flags[name] = value
	}
	payload := map[string]any{
		"argv":      cfg.Args,
		"flags":     flags,
		"config":    cfg,
		"terminals": probeTerminals(),
	}
	addOrError(payload, "executable", os.Executable)
	addOrError(payload, "cwd", os.Getwd)
	return payload
}

func addOrError(payload map[string]any, key string, get func() (string, error)) {
	if v, err := get(); err != nil {
		payload[key+"Error"] = err.Error()
	} else {
		payload[key] = v
	}
}

// terminalProbe reports whether a standard descriptor is a terminal and,
// if so, its size. Popups sized by tmux show up here first when the
// layout looks wrong.
type terminalProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

func probeTerminals() []terminalProbe {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	probes := make([]terminalProbe, len(files))
	for i, f := range files {
		p := terminalProbe{Name: names[i]}
		fd := int(f.Fd())
		if p.Terminal = term.IsTerminal(fd); p.Terminal {
			var err error
			if p.Width, p.Height, err = term.GetSize(fd); err != nil {
				p.Error = err.Error()
			}
		}
		probes[i] = p
	}
	return probes
}
