// Package tmux talks to the tmux server that hosts the popup. The launcher
// only needs two things from it: the working directory of the pane that
// opened the popup, and a way to start detached commands that outlive the
// popup.
package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ResolveSocketPath picks the tmux socket from the flag, the environment or
// the default per-user location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_POPUP_LAUNCHER_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

// Available reports whether the popup runs inside tmux or socketPath
// names an existing socket.
func Available(socketPath string) bool {
	if os.Getenv("TMUX") != "" {
		return true
	}
	if socketPath == "" {
		return false
	}
	_, err := os.Stat(socketPath)
	return err == nil
}

// CurrentPath returns the working directory of the pane that launched the
// popup, or "" when it cannot be determined.
func CurrentPath(socketPath string) string {
	return displayMessage(socketPath, "#{pane_current_path}")
}

// CurrentClientID returns the name of the client that launched the popup.
func CurrentClientID(socketPath string) string {
	return displayMessage(socketPath, "#{client_name}")
}

func displayMessage(socketPath, format string) string {
	client, err := newTmux(socketPath)
	if err != nil {
		return ""
	}
	defer client.Close()
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	out, err := client.DisplayMessage(target, format)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// RunShell starts command in the background on the tmux server so it keeps
// running after the popup closes. dir, when set, is the start directory.
func RunShell(socketPath, dir, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return fmt.Errorf("command required")
	}
	args := append(baseArgs(socketPath), "run-shell", "-b")
	if strings.TrimSpace(dir) != "" {
		args = append(args, "-c", dir)
	}
	args = append(args, command)
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return fmt.Errorf("tmux run-shell: %w", err)
	}
	return nil
}
