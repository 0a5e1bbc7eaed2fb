package testutil

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// BuildLauncher compiles the launcher from the module root into a
// temporary directory and returns the binary path.
func BuildLauncher(t *testing.T) string {
	t.Helper()
	RequireTmux(t)
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("skipping: go toolchain not available")
	}
	out := t.TempDir()
	bin := filepath.Join(out, "tmux-popup-launcher")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = moduleRoot(t)
	cmd.Env = append(os.Environ(), "GOCACHE="+filepath.Join(out, ".gocache"))
	if log, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build launcher: %v\n%s", err, log)
	}
	return bin
}

// WaitForExit polls exitPath until the launcher script has recorded its
// exit code.
func WaitForExit(t *testing.T, ctx context.Context, exitPath string) string {
	t.Helper()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if code := readExitCode(exitPath); code != "" {
			return code
		}
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for exit: %v", ctx.Err())
		case <-ticker.C:
		}
	}
}

func readExitCode(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func containsAll(out string, want []string) bool {
	for _, w := range want {
		if !strings.Contains(out, w) {
			return false
		}
	}
	return true
}

func moduleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(filepath.Join(d, "go.mod")); err == nil {
			return d
		}
		if filepath.Dir(d) == d {
			return dir
		}
	}
}
