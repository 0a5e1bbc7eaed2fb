package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const launchScript = `"$POPUP_BIN" -config "$POPUP_WORK/launcher.ini" -socket "$POPUP_SOCKET" \
  -width 60 -height 20 -no-watch \
  -recent-db "$POPUP_WORK/recent.db" -log-file "$POPUP_WORK/launcher.log" > /dev/null 2>&1
printf '%s' $? > "$POPUP_WORK/exit-code"
sleep 300
`

// writeLauncherFixture lays out a folder with two files and an INI whose
// second item browses it.
func writeLauncherFixture(t *testing.T, work string) {
	t.Helper()
	folder := filepath.Join(work, "files")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"alpha.txt", "beta.txt"} {
		if err := os.WriteFile(filepath.Join(folder, name), []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	ini := strings.Join([]string{
		"[General]",
		"Theme = dark",
		"[Menu]",
		"Item1 = Docs|URI|https://example.com",
		"Item2 = Files|FOLDER_SUBMENU|" + folder,
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(work, "launcher.ini"), []byte(ini), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLauncherBrowsesFolder(t *testing.T) {
	bin := BuildLauncher(t)
	s := StartServer(t)
	work := t.TempDir()
	writeLauncherFixture(t, work)
	exitFile := filepath.Join(work, "exit-code")

	s.Launch("launcher", 80, 24, launchScript,
		"POPUP_BIN="+bin,
		"POPUP_SOCKET="+s.Socket,
		"POPUP_WORK="+work,
	)
	const pane = "launcher:0.0"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.WaitForText(ctx, pane, exitFile, "Docs", "Files ›")

	s.SendKeys(pane, "Down", "Enter")
	out := s.WaitForText(ctx, pane, exitFile, "alpha.txt", "beta.txt")
	if !strings.Contains(out, "start → Files") {
		t.Fatalf("expected breadcrumb for the folder:\n%s", out)
	}

	s.SendKeys(pane, "Escape")
	s.WaitForText(ctx, pane, exitFile, "Docs")
	s.SendKeys(pane, "C-c")
	if code := WaitForExit(t, ctx, exitFile); code != "0" {
		t.Fatalf("expected clean exit, got %s", code)
	}
}
