package icon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseModuleIndex(t *testing.T) {
	ref := Parse("shell32.dll,-3", "/sys/icons")
	if !ref.HasIndex || ref.Index != -3 {
		t.Fatalf("expected index -3, got %+v", ref)
	}
	if ref.Path != filepath.Join("/sys/icons", "shell32.dll") {
		t.Fatalf("expected bare module resolved against system dir, got %q", ref.Path)
	}

	ref = Parse("/opt/icons/app.icns,10", "/sys/icons")
	if ref.Path != "/opt/icons/app.icns" || ref.Index != 10 {
		t.Fatalf("unexpected parse %+v", ref)
	}

	ref = Parse("plain.png", "/sys/icons")
	if ref.HasIndex || ref.Path != "plain.png" {
		t.Fatalf("expected plain path to be untouched, got %+v", ref)
	}
}

func TestParseExpandsEnvironment(t *testing.T) {
	t.Setenv("ICON_HOME", "/data/icons")
	ref := Parse("$ICON_HOME/app.png", "")
	if ref.Path != "/data/icons/app.png" {
		t.Fatalf("expected expanded path, got %q", ref.Path)
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.icons")
	if err := os.WriteFile(lib, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loader := &FileLoader{SystemDir: dir}

	h, err := loader.Load("lib.icons,2")
	if err != nil {
		t.Fatalf("expected module icon to load: %v", err)
	}
	if h.Ref.Path != lib || h.Ref.Index != 2 {
		t.Fatalf("unexpected handle %+v", h.Ref)
	}
	loader.Release(h)
	if !h.Released() {
		t.Fatalf("expected handle to be released")
	}

	if _, err := loader.Load(filepath.Join(dir, "missing.png")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	h, err = loader.Load("★")
	if err != nil || h.Glyph != "★" {
		t.Fatalf("expected literal glyph, got %+v err=%v", h, err)
	}

	h, err = loader.Load(SystemFolder)
	if err != nil || h.Glyph != folderGlyph {
		t.Fatalf("expected folder glyph, got %+v err=%v", h, err)
	}
}

func TestPolicyPickOrder(t *testing.T) {
	p := Policy{Enabled: true, Default: Candidates{Any: "default.png", Dark: "default-dark.png"}}
	entry := Candidates{Any: "item.png", Light: "item-light.png"}

	if got := p.Pick(entry, false, false); got != "item-light.png" {
		t.Fatalf("expected themed entry icon, got %q", got)
	}
	if got := p.Pick(entry, true, false); got != "item.png" {
		t.Fatalf("expected generic entry icon, got %q", got)
	}
	if got := p.Pick(Candidates{}, true, false); got != "default-dark.png" {
		t.Fatalf("expected themed default, got %q", got)
	}
	if got := p.Pick(Candidates{}, false, false); got != "default.png" {
		t.Fatalf("expected generic default, got %q", got)
	}

	p.ShowFolderIcons = true
	if got := p.Pick(Candidates{}, false, true); got != SystemFolder {
		t.Fatalf("expected system folder icon, got %q", got)
	}
	if got := p.Pick(Candidates{}, false, false); got != "default.png" {
		t.Fatalf("folder icon must only apply to folders, got %q", got)
	}
	if got := (Policy{}).Pick(Candidates{}, false, false); got != "" {
		t.Fatalf("expected no icon, got %q", got)
	}
}

type failingLoader struct{ calls int }

func (f *failingLoader) Load(string) (*Handle, error) {
	f.calls++
	return nil, ErrNotFound
}

func (f *failingLoader) Release(*Handle) {}

func TestResolveFailureIsNonFatal(t *testing.T) {
	loader := &failingLoader{}
	p := Policy{Enabled: true, Default: Candidates{Any: "x.png"}}
	if h := p.Resolve(loader, Candidates{}, false, false); h != nil {
		t.Fatalf("expected nil handle on failure")
	}
	if loader.calls != 1 {
		t.Fatalf("expected one load attempt, got %d", loader.calls)
	}
	p.Enabled = false
	if h := p.Resolve(loader, Candidates{}, false, false); h != nil || loader.calls != 1 {
		t.Fatalf("expected disabled policy to skip loading")
	}
}
