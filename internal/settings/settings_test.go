package settings

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/atomicstack/tmux-popup-launcher/internal/folder"
)

const sample = `
[General]
RecentMax = 5
FolderSubmenuDepth = 9
FolderSubmenuOpen = double
FolderMaxItems = 20
SortBy = size
SortDescending = true
ShowDotfiles = files-only
HideExtensions = true
RecentLabel = name
ShowIcons = true
DefaultIconDark = dark.png
PowerExclude = sleep, Logoff

[Menu]
Item1 = Docs|URI|https://example.com/#top
Item3 = ---|SEPARATOR|
Item4 = Projects|FOLDER|$PROJECTS_DIR|inline notitle
Item5 = Nope|BOGUS|x
Item6 = Restart|POWER_RESTART|
Item7 = just a label
Item8 = Power|POWER_MENU|

[Icons]
Icon1 = web.png
Icon1Dark = web-dark.png
`

func TestParseOptions(t *testing.T) {
	t.Setenv("PROJECTS_DIR", "/src")
	snap, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts := snap.Options
	if opts.RecentMax != 5 {
		t.Fatalf("expected RecentMax 5, got %d", opts.RecentMax)
	}
	if opts.FolderMaxDepth != MaxFolderDepth {
		t.Fatalf("expected depth clamped to %d, got %d", MaxFolderDepth, opts.FolderMaxDepth)
	}
	if !opts.FolderDoubleClickOpen || opts.PageSize != 20 {
		t.Fatalf("unexpected folder options %+v", opts)
	}
	if opts.Sort.Field != folder.SortSize || !opts.Sort.Descending || !opts.Sort.FoldersFirst {
		t.Fatalf("unexpected sort policy %+v", opts.Sort)
	}
	if opts.Filter.Dots != folder.DotFilesOnly || opts.Filter.ShowHidden {
		t.Fatalf("unexpected filter policy %+v", opts.Filter)
	}
	if opts.ShowExtensions {
		t.Fatalf("expected HideExtensions=true to disable extensions")
	}
	if !opts.RecentShowExtensions || !opts.RecentShowCleanItems || !opts.RecentLabelName {
		t.Fatalf("unexpected recent options %+v", opts)
	}
	if !opts.Icons.Enabled || opts.Icons.Default.Dark != "dark.png" {
		t.Fatalf("unexpected icon policy %+v", opts.Icons)
	}
	if !opts.PowerExclude.Has(PowerSleep) || !opts.PowerExclude.Has(PowerLogoff) || opts.PowerExclude.Has(PowerLock) {
		t.Fatalf("unexpected power exclusions %08b", opts.PowerExclude)
	}
}

func TestParseMenuEntries(t *testing.T) {
	t.Setenv("PROJECTS_DIR", "/src")
	snap, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Entries) != 7 {
		t.Fatalf("expected 7 entries (empty keys skipped), got %d", len(snap.Entries))
	}
	docs := snap.Entries[0]
	if docs.Kind != KindURI || docs.Target != "https://example.com/#top" || docs.Key != "Item1" {
		t.Fatalf("unexpected first entry %+v", docs)
	}
	if docs.Icon.Any != "web.png" || docs.Icon.Dark != "web-dark.png" {
		t.Fatalf("expected [Icons] overrides, got %+v", docs.Icon)
	}
	projects := snap.Entries[2]
	if projects.Kind != KindFolder || projects.Mode != FolderInline || !projects.SuppressHeader || projects.HeaderOpens {
		t.Fatalf("unexpected folder entry %+v", projects)
	}
	if projects.Target != "/src" {
		t.Fatalf("expected env expansion in target, got %q", projects.Target)
	}
	if snap.Entries[3].Kind != KindSeparator {
		t.Fatalf("unknown types must become separators, got %v", snap.Entries[3].Kind)
	}
	if snap.Entries[4].Kind != KindPower || snap.Entries[4].Power != PowerRestart {
		t.Fatalf("unexpected power entry %+v", snap.Entries[4])
	}
	if snap.Entries[5].Kind != KindSeparator {
		t.Fatalf("a line without fields is a separator, got %v", snap.Entries[5].Kind)
	}
	if snap.Entries[6].Kind != KindPowerMenu {
		t.Fatalf("expected power menu, got %v", snap.Entries[6].Kind)
	}
}

func TestParseEntryFolderModes(t *testing.T) {
	cases := []struct {
		line        string
		mode        FolderMode
		header      bool
		headerOpens bool
	}{
		{"A|FOLDER|/a", FolderLink, false, false},
		{"A|FOLDER|/a|link", FolderLink, false, false},
		{"A|FOLDER|/a|Submenu", FolderSubmenu, false, false},
		{"A|FOLDER|/a|inline", FolderInline, false, false},
		{"A|FOLDER|/a|inline noheader", FolderInline, true, false},
		{"A|FOLDER|/a|inlineopen", FolderInline, false, true},
	}
	for _, tc := range cases {
		e := ParseEntry(tc.line)
		if e.Mode != tc.mode || e.SuppressHeader != tc.header || e.HeaderOpens != tc.headerOpens {
			t.Fatalf("%q: unexpected entry %+v", tc.line, e)
		}
	}
}

func TestDisplayLabelFallbacks(t *testing.T) {
	if got := (Entry{Kind: KindRecentSubmenu}).DisplayLabel(); got != "Recent Items" {
		t.Fatalf("unexpected recent label %q", got)
	}
	if got := (Entry{Kind: KindPowerMenu}).DisplayLabel(); got != "Power" {
		t.Fatalf("unexpected power label %q", got)
	}
	if got := (Entry{Kind: KindFile, Target: "/bin/ls"}).DisplayLabel(); got != "/bin/ls" {
		t.Fatalf("expected target fallback, got %q", got)
	}
}

func TestParseEmptyMenu(t *testing.T) {
	snap, err := Parse([]byte("[General]\nRecentMax = 3\n"))
	if !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
	if snap.Options.RecentMax != 3 {
		t.Fatalf("expected options to survive an empty menu")
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "launcher.ini")
	written, err := WriteDefault(path)
	if err != nil || !written {
		t.Fatalf("expected default to be written, written=%v err=%v", written, err)
	}
	written, err = WriteDefault(path)
	if err != nil || written {
		t.Fatalf("expected existing file to be kept, written=%v err=%v", written, err)
	}
	snap, err := Load(path)
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if len(snap.Entries) != len(defaultMenu) {
		t.Fatalf("expected %d entries, got %d", len(defaultMenu), len(snap.Entries))
	}
	if snap.Options.RecentMax != DefaultRecentMax || snap.Path != path {
		t.Fatalf("unexpected default options %+v", snap.Options)
	}
}
