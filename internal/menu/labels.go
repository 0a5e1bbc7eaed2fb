package menu

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/atomicstack/tmux-popup-launcher/internal/folder"
	"github.com/atomicstack/tmux-popup-launcher/internal/settings"
)

// displayName is the label for a discovered entry.
func displayName(e folder.Entry, showExtensions bool) string {
	if showExtensions || e.IsDir {
		return e.Name
	}
	return stripExt(e.Name)
}

func stripExt(name string) string {
	if strings.HasPrefix(name, ".") {
		return name
	}
	if ext := filepath.Ext(name); ext != "" && ext != name {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

// recentLabel renders one recent item per the recent label options.
func recentLabel(path string, opts settings.Options) string {
	if !opts.RecentLabelName {
		return path
	}
	name := filepath.Base(path)
	if !opts.RecentShowExtensions || !opts.ShowExtensions {
		name = stripExt(name)
	}
	return name
}

// detail is the secondary column shown next to a discovered entry.
func detail(e folder.Entry, now time.Time) string {
	var parts []string
	if !e.IsDir {
		parts = append(parts, humanize.Bytes(uint64(max(e.Size, 0))))
	}
	if !e.Modified.IsZero() {
		parts = append(parts, humanize.RelTime(e.Modified, now, "ago", "from now"))
	}
	return strings.Join(parts, "  ")
}
