// Package icon resolves icon references attached to menu entries.
//
// A reference is either a direct image path or "module,index", where the
// index selects a resource inside an icon library and may be negative. Bare
// module names with no path separator are looked up in the system icon
// directory. Environment variables are expanded before anything is loaded.
package icon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SystemFolder is the reference handed out for the generic folder icon.
const SystemFolder = "@folder"

const (
	folderGlyph  = "■"
	defaultGlyph = "•"
	maxGlyphLen  = 2
)

// ErrNotFound is returned when a reference does not point at a loadable icon.
var ErrNotFound = errors.New("icon not found")

// Ref is a parsed icon reference.
type Ref struct {
	Raw      string
	Path     string
	Index    int
	HasIndex bool
}

// Handle is a loaded icon. Handles are owned by the build that loaded them
// and must be released through the Loader that produced them.
type Handle struct {
	Ref      Ref
	Glyph    string
	released bool
}

// Released reports whether the handle has been released.
func (h *Handle) Released() bool {
	return h != nil && h.released
}

// Loader turns references into handles.
type Loader interface {
	Load(spec string) (*Handle, error)
	Release(h *Handle)
}

// Parse expands the reference and splits off a trailing index.
func Parse(spec, systemDir string) Ref {
	raw := strings.TrimSpace(spec)
	ref := Ref{Raw: raw}
	if raw == "" {
		return ref
	}
	module := raw
	if comma := strings.IndexByte(raw, ','); comma >= 0 {
		module = strings.TrimSpace(raw[:comma])
		if idx, err := strconv.Atoi(strings.TrimSpace(raw[comma+1:])); err == nil {
			ref.Index = idx
			ref.HasIndex = true
		}
	}
	module = expand(module)
	if ref.HasIndex && systemDir != "" && module != "" && !strings.ContainsRune(module, filepath.Separator) {
		module = filepath.Join(systemDir, module)
	}
	ref.Path = module
	return ref
}

func expand(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// FileLoader loads icons from the filesystem. Short references that are not
// paths (one or two runes, such as an emoji) are used as literal glyphs.
type FileLoader struct {
	SystemDir string
}

// NewFileLoader returns a loader rooted at the platform icon directory.
func NewFileLoader() *FileLoader {
	dir := os.Getenv("TMUX_POPUP_LAUNCHER_ICON_DIR")
	if dir == "" {
		dir = "/usr/share/pixmaps"
	}
	return &FileLoader{SystemDir: dir}
}

func (l *FileLoader) Load(spec string) (*Handle, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return nil, ErrNotFound
	}
	if trimmed == SystemFolder {
		return &Handle{Ref: Ref{Raw: trimmed}, Glyph: folderGlyph}, nil
	}
	if isGlyph(trimmed) {
		return &Handle{Ref: Ref{Raw: trimmed}, Glyph: trimmed}, nil
	}
	ref := Parse(trimmed, l.SystemDir)
	if fileExists(ref.Path) {
		return &Handle{Ref: ref, Glyph: defaultGlyph}, nil
	}
	// a module that cannot be opened falls back to treating the whole
	// reference as a plain image path
	if ref.HasIndex {
		whole := expand(trimmed)
		if fileExists(whole) {
			return &Handle{Ref: Ref{Raw: trimmed, Path: whole}, Glyph: defaultGlyph}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, trimmed)
}

func (l *FileLoader) Release(h *Handle) {
	if h != nil {
		h.released = true
	}
}

func isGlyph(spec string) bool {
	if strings.ContainsAny(spec, `/\,.$~`) {
		return false
	}
	return utf8.RuneCountInString(spec) <= maxGlyphLen && !isASCIIWord(spec)
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r >= 0x80 {
			return false
		}
	}
	return true
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
