package settings

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/atomicstack/tmux-popup-launcher/internal/folder"
)

// ErrNoItems is returned when the [Menu] section defines nothing.
var ErrNoItems = errors.New("menu defines no items")

var loadOptions = ini.LoadOptions{
	Insensitive:         true,
	IgnoreInlineComment: true,
	AllowShadows:        false,
}

// Load reads and resolves the INI file at path.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	snap, err := Parse(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse %s: %w", path, err)
	}
	snap.Path = path
	return snap, nil
}

// Parse resolves INI content. A menu with no items is returned together
// with ErrNoItems so callers can still use the options.
func Parse(data []byte) (Snapshot, error) {
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Options: parseOptions(file)}
	snap.Entries = parseMenu(file)
	if len(snap.Entries) == 0 {
		return snap, ErrNoItems
	}
	return snap, nil
}

func parseOptions(file *ini.File) Options {
	opts := Defaults()
	general := file.Section("General")
	debug := file.Section("Debug")

	opts.RecentMax = general.Key("RecentMax").MustInt(DefaultRecentMax)
	if opts.RecentMax <= 0 {
		opts.RecentMax = DefaultRecentMax
	}
	opts.FolderMaxDepth = clampDepth(general.Key("FolderSubmenuDepth").MustInt(1))
	opts.FolderDoubleClickOpen = strings.EqualFold(strings.TrimSpace(general.Key("FolderSubmenuOpen").String()), "double")
	opts.PageSize = general.Key("FolderMaxItems").MustInt(0)

	opts.Filter = folder.FilterPolicy{
		ShowHidden: general.Key("ShowHidden").MustBool(false),
		Dots:       folder.ParseDotMode(general.Key("ShowDotfiles").String()),
	}
	opts.Sort = folder.SortPolicy{
		Field:        folder.ParseSortField(general.Key("SortBy").String()),
		Descending:   general.Key("SortDescending").MustBool(false),
		FoldersFirst: general.Key("SortFoldersFirst").MustBool(true),
	}

	opts.ShowExtensions = invertedBool(general, "ShowExtensions", "HideExtensions", true)
	opts.RecentShowExtensions = invertedBool(general, "RecentShowExtensions", "RecentHideExtensions", true)
	opts.RecentShowCleanItems = general.Key("RecentShowCleanItems").MustBool(true)
	switch strings.ToLower(strings.TrimSpace(general.Key("RecentLabel").String())) {
	case "name", "filename", "file", "leaf":
		opts.RecentLabelName = true
	}

	showIcons := general.Key("ShowIcons").String()
	if strings.TrimSpace(showIcons) == "" {
		showIcons = general.Key("LegacyIcons").String()
	}
	opts.Icons.Enabled = parseBool(showIcons, false)
	opts.Icons.ShowFolderIcons = general.Key("ShowFolderIcons").MustBool(false)
	opts.Icons.Default.Any = expandEnv(general.Key("DefaultIcon").String())
	opts.Icons.Default.Light = expandEnv(general.Key("DefaultIconLight").String())
	opts.Icons.Default.Dark = expandEnv(general.Key("DefaultIconDark").String())

	for _, token := range strings.Split(general.Key("PowerExclude").String(), ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		for _, a := range PowerActions {
			if token == a.String() {
				opts.PowerExclude = opts.PowerExclude.With(a)
			}
		}
	}

	if theme := strings.ToLower(strings.TrimSpace(general.Key("Theme").String())); theme != "" {
		opts.Theme = theme
	}
	opts.LogConfig = firstNonEmpty(general.Key("LogConfig").String(), debug.Key("LogConfig").String(), "off")
	opts.LogConfig = strings.ToLower(strings.TrimSpace(opts.LogConfig))
	opts.LogFolder = expandEnv(firstNonEmpty(general.Key("LogFolder").String(), debug.Key("LogFolder").String()))
	return opts
}

func parseMenu(file *ini.File) []Entry {
	menu := file.Section("Menu")
	icons := file.Section("Icons")
	entries := make([]Entry, 0, MaxItems)
	for i := 1; i <= MaxItems; i++ {
		key := "Item" + strconv.Itoa(i)
		line := menu.Key(key).String()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry := ParseEntry(line)
		entry.Key = key
		iconKey := "Icon" + strconv.Itoa(i)
		if v := strings.TrimSpace(icons.Key(iconKey).String()); v != "" {
			entry.Icon.Any = expandEnv(v)
		}
		if v := strings.TrimSpace(icons.Key(iconKey + "Light").String()); v != "" {
			entry.Icon.Light = expandEnv(v)
		}
		if v := strings.TrimSpace(icons.Key(iconKey + "Dark").String()); v != "" {
			entry.Icon.Dark = expandEnv(v)
		}
		entries = append(entries, entry)
	}
	return entries
}

// ParseEntry decodes "Label|TYPE|Path|Params|Icon". A line with no type
// field is a separator, as is any unrecognised type.
func ParseEntry(line string) Entry {
	parts := strings.SplitN(line, "|", 5)
	for len(parts) < 5 {
		parts = append(parts, "")
	}
	entry := Entry{
		Label:  strings.TrimSpace(expandEnv(parts[0])),
		Target: strings.TrimSpace(expandEnv(parts[2])),
		Params: strings.TrimSpace(expandEnv(parts[3])),
	}
	entry.Icon.Any = strings.TrimSpace(expandEnv(parts[4]))
	if !strings.Contains(line, "|") {
		entry.Kind = KindSeparator
		return entry
	}
	entry.Kind, entry.Power = parseKind(parts[1])
	if entry.Kind == KindFolder {
		applyFolderTokens(&entry)
	}
	return entry
}

func parseKind(value string) (Kind, PowerAction) {
	upper := strings.ToUpper(strings.TrimSpace(value))
	if a, ok := PowerFromSentinel(upper); ok {
		return KindPower, a
	}
	for kind, name := range kindNames {
		if kind != KindPower && name == upper {
			return kind, 0
		}
	}
	return KindSeparator, 0
}

func applyFolderTokens(e *Entry) {
	params := strings.ToLower(e.Params)
	switch {
	case strings.Contains(params, "submenu"):
		e.Mode = FolderSubmenu
	case strings.Contains(params, "inline"):
		e.Mode = FolderInline
	default:
		e.Mode = FolderLink
	}
	if e.Mode != FolderInline {
		return
	}
	e.SuppressHeader = strings.Contains(params, "notitle") || strings.Contains(params, "noheader")
	e.HeaderOpens = strings.Contains(params, "inlineopen")
}

var percentVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// expandEnv expands $VAR, ${VAR} and %VAR% references. Unknown %VAR%
// references are left untouched.
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	s = percentVar.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
	return os.ExpandEnv(s)
}

func invertedBool(sec *ini.Section, key, inverse string, fallback bool) bool {
	if v := strings.TrimSpace(sec.Key(key).String()); v != "" {
		return parseBool(v, fallback)
	}
	if v := strings.TrimSpace(sec.Key(inverse).String()); v != "" {
		return !parseBool(v, !fallback)
	}
	return fallback
}

func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return fallback
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
