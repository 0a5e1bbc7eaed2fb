package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

var defaultGeneral = []struct{ key, value, comment string }{
	{"RecentMax", "12", "number of entries in a RECENT_SUBMENU"},
	{"FolderSubmenuDepth", "1", "nesting depth for folder submenus (1-4)"},
	{"FolderSubmenuOpen", "single", "single: ctrl+o opens a folder row; double: enter twice opens it"},
	{"FolderMaxItems", "0", "entries per page before 'Show more items...' (0 = no limit)"},
	{"SortBy", "name", "name | modified | created | size | type"},
	{"SortDescending", "false", ""},
	{"SortFoldersFirst", "true", ""},
	{"ShowHidden", "false", "show entries listed in a folder's .hidden file"},
	{"ShowDotfiles", "false", "true | files-only | folders-only | false"},
	{"ShowExtensions", "true", ""},
	{"ShowIcons", "false", ""},
	{"ShowFolderIcons", "false", ""},
	{"DefaultIcon", "", ""},
	{"RecentLabel", "fullpath", "fullpath | name"},
	{"RecentShowExtensions", "true", ""},
	{"RecentShowCleanItems", "true", ""},
	{"PowerExclude", "", "comma separated: sleep, hibernate, shutdown, restart, lock, logoff"},
	{"Theme", "auto", "auto | dark | light"},
	{"LogConfig", "off", "off | basic | verbose"},
}

var defaultMenu = []string{
	"Home|FOLDER|$HOME|submenu",
	"Downloads|FOLDER_SUBMENU|$HOME/Downloads",
	"Recent Items|RECENT_SUBMENU|",
	"---|SEPARATOR|",
	"System Monitor|CMD|top",
	"tmux Wiki|URI|https://github.com/tmux/tmux/wiki",
	"---|SEPARATOR|",
	"Lock|POWER_LOCK|",
	"Power|POWER_MENU|",
}

// WriteDefault writes a starter configuration to path. Existing files are
// left alone and reported as written=false.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	file := ini.Empty()
	general, err := file.NewSection("General")
	if err != nil {
		return false, err
	}
	for _, kv := range defaultGeneral {
		key, err := general.NewKey(kv.key, kv.value)
		if err != nil {
			return false, err
		}
		if kv.comment != "" {
			key.Comment = "; " + kv.comment
		}
	}
	menu, err := file.NewSection("Menu")
	if err != nil {
		return false, err
	}
	menu.Comment = "; ItemN = Label|TYPE|Path|Params|Icon"
	for i, line := range defaultMenu {
		if _, err := menu.NewKey(fmt.Sprintf("Item%d", i+1), line); err != nil {
			return false, err
		}
	}
	if _, err := file.NewSection("Icons"); err != nil {
		return false, err
	}
	if err := file.SaveTo(path); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
