package icon

import "strings"

// Candidates are the icon references configured on one entry.
type Candidates struct {
	Any   string
	Light string
	Dark  string
}

func (c Candidates) forTheme(dark bool) string {
	if dark {
		return strings.TrimSpace(c.Dark)
	}
	return strings.TrimSpace(c.Light)
}

// Policy holds the global icon settings.
type Policy struct {
	Enabled         bool
	ShowFolderIcons bool
	Default         Candidates
}

// Pick returns the reference to load for an entry, or "" for no icon.
// Order: entry icon for the active theme, entry icon, the system folder
// icon for folders when enabled, default for the active theme, default.
func (p Policy) Pick(entry Candidates, dark, folder bool) string {
	if spec := entry.forTheme(dark); spec != "" {
		return spec
	}
	if spec := strings.TrimSpace(entry.Any); spec != "" {
		return spec
	}
	if folder && p.ShowFolderIcons {
		return SystemFolder
	}
	if spec := p.Default.forTheme(dark); spec != "" {
		return spec
	}
	return strings.TrimSpace(p.Default.Any)
}

// Resolve picks and loads an icon. Load failures are not errors for the
// caller; the entry simply renders without an icon.
func (p Policy) Resolve(loader Loader, entry Candidates, dark, folder bool) *Handle {
	if !p.Enabled || loader == nil {
		return nil
	}
	spec := p.Pick(entry, dark, folder)
	if spec == "" {
		return nil
	}
	h, err := loader.Load(spec)
	if err != nil {
		return nil
	}
	return h
}
