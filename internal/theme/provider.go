package theme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Modes accepted by NewProvider.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// detectDark queries the terminal background. Swapped in tests.
var detectDark = lipgloss.HasDarkBackground

// Provider answers whether the UI runs on a dark background. Auto mode asks
// the terminal once and caches the answer.
type Provider struct {
	mode string
	once sync.Once
	dark bool
}

// ParseMode normalises a theme mode, accepting "" as auto.
func ParseMode(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeDark:
		return ModeDark, nil
	case ModeLight:
		return ModeLight, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want auto, dark or light)", value)
	}
}

// NewProvider returns a provider for mode. Unknown modes behave as auto.
func NewProvider(mode string) *Provider {
	parsed, err := ParseMode(mode)
	if err != nil {
		parsed = ModeAuto
	}
	return &Provider{mode: parsed}
}

// Mode reports the configured mode.
func (p *Provider) Mode() string {
	if p == nil {
		return ModeAuto
	}
	return p.mode
}

// IsDark reports whether dark variants should be used.
func (p *Provider) IsDark() bool {
	if p == nil {
		return true
	}
	switch p.mode {
	case ModeDark:
		return true
	case ModeLight:
		return false
	}
	p.once.Do(func() {
		p.dark = detectDark()
	})
	return p.dark
}

// Styles returns the style set for the provider's background.
func (p *Provider) Styles() *Styles {
	return For(p.IsDark())
}
