package theme

import "testing"

func withDetect(t *testing.T, dark bool) *int {
	t.Helper()
	calls := new(int)
	prev := detectDark
	detectDark = func() bool {
		*calls++
		return dark
	}
	t.Cleanup(func() { detectDark = prev })
	return calls
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{"": ModeAuto, "AUTO": ModeAuto, " dark ": ModeDark, "Light": ModeLight}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("solarized"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestProviderOverrides(t *testing.T) {
	calls := withDetect(t, false)
	if !NewProvider("dark").IsDark() {
		t.Fatalf("dark override should report dark")
	}
	if NewProvider("light").IsDark() {
		t.Fatalf("light override should report light")
	}
	if *calls != 0 {
		t.Fatalf("overrides must not query the terminal, got %d calls", *calls)
	}
}

func TestProviderAutoDetectsOnce(t *testing.T) {
	calls := withDetect(t, false)
	p := NewProvider("bogus")
	if p.Mode() != ModeAuto {
		t.Fatalf("unknown mode should fall back to auto, got %q", p.Mode())
	}
	for i := 0; i < 3; i++ {
		if p.IsDark() {
			t.Fatalf("expected light background")
		}
	}
	if *calls != 1 {
		t.Fatalf("expected a single detection, got %d", *calls)
	}
	if p.Styles() != For(false) {
		t.Fatalf("expected light styles")
	}
}

func TestNilProviderIsDark(t *testing.T) {
	var p *Provider
	if !p.IsDark() || p.Styles() != Default() {
		t.Fatalf("nil provider should use the dark defaults")
	}
}
