package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTextInputAppendsAndDeletes(t *testing.T) {
	m, _, _, _ := newTestModel(t, nil)
	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fi")})
	if !handled {
		t.Fatalf("expected runes to be handled")
	}
	current := m.currentLevel()
	if current.Filter != "fi" {
		t.Fatalf("expected filter %q, got %q", "fi", current.Filter)
	}
	if len(current.Items) != 1 || current.Items[0].Label != "Files" {
		t.Fatalf("expected Files to match, got %#v", current.Items)
	}
	handled, _ = m.handleTextInput(tea.KeyMsg{Type: tea.KeyBackspace})
	if !handled || current.Filter != "f" {
		t.Fatalf("expected backspace to trim the filter, got %q", current.Filter)
	}
	handled, _ = m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlU})
	if !handled || current.Filter != "" {
		t.Fatalf("expected ctrl+u to clear the filter, got %q", current.Filter)
	}
	if len(current.Items) != 3 {
		t.Fatalf("expected all rows back, got %d", len(current.Items))
	}
}

func TestTextInputIgnoresNavigationKeys(t *testing.T) {
	m, _, _, _ := newTestModel(t, nil)
	for _, key := range []tea.KeyType{tea.KeyEnter, tea.KeyEsc, tea.KeyUp, tea.KeyCtrlO} {
		if handled, _ := m.handleTextInput(tea.KeyMsg{Type: key}); handled {
			t.Fatalf("expected %v to fall through", key)
		}
	}
}

func TestTextInputIgnoredWhileLoading(t *testing.T) {
	m, _, _, _ := newTestModel(t, nil)
	m.loading = true
	if handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); handled {
		t.Fatalf("expected input to be ignored while loading")
	}
}

func TestFilterPrompt(t *testing.T) {
	m, _, _, _ := newTestModel(t, nil)
	prompt, _ := m.filterPrompt()
	if !strings.Contains(prompt, "»") || !strings.Contains(prompt, "type to search") {
		t.Fatalf("unexpected empty prompt %q", prompt)
	}
	m.appendToFilter("doc")
	prompt, _ = m.filterPrompt()
	if !strings.Contains(prompt, "doc") {
		t.Fatalf("expected filter text in prompt, got %q", prompt)
	}
}
