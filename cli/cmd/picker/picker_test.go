package picker

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var templates = []string{"Activity Monitor", "Allocations", "Time Profiler", "System Trace"}

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}

	return m
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_EmptyQueryListsAll(t *testing.T) {
	m := newModel("pick", templates)

	if len(m.matches) != len(templates) {
		t.Fatalf("matches = %d, want %d", len(m.matches), len(templates))
	}

	for i, match := range m.matches {
		if match.Str != templates[i] {
			t.Errorf("matches[%d] = %q, want %q", i, match.Str, templates[i])
		}
	}
}

func TestModel_FilterAndAccept(t *testing.T) {
	m := send(newModel("pick", templates), typed("Alloc"))

	if len(m.matches) == 0 || m.matches[0].Str != "Allocations" {
		t.Fatalf("matches = %+v", m.matches)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	got, err := result(m)
	if err != nil {
		t.Fatalf("result() error = %v", err)
	}

	if got != "Allocations" {
		t.Errorf("result() = %q", got)
	}
}

func TestModel_Navigate(t *testing.T) {
	m := send(newModel("pick", templates),
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
	)

	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}

	for range len(templates) + 2 {
		m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	}

	if m.cursor != len(templates)-1 {
		t.Fatalf("cursor = %d, want %d", m.cursor, len(templates)-1)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if got, _ := result(m); got != "System Trace" {
		t.Errorf("result() = %q", got)
	}
}

func TestModel_Cancel(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := send(newModel("pick", templates), key2msg(key))

		if _, err := result(m); !errors.Is(err, ErrCancelled) {
			t.Errorf("result() error = %v, want ErrCancelled", err)
		}

		if m.View() != "" {
			t.Errorf("View() after cancel = %q", m.View())
		}
	}
}

func key2msg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestModel_NoMatches(t *testing.T) {
	m := send(newModel("pick", templates), typed("zzzz"))

	if len(m.matches) != 0 {
		t.Fatalf("matches = %+v", m.matches)
	}

	// Enter with nothing to choose keeps the picker open.
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.done {
		t.Error("picker closed without a choice")
	}
}

func TestPick_NoChoices(t *testing.T) {
	if _, err := Pick(t.Context(), "pick", nil); !errors.Is(err, ErrNoChoices) {
		t.Errorf("Pick() error = %v, want ErrNoChoices", err)
	}
}
