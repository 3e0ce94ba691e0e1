// Package picker prompts the user to choose one item from a list, narrowing
// the list with fuzzy matching as they type.
package picker

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"
)

// Sentinel errors.
var (
	ErrCancelled = errors.New("selection cancelled")
	ErrNoChoices = errors.New("nothing to choose from")
)

const (
	prompt     = "❯ "
	maxVisible = 10
)

// Styles.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	itemStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// model is the Bubble Tea model for the picker.
type model struct {
	title     string
	input     textinput.Model
	choices   []string
	matches   fuzzy.Matches
	cursor    int
	chosen    string
	cancelled bool
	done      bool
}

func newModel(title string, choices []string) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = "type to filter"
	ti.Focus()

	m := model{title: title, input: ti, choices: choices}
	m.filter()

	return m
}

// filter recomputes the matches for the current input. An empty input
// matches every choice in its original order.
func (m *model) filter() {
	query := strings.TrimSpace(m.input.Value())

	if query == "" {
		m.matches = make(fuzzy.Matches, len(m.choices))
		for i, c := range m.choices {
			m.matches[i] = fuzzy.Match{Str: c, Index: i}
		}
	} else {
		m.matches = fuzzy.Find(query, m.choices)
	}

	m.cursor = min(m.cursor, max(len(m.matches)-1, 0))
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			m.done = true

			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.matches) == 0 {
				return m, nil
			}

			m.chosen = m.matches[m.cursor].Str
			m.done = true

			return m, tea.Quit

		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}

			return m, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}

			return m, nil
		}
	}

	before := m.input.Value()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.cursor = 0
		m.filter()
	}

	return m, cmd
}

func (m model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.matches) == 0 {
		b.WriteString(hintStyle.Render("  no matches"))
		b.WriteString("\n")

		return b.String()
	}

	// Scroll so the cursor stays visible.
	first := max(m.cursor-maxVisible+1, 0)
	last := min(first+maxVisible, len(m.matches))

	for i := first; i < last; i++ {
		b.WriteString(renderMatch(m.matches[i], i == m.cursor))
		b.WriteString("\n")
	}

	if hidden := len(m.matches) - (last - first); hidden > 0 {
		b.WriteString(hintStyle.Render("  …"))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("↑/↓ select • enter accept • esc cancel"))
	b.WriteString("\n")

	return b.String()
}

// renderMatch renders one choice with its matched characters highlighted.
func renderMatch(match fuzzy.Match, selected bool) string {
	if selected {
		return selectedStyle.Render("> " + match.Str)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	b.WriteString("  ")

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(itemStyle.Render(string(r)))
		}
	}

	return b.String()
}

// Pick runs the picker on the terminal and returns the chosen item.
// The picker draws on stderr so that stdout stays clean.
func Pick(ctx context.Context, title string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}

	p := tea.NewProgram(newModel(title, choices),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	return result(final)
}

func result(final tea.Model) (string, error) {
	m, ok := final.(model)
	if !ok || m.cancelled || m.chosen == "" {
		return "", ErrCancelled
	}

	return m.chosen, nil
}
