package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var closeKey = key.NewBinding(
	key.WithKeys("esc", "x"),
	key.WithHelp("esc", "close"),
)

var (
	modalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(1, 2)

	modalTitle = lipgloss.NewStyle().Bold(true)

	modalHint = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)

// Modal is an overlay that wraps arbitrary content. It holds no state of
// its own beyond whether it is open; the caller owns the content.
type Modal struct {
	// OnClose is invoked when the user dismisses the modal. The caller is
	// expected to set Open to false.
	OnClose func() tea.Cmd
	Title   string
	Open    bool
}

// CloseKey returns the binding that dismisses a modal.
func CloseKey() key.Binding {
	return closeKey
}

// Update closes the modal when the close key is pressed while it is open.
func (m Modal) Update(msg tea.Msg) tea.Cmd {
	if !m.Open {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !key.Matches(keyMsg, closeKey) {
		return nil
	}

	if m.OnClose == nil {
		return nil
	}

	return m.OnClose()
}

// View renders content inside a bordered box, or nothing when the modal is
// closed.
func (m Modal) View(content string) string {
	if !m.Open {
		return ""
	}

	var s strings.Builder

	if m.Title != "" {
		s.WriteString(modalTitle.Render(m.Title))
		s.WriteString("  ")
	}

	s.WriteString(modalHint.Render("[x] close"))
	s.WriteString("\n\n")
	s.WriteString(content)

	return modalBox.Render(s.String())
}
