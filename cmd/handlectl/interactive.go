package main

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxEvents = 8

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	borrowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err     error
	session *session
	result  string
	events  []string
	input   textinput.Model
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "new element"
	ti.Prompt = "> "
	ti.Width = 40
	ti.Focus()

	return &interactiveModel{
		session: newSession(),
		input:   ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, m.quit()

		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			return m, m.exec(line)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) exec(line string) tea.Cmd {
	msg, err := m.session.Exec(line)
	if stderrors.Is(err, errQuit) {
		return m.quit()
	}
	m.result, m.err = msg, err

	for _, e := range m.session.Events() {
		m.events = append(m.events, formatEvent(e))
	}
	if n := len(m.events); n > maxEvents {
		m.events = m.events[n-maxEvents:]
	}
	return nil
}

func (m *interactiveModel) quit() tea.Cmd {
	_ = m.session.Close()
	return tea.Quit
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Handle Inspector"))
	b.WriteString("\n\n")

	rows := m.session.Rows()
	if len(rows) == 0 {
		b.WriteString(emptyStyle.Render("  no slots"))
		b.WriteString("\n")
	}
	for _, r := range rows {
		line := fmt.Sprintf("  [%d] %s %s%s", r.Index, kindStyle.Render(fmt.Sprintf("%-7s", r.Kind)), r.Handle, r.flags())
		switch {
		case r.Empty:
			line = emptyStyle.Render(line)
		case r.Borrowed:
			line = borrowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	st := m.session.heap.Stats()
	b.WriteString(helpStyle.Render(fmt.Sprintf("  heap: live=%d created=%d freed=%d", st.Live, st.Created, st.Freed)))
	b.WriteString("\n\n")

	for _, e := range m.events {
		b.WriteString("  * ")
		b.WriteString(e)
		b.WriteString("\n")
	}
	if len(m.events) > 0 {
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.result != "" {
		b.WriteString(resultStyle.Render(m.result))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("new K • ref/sink/take/borrow/move N • detach/release/unref N • esc quit"))

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
