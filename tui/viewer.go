// Package tui provides an interactive pager for annotated profiling output.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

// Styles.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Padding(0, 1)
)

// model is the Bubble Tea model for the report pager.
type model struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
	quitting bool
}

// Run pages content under the given title until the user quits.
func Run(ctx context.Context, title, content string) error {
	m := model{title: title, content: content}

	p := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()

	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true

			return m, tea.Quit

		case "g", "home":
			m.viewport.GotoTop()

			return m, nil

		case "G", "end":
			m.viewport.GotoBottom()

			return m, nil
		}

	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(m.headerView()) +
			lipgloss.Height(m.footerView())

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	return strings.Join([]string{
		m.headerView(),
		m.viewport.View(),
		m.footerView(),
	}, "\n")
}

func (m model) headerView() string {
	return titleStyle.Render(m.title)
}

func (m model) footerView() string {
	return statusStyle.Render(fmt.Sprintf(
		"%3.0f%%  (q to quit, g/G to jump)",
		m.viewport.ScrollPercent()*100, //nolint:mnd
	))
}
