package tui

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/dcm/internal/services/auth"
	"nathanbeddoewebdev/dcm/internal/tui/components"
	"nathanbeddoewebdev/dcm/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type accountStatus struct {
	account string
	status  string // "logged in", "not logged in", or an error message
	ok      bool
}

type authStatusModel struct {
	statuses []accountStatus

	width  int
	height int
}

// RunAuthStatus starts the full-window auth status TUI for the given
// keychain accounts (platform hosts).
func RunAuthStatus(store auth.Store, accounts []string) error {
	m := authStatusModel{statuses: lookupStatuses(store, accounts)}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func lookupStatuses(store auth.Store, accounts []string) []accountStatus {
	statuses := make([]accountStatus, 0, len(accounts))
	for _, account := range accounts {
		_, err := store.GetToken(account)
		switch {
		case err == nil:
			statuses = append(statuses, accountStatus{account: account, status: "logged in", ok: true})
		case errors.Is(err, auth.ErrTokenNotFound):
			statuses = append(statuses, accountStatus{account: account, status: "not logged in"})
		default:
			statuses = append(statuses, accountStatus{account: account, status: fmt.Sprintf("error: %v", err)})
		}
	}
	return statuses
}

func (m authStatusModel) Init() tea.Cmd {
	return nil
}

func (m authStatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m authStatusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "auth status", "")
	footer := components.Footer(m.width, []components.KeyBinding{{Key: "q", Desc: "quit"}})

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentH < 1 {
		contentH = 1
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderContent(contentH), footer)
}

func (m authStatusModel) renderContent(height int) string {
	if len(m.statuses) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No platform configured."),
		)
	}

	labelWidth := 16
	for _, s := range m.statuses {
		labelWidth = max(labelWidth, lipgloss.Width(s.account)+2)
	}

	rows := make([]string, 0, len(m.statuses))
	for _, s := range m.statuses {
		name := styles.Label.Width(labelWidth).Render(s.account)
		status := styles.MutedText.Render(s.status)
		if s.ok {
			status = styles.SuccessText.Render(s.status)
		}
		rows = append(rows, name+status)
	}

	card := styles.Card.Width(labelWidth + 32).Render(strings.Join(rows, "\n"))
	combined := lipgloss.JoinVertical(lipgloss.Center, styles.Title.Render("Platform Authentication"), "", card)

	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		combined,
	)
}
