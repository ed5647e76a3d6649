package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"nathanbeddoewebdev/dcm/internal/onprem/services"
	"nathanbeddoewebdev/dcm/internal/onprem/view"
	"nathanbeddoewebdev/dcm/internal/tui/components"
	"nathanbeddoewebdev/dcm/internal/tui/styles"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Actions a provider screen can exit with.
const (
	ActionEdit = "edit"
)

// DeleteConfirmText is the question asked before a provider configuration
// is deleted.
const DeleteConfirmText = "Are you sure you want to delete this on-premises datacenter configuration?"

const noProviderText = "No on-premises datacenter provider is configured."

// --- Messages ---

type stateLoadedMsg struct {
	state services.State
}

// stateChangedMsg carries a state published by the session while a fetch
// is still running.
type stateChangedMsg struct {
	state services.State
}

type stateErrorMsg struct {
	err error
}

type providerDeletedMsg struct {
	state services.State
	err   error
}

// --- Result ---

// ProviderResult holds the outcome of the provider screen.
type ProviderResult struct {
	Action   string // "edit" or ""
	Location *url.URL
	State    services.State
}

// --- Provider screen model ---

type providerModel struct {
	ctx     context.Context
	session *services.Session

	// location carries the current section in its query string.
	location *url.URL

	state   services.State
	summary *view.Summary
	rows    []view.NodeRow

	width  int
	height int

	loading bool
	spinner spinner.Model
	err     error

	status        string
	statusIsError bool

	confirming bool
	deleting   bool

	action   string
	quitting bool

	viewport viewport.Model

	// onRefresh runs before every refetch triggered by r.
	onRefresh func()
}

// ScreenOption configures the provider screen.
type ScreenOption func(*providerModel)

// OnRefresh registers fn to run before the screen refetches, typically to
// drop cached reads.
func OnRefresh(fn func()) ScreenOption {
	return func(m *providerModel) { m.onRefresh = fn }
}

func providerViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
		Left:         key.NewBinding(key.WithDisabled()),
		Right:        key.NewBinding(key.WithDisabled()),
	}
}

func newProviderModel(ctx context.Context, session *services.Session, location *url.URL) providerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	vp := viewport.New(0, 0)
	vp.KeyMap = providerViewportKeyMap()

	if location == nil {
		location = &url.URL{Path: "/onprem"}
	}

	return providerModel{
		ctx:      ctx,
		session:  session,
		location: location,
		loading:  true,
		spinner:  s,
		viewport: vp,
	}
}

// RunProviderScreen starts the full-window provider screen. The section
// shown first is taken from location.
func RunProviderScreen(ctx context.Context, session *services.Session, location *url.URL, opts ...ScreenOption) (*ProviderResult, error) {
	m := newProviderModel(ctx, session, location)
	for _, opt := range opts {
		opt(&m)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	session.OnChange(func(st services.State) { p.Send(stateChangedMsg{state: st}) })
	defer session.OnChange(nil)

	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run provider screen: %w", err)
	}

	final := result.(providerModel)
	if final.quitting {
		return nil, nil
	}
	return &ProviderResult{
		Action:   final.action,
		Location: final.location,
		State:    final.state,
	}, nil
}

func (m providerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.mount())
}

func (m providerModel) mount() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Mount(m.ctx); err != nil {
			return stateErrorMsg{err: err}
		}
		return stateLoadedMsg{state: m.session.State()}
	}
}

func (m providerModel) deleteProvider(providerUUID string) tea.Cmd {
	return func() tea.Msg {
		err := m.session.Delete(m.ctx, providerUUID)
		return providerDeletedMsg{state: m.session.State(), err: err}
	}
}

func (m providerModel) section() view.Section {
	return view.SectionOf(m.location)
}

// withState derives the summary and node rows from a new state.
func (m providerModel) withState(st services.State) providerModel {
	m.state = st
	m.summary = view.BuildSummary(st.SummaryInputs())
	m.rows = view.NodeRows(st.Nodes.Data, st.Regions.Data)
	return m
}

func (m providerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next.syncViewport(), cmd
}

func (m providerModel) update(msg tea.Msg) (providerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateLoadedMsg:
		m.loading = false
		m.err = nil
		m = m.withState(msg.state)
		m.status = fetchWarnings(msg.state)
		m.statusIsError = m.status != ""
		return m, nil

	case stateChangedMsg:
		// Show the screen as soon as providers and regions resolve; the
		// provider-scoped collections fill in as they arrive.
		if m.deleting || m.err != nil || !msg.state.Loaded() {
			return m, nil
		}
		m.loading = false
		m = m.withState(msg.state)
		return m, nil

	case stateErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case providerDeletedMsg:
		m.deleting = false
		m.confirming = false
		if msg.err != nil {
			m.status = "Delete failed: " + msg.err.Error()
			m.statusIsError = true
			return m, nil
		}
		m = m.withState(msg.state)
		m.location = view.WithSection(m.location, view.SectionSummary)
		m.status = "Provider configuration deleted"
		m.statusIsError = false
		return m, nil

	case tea.MouseMsg:
		if m.scrollable() {
			m.viewport, _ = m.viewport.Update(msg)
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.deleting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// scrollable reports whether the viewport holds a section. The nodes
// section renders whatever nodes were fetched, provider or not.
func (m providerModel) scrollable() bool {
	if m.loading || m.deleting || m.confirming || m.err != nil {
		return false
	}
	return m.summary != nil || m.section() == view.SectionNodes
}

// syncViewport sizes the persistent viewport to the content area and
// loads the current section into it, so scrolling sees real content.
func (m providerModel) syncViewport() providerModel {
	if m.width == 0 || m.height == 0 {
		return m
	}
	_, _, _, contentH := m.layout()
	m.viewport.Width = m.width
	m.viewport.Height = contentH
	if m.scrollable() {
		m.viewport.SetContent(m.body())
	}
	return m
}

func (m providerModel) body() string {
	if m.section() == view.SectionNodes {
		return renderNodes(m.rows, m.width)
	}
	return renderSummary(m.summary, m.width)
}

func (m providerModel) handleKey(msg tea.KeyMsg) (providerModel, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.loading || m.deleting {
		return m, nil
	}

	if m.confirming {
		return m.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.section() == view.SectionNodes {
			m.location = view.WithSection(m.location, view.SectionSummary)
			m.viewport.GotoTop()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "r":
		if m.onRefresh != nil {
			m.onRefresh()
		}
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.mount())
	}

	if m.summary != nil {
		switch msg.String() {
		case "e":
			m.action = ActionEdit
			return m, tea.Quit

		case "n":
			m.location = view.ManageNodesLocation(m.location)
			m.viewport.GotoTop()
			return m, nil

		case "d":
			if m.summary.DeleteDisabled {
				m.status = "Cannot delete: provider is used by " + strings.Join(m.summary.Universes, ", ")
				m.statusIsError = true
				return m, nil
			}
			m.confirming = true
			m.status = ""
			return m, nil
		}
	}

	if m.scrollable() {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m providerModel) handleConfirmKey(msg tea.KeyMsg) (providerModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.deleting = true
		return m, tea.Batch(m.spinner.Tick, m.deleteProvider(m.summary.ProviderUUID))
	case "n", "esc", "q":
		m.confirming = false
	}
	return m, nil
}

// fetchWarnings summarizes provider-scoped collections that failed to load.
func fetchWarnings(st services.State) string {
	var failed []string
	if st.Nodes.Err != nil {
		failed = append(failed, "nodes")
	}
	if st.InstanceTypes.Err != nil {
		failed = append(failed, "instance types")
	}
	if st.AccessKeys.Err != nil {
		failed = append(failed, "access keys")
	}
	if len(failed) == 0 {
		return ""
	}
	return "Failed to load " + strings.Join(failed, ", ")
}

func (m providerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header, footer, statusBar, contentH := m.layout()
	content := m.renderContent(contentH)

	sections := []string{header, content}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// layout renders the fixed chrome and returns the height left for content.
func (m providerModel) layout() (header, footer, statusBar string, contentH int) {
	providerName := ""
	if m.summary != nil {
		providerName = m.summary.ProviderName
	}
	header = components.Header(m.width, "onprem "+string(m.section()), providerName)
	footer = components.Footer(m.width, m.footerBindings())
	if m.err == nil && m.status != "" {
		statusBar = components.StatusBar(m.width, m.status, m.statusIsError)
	}

	contentH = max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(statusBar), 1)
	return header, footer, statusBar, contentH
}

func (m providerModel) footerBindings() []components.KeyBinding {
	switch {
	case m.loading || m.deleting:
		return []components.KeyBinding{{Key: "ctrl+c", Desc: "quit"}}
	case m.confirming:
		return []components.KeyBinding{
			{Key: "y", Desc: "delete"},
			{Key: "n", Desc: "cancel"},
		}
	case m.summary == nil && m.section() == view.SectionNodes:
		return []components.KeyBinding{
			{Key: "j/k", Desc: "scroll"},
			{Key: "r", Desc: "refresh"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case m.summary == nil:
		return []components.KeyBinding{
			{Key: "r", Desc: "refresh"},
			{Key: "q", Desc: "quit"},
		}
	}

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "scroll"},
		{Key: "e", Desc: "edit"},
	}
	if m.section() == view.SectionSummary {
		bindings = append(bindings, components.KeyBinding{Key: "n", Desc: "manage nodes"})
	}
	if !m.summary.DeleteDisabled {
		bindings = append(bindings, components.KeyBinding{Key: "d", Desc: "delete"})
	}
	bindings = append(bindings, components.KeyBinding{Key: "r", Desc: "refresh"})
	if m.section() == view.SectionNodes {
		bindings = append(bindings, components.KeyBinding{Key: "esc", Desc: "back"})
	}
	return append(bindings, components.KeyBinding{Key: "q", Desc: "quit"})
}

func (m providerModel) renderContent(height int) string {
	center := func(s string) string {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, s)
	}

	switch {
	case m.loading:
		return center(styles.MutedText.Render(m.spinner.View() + "  Fetching provider configuration…"))
	case m.deleting:
		return center(styles.MutedText.Render(m.spinner.View() + "  Deleting provider configuration…"))
	case m.err != nil:
		errText := styles.ErrorText.Render("Error: "+m.err.Error()) + "\n\n" +
			styles.MutedText.Render("Press r to retry or q to quit.")
		return center(errText)
	case m.confirming:
		return center(renderConfirm(m.summary))
	case m.section() == view.SectionNodes:
		return m.viewport.View()
	case m.summary == nil:
		return center(styles.MutedText.Render(noProviderText))
	}

	return m.viewport.View()
}
