package tui

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/onprem/services"
	"nathanbeddoewebdev/dcm/internal/onprem/view"
	"nathanbeddoewebdev/dcm/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
)

const testProviderUUID = "7f1c3a4e-2b7d-4e0a-9c1f-5d8e6b2a1c90"

func testState() services.State {
	return services.State{
		Providers: domain.Resolved([]domain.Provider{{UUID: testProviderUUID, Name: "dc-east", Code: domain.ProviderTypeOnPrem}}),
		Regions: domain.Resolved([]domain.Region{{
			Name:     "US",
			Code:     "us",
			Provider: domain.ProviderRef{Code: domain.ProviderTypeOnPrem},
			Zones:    []domain.Zone{{Name: "us-a", Code: "us-a"}},
		}}),
		Universes:     domain.Resolved[domain.Universe](nil),
		Nodes:         domain.Resolved([]domain.Node{{UUID: "n1", Details: domain.NodeDetails{IP: "10.0.0.1", Region: "US", Zone: "us-a"}}}),
		InstanceTypes: domain.Resolved[domain.InstanceType](nil),
		AccessKeys:    domain.Resolved[domain.AccessKey](nil),
	}
}

func loadedModel(t *testing.T, st services.State) providerModel {
	t.Helper()
	m := newProviderModel(context.Background(), nil, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated, _ = updated.Update(stateLoadedMsg{state: st})
	return updated.(providerModel)
}

func press(t *testing.T, m providerModel, keys string) providerModel {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return updated.(providerModel)
}

func TestProviderModel_LoadedBuildsSummary(t *testing.T) {
	m := loadedModel(t, testState())

	if m.loading {
		t.Fatal("expected loading to be cleared")
	}
	if m.summary == nil {
		t.Fatal("expected summary")
	}
	if m.summary.ProviderName != "dc-east" {
		t.Errorf("ProviderName = %q, want dc-east", m.summary.ProviderName)
	}
	if len(m.rows) != 1 {
		t.Errorf("rows = %d, want 1", len(m.rows))
	}
	if !strings.Contains(m.View(), "dc-east") {
		t.Error("expected provider name in view")
	}
}

func TestProviderModel_ManageNodesSwitchesSection(t *testing.T) {
	m := loadedModel(t, testState())

	m = press(t, m, "n")
	if m.section() != view.SectionNodes {
		t.Fatalf("section = %q, want nodes", m.section())
	}
	if got := m.location.Query().Get("section"); got != "nodes" {
		t.Errorf("location section = %q, want nodes", got)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(providerModel)
	if m.section() != view.SectionSummary {
		t.Errorf("section after esc = %q, want summary", m.section())
	}
	if m.quitting {
		t.Error("esc from nodes should not quit")
	}
}

func TestProviderModel_EditQuitsWithAction(t *testing.T) {
	m := loadedModel(t, testState())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m = updated.(providerModel)
	if m.action != ActionEdit {
		t.Errorf("action = %q, want %q", m.action, ActionEdit)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestProviderModel_DeleteDisabledWhenUniverseUsesProvider(t *testing.T) {
	st := testState()
	st.Universes = domain.Resolved([]domain.Universe{{
		UUID:     "u1",
		Name:     "orders",
		Provider: &domain.ProviderRef{UUID: testProviderUUID},
	}})
	m := loadedModel(t, st)

	m = press(t, m, "d")
	if m.confirming {
		t.Fatal("delete confirm should not open while a universe uses the provider")
	}
	if !m.statusIsError || !strings.Contains(m.status, "orders") {
		t.Errorf("status = %q, want error naming the universe", m.status)
	}
}

func TestProviderModel_DeleteConfirmCancel(t *testing.T) {
	m := loadedModel(t, testState())

	m = press(t, m, "d")
	if !m.confirming {
		t.Fatal("expected confirm overlay")
	}
	if !strings.Contains(m.View(), "Delete Configuration") {
		t.Error("expected confirm overlay in view")
	}

	m = press(t, m, "n")
	if m.confirming {
		t.Error("expected confirm overlay to close")
	}
	if m.section() != view.SectionSummary {
		t.Error("n inside the confirm overlay must not switch sections")
	}
}

func TestProviderModel_DeletedShowsPlaceholder(t *testing.T) {
	m := loadedModel(t, testState())
	m.location = view.ManageNodesLocation(m.location)

	empty := testState()
	empty.Providers = domain.Resolved[domain.Provider](nil)
	updated, _ := m.Update(providerDeletedMsg{state: empty})
	m = updated.(providerModel)

	if m.summary != nil {
		t.Error("expected no summary after delete")
	}
	if m.section() != view.SectionSummary {
		t.Error("expected section reset to summary")
	}
	if !strings.Contains(m.View(), "No on-premises datacenter provider") {
		t.Error("expected empty placeholder")
	}
}

func TestProviderModel_DeleteFailureKeepsSummary(t *testing.T) {
	m := loadedModel(t, testState())
	m.confirming = true

	updated, _ := m.Update(providerDeletedMsg{err: errors.New("boom")})
	m = updated.(providerModel)

	if m.summary == nil {
		t.Fatal("summary should survive a failed delete")
	}
	if !m.statusIsError || !strings.Contains(m.status, "boom") {
		t.Errorf("status = %q", m.status)
	}
}

func TestProviderModel_StartsInRequestedSection(t *testing.T) {
	loc := view.WithSection(&url.URL{Path: "/onprem"}, view.SectionNodes)
	m := newProviderModel(context.Background(), nil, loc)
	if m.section() != view.SectionNodes {
		t.Errorf("section = %q, want nodes", m.section())
	}
}

func TestFetchWarnings(t *testing.T) {
	st := testState()
	if got := fetchWarnings(st); got != "" {
		t.Errorf("fetchWarnings = %q, want empty", got)
	}

	st.Nodes = domain.Failed[domain.Node](errors.New("x"))
	st.AccessKeys = domain.Failed[domain.AccessKey](errors.New("y"))
	if got, want := fetchWarnings(st), "Failed to load nodes, access keys"; got != want {
		t.Errorf("fetchWarnings = %q, want %q", got, want)
	}
}

func TestNodeStatus(t *testing.T) {
	tests := []struct {
		row  view.NodeRow
		want string
	}{
		{view.NodeRow{Placed: true}, styles.NodeFree},
		{view.NodeRow{Placed: true, InUse: true}, styles.NodeInUse},
		{view.NodeRow{InUse: true}, styles.NodeUnplaced},
	}
	for _, tt := range tests {
		if got := nodeStatus(tt.row); got != tt.want {
			t.Errorf("nodeStatus(%+v) = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestNodeCountLabel(t *testing.T) {
	if got := nodeCountLabel(1); got != "1 node" {
		t.Errorf("got %q", got)
	}
	if got := nodeCountLabel(3); got != "3 nodes" {
		t.Errorf("got %q", got)
	}
}

func TestDeleteSummary(t *testing.T) {
	m := loadedModel(t, testState())
	got := deleteSummary(m.summary)
	for _, want := range []string{"dc-east", testProviderUUID, view.NotConfigured, "Regions:    US"} {
		if !strings.Contains(got, want) {
			t.Errorf("deleteSummary missing %q:\n%s", want, got)
		}
	}
}

func TestProviderModel_NodesSectionWithoutOnPremProvider(t *testing.T) {
	st := testState()
	st.Providers = domain.Resolved([]domain.Provider{{UUID: "aws-1", Name: "aws", Code: "aws"}})

	loc := view.WithSection(&url.URL{Path: "/onprem"}, view.SectionNodes)
	m := newProviderModel(context.Background(), nil, loc)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated, _ = updated.Update(stateLoadedMsg{state: st})
	m = updated.(providerModel)

	if m.summary != nil {
		t.Fatal("expected no summary without an on-prem provider")
	}
	out := m.View()
	if strings.Contains(out, noProviderText) {
		t.Error("nodes section must not show the no-provider placeholder")
	}
	if !strings.Contains(out, "10.0.0.1") {
		t.Errorf("expected node table in view:\n%s", out)
	}

	// Without a provider the summary-only actions do nothing.
	m = press(t, m, "e")
	if m.action != "" {
		t.Errorf("action = %q, want none", m.action)
	}
	m = press(t, m, "d")
	if m.confirming {
		t.Error("delete must not open without a provider")
	}
}

func TestProviderModel_StateChangedRendersPartialState(t *testing.T) {
	m := newProviderModel(context.Background(), nil, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	pending := services.State{}
	updated, _ = updated.Update(stateChangedMsg{state: pending})
	if !updated.(providerModel).loading {
		t.Fatal("expected loading until providers and regions resolve")
	}

	partial := testState()
	partial.Nodes = domain.Collection[domain.Node]{}
	updated, _ = updated.Update(stateChangedMsg{state: partial})
	m = updated.(providerModel)
	if m.loading {
		t.Fatal("expected screen shown once metadata resolved")
	}
	if m.summary == nil || m.summary.ProviderName != "dc-east" {
		t.Fatalf("summary = %+v", m.summary)
	}
	if len(m.rows) != 0 {
		t.Errorf("rows = %d, want 0 while nodes are pending", len(m.rows))
	}

	updated, _ = m.Update(stateChangedMsg{state: testState()})
	if got := len(updated.(providerModel).rows); got != 1 {
		t.Errorf("rows = %d after nodes arrived, want 1", got)
	}
}
