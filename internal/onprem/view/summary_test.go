package view

import (
	"testing"

	"nathanbeddoewebdev/dcm/internal/onprem/domain"

	"github.com/google/go-cmp/cmp"
)

func onPremRegion(name string, lon float64, zones ...string) domain.Region {
	r := domain.Region{
		UUID:      "uuid-" + name,
		Code:      name,
		Name:      name,
		Longitude: lon,
		Latitude:  10,
		Provider:  domain.ProviderRef{Code: domain.ProviderTypeOnPrem},
	}
	for _, z := range zones {
		r.Zones = append(r.Zones, domain.Zone{UUID: name + "-" + z, Code: z, Name: z})
	}
	return r
}

func node(ip, region, zone string) domain.Node {
	return domain.Node{Details: domain.NodeDetails{IP: ip, Region: region, Zone: zone, InstanceType: "small"}}
}

func testSummaryInputs() Inputs {
	return Inputs{
		Providers: []domain.Provider{{UUID: "p-1", Name: "dc-east", Code: domain.ProviderTypeOnPrem}},
		Regions: []domain.Region{
			onPremRegion("east", 30, "z-b", "z-a"),
			onPremRegion("west", -120, "w-1"),
		},
		Nodes: []domain.Node{
			node("10.0.0.1", "east", "z-a"),
			node("10.0.0.2", "east", "z-a"),
			node("10.0.1.1", "west", "w-1"),
		},
		AccessKeys: []domain.AccessKey{
			{IDKey: domain.AccessKeyID{KeyCode: "key-1", ProviderUUID: "p-1"}},
			{IDKey: domain.AccessKeyID{KeyCode: "key-2", ProviderUUID: "p-1"}},
		},
	}
}

func TestBuildSummary_NoProvider(t *testing.T) {
	in := testSummaryInputs()
	in.Providers = []domain.Provider{{UUID: "aws", Code: "aws"}}

	if s := BuildSummary(in); s != nil {
		t.Errorf("expected nil summary, got %+v", s)
	}
}

func TestBuildSummary_Fields(t *testing.T) {
	s := BuildSummary(testSummaryInputs())
	if s == nil {
		t.Fatal("expected summary")
	}

	if s.ProviderName != "dc-east" || s.ProviderUUID != "p-1" {
		t.Errorf("provider = %q/%q", s.ProviderName, s.ProviderUUID)
	}
	if s.KeyPairs != "key-1, key-2" {
		t.Errorf("KeyPairs = %q", s.KeyPairs)
	}
	if s.NodeCount != 3 || s.SetupNodes {
		t.Errorf("NodeCount = %d, SetupNodes = %v", s.NodeCount, s.SetupNodes)
	}
	if s.NoRegions || s.DeleteDisabled {
		t.Errorf("NoRegions = %v, DeleteDisabled = %v", s.NoRegions, s.DeleteDisabled)
	}

	var order []string
	for _, r := range s.Regions {
		for _, z := range r.Zones {
			order = append(order, r.Name+"/"+z.Name)
		}
	}
	want := []string{"west/w-1", "east/z-a", "east/z-b"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("display order mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"10.0.0.1", "10.0.0.2"}, s.Regions[1].Zones[0].IPs()); diff != "" {
		t.Errorf("zone IPs mismatch (-want +got):\n%s", diff)
	}

	wantMarkers := []Marker{
		{Name: "west", Latitude: 10, Longitude: -120, Nodes: 1},
		{Name: "east", Latitude: 10, Longitude: 30, Nodes: 2},
	}
	if diff := cmp.Diff(wantMarkers, s.Markers); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSummary_EmptyProvider(t *testing.T) {
	in := testSummaryInputs()
	in.Regions = nil
	in.Nodes = nil
	in.AccessKeys = nil

	s := BuildSummary(in)
	if s == nil {
		t.Fatal("expected summary")
	}
	if s.KeyPairs != NotConfigured {
		t.Errorf("KeyPairs = %q, want %q", s.KeyPairs, NotConfigured)
	}
	if !s.SetupNodes || s.NodeCount != 0 {
		t.Errorf("expected setup hint, got NodeCount=%d SetupNodes=%v", s.NodeCount, s.SetupNodes)
	}
	if !s.NoRegions {
		t.Error("expected NoRegions")
	}
}

func TestBuildSummary_DeleteDisabledByUniverse(t *testing.T) {
	in := testSummaryInputs()
	in.Universes = []domain.Universe{
		{Name: "orders", Provider: &domain.ProviderRef{UUID: "other"}},
		{Name: "no-provider"},
		{Name: "billing", Provider: &domain.ProviderRef{UUID: "p-1"}},
	}

	s := BuildSummary(in)
	if !s.DeleteDisabled {
		t.Fatal("expected delete to be disabled")
	}
	if diff := cmp.Diff([]string{"billing"}, s.Universes); diff != "" {
		t.Errorf("universes mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeRows_MarksUnplacedNodes(t *testing.T) {
	in := testSummaryInputs()
	nodes := append(in.Nodes, node("10.9.9.9", "East", "z-a"))

	rows := NodeRows(nodes, in.Regions)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for _, r := range rows[:3] {
		if !r.Placed {
			t.Errorf("expected %s to be placed", r.IP)
		}
	}
	if rows[3].Placed {
		t.Error("expected case-mismatched node to be unplaced")
	}
}
