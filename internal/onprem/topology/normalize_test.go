package topology

import (
	"testing"

	"nathanbeddoewebdev/dcm/internal/onprem/domain"

	"github.com/google/go-cmp/cmp"
)

func onPremRegion(name string, lon float64, zones ...string) domain.Region {
	r := domain.Region{
		UUID:      "r-" + name,
		Code:      name,
		Name:      name,
		Longitude: lon,
		Provider:  domain.ProviderRef{Code: domain.ProviderTypeOnPrem},
	}
	for _, z := range zones {
		r.Zones = append(r.Zones, domain.Zone{UUID: "z-" + z, Code: z, Name: z})
	}
	return r
}

func node(ip, region, zone string) domain.Node {
	return domain.Node{Details: domain.NodeDetails{IP: ip, Region: region, Zone: zone, InstanceType: "c5.large"}}
}

func zoneIPs(regions []RegionNodes) map[string][]string {
	out := make(map[string][]string)
	for _, r := range regions {
		for _, z := range r.Zones {
			out[r.Name+"/"+z.Name] = z.IPs()
		}
	}
	return out
}

func TestNormalize_SingleNodeScenario(t *testing.T) {
	regions := []domain.Region{onPremRegion("US", -100, "us-a", "us-b")}
	nodes := []domain.Node{node("10.0.0.1", "US", "us-a")}

	got := Normalize(nodes, regions)
	if len(got) != 1 {
		t.Fatalf("expected 1 region, got %d", len(got))
	}

	want := map[string][]string{
		"US/us-a": {"10.0.0.1"},
		"US/us-b": {},
	}
	if diff := cmp.Diff(want, zoneIPs(got)); diff != "" {
		t.Errorf("zone IPs mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_PreservesInputOrderAndCountsOnce(t *testing.T) {
	regions := []domain.Region{
		onPremRegion("eu", 10, "eu-1", "eu-2"),
		onPremRegion("us", -90, "us-1"),
	}
	nodes := []domain.Node{
		node("10.0.0.3", "eu", "eu-1"),
		node("10.0.0.1", "us", "us-1"),
		node("10.0.0.2", "eu", "eu-1"),
		node("10.0.0.4", "eu", "eu-2"),
	}

	got := Normalize(nodes, regions)

	want := map[string][]string{
		"eu/eu-1": {"10.0.0.3", "10.0.0.2"},
		"eu/eu-2": {"10.0.0.4"},
		"us/us-1": {"10.0.0.1"},
	}
	if diff := cmp.Diff(want, zoneIPs(got)); diff != "" {
		t.Errorf("zone IPs mismatch (-want +got):\n%s", diff)
	}
	if got[0].NodeCount() != 3 {
		t.Errorf("expected 3 nodes in eu, got %d", got[0].NodeCount())
	}
}

func TestNormalize_DropsUnmatchedNodes(t *testing.T) {
	regions := []domain.Region{onPremRegion("US", 0, "us-a")}
	nodes := []domain.Node{
		node("10.0.0.1", "US", "us-a"),
		node("10.0.0.2", "US", "us-z"),
		node("10.0.0.3", "EU", "us-a"),
		node("10.0.0.4", "us", "us-a"),
	}

	got := Normalize(nodes, regions)
	if diff := cmp.Diff(map[string][]string{"US/us-a": {"10.0.0.1"}}, zoneIPs(got)); diff != "" {
		t.Errorf("zone IPs mismatch (-want +got):\n%s", diff)
	}

	dropped := Unmatched(nodes, regions)
	if len(dropped) != 3 {
		t.Fatalf("expected 3 unmatched nodes, got %d", len(dropped))
	}
	if dropped[2].Details.IP != "10.0.0.4" {
		t.Errorf("expected case-sensitive mismatch for 10.0.0.4, got %q", dropped[2].Details.IP)
	}
}

func TestNormalize_FiltersNonOnPremRegions(t *testing.T) {
	aws := domain.Region{
		Name:     "US",
		Provider: domain.ProviderRef{Code: "aws"},
		Zones:    []domain.Zone{{Name: "us-a"}},
	}
	regions := []domain.Region{aws, onPremRegion("DC1", 0, "rack-1")}
	nodes := []domain.Node{node("10.0.0.1", "US", "us-a")}

	got := Normalize(nodes, regions)
	if len(got) != 1 || got[0].Name != "DC1" {
		t.Fatalf("expected only DC1, got %+v", got)
	}
	if got[0].Zones[0].Nodes == nil {
		t.Error("expected empty, non-nil node list")
	}
}

func TestNormalize_DoesNotMutateInputs(t *testing.T) {
	regions := []domain.Region{onPremRegion("US", 0, "us-a")}
	nodes := []domain.Node{node("10.0.0.1", "US", "us-a")}

	got := Normalize(nodes, regions)
	got[0].Zones[0].Nodes[0].Details.IP = "changed"
	got[0].Zones[0].Name = "changed"

	if nodes[0].Details.IP != "10.0.0.1" {
		t.Errorf("input node was mutated: %q", nodes[0].Details.IP)
	}
	if regions[0].Zones[0].Name != "us-a" {
		t.Errorf("input zone was mutated: %q", regions[0].Zones[0].Name)
	}
}

func TestDuplicateZoneNames(t *testing.T) {
	regions := []domain.Region{
		onPremRegion("US", 0, "a", "b"),
		onPremRegion("US", 5, "a"),
		onPremRegion("EU", 5, "a"),
	}

	got := DuplicateZoneNames(regions)
	want := []ZoneRef{{Region: "US", Zone: "a"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("duplicates mismatch (-want +got):\n%s", diff)
	}
}

func TestSortForDisplay(t *testing.T) {
	regions := Normalize(nil, []domain.Region{
		onPremRegion("tokyo", 139.7, "z-b", "z-a"),
		onPremRegion("oregon", -122.6, "c", "a", "b"),
		onPremRegion("london", -0.1, "x"),
	})

	sorted := SortForDisplay(regions)

	var names []string
	for _, r := range sorted {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"oregon", "london", "tokyo"}, names); diff != "" {
		t.Errorf("region order mismatch (-want +got):\n%s", diff)
	}

	var zones []string
	for _, z := range sorted[0].Zones {
		zones = append(zones, z.Name)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, zones); diff != "" {
		t.Errorf("zone order mismatch (-want +got):\n%s", diff)
	}

	if regions[0].Name != "tokyo" || regions[0].Zones[0].Name != "z-b" {
		t.Error("SortForDisplay must not reorder its input")
	}
}
