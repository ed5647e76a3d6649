package view

import (
	"strings"

	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/onprem/topology"
)

// NotConfigured is shown in place of the key pair list when the provider
// has no access keys.
const NotConfigured = "Not Configured"

// Inputs is the data the summary reads. Access keys and nodes are already
// scoped to the on-prem provider by the fetch.
type Inputs struct {
	Providers  []domain.Provider
	Regions    []domain.Region
	Nodes      []domain.Node
	AccessKeys []domain.AccessKey
	Universes  []domain.Universe
}

// Marker is a region pin for the map.
type Marker struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Nodes     int     `json:"nodes"`
}

// Summary is the provider configuration summary.
type Summary struct {
	ProviderUUID string `json:"providerUUID"`
	ProviderName string `json:"providerName"`
	KeyPairs     string `json:"keyPairs"`
	NodeCount    int    `json:"nodeCount"`

	// SetupNodes is set when the provider has no nodes yet; the screen
	// offers a "Setup Nodes" link to the nodes section.
	SetupNodes bool `json:"setupNodes"`

	Regions   []topology.RegionNodes `json:"regions"`
	NoRegions bool                   `json:"noRegions"`

	// DeleteDisabled is set while any universe runs on the provider.
	DeleteDisabled bool     `json:"deleteDisabled"`
	Universes      []string `json:"universes,omitempty"`

	Markers []Marker `json:"markers"`
}

// BuildSummary derives the summary. It returns nil when no on-prem
// provider is configured, in which case the screen renders nothing.
func BuildSummary(in Inputs) *Summary {
	provider, ok := domain.FindProvider(in.Providers, domain.ProviderTypeOnPrem)
	if !ok {
		return nil
	}

	regions := topology.SortForDisplay(topology.Normalize(in.Nodes, in.Regions))

	s := &Summary{
		ProviderUUID: provider.UUID,
		ProviderName: provider.Name,
		KeyPairs:     KeyPairList(in.AccessKeys),
		NodeCount:    len(in.Nodes),
		SetupNodes:   len(in.Nodes) == 0,
		Regions:      regions,
		NoRegions:    len(regions) == 0,
		Markers:      make([]Marker, 0, len(regions)),
	}

	for _, u := range in.Universes {
		if u.UsesProvider(provider.UUID) {
			s.DeleteDisabled = true
			s.Universes = append(s.Universes, u.Name)
		}
	}

	for _, r := range regions {
		s.Markers = append(s.Markers, Marker{
			Name:      r.Name,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Nodes:     r.NodeCount(),
		})
	}

	return s
}

// KeyPairList joins the key codes with ", ", or returns NotConfigured.
func KeyPairList(keys []domain.AccessKey) string {
	if len(keys) == 0 {
		return NotConfigured
	}
	return strings.Join(domain.KeyCodes(keys), ", ")
}
