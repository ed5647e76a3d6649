package domain

// ProviderRef is the provider reference embedded in region and universe
// records.
type ProviderRef struct {
	UUID string `json:"uuid,omitempty"`
	Code string `json:"code"`
}

// Region is a configured region with its zones.
type Region struct {
	UUID      string      `json:"uuid"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Longitude float64     `json:"longitude"`
	Latitude  float64     `json:"latitude"`
	Provider  ProviderRef `json:"provider"`
	Zones     []Zone      `json:"zones"`
}

// Zone is an availability zone inside a region. Nodes are never stored on
// the zone record; see topology.ZoneNodes for the derived view.
type Zone struct {
	UUID string `json:"uuid"`
	Code string `json:"code"`
	Name string `json:"name"`
}
