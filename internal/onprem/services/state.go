package services

import (
	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/onprem/snapshot"
	"nathanbeddoewebdev/dcm/internal/onprem/view"
)

// State is everything the provider screen has fetched. A State is never
// mutated after it is published; updates produce a new value.
type State struct {
	Providers     domain.Collection[domain.Provider]
	Regions       domain.Collection[domain.Region]
	Universes     domain.Collection[domain.Universe]
	Nodes         domain.Collection[domain.Node]
	InstanceTypes domain.Collection[domain.InstanceType]
	AccessKeys    domain.Collection[domain.AccessKey]
	Bootstrap     *domain.BootstrapEvent
}

// Provider returns the configured on-prem provider.
func (s State) Provider() (domain.Provider, bool) {
	return domain.FindProvider(s.Providers.Data, domain.ProviderTypeOnPrem)
}

// SnapshotInputs returns the builder's view of the state.
func (s State) SnapshotInputs() snapshot.Inputs {
	return snapshot.Inputs{
		Providers:     s.Providers.Data,
		Regions:       s.Regions.Data,
		Nodes:         s.Nodes,
		InstanceTypes: s.InstanceTypes,
		AccessKeys:    s.AccessKeys,
	}
}

// SummaryInputs returns the summary's view of the state.
func (s State) SummaryInputs() view.Inputs {
	return view.Inputs{
		Providers:  s.Providers.Data,
		Regions:    s.Regions.Data,
		Nodes:      s.Nodes.Data,
		AccessKeys: s.AccessKeys.Data,
		Universes:  s.Universes.Data,
	}
}

// Loaded reports whether the metadata needed to render the screen has
// resolved.
func (s State) Loaded() bool {
	return s.Providers.Ready() && s.Regions.Ready()
}

// Update transforms a copy of the state.
type Update func(*State)

// ProvidersLoaded records the result of a provider fetch.
func ProvidersLoaded(data []domain.Provider, err error) Update {
	return func(s *State) { s.Providers = domain.FromResult(data, err) }
}

// RegionsLoaded records the result of a region fetch.
func RegionsLoaded(data []domain.Region, err error) Update {
	return func(s *State) { s.Regions = domain.FromResult(data, err) }
}

// UniversesLoaded records the result of a universe fetch.
func UniversesLoaded(data []domain.Universe, err error) Update {
	return func(s *State) { s.Universes = domain.FromResult(data, err) }
}

// NodesLoaded records the result of a node fetch.
func NodesLoaded(data []domain.Node, err error) Update {
	return func(s *State) { s.Nodes = domain.FromResult(data, err) }
}

// InstanceTypesLoaded records the result of an instance type fetch.
func InstanceTypesLoaded(data []domain.InstanceType, err error) Update {
	return func(s *State) { s.InstanceTypes = domain.FromResult(data, err) }
}

// AccessKeysLoaded records the result of an access key fetch.
func AccessKeysLoaded(data []domain.AccessKey, err error) Update {
	return func(s *State) { s.AccessKeys = domain.FromResult(data, err) }
}

// MetadataPending marks providers, regions and universes as in flight.
func MetadataPending() Update {
	return func(s *State) {
		s.Providers = domain.Pending[domain.Provider]()
		s.Regions = domain.Pending[domain.Region]()
		s.Universes = domain.Pending[domain.Universe]()
	}
}

// ProviderDataPending marks the provider-scoped collections as in flight.
func ProviderDataPending() Update {
	return func(s *State) {
		s.Nodes = domain.Pending[domain.Node]()
		s.InstanceTypes = domain.Pending[domain.InstanceType]()
		s.AccessKeys = domain.Pending[domain.AccessKey]()
	}
}

// BootstrapReceived records a cloud bootstrap progress event.
func BootstrapReceived(ev domain.BootstrapEvent) Update {
	return func(s *State) { s.Bootstrap = &ev }
}
