// Package topology turns the flat node and region lists returned by the
// platform into a region -> zone -> node tree.
//
// Nodes are linked to zones by exact, case-sensitive equality of the region
// name and zone name found in the node details. Nodes whose pair matches no
// configured zone are dropped from the tree.
package topology

import (
	"slices"
	"sort"

	"nathanbeddoewebdev/dcm/internal/onprem/domain"
)

// ZoneNodes is a zone decorated with the nodes placed in it.
type ZoneNodes struct {
	domain.Zone
	Nodes []domain.Node `json:"nodes"`
}

// Count returns the number of nodes in the zone.
func (z ZoneNodes) Count() int {
	return len(z.Nodes)
}

// IPs returns the node IPs in node order.
func (z ZoneNodes) IPs() []string {
	ips := make([]string, 0, len(z.Nodes))
	for _, n := range z.Nodes {
		ips = append(ips, n.Details.IP)
	}
	return ips
}

// RegionNodes is a region whose zones carry their nodes.
type RegionNodes struct {
	UUID      string      `json:"uuid"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Longitude float64     `json:"longitude"`
	Latitude  float64     `json:"latitude"`
	Zones     []ZoneNodes `json:"zones"`
}

// NodeCount returns the number of nodes across all zones of the region.
func (r RegionNodes) NodeCount() int {
	total := 0
	for _, z := range r.Zones {
		total += z.Count()
	}
	return total
}

// Index maps region name -> zone name -> nodes.
type Index map[string]map[string][]domain.Node

// Lookup returns the nodes for a region/zone pair, or nil.
func (idx Index) Lookup(region, zone string) []domain.Node {
	return idx[region][zone]
}

// FilterOnPrem returns the regions that belong to an on-prem provider, in
// input order.
func FilterOnPrem(regions []domain.Region) []domain.Region {
	out := make([]domain.Region, 0, len(regions))
	for _, r := range regions {
		if r.Provider.Code == domain.ProviderTypeOnPrem {
			out = append(out, r)
		}
	}
	return out
}

// GroupNodes indexes nodes by region and zone name in a single pass. Each
// list keeps the input order.
func GroupNodes(nodes []domain.Node) Index {
	idx := make(Index)
	for _, n := range nodes {
		region, zone := n.Details.Region, n.Details.Zone
		zones, ok := idx[region]
		if !ok {
			zones = make(map[string][]domain.Node)
			idx[region] = zones
		}
		zones[zone] = append(zones[zone], n)
	}
	return idx
}

// Normalize filters regions to on-prem and attaches to every zone the nodes
// whose details name that region and zone. Zones without nodes get an empty,
// non-nil list. The inputs are not modified.
func Normalize(nodes []domain.Node, regions []domain.Region) []RegionNodes {
	idx := GroupNodes(nodes)
	onPrem := FilterOnPrem(regions)

	out := make([]RegionNodes, 0, len(onPrem))
	for _, r := range onPrem {
		rn := RegionNodes{
			UUID:      r.UUID,
			Code:      r.Code,
			Name:      r.Name,
			Longitude: r.Longitude,
			Latitude:  r.Latitude,
			Zones:     make([]ZoneNodes, 0, len(r.Zones)),
		}
		for _, z := range r.Zones {
			matched := idx.Lookup(r.Name, z.Name)
			zn := ZoneNodes{Zone: z, Nodes: make([]domain.Node, len(matched))}
			copy(zn.Nodes, matched)
			rn.Zones = append(rn.Zones, zn)
		}
		out = append(out, rn)
	}
	return out
}

// Unmatched returns the nodes that Normalize would drop, in input order.
func Unmatched(nodes []domain.Node, regions []domain.Region) []domain.Node {
	known := KnownZones(regions)

	var out []domain.Node
	for _, n := range nodes {
		if !known.Has(n.Details.Region, n.Details.Zone) {
			out = append(out, n)
		}
	}
	return out
}

// ZoneRef names a zone by its region and zone names.
type ZoneRef struct {
	Region string
	Zone   string
}

// ZoneSet is a set of zone name pairs.
type ZoneSet map[ZoneRef]struct{}

// KnownZones returns the name pairs of every zone of every on-prem region.
func KnownZones(regions []domain.Region) ZoneSet {
	set := make(ZoneSet)
	for _, r := range FilterOnPrem(regions) {
		for _, z := range r.Zones {
			set[ZoneRef{Region: r.Name, Zone: z.Name}] = struct{}{}
		}
	}
	return set
}

// Has reports whether the region/zone name pair is in the set.
func (s ZoneSet) Has(region, zone string) bool {
	_, ok := s[ZoneRef{Region: region, Zone: zone}]
	return ok
}

// DuplicateZoneNames reports region/zone name pairs that occur more than
// once among on-prem regions. Nodes in such zones would be attached to every
// duplicate.
func DuplicateZoneNames(regions []domain.Region) []ZoneRef {
	seen := make(map[ZoneRef]int)
	var order []ZoneRef
	for _, r := range FilterOnPrem(regions) {
		for _, z := range r.Zones {
			ref := ZoneRef{Region: r.Name, Zone: z.Name}
			if seen[ref] == 0 {
				order = append(order, ref)
			}
			seen[ref]++
		}
	}

	var dups []ZoneRef
	for _, ref := range order {
		if seen[ref] > 1 {
			dups = append(dups, ref)
		}
	}
	return dups
}

// SortForDisplay returns a copy ordered for the summary screen: regions by
// longitude (west to east), zones by name. Both sorts are stable.
func SortForDisplay(regions []RegionNodes) []RegionNodes {
	out := slices.Clone(regions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Longitude < out[j].Longitude
	})
	for i := range out {
		zones := slices.Clone(out[i].Zones)
		sort.SliceStable(zones, func(a, b int) bool {
			return zones[a].Name < zones[b].Name
		})
		out[i].Zones = zones
	}
	return out
}
