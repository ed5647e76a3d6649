package view

import (
	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/onprem/topology"
)

// NodeRow is one line of the nodes section.
type NodeRow struct {
	UUID         string `json:"uuid"`
	Name         string `json:"name,omitempty"`
	IP           string `json:"ip"`
	Region       string `json:"region"`
	Zone         string `json:"zone"`
	InstanceType string `json:"instanceType"`
	InUse        bool   `json:"inUse"`
	Placed       bool   `json:"placed"`
}

// NodeRows lists every node in input order. Placed is false when the
// node's region and zone names match no configured on-prem zone.
func NodeRows(nodes []domain.Node, regions []domain.Region) []NodeRow {
	known := topology.KnownZones(regions)

	rows := make([]NodeRow, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, NodeRow{
			UUID:         n.UUID,
			Name:         n.Details.NodeName,
			IP:           n.Details.IP,
			Region:       n.Details.Region,
			Zone:         n.Details.Zone,
			InstanceType: n.Details.InstanceType,
			InUse:        n.InUse,
			Placed:       known.Has(n.Details.Region, n.Details.Zone),
		})
	}
	return rows
}
