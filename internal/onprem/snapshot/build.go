package snapshot

import (
	"fmt"

	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/onprem/topology"
)

// Inputs is everything the builder reads. Providers and regions are plain
// lists; the three provider-scoped collections carry their load state.
type Inputs struct {
	Providers     []domain.Provider
	Regions       []domain.Region
	Nodes         domain.Collection[domain.Node]
	InstanceTypes domain.Collection[domain.InstanceType]
	AccessKeys    domain.Collection[domain.AccessKey]
}

// Readier is implemented by domain.Collection.
type Readier interface {
	Ready() bool
}

// Ready reports whether every collection has resolved.
func Ready(collections ...Readier) bool {
	for _, c := range collections {
		if !c.Ready() {
			return false
		}
	}
	return true
}

// Ready reports whether nodes, instance types and access keys have all
// resolved (with data or empty).
func (in Inputs) Ready() bool {
	return Ready(in.Nodes, in.InstanceTypes, in.AccessKeys)
}

// SelectAccessKey returns the first access key owned by providerUUID, and
// the number of keys that matched.
func SelectAccessKey(keys []domain.AccessKey, providerUUID string) (*domain.AccessKey, int) {
	var first *domain.AccessKey
	matches := 0
	for i := range keys {
		if keys[i].IDKey.ProviderUUID != providerUUID {
			continue
		}
		if first == nil {
			first = &keys[i]
		}
		matches++
	}
	return first, matches
}

// Build assembles the wizard seed. It does not check readiness; see
// Builder for the guarded entry point. It returns ErrProviderNotFound when
// no on-prem provider is configured.
func Build(in Inputs) (*Snapshot, error) {
	provider, ok := domain.FindProvider(in.Providers, domain.ProviderTypeOnPrem)
	if !ok {
		return nil, fmt.Errorf("snapshot: %w", domain.ErrProviderNotFound)
	}

	snap := &Snapshot{
		Provider:      ProviderSeed{Name: provider.Name},
		Regions:       projectRegions(topology.FilterOnPrem(in.Regions)),
		InstanceTypes: projectInstanceTypes(in.InstanceTypes.Data),
		Nodes:         projectNodes(in.Nodes.Data),
	}

	if key, _ := SelectAccessKey(in.AccessKeys.Data, provider.UUID); key != nil {
		snap.Key = KeySeed{
			Code:              ptr(key.IDKey.KeyCode),
			PrivateKeyContent: ptr(key.KeyInfo.PrivateKey),
			SSHUser:           ptr(key.KeyInfo.SSHUser),
		}
	}

	return snap, nil
}

func projectRegions(regions []domain.Region) []RegionSeed {
	out := make([]RegionSeed, 0, len(regions))
	for _, r := range regions {
		zones := make([]ZoneSeed, 0, len(r.Zones))
		for _, z := range r.Zones {
			zones = append(zones, ZoneSeed{Code: z.Code})
		}
		out = append(out, RegionSeed{
			Code:      r.Code,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Zones:     zones,
		})
	}
	return out
}

func projectInstanceTypes(types []domain.InstanceType) []InstanceTypeSeed {
	out := make([]InstanceTypeSeed, 0, len(types))
	for _, it := range types {
		volumes := make([]VolumeSeed, 0, len(it.InstanceTypeDetails.VolumeDetailsList))
		for _, v := range it.InstanceTypeDetails.VolumeDetailsList {
			volumes = append(volumes, VolumeSeed{
				VolumeSizeGB: v.VolumeSizeGB,
				VolumeType:   v.VolumeType,
				MountPath:    v.MountPath,
			})
		}
		out = append(out, InstanceTypeSeed{
			InstanceTypeCode:  it.InstanceTypeCode,
			NumCores:          it.NumCores,
			MemSizeGB:         it.MemSizeGB,
			VolumeDetailsList: volumes,
		})
	}
	return out
}

func projectNodes(nodes []domain.Node) []NodeSeed {
	out := make([]NodeSeed, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, NodeSeed{
			IP:           n.Details.IP,
			Region:       n.Details.Region,
			Zone:         n.Details.Zone,
			InstanceType: n.Details.InstanceType,
		})
	}
	return out
}

func ptr(s string) *string { return &s }
