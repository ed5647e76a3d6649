// Package snapshot builds the one-shot wizard seed: a denormalized capture of
// the on-prem provider, its access key, regions, instance types and nodes,
// used to pre-populate the edit/setup wizard.
package snapshot

// ProviderSeed names the provider.
type ProviderSeed struct {
	Name string `json:"name"`
}

// KeySeed carries the provider's access key. Every field is nil when the
// provider has no access key.
type KeySeed struct {
	Code              *string `json:"code,omitempty"`
	PrivateKeyContent *string `json:"privateKeyContent,omitempty"`
	SSHUser           *string `json:"sshUser,omitempty"`
}

// Empty reports whether no key field is set.
func (k KeySeed) Empty() bool {
	return k.Code == nil && k.PrivateKeyContent == nil && k.SSHUser == nil
}

// ZoneSeed is a zone reduced to its code.
type ZoneSeed struct {
	Code string `json:"code"`
}

// RegionSeed is a region reduced to its code, coordinates and zone codes.
type RegionSeed struct {
	Code      string     `json:"code"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Zones     []ZoneSeed `json:"zones"`
}

// VolumeSeed is a single volume of an instance type.
type VolumeSeed struct {
	VolumeSizeGB int    `json:"volumeSizeGB"`
	VolumeType   string `json:"volumeType"`
	MountPath    string `json:"mountPath"`
}

// InstanceTypeSeed is an instance type with its flattened volume list.
type InstanceTypeSeed struct {
	InstanceTypeCode  string       `json:"instanceTypeCode"`
	NumCores          float64      `json:"numCores"`
	MemSizeGB         float64      `json:"memSizeGB"`
	VolumeDetailsList []VolumeSeed `json:"volumeDetailsList"`
}

// NodeSeed is a node reduced to its placement.
type NodeSeed struct {
	IP           string `json:"ip"`
	Region       string `json:"region"`
	Zone         string `json:"zone"`
	InstanceType string `json:"instanceType"`
}

// Snapshot is the wizard seed payload.
type Snapshot struct {
	Provider      ProviderSeed       `json:"provider"`
	Key           KeySeed            `json:"key"`
	Regions       []RegionSeed       `json:"regions"`
	InstanceTypes []InstanceTypeSeed `json:"instanceTypes"`
	Nodes         []NodeSeed         `json:"nodes"`
}
