package domain

// VolumeDetails describes a single data volume of an instance type.
type VolumeDetails struct {
	VolumeSizeGB int    `json:"volumeSizeGB"`
	VolumeType   string `json:"volumeType"`
	MountPath    string `json:"mountPath"`
}

// InstanceTypeDetails holds the nested volume layout.
type InstanceTypeDetails struct {
	VolumeDetailsList []VolumeDetails `json:"volumeDetailsList"`
}

// InstanceType is a node hardware profile defined for a provider.
type InstanceType struct {
	InstanceTypeCode    string              `json:"instanceTypeCode"`
	NumCores            float64             `json:"numCores"`
	MemSizeGB           float64             `json:"memSizeGB"`
	InstanceTypeDetails InstanceTypeDetails `json:"instanceTypeDetails"`
}
