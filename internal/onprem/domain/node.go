package domain

// NodeDetails carries the placement of an on-prem node. Region and Zone are
// names, not identifiers.
type NodeDetails struct {
	IP           string `json:"ip"`
	Region       string `json:"region"`
	Zone         string `json:"zone"`
	InstanceType string `json:"instanceType"`
	SSHUser      string `json:"sshUser,omitempty"`
	NodeName     string `json:"nodeName,omitempty"`
}

// Node is a pre-provisioned on-prem node instance.
type Node struct {
	UUID    string      `json:"nodeUuid,omitempty"`
	InUse   bool        `json:"inUse,omitempty"`
	Details NodeDetails `json:"details"`
}
