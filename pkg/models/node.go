package models

// Node is a single provisioned compute instance, optionally part of a
// NodeCluster (NodeCluster holds the cluster's resource URI, or empty
// for a standalone node).
type Node struct {
	UUID              string    `json:"uuid,omitempty"`
	ResourceURI       string    `json:"resource_uri,omitempty"`
	State             State     `json:"state,omitempty"`
	Region            string    `json:"region,omitempty"`
	NodeType          string    `json:"node_type,omitempty"`
	NodeCluster       string    `json:"node_cluster,omitempty"`
	DockerVersion     string    `json:"docker_version,omitempty"`
	PublicIP          string    `json:"public_ip,omitempty"`
	DeployedDatetime  *Timestamp `json:"deployed_datetime,omitempty"`
	DestroyedDatetime *Timestamp `json:"destroyed_datetime,omitempty"`
	LastSeen          *Timestamp `json:"last_seen,omitempty"`
	Tags              []string  `json:"tags,omitempty"`
}

type Nodes struct {
	Meta    Meta   `json:"meta"`
	Objects []Node `json:"objects"`
}
