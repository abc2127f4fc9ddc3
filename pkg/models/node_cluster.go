package models

// NodeCluster is a named, provisioned group of compute nodes under one
// provider, region and node type. Region and NodeType hold resource
// URIs ("/api/v1/region/digitalocean/lon1/"), matching the wire format
// the create endpoint expects.
type NodeCluster struct {
	UUID              string    `json:"uuid,omitempty"`
	Name              string    `json:"name,omitempty"`
	ResourceURI       string    `json:"resource_uri,omitempty"`
	State             State     `json:"state,omitempty"`
	Region            string    `json:"region,omitempty"`
	NodeType          string    `json:"node_type,omitempty"`
	Disk              int       `json:"disk,omitempty"`
	CurrentNumNodes   int       `json:"current_num_nodes,omitempty"`
	TargetNumNodes    int       `json:"target_num_nodes,omitempty"`
	DeployedDatetime  *Timestamp `json:"deployed_datetime,omitempty"`
	DestroyedDatetime *Timestamp `json:"destroyed_datetime,omitempty"`
	Tags              []string  `json:"tags,omitempty"`
}

type NodeClusters struct {
	Meta    Meta          `json:"meta"`
	Objects []NodeCluster `json:"objects"`
}
