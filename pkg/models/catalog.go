package models

// Read-only catalog resources: the cloud vendors, their datacenter
// locations and their machine sizes. Regions and node types are
// addressed by (provider name, resource name), not by UUID.

type Provider struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	ResourceURI string   `json:"resource_uri"`
	Regions     []string `json:"regions"`
}

type Providers struct {
	Meta    Meta       `json:"meta"`
	Objects []Provider `json:"objects"`
}

type Region struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	ResourceURI string   `json:"resource_uri"`
	Provider    string   `json:"provider"`
	NodeTypes   []string `json:"node_types"`
}

type Regions struct {
	Meta    Meta     `json:"meta"`
	Objects []Region `json:"objects"`
}

type NodeType struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	ResourceURI string   `json:"resource_uri"`
	Provider    string   `json:"provider"`
	Regions     []string `json:"regions"`
}

type NodeTypes struct {
	Meta    Meta       `json:"meta"`
	Objects []NodeType `json:"objects"`
}
