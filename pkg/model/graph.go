package model

type NodeType string

const (
	NodeTypeListener    NodeType = "listener"
	NodeTypeFilter      NodeType = "filter"
	NodeTypeRouteConfig NodeType = "route_config"
	NodeTypeVirtualHost NodeType = "virtual_host"
	NodeTypeRoute       NodeType = "route"
	NodeTypeCluster     NodeType = "cluster"
	NodeTypeEndpoint    NodeType = "endpoint"
)

// NodeData is the type specific payload of a Node. Every NodeType has
// exactly one implementation.
type NodeData interface {
	NodeType() NodeType
}

type ListenerData struct {
	Address string         `json:"address"`
	Filters []FilterRecord `json:"filters"`
}

type FilterData struct {
	FullName string `json:"full_name"`
}

type RouteConfigData struct{}

type VirtualHostData struct {
	Domains []string `json:"domains"`
}

type RouteData struct {
	Match  map[string]interface{} `json:"match"`
	Action RouteAction            `json:"action"`
}

type ClusterData struct {
	Type string `json:"type"`
}

type EndpointData struct{}

func (ListenerData) NodeType() NodeType    { return NodeTypeListener }
func (FilterData) NodeType() NodeType      { return NodeTypeFilter }
func (RouteConfigData) NodeType() NodeType { return NodeTypeRouteConfig }
func (VirtualHostData) NodeType() NodeType { return NodeTypeVirtualHost }
func (RouteData) NodeType() NodeType       { return NodeTypeRoute }
func (ClusterData) NodeType() NodeType     { return NodeTypeCluster }
func (EndpointData) NodeType() NodeType    { return NodeTypeEndpoint }

type Node struct {
	Id    string   `json:"id"`
	Type  NodeType `json:"type"`
	Label string   `json:"label"`
	Data  NodeData `json:"data"`
}

// NewNode derives the node type from its payload so the two can't disagree.
func NewNode(id, label string, data NodeData) Node {
	return Node{
		Id:    id,
		Type:  data.NodeType(),
		Label: label,
		Data:  data,
	}
}

type Edge struct {
	Id     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

func NewEdge(source, target string) Edge {
	return Edge{
		Id:     source + "-" + target,
		Source: source,
		Target: target,
	}
}

type GraphStats struct {
	Listeners    int `json:"listeners"`
	RouteConfigs int `json:"route_configs"`
	VirtualHosts int `json:"virtual_hosts"`
	Routes       int `json:"routes"`
	Clusters     int `json:"clusters"`
	Endpoints    int `json:"endpoints"`
}

// Count bumps the counter that matches t. Filters are not counted.
func (g *GraphStats) Count(t NodeType) {
	switch t {
	case NodeTypeListener:
		g.Listeners++
	case NodeTypeRouteConfig:
		g.RouteConfigs++
	case NodeTypeVirtualHost:
		g.VirtualHosts++
	case NodeTypeRoute:
		g.Routes++
	case NodeTypeCluster:
		g.Clusters++
	case NodeTypeEndpoint:
		g.Endpoints++
	}
}

type GraphResult struct {
	Nodes    []Node     `json:"nodes"`
	Edges    []Edge     `json:"edges"`
	Stats    GraphStats `json:"stats"`
	Warnings []string   `json:"warnings"`
}
