package model

const (
	UnknownListener    = "unknown_listener"
	UnknownRouteConfig = "unknown_route_config"
	UnknownVirtualHost = "unknown_vh"
	UnknownCluster     = "unknown_cluster"
)

type RouteAction string

const (
	RouteActionRoute          RouteAction = "route"
	RouteActionRedirect       RouteAction = "redirect"
	RouteActionDirectResponse RouteAction = "direct_response"
	RouteActionUnknown        RouteAction = "unknown"
)

type ListenerRecord struct {
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Filters []FilterRecord `json:"filters"`

	// RouteConfigNames lists every route config referenced by name from this
	// listener's filters, in filter order.
	RouteConfigNames []string `json:"-"`
}

type FilterRecord struct {
	Name              string             `json:"name"`
	RouteConfigName   *string            `json:"route_config_name"`
	InlineRouteConfig *RouteConfigRecord `json:"inline_route_config"`
}

type RouteConfigRecord struct {
	Name         string              `json:"name"`
	VirtualHosts []VirtualHostRecord `json:"virtual_hosts"`
}

type VirtualHostRecord struct {
	Name    string        `json:"name"`
	Domains []string      `json:"domains"`
	Routes  []RouteRecord `json:"routes"`
}

type RouteRecord struct {
	Match            map[string]interface{} `json:"match"`
	Action           RouteAction            `json:"action"`
	Cluster          *string                `json:"cluster"`
	WeightedClusters []WeightedCluster      `json:"weighted_clusters"`
}

// Targets returns the names of every cluster the route forwards to.
func (r *RouteRecord) Targets() []string {
	targets := make([]string, 0, len(r.WeightedClusters)+1)
	if r.Cluster != nil && *r.Cluster != "" {
		targets = append(targets, *r.Cluster)
	}
	for _, wc := range r.WeightedClusters {
		targets = append(targets, wc.Name)
	}
	return targets
}

type WeightedCluster struct {
	Name   string `json:"name"`
	Weight *int64 `json:"weight"`
}

type ClusterRecord struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type EndpointGroupRecord struct {
	ClusterName       string   `json:"cluster_name"`
	EndpointAddresses []string `json:"endpoints"`
}

// Records is everything extracted from one canonical envelope.
type Records struct {
	Listeners    []ListenerRecord
	RouteConfigs []RouteConfigRecord
	Clusters     []ClusterRecord
	Endpoints    []EndpointGroupRecord
	Warnings     []string
}

func NewRecords() *Records {
	return &Records{
		Listeners:    []ListenerRecord{},
		RouteConfigs: []RouteConfigRecord{},
		Clusters:     []ClusterRecord{},
		Endpoints:    []EndpointGroupRecord{},
		Warnings:     []string{},
	}
}
