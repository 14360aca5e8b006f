package graph

import (
	"fmt"

	"github.com/kage-cloud/routemap/pkg/model"
	"github.com/kage-cloud/routemap/pkg/util/envoyutil"
)

// Build turns extracted records into a graph. Nodes and edges are keyed by
// id; the first entity written under an id wins and later ones are dropped.
// Warnings from records are carried over ahead of the ones raised here.
func Build(records *model.Records) *model.GraphResult {
	b := newBuilder(records)
	b.listeners(records.Listeners)
	b.routeConfigs(records.RouteConfigs)
	b.clusters(records.Clusters)
	b.endpoints(records.Endpoints)
	return b.result
}

type builder struct {
	result *model.GraphResult

	nodeIds map[string]bool
	edgeIds map[string]bool

	routeConfigNames map[string]bool
	clusterNames     map[string]bool
}

func newBuilder(records *model.Records) *builder {
	b := &builder{
		result: &model.GraphResult{
			Nodes:    []model.Node{},
			Edges:    []model.Edge{},
			Warnings: append([]string{}, records.Warnings...),
		},
		nodeIds:          map[string]bool{},
		edgeIds:          map[string]bool{},
		routeConfigNames: map[string]bool{},
		clusterNames:     map[string]bool{},
	}

	for _, rc := range records.RouteConfigs {
		b.routeConfigNames[rc.Name] = true
	}
	for _, c := range records.Clusters {
		b.clusterNames[c.Name] = true
	}
	return b
}

func ListenerId(name string) string {
	return "listener:" + name
}

func FilterId(listenerName string, idx int) string {
	return fmt.Sprintf("filter:%s:%d", listenerName, idx)
}

func RouteConfigId(name string) string {
	return "route_config:" + name
}

func VirtualHostId(routeConfigName, name string) string {
	return "virtual_host:" + routeConfigName + ":" + name
}

func RouteId(virtualHostId string, idx int) string {
	return fmt.Sprintf("route:%s:%d", virtualHostId, idx)
}

func ClusterId(name string) string {
	return "cluster:" + name
}

func EndpointId(clusterName, addr string) string {
	return "endpoint:" + clusterName + ":" + addr
}

func (b *builder) addNode(node model.Node) {
	if b.nodeIds[node.Id] {
		return
	}
	b.nodeIds[node.Id] = true
	b.result.Nodes = append(b.result.Nodes, node)
	b.result.Stats.Count(node.Type)
}

func (b *builder) addEdge(source, target string) {
	edge := model.NewEdge(source, target)
	if b.edgeIds[edge.Id] {
		return
	}
	b.edgeIds[edge.Id] = true
	b.result.Edges = append(b.result.Edges, edge)
}

func (b *builder) warn(msg string, args ...interface{}) {
	b.result.Warnings = append(b.result.Warnings, fmt.Sprintf(msg, args...))
}

func (b *builder) listeners(listeners []model.ListenerRecord) {
	for _, l := range listeners {
		lId := ListenerId(l.Name)
		filters := l.Filters
		if filters == nil {
			filters = []model.FilterRecord{}
		}
		b.addNode(model.NewNode(lId, l.Name, model.ListenerData{
			Address: l.Address,
			Filters: filters,
		}))

		for i, f := range l.Filters {
			fId := FilterId(l.Name, i)
			label := envoyutil.ShortName(f.Name)
			b.addNode(model.NewNode(fId, label, model.FilterData{FullName: f.Name}))
			b.addEdge(lId, fId)

			if f.RouteConfigName != nil {
				if b.routeConfigNames[*f.RouteConfigName] {
					b.addEdge(fId, RouteConfigId(*f.RouteConfigName))
				} else {
					b.warn("Filter '%s' references missing RouteConfig '%s'", label, *f.RouteConfigName)
				}
			}

			if f.InlineRouteConfig != nil {
				b.addEdge(fId, RouteConfigId(f.InlineRouteConfig.Name))
			}
		}
	}
}

func (b *builder) routeConfigs(routeConfigs []model.RouteConfigRecord) {
	for _, rc := range routeConfigs {
		rcId := RouteConfigId(rc.Name)
		b.addNode(model.NewNode(rcId, rc.Name, model.RouteConfigData{}))

		for _, vh := range rc.VirtualHosts {
			vhId := VirtualHostId(rc.Name, vh.Name)
			domains := vh.Domains
			if domains == nil {
				domains = []string{}
			}
			b.addNode(model.NewNode(vhId, vh.Name, model.VirtualHostData{Domains: domains}))
			b.addEdge(rcId, vhId)

			for i, r := range vh.Routes {
				rId := RouteId(vhId, i)
				match := r.Match
				if match == nil {
					match = envoyutil.Object{}
				}
				b.addNode(model.NewNode(rId, RouteLabel(match), model.RouteData{
					Match:  match,
					Action: r.Action,
				}))
				b.addEdge(vhId, rId)

				for _, c := range r.Targets() {
					if b.clusterNames[c] {
						b.addEdge(rId, ClusterId(c))
					} else {
						b.warn("Route in VH '%s' references missing Cluster '%s'", vh.Name, c)
					}
				}
			}
		}
	}
}

func (b *builder) clusters(clusters []model.ClusterRecord) {
	for _, c := range clusters {
		b.addNode(model.NewNode(ClusterId(c.Name), c.Name, model.ClusterData{Type: c.Type}))
	}
}

// endpoints adds the endpoint groups of known clusters. Groups for any other
// cluster are dropped without a warning.
func (b *builder) endpoints(groups []model.EndpointGroupRecord) {
	for _, g := range groups {
		if !b.clusterNames[g.ClusterName] {
			continue
		}
		cId := ClusterId(g.ClusterName)
		for _, addr := range g.EndpointAddresses {
			epId := EndpointId(g.ClusterName, addr)
			b.addNode(model.NewNode(epId, addr, model.EndpointData{}))
			b.addEdge(cId, epId)
		}
	}
}

// RouteLabel describes a route match: prefix, then path, then safe regex.
func RouteLabel(match map[string]interface{}) string {
	switch {
	case envoyutil.Has(match, "prefix"):
		return "Prefix: " + envoyutil.GetString(match, "prefix", "")
	case envoyutil.Has(match, "path"):
		return "Path: " + envoyutil.GetString(match, "path", "")
	case envoyutil.Has(match, "safe_regex"):
		return "Regex: " + envoyutil.GetString(envoyutil.GetObject(match, "safe_regex"), "regex", "...")
	}
	return "Route"
}
