package extract

import (
	"github.com/kage-cloud/routemap/pkg/merger"
	"github.com/kage-cloud/routemap/pkg/model"
	"github.com/kage-cloud/routemap/pkg/util/envoyutil"
)

// Extract walks the envelope and returns the normalized records found in it.
// Both the typed config entries and the static resources are read; their
// records are concatenated.
func Extract(env *merger.Envelope) *model.Records {
	e := &extractor{records: model.NewRecords()}
	e.fromTypedConfigs(env.TypedConfigs)
	e.fromStaticResources(env.StaticResources)
	return e.records
}

type extractor struct {
	records *model.Records
}

// A section is one wrapper list of an admin config dump: key holds the list,
// unwrap pulls the resource out of each item.
type section struct {
	key     string
	unwrap  func(item envoyutil.Object) envoyutil.Object
	process func(e *extractor, resource envoyutil.Object)
}

func field(key string) func(envoyutil.Object) envoyutil.Object {
	return func(item envoyutil.Object) envoyutil.Object {
		return envoyutil.GetObject(item, key)
	}
}

var dumpSections = []section{
	{key: "dynamic_listeners", unwrap: dynamicListener, process: (*extractor).listener},
	{key: "dynamic_route_configs", unwrap: field("route_config"), process: (*extractor).routeConfig},
	{key: "dynamic_active_clusters", unwrap: field("cluster"), process: (*extractor).cluster},
	{key: "static_listeners", unwrap: field("listener"), process: (*extractor).listener},
	{key: "static_route_configs", unwrap: field("route_config"), process: (*extractor).routeConfig},
	{key: "static_clusters", unwrap: field("cluster"), process: (*extractor).cluster},
	{key: "static_endpoint_configs", unwrap: field("endpoint_config"), process: (*extractor).endpoints},
	{key: "dynamic_endpoint_configs", unwrap: field("endpoint_config"), process: (*extractor).endpoints},
}

func dynamicListener(item envoyutil.Object) envoyutil.Object {
	if l := envoyutil.GetObject(envoyutil.GetObject(item, "active_state"), "listener"); len(l) > 0 {
		return l
	}
	return envoyutil.GetObject(envoyutil.GetObject(item, "warming_state"), "listener")
}

func (e *extractor) fromTypedConfigs(configs []envoyutil.Object) {
	for _, cfg := range configs {
		for _, s := range dumpSections {
			for _, item := range envoyutil.GetObjects(cfg, s.key) {
				if resource := s.unwrap(item); len(resource) > 0 {
					s.process(e, resource)
				}
			}
		}

		// Bare RDS and EDS resources have no static shape of their own.
		switch {
		case envoyutil.IsRouteConfigurationType(cfg):
			e.routeConfig(cfg)
		case envoyutil.IsClusterLoadAssignmentType(cfg):
			e.endpoints(cfg)
		}
	}
}

func (e *extractor) fromStaticResources(sr merger.StaticResources) {
	for _, l := range sr.Listeners {
		e.listener(l)
	}
	for _, c := range sr.Clusters {
		e.cluster(c)
	}
}

func (e *extractor) listener(listener envoyutil.Object) {
	rec := model.ListenerRecord{
		Name:             envoyutil.GetString(listener, "name", model.UnknownListener),
		Address:          "unknown",
		Filters:          []model.FilterRecord{},
		RouteConfigNames: []string{},
	}

	if addr, ok := envoyutil.SocketAddress(envoyutil.GetObject(listener, "address")); ok {
		rec.Address = addr
	}

	for _, fc := range envoyutil.GetObjects(listener, "filter_chains") {
		for _, f := range envoyutil.GetObjects(fc, "filters") {
			filter := model.FilterRecord{
				Name: envoyutil.GetString(f, "name", "unknown"),
			}

			if hcm, ok := envoyutil.HttpConnectionManager(f); ok {
				if envoyutil.Has(hcm, "rds") {
					if name := envoyutil.GetString(envoyutil.GetObject(hcm, "rds"), "route_config_name", ""); name != "" {
						filter.RouteConfigName = &name
						rec.RouteConfigNames = append(rec.RouteConfigNames, name)
					}
				} else if rc, ok := envoyutil.AsObject(hcm["route_config"]); ok {
					inline := e.routeConfigNamed(rc, rec.Name+"_route_config")
					filter.InlineRouteConfig = &inline
				}
			}

			rec.Filters = append(rec.Filters, filter)
		}
	}

	e.records.Listeners = append(e.records.Listeners, rec)
}

func (e *extractor) routeConfig(rc envoyutil.Object) {
	e.routeConfigNamed(rc, model.UnknownRouteConfig)
}

// routeConfigNamed records rc, naming it defaultName when the source omits a
// name, and returns the record.
func (e *extractor) routeConfigNamed(rc envoyutil.Object, defaultName string) model.RouteConfigRecord {
	rec := model.RouteConfigRecord{
		Name:         envoyutil.GetString(rc, "name", defaultName),
		VirtualHosts: []model.VirtualHostRecord{},
	}

	for _, vh := range envoyutil.GetObjects(rc, "virtual_hosts") {
		vhRec := model.VirtualHostRecord{
			Name:    envoyutil.GetString(vh, "name", model.UnknownVirtualHost),
			Domains: envoyutil.GetStrings(vh, "domains"),
			Routes:  []model.RouteRecord{},
		}
		for _, r := range envoyutil.GetObjects(vh, "routes") {
			vhRec.Routes = append(vhRec.Routes, route(r))
		}
		rec.VirtualHosts = append(rec.VirtualHosts, vhRec)
	}

	e.records.RouteConfigs = append(e.records.RouteConfigs, rec)
	return rec
}

func route(r envoyutil.Object) model.RouteRecord {
	rec := model.RouteRecord{
		Match:            envoyutil.GetObject(r, "match"),
		Action:           model.RouteActionUnknown,
		WeightedClusters: []model.WeightedCluster{},
	}
	if rec.Match == nil {
		rec.Match = envoyutil.Object{}
	}

	switch {
	case envoyutil.Has(r, "route"):
		rec.Action = model.RouteActionRoute
		action := envoyutil.GetObject(r, "route")
		if envoyutil.Has(action, "cluster") {
			cluster := envoyutil.GetString(action, "cluster", "")
			rec.Cluster = &cluster
		} else if wc := envoyutil.GetObject(action, "weighted_clusters"); wc != nil {
			for _, c := range envoyutil.GetObjects(wc, "clusters") {
				weighted := model.WeightedCluster{Name: envoyutil.GetString(c, "name", "")}
				if w, ok := envoyutil.GetInt(c, "weight"); ok {
					weighted.Weight = &w
				}
				rec.WeightedClusters = append(rec.WeightedClusters, weighted)
			}
		}
	case envoyutil.Has(r, "redirect"):
		rec.Action = model.RouteActionRedirect
	case envoyutil.Has(r, "direct_response"):
		rec.Action = model.RouteActionDirectResponse
	}

	return rec
}

func (e *extractor) cluster(cluster envoyutil.Object) {
	e.records.Clusters = append(e.records.Clusters, model.ClusterRecord{
		Name: envoyutil.GetString(cluster, "name", model.UnknownCluster),
		Type: envoyutil.GetString(cluster, "type", "unknown"),
	})

	if cla := envoyutil.GetObject(cluster, "load_assignment"); cla != nil {
		e.endpoints(cla)
	}
}

// endpoints records the addresses of a ClusterLoadAssignment. Assignments
// without any socket address are dropped.
func (e *extractor) endpoints(cla envoyutil.Object) {
	addrs := make([]string, 0)
	for _, locality := range envoyutil.GetObjects(cla, "endpoints") {
		for _, lbEndpoint := range envoyutil.GetObjects(locality, "lb_endpoints") {
			address := envoyutil.GetObject(envoyutil.GetObject(lbEndpoint, "endpoint"), "address")
			if sa := envoyutil.GetObject(address, "socket_address"); len(sa) > 0 {
				addr, _ := envoyutil.SocketAddress(address)
				addrs = append(addrs, addr)
			}
		}
	}

	if len(addrs) == 0 {
		return
	}

	e.records.Endpoints = append(e.records.Endpoints, model.EndpointGroupRecord{
		ClusterName:       envoyutil.GetString(cla, "cluster_name", ""),
		EndpointAddresses: addrs,
	})
}
