package service

import (
	"github.com/kage-cloud/routemap/pkg/except"
	"github.com/kage-cloud/routemap/pkg/exchange"
	"github.com/kage-cloud/routemap/pkg/extract"
	"github.com/kage-cloud/routemap/pkg/graph"
	"github.com/kage-cloud/routemap/pkg/merger"
	"github.com/kage-cloud/routemap/pkg/metrics"
	"github.com/kage-cloud/routemap/pkg/model"
	"github.com/kage-cloud/routemap/pkg/parser"
	log "github.com/sirupsen/logrus"
)

const VisualizeServiceKey = "VisualizeService"

type VisualizeService interface {
	// Visualize parses every document of the request and builds the traffic
	// graph of the merged configuration. Only unparsable input fails.
	Visualize(req *exchange.VisualizeRequest) (*model.GraphResult, error)
}

type visualizeService struct {
	Metrics *metrics.Metrics `inject:"Metrics"`
}

func (v *visualizeService) Visualize(req *exchange.VisualizeRequest) (*model.GraphResult, error) {
	if err := req.Validate(); err != nil {
		v.Metrics.ObserveFailure(string(except.Reason(err)))
		return nil, err
	}

	docs, err := parser.ParseAll(req.Documents(), req.Format)
	if err != nil {
		v.Metrics.ObserveFailure(string(except.Reason(err)))
		log.WithField("format", req.Format).WithError(err).Debug("Failed to parse configs")
		return nil, err
	}

	envelope := merger.Merge(docs)
	log.WithField("documents", len(docs)).
		WithField("typed_configs", len(envelope.TypedConfigs)).
		WithField("static_listeners", len(envelope.StaticResources.Listeners)).
		WithField("static_clusters", len(envelope.StaticResources.Clusters)).
		Debug("Merged configs")

	records := extract.Extract(envelope)
	log.WithField("listeners", len(records.Listeners)).
		WithField("route_configs", len(records.RouteConfigs)).
		WithField("clusters", len(records.Clusters)).
		WithField("endpoint_groups", len(records.Endpoints)).
		Debug("Extracted records")

	result := graph.Build(records)
	log.WithField("nodes", len(result.Nodes)).
		WithField("edges", len(result.Edges)).
		Debug("Built graph")

	if len(result.Warnings) > 0 {
		log.WithField("warnings", len(result.Warnings)).
			WithField("first", result.Warnings[0]).
			Warn("Graph has dangling references")
	}

	v.Metrics.ObserveGraph(len(docs), result)
	return result, nil
}
