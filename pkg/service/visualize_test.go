package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kage-cloud/routemap/pkg/except"
	"github.com/kage-cloud/routemap/pkg/exchange"
	"github.com/kage-cloud/routemap/pkg/metrics"
	"github.com/kage-cloud/routemap/pkg/model"
	"github.com/kage-cloud/routemap/pkg/parser"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type VisualizeServiceTestSuite struct {
	suite.Suite
	Metrics *metrics.Metrics
	Service VisualizeService
}

func (v *VisualizeServiceTestSuite) SetupTest() {
	v.Metrics = metrics.New()
	v.Service = &visualizeService{Metrics: v.Metrics}
}

func (v *VisualizeServiceTestSuite) fixture(name string) string {
	b, err := os.ReadFile(filepath.Join("testdata", name))
	v.Require().NoError(err)
	return string(b)
}

func (v *VisualizeServiceTestSuite) visualize(format parser.Format, docs ...string) *model.GraphResult {
	result, err := v.Service.Visualize(&exchange.VisualizeRequest{Configs: docs, Format: format})
	v.Require().NoError(err)
	return result
}

func nodeIds(result *model.GraphResult) []string {
	ids := make([]string, 0, len(result.Nodes))
	for _, n := range result.Nodes {
		ids = append(ids, n.Id)
	}
	return ids
}

func edgeIds(result *model.GraphResult) []string {
	ids := make([]string, 0, len(result.Edges))
	for _, e := range result.Edges {
		ids = append(ids, e.Id)
	}
	return ids
}

func (v *VisualizeServiceTestSuite) TestSingleStaticListener() {
	// -- Given
	//
	given := `{"static_resources":{"listeners":[{"name":"l1","address":{"socket_address":{"address":"0.0.0.0","port_value":8080}}}]}}`

	// -- When
	//
	actual := v.visualize(parser.FormatJson, given)

	// -- Then
	//
	if !v.Len(actual.Nodes, 1) {
		return
	}
	node, err := json.Marshal(actual.Nodes[0])
	v.Require().NoError(err)
	v.JSONEq(`{"id":"listener:l1","type":"listener","label":"l1","data":{"address":"0.0.0.0:8080","filters":[]}}`, string(node))
	v.Empty(actual.Edges)
	v.Equal(model.GraphStats{Listeners: 1}, actual.Stats)
	v.Empty(actual.Warnings)
}

func (v *VisualizeServiceTestSuite) TestEmptyObject() {
	// -- When
	//
	actual := v.visualize(parser.FormatJson, "{}")

	// -- Then
	//
	b, err := json.Marshal(actual)
	v.Require().NoError(err)
	v.JSONEq(`{
		"nodes": [],
		"edges": [],
		"stats": {"listeners": 0, "route_configs": 0, "virtual_hosts": 0, "routes": 0, "clusters": 0, "endpoints": 0},
		"warnings": []
	}`, string(b))
}

func (v *VisualizeServiceTestSuite) TestMalformedJson() {
	// -- When
	//
	actual, err := v.Service.Visualize(&exchange.VisualizeRequest{Configs: []string{"{invalid"}, Format: parser.FormatJson})

	// -- Then
	//
	v.Nil(actual)
	v.Error(err)
	v.Contains(err.Error(), "Invalid JSON")
	v.Equal(except.ErrParse, except.Reason(err))
	v.Equal(float64(1), testutil.ToFloat64(v.Metrics.Runs.WithLabelValues(string(except.ErrParse))))
}

func (v *VisualizeServiceTestSuite) TestOneBadDocumentFailsTheRequest() {
	actual, err := v.Service.Visualize(&exchange.VisualizeRequest{
		Configs: []string{v.fixture("bootstrap.yaml"), "listeners: [\n"},
	})

	v.Nil(actual)
	v.Contains(err.Error(), "Invalid YAML")
}

func (v *VisualizeServiceTestSuite) TestInvalidFormat() {
	_, err := v.Service.Visualize(&exchange.VisualizeRequest{Configs: []string{"{}"}, Format: "xml"})

	v.Equal(except.ErrInvalid, except.Reason(err))
}

func (v *VisualizeServiceTestSuite) TestNoDocuments() {
	actual := v.visualize(parser.FormatAuto)

	v.Empty(actual.Nodes)
	v.Empty(actual.Edges)
	v.Empty(actual.Warnings)
}

func (v *VisualizeServiceTestSuite) TestConfigDump() {
	// -- When
	//
	actual := v.visualize(parser.FormatAuto, v.fixture("config_dump.json"))

	// -- Then
	//
	const (
		reviews = "outbound|8080||reviews.default.svc.cluster.local"
		ratings = "outbound|8080||ratings.default.svc.cluster.local"
		vh      = "virtual_host:8080:reviews.default.svc.cluster.local:8080"
	)
	v.Equal([]string{
		"listener:0.0.0.0_8080",
		"filter:0.0.0.0_8080:0",
		"listener:0.0.0.0_9090",
		"filter:0.0.0.0_9090:0",
		"filter:0.0.0.0_9090:1",
		"route_config:8080",
		vh,
		"route:" + vh + ":0",
		"route:" + vh + ":1",
		"route:" + vh + ":2",
		"route:" + vh + ":3",
		"cluster:" + reviews,
		"cluster:" + ratings,
		"cluster:PassthroughCluster",
		"endpoint:" + ratings + ":ratings.default.svc.cluster.local:8080",
		"endpoint:" + reviews + ":10.0.1.10:9080",
		"endpoint:" + reviews + ":10.0.1.11:9080",
	}, nodeIds(actual))
	v.Equal([]string{
		"listener:0.0.0.0_8080-filter:0.0.0.0_8080:0",
		"filter:0.0.0.0_8080:0-route_config:8080",
		"listener:0.0.0.0_9090-filter:0.0.0.0_9090:0",
		"listener:0.0.0.0_9090-filter:0.0.0.0_9090:1",
		"route_config:8080-" + vh,
		vh + "-route:" + vh + ":0",
		"route:" + vh + ":0-cluster:" + reviews,
		"route:" + vh + ":0-cluster:" + ratings,
		vh + "-route:" + vh + ":1",
		vh + "-route:" + vh + ":2",
		vh + "-route:" + vh + ":3",
		"cluster:" + ratings + "-endpoint:" + ratings + ":ratings.default.svc.cluster.local:8080",
		"cluster:" + reviews + "-endpoint:" + reviews + ":10.0.1.10:9080",
		"cluster:" + reviews + "-endpoint:" + reviews + ":10.0.1.11:9080",
	}, edgeIds(actual))
	v.Equal(model.GraphStats{
		Listeners:    2,
		RouteConfigs: 1,
		VirtualHosts: 1,
		Routes:       4,
		Clusters:     3,
		Endpoints:    3,
	}, actual.Stats)
	v.Equal([]string{
		"Filter 'http_connection_manager' references missing RouteConfig '9090'",
		"Route in VH 'reviews.default.svc.cluster.local:8080' references missing Cluster 'outbound|8080||details.default.svc.cluster.local'",
	}, actual.Warnings)

	labels := map[string]string{}
	for _, n := range actual.Nodes {
		labels[n.Id] = n.Label
	}
	v.Equal("Prefix: /v2", labels["route:"+vh+":0"])
	v.Equal("Regex: ^/legacy/.*", labels["route:"+vh+":1"])
	v.Equal("Path: /healthz", labels["route:"+vh+":2"])
	v.Equal("tcp_proxy", labels["filter:0.0.0.0_9090:1"])
	v.Equal("0.0.0.0:8080", actual.Nodes[0].Data.(model.ListenerData).Address)
	v.Equal(model.RouteActionRedirect, actual.Nodes[8].Data.(model.RouteData).Action)
	v.Equal(model.RouteActionDirectResponse, actual.Nodes[9].Data.(model.RouteData).Action)
}

func (v *VisualizeServiceTestSuite) TestBootstrapInlineRouteConfig() {
	// -- When
	//
	actual := v.visualize(parser.FormatAuto, v.fixture("bootstrap.yaml"))

	// -- Then
	//
	v.Equal([]string{
		"listener:ingress",
		"filter:ingress:0",
		"route_config:ingress_route_config",
		"virtual_host:ingress_route_config:local_service",
		"route:virtual_host:ingress_route_config:local_service:0",
		"cluster:service_backend",
		"endpoint:service_backend:backend:8000",
	}, nodeIds(actual))
	v.Contains(edgeIds(actual), "filter:ingress:0-route_config:ingress_route_config")
	v.Contains(edgeIds(actual), "route:virtual_host:ingress_route_config:local_service:0-cluster:service_backend")
	v.Len(actual.Edges, 6)
	v.Empty(actual.Warnings)
	v.Equal("0.0.0.0:10000", actual.Nodes[0].Data.(model.ListenerData).Address)
	v.Equal(model.VirtualHostData{Domains: []string{"*"}}, actual.Nodes[3].Data)
}

func (v *VisualizeServiceTestSuite) TestMultiDocumentDiscoveryYaml() {
	// -- When
	//
	actual := v.visualize(parser.FormatYaml, v.fixture("discovery.yaml"))

	// -- Then
	//
	v.Equal([]string{
		"cluster:service_backend",
		"endpoint:service_backend:10.0.3.4:8000",
	}, nodeIds(actual))
	v.Equal([]string{"cluster:service_backend-endpoint:service_backend:10.0.3.4:8000"}, edgeIds(actual))
	v.Equal(model.ClusterData{Type: "EDS"}, actual.Nodes[0].Data)
}

func (v *VisualizeServiceTestSuite) TestDocumentsCombine() {
	// -- When
	//
	actual := v.visualize(parser.FormatAuto, v.fixture("bootstrap.yaml"), v.fixture("discovery.yaml"))

	// -- Then
	//
	v.Equal(1, actual.Stats.Clusters)
	v.Equal(2, actual.Stats.Endpoints)
	v.Contains(nodeIds(actual), "endpoint:service_backend:10.0.3.4:8000")
	v.Contains(nodeIds(actual), "endpoint:service_backend:backend:8000")
	v.Empty(actual.Warnings)
}

func (v *VisualizeServiceTestSuite) TestDuplicateListenerAcrossDocuments() {
	// -- Given
	//
	given := `{"static_resources":{"listeners":[{"name":"l1","address":{"socket_address":{"address":"0.0.0.0","port_value":80}},
		"filter_chains":[{"filters":[{"name":"envoy.filters.network.tcp_proxy"}]}]}]}}`

	// -- When
	//
	actual := v.visualize(parser.FormatAuto, given, given)

	// -- Then
	//
	v.Equal([]string{"listener:l1", "filter:l1:0"}, nodeIds(actual))
	v.Equal([]string{"listener:l1-filter:l1:0"}, edgeIds(actual))
	v.Equal(model.GraphStats{Listeners: 1}, actual.Stats)
}

func (v *VisualizeServiceTestSuite) TestDeterministic() {
	// -- Given
	//
	docs := []string{v.fixture("config_dump.json"), v.fixture("bootstrap.yaml"), v.fixture("discovery.yaml")}

	// -- When
	//
	first := v.visualize(parser.FormatAuto, docs...)
	second := v.visualize(parser.FormatAuto, docs...)

	// -- Then
	//
	v.Empty(cmp.Diff(first, second))
	a, err := json.Marshal(first)
	v.Require().NoError(err)
	b, err := json.Marshal(second)
	v.Require().NoError(err)
	v.Equal(string(a), string(b))
}

func (v *VisualizeServiceTestSuite) TestLegacySingleConfigField() {
	actual, err := v.Service.Visualize(&exchange.VisualizeRequest{Config: v.fixture("bootstrap.yaml")})

	v.NoError(err)
	v.Equal(1, actual.Stats.Listeners)
}

func TestVisualizeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VisualizeServiceTestSuite))
}
