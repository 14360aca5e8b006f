package metrics

import "github.com/eddieowens/axon"

type Package struct {
}

func metricsFactory(_ axon.Injector, _ axon.Args) axon.Instance {
	return axon.StructPtr(New())
}

func (p *Package) Bindings() []axon.Binding {
	return []axon.Binding{
		axon.Bind(MetricsKey).To().Factory(metricsFactory).WithoutArgs(),
	}
}
