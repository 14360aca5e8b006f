package controller

import "github.com/eddieowens/axon"

const ControllersKey = "Controllers"

type Package struct {
}

func (p *Package) Bindings() []axon.Binding {
	return []axon.Binding{
		axon.Bind(VisualizeControllerKey).To().StructPtr(new(visualizeController)),
		axon.Bind(HealthControllerKey).To().StructPtr(new(healthController)),
		axon.Bind(ControllersKey).To().Keys(VisualizeControllerKey, HealthControllerKey),
	}
}
