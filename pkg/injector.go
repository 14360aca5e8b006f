package pkg

import (
	"github.com/eddieowens/axon"
	"github.com/kage-cloud/routemap/pkg/config"
	"github.com/kage-cloud/routemap/pkg/controller"
	"github.com/kage-cloud/routemap/pkg/metrics"
	"github.com/kage-cloud/routemap/pkg/service"
)

func InjectorFactory() axon.Injector {
	return axon.NewInjector(axon.NewBinder(
		new(metrics.Package),
		new(service.Package),
		new(config.Package),
		new(controller.Package),
		new(Package),
	))
}
