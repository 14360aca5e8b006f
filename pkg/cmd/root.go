package cmd

import (
	"github.com/eddieowens/axon"
	"github.com/kage-cloud/routemap/pkg"
	"github.com/kage-cloud/routemap/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	var injector axon.Injector

	root := &cobra.Command{
		Use:           "routemap",
		Short:         "Map envoy listeners, routes and clusters into a traffic graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			injector = pkg.InjectorFactory()
			configureLogger(injector.GetStructPtr(config.ConfigKey).(*config.Config))
		},
	}

	injectorFunc := func() axon.Injector {
		return injector
	}

	root.AddCommand(
		newServeCommand(injectorFunc),
		newGraphCommand(injectorFunc),
	)
	return root
}

func configureLogger(conf *config.Config) {
	format := &log.TextFormatter{
		TimestampFormat: conf.Log.TimeFormat,
	}

	log.SetFormatter(format)

	logLvl, err := log.ParseLevel(conf.Log.Level)
	if err != nil {
		logLvl = log.InfoLevel
	}

	log.SetLevel(logLvl)
	log.WithField("level", logLvl).
		WithField("time_format", conf.Log.TimeFormat).
		Debug("Logger configured.")
}
