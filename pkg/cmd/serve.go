package cmd

import (
	"github.com/eddieowens/axon"
	"github.com/kage-cloud/routemap/pkg"
	"github.com/spf13/cobra"
)

func newServeCommand(injector func() axon.Injector) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the visualize API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return injector().GetStructPtr(pkg.AppKey).(pkg.App).Start()
		},
	}
}
