package cmd

import (
	"io"
	"os"

	"github.com/eddieowens/axon"
	"github.com/kage-cloud/routemap/pkg/except"
	"github.com/kage-cloud/routemap/pkg/exchange"
	"github.com/kage-cloud/routemap/pkg/parser"
	"github.com/kage-cloud/routemap/pkg/service"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type graphOptions struct {
	Format string
	Stdin  io.Reader
	Stdout io.Writer
}

func newGraphCommand(injector func() axon.Injector) *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph FILE...",
		Short: "Print the traffic graph of envoy config files as JSON",
		Long: "Print the traffic graph of one or more envoy config dumps, bootstrap " +
			"configs or discovery responses. Use - to read from stdin.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()
			svc := injector().GetStructPtr(service.VisualizeServiceKey).(service.VisualizeService)
			return runGraph(svc, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", string(parser.FormatAuto), "input format: auto, json or yaml")
	return cmd
}

func runGraph(svc service.VisualizeService, opts *graphOptions, paths []string) error {
	docs, err := readDocuments(opts.Stdin, paths)
	if err != nil {
		return err
	}

	result, err := svc.Visualize(&exchange.VisualizeRequest{
		Configs: docs,
		Format:  parser.Format(opts.Format),
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		log.Warn(w)
	}

	b, err := parser.Json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = opts.Stdout.Write(b)
	return err
}

// readDocuments reads every path, reporting all unreadable paths at once.
func readDocuments(stdin io.Reader, paths []string) ([]string, error) {
	docs := make([]string, 0, len(paths))
	batch := except.NewBatchError("Failed to read config files")
	for _, p := range paths {
		var b []byte
		var err error
		if p == "-" {
			b, err = io.ReadAll(stdin)
		} else {
			b, err = os.ReadFile(p)
		}
		if err != nil {
			if os.IsNotExist(err) {
				err = except.NewError("%s does not exist", except.ErrNotFound, p)
			}
			batch.Add(errors.Wrapf(err, "reading %s", p))
			continue
		}
		docs = append(docs, string(b))
	}

	if err := batch.ErrorOrNil(); err != nil {
		return nil, err
	}
	return docs, nil
}
