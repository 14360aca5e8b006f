package main

import (
	"os"

	"github.com/kage-cloud/routemap/pkg/cmd"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		log.WithError(err).Error("routemap failed")
		os.Exit(1)
	}
}
