package main

import (
	"os"

	"github.com/TykTechnologies/servicemigration/cli"
	logger "github.com/TykTechnologies/servicemigration/log"
)

var confPaths = []string{
	"svcmigrate.conf",
	"/etc/svcmigrate/svcmigrate.conf",
}

func main() {
	cli.Init(confPaths)
	if err := cli.Parse(os.Args[1:]); err != nil {
		logger.Get().WithError(err).Error("Migration command failed")
		os.Exit(1)
	}
}
