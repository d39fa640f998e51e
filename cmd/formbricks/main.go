package main

import (
	"log"
	"os"

	"github.com/ranayash24/formbricks/internal/cli/commands"
	"github.com/urfave/cli/v2"
)

// Version will be set during build with ldflags
var Version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "formbricks",
		Usage:   "Manage surveys, responses and tags from the command line",
		Version: Version,
		Commands: []*cli.Command{
			commands.NewSetupCommand(),
			commands.NewSurveyCommand(),
			commands.NewResponseCommand(),
			commands.NewTagCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
