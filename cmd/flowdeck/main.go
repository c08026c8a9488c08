// Package main provides the flowdeck CLI for offline workflow and dataset
// operations.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	command := &cli.Command{
		Name:                  "flowdeck",
		Usage:                 "Workflow graph and dataset tooling",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			ValidateCommand(),
			IngestCommand(),
			SyncCommand(),
			WorkerCommand(),
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
