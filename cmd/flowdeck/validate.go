package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/flowdeck/flowdeck/pkg/cmd"
	"github.com/flowdeck/flowdeck/pkg/graph"
	"github.com/flowdeck/flowdeck/pkg/log"
	"github.com/flowdeck/flowdeck/pkg/models"
	cli "github.com/urfave/cli/v3"
)

// ValidateCommand checks a workflow JSON file against the template catalog
// and reports the nodes that would block publishing.
func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check a workflow file for publish blockers",
		ArgsUsage: "<workflow.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "templates-path",
				Usage:   "Directory with extra node template JSON files",
				Sources: cli.EnvVars("TEMPLATES_PATH"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			path := command.Args().First()
			if path == "" {
				return cli.Exit("usage: flowdeck validate <workflow.json>", 2)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to read %s: %v", path, err), 2)
			}

			var workflow models.Workflow
			if err := json.Unmarshal(data, &workflow); err != nil {
				return cli.Exit(fmt.Sprintf("failed to parse %s: %v", path, err), 2)
			}

			registry := cmd.NewRegistry(log.WithModule("validate"), command.String("templates-path"))

			nodes := make([]*models.FlowNode, 0, len(workflow.Nodes))
			for _, stored := range workflow.Nodes {
				nodes = append(nodes, graph.Reconcile(stored, registry, func(s string) string { return s }))
			}

			invalid := graph.CheckGraph(nodes, workflow.Edges)
			if len(invalid) == 0 {
				fmt.Printf("%s: ok (%d nodes, %d edges)\n", path, len(nodes), len(workflow.Edges))

				return nil
			}

			fmt.Printf("%s: %d invalid nodes\n", path, len(invalid))

			for _, id := range invalid {
				name := id
				if node := workflow.Node(id); node != nil && node.Name != "" {
					name = fmt.Sprintf("%s (%s)", node.Name, id)
				}

				fmt.Printf("  - %s\n", name)
			}

			return cli.Exit("", 1)
		},
	}
}
