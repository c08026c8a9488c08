package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/flowdeck/flowdeck/pkg/config"
	"github.com/flowdeck/flowdeck/pkg/ingest"
	"github.com/flowdeck/flowdeck/pkg/log"
	"github.com/flowdeck/flowdeck/pkg/sources"
	cli "github.com/urfave/cli/v3"
)

// SyncCommand runs the scheduled collection syncs defined in a YAML file
// until interrupted.
func SyncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Run scheduled dataset syncs from a config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Usage:    "Path to the sync schedule YAML file",
				Required: true,
				Sources:  cli.EnvVars("SYNC_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "store-path",
				Usage: "Directory stored file ids resolve against",
				Value: ".",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("sync")

			cfg, err := config.LoadSyncConfig(command.String("config"))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store := &dirFileStore{root: command.String("store-path")}
			reader := sources.NewReader(store, nil, logger)
			coordinator := ingest.NewCoordinator(reader, nil, logger)

			for _, schedule := range cfg.Schedules {
				if _, err := coordinator.ScheduleSync(ctx, schedule.Spec, schedule.Request()); err != nil {
					return cli.Exit(err.Error(), 2)
				}

				logger.Info("Scheduled collection sync",
					"collection_id", schedule.CollectionID, "spec", schedule.Spec)
			}

			coordinator.Start()
			fmt.Printf("running %d scheduled syncs, ctrl-c to stop\n", len(cfg.Schedules))

			<-ctx.Done()
			coordinator.Stop()

			return nil
		},
	}
}
