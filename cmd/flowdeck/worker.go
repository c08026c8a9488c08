package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/flowdeck/flowdeck/pkg/cmd"
	"github.com/flowdeck/flowdeck/pkg/ingest"
	"github.com/flowdeck/flowdeck/pkg/log"
	"github.com/flowdeck/flowdeck/pkg/sources"
	cli "github.com/urfave/cli/v3"
)

const dequeueTimeout = 5 * time.Second

type jobSource interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*ingest.Request, error)
}

type jobRunner interface {
	Ingest(ctx context.Context, req ingest.Request) (*ingest.Result, error)
}

// WorkerCommand drains the redis ingest queue, running each job through the
// coordinator until interrupted.
func WorkerCommand() *cli.Command {
	return &cli.Command{
		Name:  "worker",
		Usage: "Process queued ingest jobs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "redis-url",
				Usage:    "Redis URL the ingest queue lives on",
				Required: true,
				Sources:  cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:  "store-path",
				Usage: "Directory stored file ids resolve against",
				Value: ".",
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (kafka, gochannel)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
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
			logger := log.WithModule("worker")

			client, err := cmd.NewRedisClient(command.String("redis-url"))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			store := &dirFileStore{root: command.String("store-path")}
			reader := sources.NewReader(store, nil, logger)
			coordinator := ingest.NewCoordinator(reader, eventBus, logger)

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.InfoContext(ctx, "Ingest worker started")
			runWorker(ctx, logger, ingest.NewQueue(client), coordinator)
			logger.Info("Ingest worker stopped")

			return nil
		},
	}
}

// runWorker loops until ctx is cancelled. An empty queue just polls again; a
// failing job is logged and skipped so one bad source cannot wedge the
// worker.
func runWorker(ctx context.Context, logger *slog.Logger, jobs jobSource, runner jobRunner) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		req, err := jobs.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if errors.Is(err, ingest.ErrQueueEmpty) {
				continue
			}

			if ctx.Err() != nil {
				return
			}

			logger.ErrorContext(ctx, "Failed to dequeue ingest job", "error", err)

			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}

			continue
		}

		if _, err := runner.Ingest(ctx, *req); err != nil {
			logger.ErrorContext(ctx, "Ingest job failed",
				"collection_id", req.CollectionID, "error", err)
		}
	}
}
