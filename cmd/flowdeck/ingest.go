package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowdeck/flowdeck/pkg/chunker"
	"github.com/flowdeck/flowdeck/pkg/cmd"
	"github.com/flowdeck/flowdeck/pkg/ingest"
	"github.com/flowdeck/flowdeck/pkg/log"
	"github.com/flowdeck/flowdeck/pkg/sources"
	cli "github.com/urfave/cli/v3"
)

// dirFileStore serves stored file ids straight from a local directory.
type dirFileStore struct {
	root string
}

func (s *dirFileStore) ReadFile(_ context.Context, fileID string) (string, []byte, error) {
	path := filepath.Join(s.root, filepath.Clean(fileID))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, sources.ErrNotFound
		}

		return "", nil, err
	}

	return filepath.Base(path), data, nil
}

// IngestCommand runs a one-shot fetch and chunk for a single collection
// source and prints the chunks as JSON.
func IngestCommand() *cli.Command {
	return &cli.Command{
		Name:  "ingest",
		Usage: "Fetch and chunk a dataset source",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "collection-id",
				Usage: "Collection id to report in events and output",
				Value: "local",
			},
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Source kind (stored_file, link, external_file, api_file)",
				Value: string(sources.SourceStoredFile),
			},
			&cli.StringFlag{
				Name:  "file-id",
				Usage: "File id for stored_file and api_file sources",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "URL for link and external_file sources",
			},
			&cli.StringFlag{
				Name:  "store-path",
				Usage: "Directory stored file ids resolve against",
				Value: ".",
			},
			&cli.IntFlag{
				Name:  "chunk-len",
				Usage: "Maximum chunk length in runes",
				Value: chunker.DefaultChunkLen,
			},
			&cli.IntFlag{
				Name:  "overlap",
				Usage: "Overlap between consecutive chunks in runes",
			},
			&cli.BoolFlag{
				Name:  "qa",
				Usage: "Parse the source as question and answer CSV",
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Queue the job on redis for a worker instead of running it here",
				Sources: cli.EnvVars("REDIS_URL"),
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
			logger := log.WithModule("ingest")

			req := ingest.Request{
				CollectionID: command.String("collection-id"),
				Source: sources.Source{
					Kind:   sources.SourceKind(command.String("kind")),
					FileID: command.String("file-id"),
					URL:    command.String("url"),
				},
				ChunkOptions: chunker.Options{
					ChunkLen: command.Int("chunk-len"),
					Overlap:  command.Int("overlap"),
				},
				QAMode: command.Bool("qa"),
			}

			if redisURL := command.String("redis-url"); redisURL != "" {
				client, err := cmd.NewRedisClient(redisURL)
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}

				if err := ingest.NewQueue(client).Enqueue(ctx, req); err != nil {
					return cli.Exit(fmt.Sprintf("enqueue failed: %v", err), 1)
				}

				fmt.Printf("queued ingest job for collection %s\n", req.CollectionID)

				return nil
			}

			store := &dirFileStore{root: command.String("store-path")}
			reader := sources.NewReader(store, nil, logger)
			coordinator := ingest.NewCoordinator(reader, nil, logger)

			result, err := coordinator.Ingest(ctx, req)
			if err != nil {
				return cli.Exit(fmt.Sprintf("ingest failed: %v", err), 1)
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")

			return encoder.Encode(result)
		},
	}
}
