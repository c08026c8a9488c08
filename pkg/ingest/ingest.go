// Package ingest coordinates dataset ingestion: fetching collection content
// from its source, chunking it and reporting progress on the event bus.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flowdeck/flowdeck/pkg/chunker"
	"github.com/flowdeck/flowdeck/pkg/eventbus"
	"github.com/flowdeck/flowdeck/pkg/events"
	"github.com/flowdeck/flowdeck/pkg/sources"
	"github.com/robfig/cron/v3"
)

// ContentReader fetches the raw content behind a source.
type ContentReader interface {
	Read(ctx context.Context, src sources.Source) (*sources.Content, error)
}

// Request describes one ingestion run for a collection.
type Request struct {
	CollectionID string          `json:"collection_id"`
	Source       sources.Source  `json:"source"`
	ChunkOptions chunker.Options `json:"chunk_options"`
	QAMode       bool            `json:"qa_mode"`
}

// Result carries the chunks produced by a run.
type Result struct {
	CollectionID string          `json:"collection_id"`
	Name         string          `json:"name"`
	Chunks       []chunker.Chunk `json:"chunks"`
	Duration     time.Duration   `json:"duration"`
}

// Coordinator runs ingestion requests and keeps the scheduled re-sync jobs
// for link collections.
type Coordinator struct {
	reader    ContentReader
	publisher eventbus.EventPublisher
	scheduler *cron.Cron
	logger    *slog.Logger
}

func NewCoordinator(reader ContentReader, publisher eventbus.EventPublisher, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		reader:    reader,
		publisher: publisher,
		scheduler: cron.New(),
		logger:    logger.With("module", "ingest"),
	}
}

// Ingest fetches, chunks and reports one collection. QA mode parses the
// content as question and answer CSV instead of free text.
func (c *Coordinator) Ingest(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()

	c.publish(ctx, req.CollectionID,
		events.NewIngestStarted(req.CollectionID, string(req.Source.Kind), sourceOrigin(req.Source)))

	content, err := c.reader.Read(ctx, req.Source)
	if err != nil {
		c.publish(ctx, req.CollectionID, events.NewIngestFailed(req.CollectionID, err))

		return nil, fmt.Errorf("failed to read source for collection %s: %w", req.CollectionID, err)
	}

	var chunks []chunker.Chunk

	if req.QAMode {
		chunks, err = chunker.SplitQA(content.Data)
		if err != nil {
			c.publish(ctx, req.CollectionID, events.NewIngestFailed(req.CollectionID, err))

			return nil, fmt.Errorf("failed to chunk collection %s: %w", req.CollectionID, err)
		}
	} else {
		chunks = chunker.Split(string(content.Data), req.ChunkOptions)
	}

	duration := time.Since(started)

	c.publish(ctx, req.CollectionID,
		events.NewIngestCompleted(req.CollectionID, len(chunks), duration.Milliseconds()))

	c.logger.Info("Collection ingested",
		"collection_id", req.CollectionID,
		"source_kind", req.Source.Kind,
		"chunks", len(chunks),
		"duration", duration)

	return &Result{
		CollectionID: req.CollectionID,
		Name:         content.Name,
		Chunks:       chunks,
		Duration:     duration,
	}, nil
}

// ScheduleSync registers a recurring re-ingestion, typically for link
// collections that need to track their upstream page. Returns the entry id
// so the job can be cancelled later.
func (c *Coordinator) ScheduleSync(ctx context.Context, spec string, req Request) (cron.EntryID, error) {
	id, err := c.scheduler.AddFunc(spec, func() {
		if _, err := c.Ingest(ctx, req); err != nil {
			c.logger.Error("Scheduled sync failed", "collection_id", req.CollectionID, "error", err)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("invalid sync schedule %q: %w", spec, err)
	}

	return id, nil
}

// CancelSync removes a scheduled re-ingestion.
func (c *Coordinator) CancelSync(id cron.EntryID) {
	c.scheduler.Remove(id)
}

// Start begins running scheduled syncs.
func (c *Coordinator) Start() {
	c.scheduler.Start()
}

// Stop halts the scheduler and waits for running jobs.
func (c *Coordinator) Stop() {
	<-c.scheduler.Stop().Done()
}

func (c *Coordinator) publish(ctx context.Context, key string, event eventbus.Event) {
	if c.publisher == nil {
		return
	}

	if err := c.publisher.Publish(ctx, key, event); err != nil {
		c.logger.Warn("Failed to publish ingest event", "event_type", event.GetType(), "error", err)
	}
}

func sourceOrigin(src sources.Source) string {
	if src.URL != "" {
		return src.URL
	}

	return src.FileID
}
