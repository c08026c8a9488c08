package ingest_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/flowdeck/flowdeck/pkg/channels/gochannel"
	"github.com/flowdeck/flowdeck/pkg/chunker"
	"github.com/flowdeck/flowdeck/pkg/eventbus"
	"github.com/flowdeck/flowdeck/pkg/events"
	"github.com/flowdeck/flowdeck/pkg/ingest"
	"github.com/flowdeck/flowdeck/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	content *sources.Content
	err     error
}

func (r *fakeReader) Read(_ context.Context, _ sources.Source) (*sources.Content, error) {
	if r.err != nil {
		return nil, r.err
	}

	return r.content, nil
}

func newTestBus(t *testing.T) eventbus.EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	return eventbus.NewWatermillEventBus(pub, sub)
}

func TestCoordinator_Ingest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus := newTestBus(t)
	received := make(chan any, 2)

	for _, eventType := range []events.EventType{events.IngestStartedEvent, events.IngestCompletedEvent} {
		err := bus.Handle(eventType, func(_ context.Context, event any) error {
			received <- event

			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, bus.Subscribe(ctx))

	reader := &fakeReader{content: &sources.Content{
		Name: "guide.md",
		Data: []byte("First paragraph.\n\nSecond paragraph."),
	}}
	coordinator := ingest.NewCoordinator(reader, bus, slog.Default())

	result, err := coordinator.Ingest(ctx, ingest.Request{
		CollectionID: "col-1",
		Source:       sources.Source{Kind: sources.SourceStoredFile, FileID: "file-1"},
		ChunkOptions: chunker.Options{ChunkLen: 20},
	})
	require.NoError(t, err)

	assert.Equal(t, "guide.md", result.Name)
	assert.Len(t, result.Chunks, 2)

	for range 2 {
		select {
		case event := <-received:
			switch e := event.(type) {
			case *events.IngestStarted:
				assert.Equal(t, "col-1", e.CollectionID)
				assert.Equal(t, "stored_file", e.SourceKind)
			case *events.IngestCompleted:
				assert.Equal(t, 2, e.ChunkCount)
			default:
				t.Fatalf("unexpected event %T", event)
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for ingest events")
		}
	}
}

func TestCoordinator_IngestQAMode(t *testing.T) {
	reader := &fakeReader{content: &sources.Content{
		Name: "faq.csv",
		Data: []byte("q,a\nWhat is it?,An editor\n"),
	}}
	coordinator := ingest.NewCoordinator(reader, nil, slog.Default())

	result, err := coordinator.Ingest(context.Background(), ingest.Request{
		CollectionID: "col-1",
		Source:       sources.Source{Kind: sources.SourceStoredFile, FileID: "faq"},
		QAMode:       true,
	})
	require.NoError(t, err)

	require.Len(t, result.Chunks, 1)
	assert.Equal(t, "What is it?", result.Chunks[0].Text)
	assert.Equal(t, "An editor", result.Chunks[0].A)
}

func TestCoordinator_IngestReadFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus := newTestBus(t)
	failed := make(chan any, 1)

	err := bus.Handle(events.IngestFailedEvent, func(_ context.Context, event any) error {
		failed <- event

		return nil
	})
	require.NoError(t, err)
	require.NoError(t, bus.Subscribe(ctx))

	reader := &fakeReader{err: errors.New("upstream down")}
	coordinator := ingest.NewCoordinator(reader, bus, slog.Default())

	_, err = coordinator.Ingest(ctx, ingest.Request{
		CollectionID: "col-1",
		Source:       sources.Source{Kind: sources.SourceLink, URL: "https://example.com"},
	})
	require.Error(t, err)

	select {
	case event := <-failed:
		failure, ok := event.(*events.IngestFailed)
		require.True(t, ok)
		assert.Contains(t, failure.Error, "upstream down")
	case <-ctx.Done():
		t.Fatal("timed out waiting for failure event")
	}
}

func TestCoordinator_ScheduleSync_InvalidSpec(t *testing.T) {
	coordinator := ingest.NewCoordinator(&fakeReader{}, nil, slog.Default())

	_, err := coordinator.ScheduleSync(context.Background(), "not-a-cron-spec", ingest.Request{})
	assert.Error(t, err)
}

func TestCoordinator_ScheduleSync(t *testing.T) {
	reader := &fakeReader{content: &sources.Content{Name: "page", Data: []byte("content")}}
	coordinator := ingest.NewCoordinator(reader, nil, slog.Default())

	id, err := coordinator.ScheduleSync(context.Background(), "@hourly", ingest.Request{
		CollectionID: "col-1",
		Source:       sources.Source{Kind: sources.SourceLink, URL: "https://example.com"},
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	coordinator.CancelSync(id)
}
