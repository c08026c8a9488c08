package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/flowdeck/flowdeck/pkg/channels/gochannel"
	"github.com/flowdeck/flowdeck/pkg/eventbus"
	"github.com/flowdeck/flowdeck/pkg/events"
	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillEventBus_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)

	received := make(chan any, 1)

	err = bus.Handle(events.WorkflowPublishedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(ctx))

	now := time.Now().UTC()
	workflow := &models.Workflow{ID: "wf-1", Name: "Support bot", PublishedAt: &now}

	err = bus.Publish(ctx, workflow.ID, events.NewWorkflowPublished(workflow))
	require.NoError(t, err)

	select {
	case event := <-received:
		published, ok := event.(*events.WorkflowPublished)
		require.True(t, ok)
		assert.Equal(t, "wf-1", published.WorkflowID)
		assert.Equal(t, "Support bot", published.Name)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_UnhandledTypeIsIgnored(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pub, sub, err := gochannel.CreateChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)

	received := make(chan any, 1)

	err = bus.Handle(events.WorkflowDeletedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(ctx))

	err = bus.Publish(ctx, "wf-1", events.NewWorkflowCreated(&models.Workflow{ID: "wf-1"}))
	require.NoError(t, err)

	select {
	case <-received:
		t.Fatal("handler should not fire for an unhandled event type")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	pub, sub, err := gochannel.CreateChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)

	assert.NotEmpty(t, bus.GenerateID())
	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}
