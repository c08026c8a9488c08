// Package events defines event types and structures for workflow and
// ingestion lifecycle notifications.
package events

import (
	"time"

	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/google/uuid"
)

type EventType string

const Topic = "flowdeck.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Workflow lifecycle events.
	WorkflowCreatedEvent   EventType = "workflow.created"
	WorkflowUpdatedEvent   EventType = "workflow.updated"
	WorkflowDeletedEvent   EventType = "workflow.deleted"
	WorkflowPublishedEvent EventType = "workflow.published"

	// Dataset ingestion events.
	IngestStartedEvent   EventType = "ingest.started"
	IngestCompletedEvent EventType = "ingest.completed"
	IngestFailedEvent    EventType = "ingest.failed"
)

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	WorkflowID string         `json:"workflow_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
		Metadata:   make(map[string]any),
	}
}

type WorkflowCreated struct {
	BaseEvent

	Name   string                `json:"name"`
	Status models.WorkflowStatus `json:"status"`
}

func (w WorkflowCreated) GetType() EventType {
	return WorkflowCreatedEvent
}

func NewWorkflowCreated(workflow *models.Workflow) WorkflowCreated {
	return WorkflowCreated{
		BaseEvent: NewBaseEvent(WorkflowCreatedEvent, workflow.ID),
		Name:      workflow.Name,
		Status:    workflow.Status,
	}
}

type WorkflowUpdated struct {
	BaseEvent

	Name      string `json:"name"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (w WorkflowUpdated) GetType() EventType {
	return WorkflowUpdatedEvent
}

func NewWorkflowUpdated(workflow *models.Workflow) WorkflowUpdated {
	return WorkflowUpdated{
		BaseEvent: NewBaseEvent(WorkflowUpdatedEvent, workflow.ID),
		Name:      workflow.Name,
		NodeCount: len(workflow.Nodes),
		EdgeCount: len(workflow.Edges),
	}
}

type WorkflowDeleted struct {
	BaseEvent
}

func (w WorkflowDeleted) GetType() EventType {
	return WorkflowDeletedEvent
}

func NewWorkflowDeleted(workflowID string) WorkflowDeleted {
	return WorkflowDeleted{
		BaseEvent: NewBaseEvent(WorkflowDeletedEvent, workflowID),
	}
}

type WorkflowPublished struct {
	BaseEvent

	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
}

func (w WorkflowPublished) GetType() EventType {
	return WorkflowPublishedEvent
}

func NewWorkflowPublished(workflow *models.Workflow) WorkflowPublished {
	published := WorkflowPublished{
		BaseEvent: NewBaseEvent(WorkflowPublishedEvent, workflow.ID),
		Name:      workflow.Name,
	}
	if workflow.PublishedAt != nil {
		published.PublishedAt = *workflow.PublishedAt
	}

	return published
}
