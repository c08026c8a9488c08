package models

import "time"

// WorkflowStatus represents the lifecycle state of a workflow.
type WorkflowStatus string

const (
	WorkflowStatusDraft       WorkflowStatus = "draft"       // Editable, not executable
	WorkflowStatusPublished   WorkflowStatus = "published"   // Current active, executable
	WorkflowStatusUnpublished WorkflowStatus = "unpublished" // Historical, not executable
)

// Workflow is a stored node graph plus its chat-level configuration.
type Workflow struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"        validate:"required,min=3"`
	Description string         `json:"description"`
	Status      WorkflowStatus `json:"status"      validate:"required"`
	Nodes       []*StoredNode  `json:"nodes"`
	Edges       []*Edge        `json:"edges"`
	ChatConfig  ChatConfig     `json:"chat_config"`
	Owner       string         `json:"owner"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	DeletedAt   *time.Time     `json:"deleted_at,omitempty"`
}

// Node returns the stored node with the given id, or nil.
func (w *Workflow) Node(id string) *StoredNode {
	for _, n := range w.Nodes {
		if n.ID == id {
			return n
		}
	}

	return nil
}
