package web

import "github.com/flowdeck/flowdeck/pkg/models"

// CreateWorkflowRequest represents the request body for creating a new workflow.
type CreateWorkflowRequest struct {
	Name        string             `json:"name"        validate:"required,min=3"`
	Description string             `json:"description"`
	Owner       string             `json:"owner"       validate:"required"`
	ChatConfig  *models.ChatConfig `json:"chat_config,omitempty"`
}

// UpdateWorkflowRequest represents the request body for updating an existing
// workflow. All fields are optional to support partial updates; nodes and
// edges replace the stored graph wholesale when present.
type UpdateWorkflowRequest struct {
	Name        *string              `json:"name,omitempty"        validate:"omitempty,min=3"`
	Description *string              `json:"description,omitempty"`
	Nodes       []*models.StoredNode `json:"nodes,omitempty"`
	Edges       []*models.Edge       `json:"edges,omitempty"`
	ChatConfig  *models.ChatConfig   `json:"chat_config,omitempty"`
}

// MaterializeNodeRequest carries the drop position for a new node.
type MaterializeNodeRequest struct {
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
}

// WorkflowDetailResponse pairs the stored workflow with its reconciled
// runtime nodes.
type WorkflowDetailResponse struct {
	Workflow *models.Workflow   `json:"workflow"`
	Nodes    []*models.FlowNode `json:"nodes"`
}

// CheckResponse reports the outcome of a graph check.
type CheckResponse struct {
	Valid          bool     `json:"valid"`
	InvalidNodeIDs []string `json:"invalid_node_ids"`
}
