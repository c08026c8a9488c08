package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/flowdeck/flowdeck/pkg/eventbus"
	"github.com/flowdeck/flowdeck/pkg/events"
	"github.com/flowdeck/flowdeck/pkg/graph"
	"github.com/flowdeck/flowdeck/pkg/models"
	"github.com/flowdeck/flowdeck/pkg/persistence"
	"github.com/google/uuid"
)

// ErrWorkflowNotFound is returned when a workflow is not found.
var ErrWorkflowNotFound = persistence.ErrWorkflowNotFound

// Workflow implements workflow CRUD plus the graph-aware load, check and
// publish operations.
type Workflow struct {
	persistence persistence.Persistence
	templates   graph.TemplateSource
	translate   graph.Translator
	publisher   eventbus.EventPublisher
}

// NewWorkflow creates a new workflow service. The publisher may be nil when
// no event bus is configured (CLI one-shots).
func NewWorkflow(
	persistence persistence.Persistence,
	templates graph.TemplateSource,
	translate graph.Translator,
	publisher eventbus.EventPublisher,
) *Workflow {
	return &Workflow{
		persistence: persistence,
		templates:   templates,
		translate:   translate,
		publisher:   publisher,
	}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if w.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := w.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// ListWorkflowsRequest contains options for listing workflows.
type ListWorkflowsRequest struct {
	Limit  int `validate:"min=0,max=100"`
	Offset int `validate:"min=0"`

	OwnerID string
	Status  *models.WorkflowStatus

	SortBy    string
	SortOrder string
}

// ListWorkflowsResponse contains the result of listing workflows.
type ListWorkflowsResponse struct {
	Workflows   []*models.Workflow `json:"workflows"`
	TotalCount  int                `json:"total_count"`
	HasNextPage bool               `json:"has_next_page"`
}

// ListWorkflows retrieves workflows with filtering, sorting, and pagination.
// Editor workloads are small, so filtering happens in memory over the
// persistence snapshot.
func (w *Workflow) ListWorkflows(ctx context.Context, req ListWorkflowsRequest) (*ListWorkflowsResponse, error) {
	if err := w.validateListWorkflowsRequest(&req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	all, err := w.persistence.Workflows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	filtered := make([]*models.Workflow, 0, len(all))

	for _, workflow := range all {
		if req.OwnerID != "" && workflow.Owner != req.OwnerID {
			continue
		}

		if req.Status != nil && workflow.Status != *req.Status {
			continue
		}

		filtered = append(filtered, workflow)
	}

	sortWorkflows(filtered, req.SortBy, req.SortOrder)

	total := len(filtered)

	start := min(req.Offset, total)
	end := min(start+req.Limit, total)

	return &ListWorkflowsResponse{
		Workflows:   filtered[start:end],
		TotalCount:  total,
		HasNextPage: end < total,
	}, nil
}

func sortWorkflows(workflows []*models.Workflow, sortBy, sortOrder string) {
	less := func(a, b *models.Workflow) bool {
		switch sortBy {
		case "name":
			return a.Name < b.Name
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(workflows, func(i, j int) bool {
		if sortOrder == "asc" {
			return less(workflows[i], workflows[j])
		}

		return less(workflows[j], workflows[i])
	})
}

func (w *Workflow) validateListWorkflowsRequest(req *ListWorkflowsRequest) error {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	if req.Limit > 100 {
		req.Limit = 100
	}

	if req.Offset < 0 {
		req.Offset = 0
	}

	if req.SortBy == "" {
		req.SortBy = "created_at"
	}

	if req.SortOrder == "" {
		req.SortOrder = "desc"
	}

	allowedSorts := []string{"created_at", "updated_at", "name"}
	if !slices.Contains(allowedSorts, req.SortBy) {
		return NewValidationError(
			"validateListWorkflowsRequest",
			"INVALID_SORT_FIELD",
			fmt.Sprintf("invalid sort field '%s', allowed: %s", req.SortBy, strings.Join(allowedSorts, ", ")),
			ErrInvalidSortField,
		)
	}

	if req.SortOrder != "asc" && req.SortOrder != "desc" {
		return NewValidationError(
			"validateListWorkflowsRequest",
			"INVALID_SORT_ORDER",
			fmt.Sprintf("invalid sort order '%s', allowed: asc, desc", req.SortOrder),
			ErrInvalidSortOrder,
		)
	}

	if req.Status != nil {
		allowedStatuses := []models.WorkflowStatus{
			models.WorkflowStatusDraft,
			models.WorkflowStatusPublished,
			models.WorkflowStatusUnpublished,
		}

		if !slices.Contains(allowedStatuses, *req.Status) {
			return NewValidationError(
				"validateListWorkflowsRequest",
				"INVALID_STATUS",
				fmt.Sprintf("invalid status '%s'", *req.Status),
				ErrInvalidStatus,
			)
		}
	}

	return nil
}

// FetchByID retrieves a workflow by its ID.
func (w *Workflow) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := w.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		return nil, ErrWorkflowNotFound
	}

	return workflow, nil
}

// LoadGraph retrieves a workflow and reconciles every stored node against
// its current template, returning the runtime nodes the editor renders.
// Nodes with unknown kinds come back as placeholder nodes, never an error.
func (w *Workflow) LoadGraph(ctx context.Context, id string) (*models.Workflow, []*models.FlowNode, error) {
	workflow, err := w.FetchByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	nodes := make([]*models.FlowNode, 0, len(workflow.Nodes))
	for _, stored := range workflow.Nodes {
		nodes = append(nodes, graph.Reconcile(stored, w.templates, w.translate))
	}

	return workflow, nodes, nil
}

// Create adds a new workflow to the repository.
func (w *Workflow) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow == nil {
		return nil, ErrWorkflowNil
	}

	now := time.Now().UTC()
	workflow.ID = uuid.New().String()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	if workflow.Status == "" {
		workflow.Status = models.WorkflowStatusDraft
	}

	err := w.persistence.SaveWorkflow(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	w.publish(ctx, workflow.ID, events.NewWorkflowCreated(workflow))

	return workflow, nil
}

// Update modifies an existing draft workflow by its ID.
func (w *Workflow) Update(ctx context.Context, workflowID string, workflow *models.Workflow) (*models.Workflow, error) {
	existing, err := w.FetchByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if existing.Status == models.WorkflowStatusPublished {
		return nil, ErrCannotModifyPublished
	}

	workflow.ID = workflowID
	workflow.Status = existing.Status
	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now().UTC()

	err = w.persistence.SaveWorkflow(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to update workflow: %w", err)
	}

	w.publish(ctx, workflow.ID, events.NewWorkflowUpdated(workflow))

	return workflow, nil
}

// Delete removes a workflow by its ID.
func (w *Workflow) Delete(ctx context.Context, id string) error {
	err := w.persistence.DeleteWorkflow(ctx, id)
	if err != nil {
		return err
	}

	w.publish(ctx, id, events.NewWorkflowDeleted(id))

	return nil
}

// Check reconciles the workflow's nodes and reports the invalid node ids.
// An empty result means the graph has no problems.
func (w *Workflow) Check(ctx context.Context, id string) ([]string, error) {
	workflow, nodes, err := w.LoadGraph(ctx, id)
	if err != nil {
		return nil, err
	}

	return graph.CheckGraph(nodes, workflow.Edges), nil
}

// Publish validates the workflow graph and transitions it to published.
// A graph with invalid nodes is rejected with the offending node ids; the
// caller decides how to surface them.
func (w *Workflow) Publish(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, nodes, err := w.LoadGraph(ctx, id)
	if err != nil {
		return nil, err
	}

	if workflow.Status == models.WorkflowStatusPublished {
		return nil, ErrAlreadyPublished
	}

	if workflow.Name == "" {
		return nil, ErrWorkflowNameRequired
	}

	if len(workflow.Nodes) == 0 {
		return nil, ErrNodesRequired
	}

	if invalid := graph.CheckGraph(nodes, workflow.Edges); len(invalid) > 0 {
		return nil, NewGraphError("Publish", invalid)
	}

	now := time.Now().UTC()
	workflow.Status = models.WorkflowStatusPublished
	workflow.UpdatedAt = now
	workflow.PublishedAt = &now

	err = w.persistence.SaveWorkflow(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to publish workflow: %w", err)
	}

	w.publish(ctx, workflow.ID, events.NewWorkflowPublished(workflow))

	return workflow, nil
}

func (w *Workflow) publish(ctx context.Context, key string, event eventbus.Event) {
	if w.publisher == nil {
		return
	}

	// Best effort: a down event bus must not fail the write path.
	_ = w.publisher.Publish(ctx, key, event)
}
